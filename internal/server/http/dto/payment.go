package dto

import "encoding/json"

// CardDataRequest carries tokenized card fields; the raw card number
// never reaches this API.
type CardDataRequest struct {
	Token           string `json:"token"`
	Installments    int    `json:"installments"`
	PaymentMethodID string `json:"payment_method_id"`
	IssuerID        string `json:"issuer_id"`
}

// CreatePaymentRequest describes the payment initiation payload.
type CreatePaymentRequest struct {
	OrderID       int64            `json:"order_id" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"required"`
	CardData      *CardDataRequest `json:"card_data"`
}

// CreatePaymentResponse is the method-specific initiation result. PIX
// fields are omitted for card payments.
type CreatePaymentResponse struct {
	PaymentID     int64  `json:"payment_id"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	StatusDetail  string `json:"status_detail"`
	PaymentMethod string `json:"payment_method"`
	QRCode        string `json:"qr_code,omitempty"`
	QRCodeBase64  string `json:"qr_code_base64,omitempty"`
	TicketURL     string `json:"ticket_url,omitempty"`
}

// PaymentStatusResponse mirrors the gateway view after reconciliation.
type PaymentStatusResponse struct {
	Status        string `json:"status"`
	StatusDetail  string `json:"status_detail"`
	PaymentMethod string `json:"payment_method"`
	LocalStatus   string `json:"local_status,omitempty"`
}

// WebhookRequest is a gateway-pushed notification. The transaction id
// arrives as a JSON number.
type WebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// PaymentMethodResponse is one gateway method offered at checkout.
type PaymentMethodResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PaymentTypeID string `json:"payment_type_id"`
	Thumbnail     string `json:"thumbnail"`
}
