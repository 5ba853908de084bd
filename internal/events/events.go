package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cianorte/storefront/internal/domain/model"
)

const (
	TopicOrders   = "storefront.orders"
	TopicPayments = "storefront.payments"

	TypeOrderCreated         = "OrderCreated"
	TypePaymentInitiated     = "PaymentInitiated"
	TypePaymentStatusChanged = "PaymentStatusChanged"

	producerName = "storefront-api"
)

// Envelope wraps every published event.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

// OrderCreatedPayload is emitted after an order commits.
type OrderCreatedPayload struct {
	OrderID int64           `json:"order_id"`
	UserID  int64           `json:"user_id"`
	Total   decimal.Decimal `json:"total"`
	Items   int             `json:"items"`
}

// PaymentStatusPayload is emitted when a payment is created or its
// status changes.
type PaymentStatusPayload struct {
	PaymentID     int64               `json:"payment_id"`
	OrderID       int64               `json:"order_id"`
	TransactionID string              `json:"transaction_id"`
	Method        model.PaymentMethod `json:"method"`
	Status        model.PaymentStatus `json:"status"`
	Amount        decimal.Decimal     `json:"amount"`
}

// NewEnvelope wraps payload into a ready-to-publish envelope.
func NewEnvelope(eventType string, payload any) (*Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producerName,
		Payload:    raw,
	}, nil
}
