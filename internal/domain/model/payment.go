package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates supported checkout methods.
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
)

// Valid reports whether the method is supported.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodPix || m == PaymentMethodCreditCard
}

// PaymentStatus describes payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusRejected PaymentStatus = "REJECTED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Payment is a single payment attempt against an order. One order may
// accumulate several attempts. TransactionID is the gateway's opaque
// identifier and is empty until the gateway accepts the transaction.
type Payment struct {
	ID            int64
	OrderID       int64
	Method        PaymentMethod
	Amount        decimal.Decimal
	Status        PaymentStatus
	TransactionID string
	CreatedAt     time.Time
}

// CardDetails carries the tokenized card fields required by the gateway
// for credit card transactions. The raw card number never reaches this
// service; Token is produced client-side.
type CardDetails struct {
	Token        string
	Installments int
	Network      string
	IssuerID     string
}
