package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidOrderLine   = errors.New("invalid order line")
	ErrInvalidPayment     = errors.New("invalid payment request")
)

// GatewayError carries the payment provider's diagnostic payload so
// callers can surface it verbatim.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error: status %d: %s", e.StatusCode, e.Body)
}

// IsGatewayError reports whether err wraps a GatewayError and returns it.
func IsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
