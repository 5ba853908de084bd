package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cianorte/storefront/internal/adapter/gateway"
	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/domain/repository"
	"github.com/cianorte/storefront/internal/events"
)

// PaymentUseCase orchestrates payment creation against the gateway and
// keeps local payment/order state in sync with gateway status.
type PaymentUseCase struct {
	payments  repository.PaymentRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	gateway   gateway.Client
	publisher events.Publisher
	logger    *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	gatewayClient gateway.Client,
	publisher events.Publisher,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments:  payments,
		orders:    orders,
		users:     users,
		gateway:   gatewayClient,
		publisher: publisher,
		logger:    logger,
	}
}

// InitiateResult is the method-specific response of a payment creation.
// The PIX artifacts are empty for credit card payments.
type InitiateResult struct {
	Payment       *model.Payment
	GatewayStatus string
	StatusDetail  string
	QRCode        string
	QRCodeBase64  string
	TicketURL     string
}

// Initiate creates a gateway transaction for the order and persists the
// Pending payment together with the order's move to Processing. A
// gateway rejection or timeout commits nothing locally.
func (u *PaymentUseCase) Initiate(ctx context.Context, userID, orderID int64, method model.PaymentMethod, card *model.CardDetails) (*InitiateResult, error) {
	if !method.Valid() {
		return nil, domainErrors.ErrInvalidPayment
	}

	order, err := u.orders.GetForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	req := gateway.TransactionRequest{
		Amount:      order.Total,
		Description: fmt.Sprintf("Order #%d - Cianorte Storefront", order.ID),
		Payer:       buildPayer(user),
	}

	switch method {
	case model.PaymentMethodPix:
		req.MethodID = string(model.PaymentMethodPix)
	case model.PaymentMethodCreditCard:
		if card == nil || card.Token == "" || card.Network == "" {
			return nil, domainErrors.ErrInvalidPayment
		}
		installments := card.Installments
		if installments < 1 {
			installments = 1
		}
		req.MethodID = card.Network
		req.Token = card.Token
		req.Installments = installments
		req.IssuerID = card.IssuerID
	}

	tx, err := u.gateway.CreateTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	payment, err := u.payments.CreateWithOrderStatus(ctx, &model.Payment{
		OrderID:       order.ID,
		Method:        method,
		Amount:        order.Total,
		Status:        model.PaymentStatusPending,
		TransactionID: tx.ID,
	}, model.OrderStatusProcessing)
	if err != nil {
		return nil, err
	}

	u.publishStatus(events.TypePaymentInitiated, payment)

	return &InitiateResult{
		Payment:       payment,
		GatewayStatus: tx.Status,
		StatusDetail:  tx.StatusDetail,
		QRCode:        tx.QRCode,
		QRCodeBase64:  tx.QRCodeBase64,
		TicketURL:     tx.TicketURL,
	}, nil
}

// StatusView is what poll callers see after reconciliation.
type StatusView struct {
	GatewayStatus string
	StatusDetail  string
	MethodID      string
	LocalStatus   model.PaymentStatus
}

// QueryStatus fetches the transaction from the gateway, applies the
// status mapping and returns the current view.
func (u *PaymentUseCase) QueryStatus(ctx context.Context, transactionID string) (*StatusView, error) {
	tx, err := u.gateway.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gateway.ErrTransactionNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	payment, err := u.ApplyGatewayStatus(ctx, tx.ID, tx.Status)
	if err != nil {
		return nil, err
	}

	view := &StatusView{
		GatewayStatus: tx.Status,
		StatusDetail:  tx.StatusDetail,
		MethodID:      tx.MethodID,
	}
	if payment != nil {
		view.LocalStatus = payment.Status
	}
	return view, nil
}

// HandleNotification processes a gateway-pushed event. Only payment
// events carry state; everything else is ignored. Errors bubble up so
// the HTTP layer can log them, but the webhook is always acknowledged.
func (u *PaymentUseCase) HandleNotification(ctx context.Context, eventType, transactionID string) error {
	if eventType != "payment" || transactionID == "" {
		return nil
	}

	tx, err := u.gateway.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gateway.ErrTransactionNotFound) {
			return nil
		}
		return err
	}

	_, err = u.ApplyGatewayStatus(ctx, tx.ID, tx.Status)
	return err
}

// ApplyGatewayStatus maps the gateway status vocabulary onto local
// payment and order state. It is the single funnel for both the poll
// and webhook paths: an unknown gateway status or an unknown
// transaction id is a no-op, and re-applying the same status changes
// nothing.
func (u *PaymentUseCase) ApplyGatewayStatus(ctx context.Context, transactionID, gatewayStatus string) (*model.Payment, error) {
	status, orderStatus, ok := mapGatewayStatus(gatewayStatus)
	if !ok {
		return nil, nil
	}

	payment, changed, err := u.payments.ApplyStatus(ctx, transactionID, status, orderStatus)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			// Out-of-band or test notification, tolerated.
			u.logger.Info("notification for unknown transaction ignored",
				slog.String("transaction_id", transactionID))
			return nil, nil
		}
		return nil, err
	}

	if changed {
		u.publishStatus(events.TypePaymentStatusChanged, payment)
	}
	return payment, nil
}

// StalePending returns payments still Pending after minAge, oldest
// first, for the reconciliation sweep.
func (u *PaymentUseCase) StalePending(ctx context.Context, minAge time.Duration, limit int) ([]model.Payment, error) {
	return u.payments.ListStalePending(ctx, minAge, limit)
}

// ListMethods returns gateway methods filtered to PIX and credit card.
func (u *PaymentUseCase) ListMethods(ctx context.Context) ([]gateway.Method, error) {
	methods, err := u.gateway.ListMethods(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]gateway.Method, 0, len(methods))
	for _, m := range methods {
		if m.ID == string(model.PaymentMethodPix) || m.TypeID == string(model.PaymentMethodCreditCard) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func (u *PaymentUseCase) publishStatus(eventType string, payment *model.Payment) {
	env, err := events.NewEnvelope(eventType, events.PaymentStatusPayload{
		PaymentID:     payment.ID,
		OrderID:       payment.OrderID,
		TransactionID: payment.TransactionID,
		Method:        payment.Method,
		Status:        payment.Status,
		Amount:        payment.Amount,
	})
	if err != nil {
		u.logger.Error("build payment event failed", slog.String("error", err.Error()))
		return
	}
	u.publisher.Publish(events.TopicPayments, payment.OrderID, env)
}

// mapGatewayStatus translates the gateway status vocabulary. The third
// return is false for statuses outside the vocabulary, which callers
// treat as a no-op.
func mapGatewayStatus(gatewayStatus string) (model.PaymentStatus, *model.OrderStatus, bool) {
	switch gatewayStatus {
	case "approved":
		processing := model.OrderStatusProcessing
		return model.PaymentStatusApproved, &processing, true
	case "rejected":
		cancelled := model.OrderStatusCancelled
		return model.PaymentStatusRejected, &cancelled, true
	case "pending":
		return model.PaymentStatusPending, nil, true
	default:
		return "", nil, false
	}
}

func buildPayer(user *model.User) gateway.Payer {
	payer := gateway.Payer{
		Email:     user.Email,
		FirstName: "Cliente",
	}
	parts := strings.Fields(user.Name)
	if len(parts) > 0 {
		payer.FirstName = parts[0]
		payer.LastName = strings.Join(parts[1:], " ")
	}
	payer.Identification.Type = "CPF"
	payer.Identification.Number = normalizeNationalID(user.NationalID)
	return payer
}

// normalizeNationalID strips punctuation from the national id, keeping
// only letters and digits.
func normalizeNationalID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
