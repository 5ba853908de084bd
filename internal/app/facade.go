package app

import (
	"context"
	"time"

	"github.com/cianorte/storefront/internal/adapter/gateway"
	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind a single surface
// consumed by the HTTP handlers and the reconciliation worker.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	products *usecase.ProductUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
}

// NewStorefrontFacade constructs the facade.
func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	products *usecase.ProductUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, products: products, orders: orders, payments: payments}
}

// --- auth ---

func (f *StorefrontFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, error) {
	return f.auth.Register(ctx, in)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StorefrontFacade) UpdateProfile(ctx context.Context, userID int64, in usecase.UpdateProfileInput) (*model.User, error) {
	return f.auth.UpdateProfile(ctx, userID, in)
}

// --- catalog ---

func (f *StorefrontFacade) Products(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	return f.products.List(ctx, filter)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.products.Create(ctx, product)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, product *model.Product) error {
	return f.products.Update(ctx, product)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.products.Delete(ctx, id)
}

func (f *StorefrontFacade) Categories(ctx context.Context) ([]string, error) {
	return f.products.Categories(ctx)
}

// --- orders ---

func (f *StorefrontFacade) CreateOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	return f.orders.Create(ctx, userID, lines)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.GetForUser(ctx, userID, orderID)
}

func (f *StorefrontFacade) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.orders.SetStatus(ctx, orderID, status)
}

// --- payments ---

func (f *StorefrontFacade) InitiatePayment(ctx context.Context, userID, orderID int64, method model.PaymentMethod, card *model.CardDetails) (*usecase.InitiateResult, error) {
	return f.payments.Initiate(ctx, userID, orderID, method, card)
}

func (f *StorefrontFacade) PaymentStatus(ctx context.Context, transactionID string) (*usecase.StatusView, error) {
	return f.payments.QueryStatus(ctx, transactionID)
}

func (f *StorefrontFacade) HandleGatewayNotification(ctx context.Context, eventType, transactionID string) error {
	return f.payments.HandleNotification(ctx, eventType, transactionID)
}

func (f *StorefrontFacade) PaymentMethods(ctx context.Context) ([]gateway.Method, error) {
	return f.payments.ListMethods(ctx)
}

// --- reconciliation ---

func (f *StorefrontFacade) StalePendingPayments(ctx context.Context, minAge time.Duration, limit int) ([]model.Payment, error) {
	return f.payments.StalePending(ctx, minAge, limit)
}

func (f *StorefrontFacade) ReconcilePayment(ctx context.Context, transactionID string) error {
	return f.payments.HandleNotification(ctx, "payment", transactionID)
}
