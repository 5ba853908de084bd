package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cianorte/storefront/internal/adapter/gateway"
	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/usecase"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn      func(context.Context, usecase.RegisterInput) (*model.User, error)
	AuthenticateFn  func(context.Context, string, string) (*model.User, string, error)
	ParseTokenFn    func(string) (int64, error)
	ProfileFn       func(context.Context, int64) (*model.User, error)
	UpdateProfileFn func(context.Context, int64, usecase.UpdateProfileInput) (*model.User, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Name: in.Name, Email: in.Email, NationalID: in.NationalID}, nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email}, "session-token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}

func (s AuthFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Name: "Cliente Teste"}, nil
}

func (s AuthFacadeStub) UpdateProfile(ctx context.Context, userID int64, in usecase.UpdateProfileInput) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, userID, in)
	}
	return &model.User{ID: userID}, nil
}

// CatalogFacadeStub simulates catalog operations.
type CatalogFacadeStub struct {
	ProductsFn      func(context.Context, model.ProductFilter) (*model.ProductPage, error)
	ProductFn       func(context.Context, int64) (*model.Product, error)
	CreateProductFn func(context.Context, *model.Product) (*model.Product, error)
	UpdateProductFn func(context.Context, *model.Product) error
	DeleteProductFn func(context.Context, int64) error
	CategoriesFn    func(context.Context) ([]string, error)
}

func (s CatalogFacadeStub) Products(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return &model.ProductPage{CurrentPage: 1, Pages: 1}, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Produto", Price: decimal.NewFromInt(10)}, nil
}

func (s CatalogFacadeStub) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, product)
	}
	created := *product
	created.ID = 1
	return &created, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, product *model.Product) error {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return nil
}

func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

func (s CatalogFacadeStub) Categories(ctx context.Context) ([]string, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []string{"Eletrônicos"}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateOrderFn    func(context.Context, int64, []model.OrderLine) (*model.Order, error)
	OrdersFn         func(context.Context, int64) ([]model.Order, error)
	OrderFn          func(context.Context, int64, int64) (*model.Order, error)
	SetOrderStatusFn func(context.Context, int64, model.OrderStatus) error
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, userID, lines)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusCreated}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID}, nil
}

func (s OrderFacadeStub) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.SetOrderStatusFn != nil {
		return s.SetOrderStatusFn(ctx, orderID, status)
	}
	return nil
}

// PaymentFacadeStub simulates payment operations.
type PaymentFacadeStub struct {
	InitiatePaymentFn           func(context.Context, int64, int64, model.PaymentMethod, *model.CardDetails) (*usecase.InitiateResult, error)
	PaymentStatusFn             func(context.Context, string) (*usecase.StatusView, error)
	HandleGatewayNotificationFn func(context.Context, string, string) error
	PaymentMethodsFn            func(context.Context) ([]gateway.Method, error)
}

func (s PaymentFacadeStub) InitiatePayment(ctx context.Context, userID, orderID int64, method model.PaymentMethod, card *model.CardDetails) (*usecase.InitiateResult, error) {
	if s.InitiatePaymentFn != nil {
		return s.InitiatePaymentFn(ctx, userID, orderID, method, card)
	}
	return &usecase.InitiateResult{
		Payment: &model.Payment{
			ID:            1,
			OrderID:       orderID,
			Method:        method,
			Status:        model.PaymentStatusPending,
			TransactionID: "tx-1",
			Amount:        decimal.NewFromInt(100),
		},
		GatewayStatus: "pending",
	}, nil
}

func (s PaymentFacadeStub) PaymentStatus(ctx context.Context, transactionID string) (*usecase.StatusView, error) {
	if s.PaymentStatusFn != nil {
		return s.PaymentStatusFn(ctx, transactionID)
	}
	return &usecase.StatusView{GatewayStatus: "pending", LocalStatus: model.PaymentStatusPending}, nil
}

func (s PaymentFacadeStub) HandleGatewayNotification(ctx context.Context, eventType, transactionID string) error {
	if s.HandleGatewayNotificationFn != nil {
		return s.HandleGatewayNotificationFn(ctx, eventType, transactionID)
	}
	return nil
}

func (s PaymentFacadeStub) PaymentMethods(ctx context.Context) ([]gateway.Method, error) {
	if s.PaymentMethodsFn != nil {
		return s.PaymentMethodsFn(ctx)
	}
	return []gateway.Method{{ID: "pix", Name: "PIX", TypeID: "bank_transfer"}}, nil
}

// ReconcileFacadeStub simulates the pending payment sweep.
type ReconcileFacadeStub struct {
	StalePendingPaymentsFn func(context.Context, time.Duration, int) ([]model.Payment, error)
	ReconcilePaymentFn     func(context.Context, string) error
}

func (s ReconcileFacadeStub) StalePendingPayments(ctx context.Context, minAge time.Duration, limit int) ([]model.Payment, error) {
	if s.StalePendingPaymentsFn != nil {
		return s.StalePendingPaymentsFn(ctx, minAge, limit)
	}
	return nil, nil
}

func (s ReconcileFacadeStub) ReconcilePayment(ctx context.Context, transactionID string) error {
	if s.ReconcilePaymentFn != nil {
		return s.ReconcilePaymentFn(ctx, transactionID)
	}
	return nil
}

// StorefrontFacadeStub aggregates all facade stubs for router-level tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
}
