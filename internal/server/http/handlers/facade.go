package handlers

import (
	"context"
	"time"

	"github.com/cianorte/storefront/internal/adapter/gateway"
	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, in usecase.UpdateProfileInput) (*model.User, error)
}

// CatalogFacade encapsulates catalog operations exposed via HTTP.
type CatalogFacade interface {
	Products(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

// PaymentFacade encapsulates payment operations exposed via HTTP.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, userID, orderID int64, method model.PaymentMethod, card *model.CardDetails) (*usecase.InitiateResult, error)
	PaymentStatus(ctx context.Context, transactionID string) (*usecase.StatusView, error)
	HandleGatewayNotification(ctx context.Context, eventType, transactionID string) error
	PaymentMethods(ctx context.Context) ([]gateway.Method, error)
}

// ReconcileFacade exposes the pending payment sweep.
type ReconcileFacade interface {
	StalePendingPayments(ctx context.Context, minAge time.Duration, limit int) ([]model.Payment, error)
	ReconcilePayment(ctx context.Context, transactionID string) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	PaymentFacade
}
