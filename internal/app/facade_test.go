package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/storage/productcache"
	testhelpers "github.com/cianorte/storefront/internal/test"
	"github.com/cianorte/storefront/internal/usecase"
)

type facadeDeps struct {
	users     *testhelpers.UserRepositoryStub
	products  *testhelpers.ProductRepositoryStub
	orders    *testhelpers.OrderRepositoryStub
	payments  *testhelpers.PaymentRepositoryStub
	gateway   *testhelpers.GatewayClientStub
	publisher *testhelpers.PublisherStub
}

func newFacade() (*StorefrontFacade, *facadeDeps) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	deps := &facadeDeps{
		users:     testhelpers.NewUserRepositoryStub(),
		products:  &testhelpers.ProductRepositoryStub{},
		orders:    &testhelpers.OrderRepositoryStub{},
		payments:  testhelpers.NewPaymentRepositoryStub(),
		gateway:   &testhelpers.GatewayClientStub{},
		publisher: &testhelpers.PublisherStub{},
	}

	authUC := usecase.NewAuthUseCase(deps.users, testhelpers.HasherStub{}, testhelpers.StrategyStub{
		ParseFn: func(string) (int64, error) { return 99, nil },
	})
	productUC := usecase.NewProductUseCase(deps.products, productcache.NopCache{})
	orderUC := usecase.NewOrderUseCase(deps.orders, deps.publisher, logger)
	paymentUC := usecase.NewPaymentUseCase(deps.payments, deps.orders, deps.users, deps.gateway, deps.publisher, logger)

	return NewStorefrontFacade(authUC, productUC, orderUC, paymentUC), deps
}

func registerUser(t *testing.T, facade *StorefrontFacade) (*model.User, string) {
	t.Helper()
	email := testhelpers.RandomASCIIString(8, 12) + "@example.com"
	password := testhelpers.RandomASCIIString(16, 24)
	user, err := facade.Register(context.Background(), usecase.RegisterInput{
		Name:       "Maria da Silva",
		Email:      email,
		Password:   password,
		NationalID: "123.456.789-00",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	return user, password
}

func TestStorefrontFacadeAuth(t *testing.T) {
	facade, deps := newFacade()
	user, password := registerUser(t, facade)

	stored, err := deps.users.GetByEmail(context.Background(), user.Email)
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Name != "Maria da Silva" {
		t.Fatalf("unexpected stored name %q", stored.Name)
	}

	authed, token, err := facade.Authenticate(context.Background(), user.Email, password)
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" || authed.ID != user.ID {
		t.Fatalf("unexpected authenticate result: token=%q id=%d", token, authed.ID)
	}

	if _, _, err := facade.Authenticate(context.Background(), user.Email, "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	id, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}

	name := "Maria Oliveira"
	updated, err := facade.UpdateProfile(context.Background(), user.ID, usecase.UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("update profile returned error: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("unexpected updated name %q", updated.Name)
	}

	profile, err := facade.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if profile.Name != name {
		t.Fatalf("expected profile to reflect update, got %q", profile.Name)
	}
}

func TestStorefrontFacadeCatalog(t *testing.T) {
	facade, deps := newFacade()
	deps.products.Items = []model.Product{
		{ID: 1, Name: "Camiseta", Price: decimal.NewFromFloat(49.90), Category: "Roupas"},
	}
	deps.products.CategoryList = []string{"Roupas"}

	page, err := facade.Products(context.Background(), model.ProductFilter{})
	if err != nil || page.Total != 1 {
		t.Fatalf("unexpected listing: %+v err=%v", page, err)
	}

	product, err := facade.Product(context.Background(), 1)
	if err != nil || product.Name != "Camiseta" {
		t.Fatalf("unexpected product: %+v err=%v", product, err)
	}
	if _, err := facade.Product(context.Background(), 404); !errors.Is(err, domainErrors.ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}

	created, err := facade.CreateProduct(context.Background(), &model.Product{Name: "Caneca", Price: decimal.NewFromInt(25)})
	if err != nil || created.ID == 0 {
		t.Fatalf("unexpected create result: %+v err=%v", created, err)
	}

	categories, err := facade.Categories(context.Background())
	if err != nil || len(categories) != 1 || categories[0] != "Roupas" {
		t.Fatalf("unexpected categories %v err=%v", categories, err)
	}
}

func TestStorefrontFacadeOrders(t *testing.T) {
	facade, deps := newFacade()
	deps.orders.CreateFn = func(_ context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
		if len(lines) != 1 || lines[0].ProductID != 3 {
			t.Fatalf("unexpected lines %v", lines)
		}
		return &model.Order{ID: 10, UserID: userID, Status: model.OrderStatusCreated, Total: decimal.NewFromInt(100)}, nil
	}

	order, err := facade.CreateOrder(context.Background(), 7, []model.OrderLine{{ProductID: 3, Quantity: 2}})
	if err != nil || order.ID != 10 {
		t.Fatalf("unexpected create result: %+v err=%v", order, err)
	}
	if published := deps.publisher.Published(); len(published) != 1 || published[0].Key != 10 {
		t.Fatalf("expected one order event keyed by order id, got %v", published)
	}

	deps.orders.Orders = []model.Order{{ID: 10, UserID: 7}, {ID: 11, UserID: 8}}
	listed, err := facade.Orders(context.Background(), 7)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one order for user, got %v err=%v", listed, err)
	}

	if _, err := facade.Order(context.Background(), 7, 11); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected foreign order to be hidden, got %v", err)
	}

	if err := facade.SetOrderStatus(context.Background(), 10, model.OrderStatusCompleted); err != nil {
		t.Fatalf("set status returned error: %v", err)
	}
	if len(deps.orders.UpdateCalls) != 1 || deps.orders.UpdateCalls[0].Status != model.OrderStatusCompleted {
		t.Fatalf("unexpected update calls %v", deps.orders.UpdateCalls)
	}
	if err := facade.SetOrderStatus(context.Background(), 10, model.OrderStatus("SHIPPED")); !errors.Is(err, domainErrors.ErrInvalidOrderStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestStorefrontFacadePayments(t *testing.T) {
	facade, deps := newFacade()
	user, _ := registerUser(t, facade)
	deps.orders.Orders = []model.Order{{
		ID:     10,
		UserID: user.ID,
		Status: model.OrderStatusCreated,
		Total:  decimal.NewFromFloat(149.90),
	}}

	result, err := facade.InitiatePayment(context.Background(), user.ID, 10, model.PaymentMethodPix, nil)
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}
	if result.Payment.Status != model.PaymentStatusPending || result.Payment.TransactionID != "tx-1" {
		t.Fatalf("unexpected payment %+v", result.Payment)
	}

	view, err := facade.PaymentStatus(context.Background(), "tx-1")
	if err != nil {
		t.Fatalf("payment status returned error: %v", err)
	}
	if view.GatewayStatus != "approved" || view.LocalStatus != model.PaymentStatusApproved {
		t.Fatalf("unexpected status view %+v", view)
	}

	if err := facade.HandleGatewayNotification(context.Background(), "payment", "tx-1"); err != nil {
		t.Fatalf("notification returned error: %v", err)
	}

	methods, err := facade.PaymentMethods(context.Background())
	if err != nil || len(methods) != 2 {
		t.Fatalf("unexpected methods %v err=%v", methods, err)
	}

	deps.payments.Stale = []model.Payment{{ID: 1, TransactionID: "tx-1"}}
	stale, err := facade.StalePendingPayments(context.Background(), time.Minute, 10)
	if err != nil || len(stale) != 1 {
		t.Fatalf("unexpected stale payments %v err=%v", stale, err)
	}
	if err := facade.ReconcilePayment(context.Background(), "tx-1"); err != nil {
		t.Fatalf("reconcile returned error: %v", err)
	}
}
