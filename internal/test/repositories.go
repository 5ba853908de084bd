package test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cianorte/storefront/internal/adapter/gateway"
	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/domain/model"
	"github.com/cianorte/storefront/internal/events"
)

// UserRepositoryStub is an in-memory user repository.
type UserRepositoryStub struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

// NewUserRepositoryStub builds an empty in-memory user repository.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{users: make(map[int64]*model.User)}
}

func (s *UserRepositoryStub) Create(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email || existing.NationalID == user.NationalID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	s.nextID++
	stored := *user
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	s.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *UserRepositoryStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (s *UserRepositoryStub) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// OrderRepositoryStub is a controllable order repository.
type OrderRepositoryStub struct {
	Orders      []model.Order
	CreateFn    func(context.Context, int64, []model.OrderLine) (*model.Order, error)
	UpdateCalls []struct {
		OrderID int64
		Status  model.OrderStatus
	}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, lines)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusCreated}, nil
}

func (s *OrderRepositoryStub) GetByID(_ context.Context, orderID int64) (*model.Order, error) {
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			out := s.Orders[i]
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) GetForUser(_ context.Context, userID, orderID int64) (*model.Order, error) {
	for i := range s.Orders {
		if s.Orders[i].ID == orderID && s.Orders[i].UserID == userID {
			out := s.Orders[i]
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByUser(_ context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, order := range s.Orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *OrderRepositoryStub) UpdateStatus(_ context.Context, orderID int64, status model.OrderStatus) error {
	s.UpdateCalls = append(s.UpdateCalls, struct {
		OrderID int64
		Status  model.OrderStatus
	}{orderID, status})
	return nil
}

// PaymentRepositoryStub keeps payments in memory keyed by transaction id.
type PaymentRepositoryStub struct {
	mu       sync.Mutex
	nextID   int64
	Payments map[string]*model.Payment
	Stale    []model.Payment
}

// NewPaymentRepositoryStub builds an empty in-memory payment repository.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Payments: make(map[string]*model.Payment)}
}

func (s *PaymentRepositoryStub) CreateWithOrderStatus(_ context.Context, payment *model.Payment, _ model.OrderStatus) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	stored := *payment
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	s.Payments[stored.TransactionID] = &stored
	out := stored
	return &out, nil
}

func (s *PaymentRepositoryStub) GetByTransactionID(_ context.Context, transactionID string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.Payments[transactionID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *payment
	return &out, nil
}

func (s *PaymentRepositoryStub) ApplyStatus(_ context.Context, transactionID string, status model.PaymentStatus, _ *model.OrderStatus) (*model.Payment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.Payments[transactionID]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	changed := payment.Status != status
	payment.Status = status
	out := *payment
	return &out, changed, nil
}

func (s *PaymentRepositoryStub) ListStalePending(context.Context, time.Duration, int) ([]model.Payment, error) {
	return s.Stale, nil
}

// ProductRepositoryStub serves a fixed catalog.
type ProductRepositoryStub struct {
	Items        []model.Product
	CategoryList []string
}

func (s *ProductRepositoryStub) Create(_ context.Context, product *model.Product) (*model.Product, error) {
	created := *product
	created.ID = int64(len(s.Items) + 1)
	s.Items = append(s.Items, created)
	out := created
	return &out, nil
}

func (s *ProductRepositoryStub) GetByID(_ context.Context, id int64) (*model.Product, error) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			out := s.Items[i]
			return &out, nil
		}
	}
	return nil, domainErrors.ErrProductNotFound
}

func (s *ProductRepositoryStub) List(_ context.Context, _ model.ProductFilter) (*model.ProductPage, error) {
	return &model.ProductPage{Products: s.Items, Total: len(s.Items), Pages: 1, CurrentPage: 1}, nil
}

func (s *ProductRepositoryStub) Update(_ context.Context, product *model.Product) error {
	for i := range s.Items {
		if s.Items[i].ID == product.ID {
			s.Items[i] = *product
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) Delete(_ context.Context, id int64) error {
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) Categories(context.Context) ([]string, error) {
	return s.CategoryList, nil
}

// HasherStub hashes by prefixing, making stored hashes assertable.
type HasherStub struct{}

func (HasherStub) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (HasherStub) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// StrategyStub implements the token strategy with controllable hooks.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
}

func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

func (StrategyStub) Name() string { return "stub" }

// GatewayClientStub simulates the payment gateway.
type GatewayClientStub struct {
	CreateFn func(context.Context, gateway.TransactionRequest) (*gateway.Transaction, error)
	GetFn    func(context.Context, string) (*gateway.Transaction, error)
	ListFn   func(context.Context) ([]gateway.Method, error)
}

func (s *GatewayClientStub) CreateTransaction(ctx context.Context, req gateway.TransactionRequest) (*gateway.Transaction, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &gateway.Transaction{ID: "tx-1", Status: "pending", MethodID: req.MethodID}, nil
}

func (s *GatewayClientStub) GetTransaction(ctx context.Context, id string) (*gateway.Transaction, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &gateway.Transaction{ID: id, Status: "approved"}, nil
}

func (s *GatewayClientStub) ListMethods(ctx context.Context) ([]gateway.Method, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []gateway.Method{
		{ID: "pix", Name: "PIX", TypeID: "bank_transfer"},
		{ID: "visa", Name: "Visa", TypeID: "credit_card"},
	}, nil
}

// PublisherStub records published envelopes.
type PublisherStub struct {
	mu        sync.Mutex
	Envelopes []PublishedEvent
}

// PublishedEvent is one recorded Publish call.
type PublishedEvent struct {
	Topic    string
	Key      int64
	Envelope *events.Envelope
}

func (s *PublisherStub) Publish(topic string, key int64, env *events.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Envelopes = append(s.Envelopes, PublishedEvent{Topic: topic, Key: key, Envelope: env})
}

func (s *PublisherStub) Close() error { return nil }

// Published returns a copy of the recorded events.
func (s *PublisherStub) Published() []PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PublishedEvent(nil), s.Envelopes...)
}
