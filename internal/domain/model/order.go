package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "CREATED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// allowedTransitions encodes the order state machine:
// Created -> Processing -> {Completed, Cancelled}. Terminal states have
// no successors, so a late duplicate notification cannot resurrect a
// cancelled order.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// Valid reports whether the status is part of the lifecycle.
func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether moving to next is a legal step.
// Transitioning to the current status is allowed and is a no-op.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a purchase registered by a user. Total is fixed at creation
// time and never recomputed from live product prices.
type Order struct {
	ID        int64
	UserID    int64
	Status    OrderStatus
	Total     decimal.Decimal
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem is a single line of an order with the unit price snapshot
// captured when the order was placed.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderLine is a requested product/quantity pair used to build an order.
type OrderLine struct {
	ProductID int64
	Quantity  int
}
