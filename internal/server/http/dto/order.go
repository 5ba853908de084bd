package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cianorte/storefront/internal/domain/model"
)

// OrderLineRequest is one requested product/quantity pair.
type OrderLineRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// CreateOrderRequest describes the order payload.
type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"items" binding:"required"`
}

// OrderItemResponse is one line of an order.
type OrderItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"user_id"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"order_date"`
}

// OrderStatusRequest carries a direct status transition.
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToOrderResponse converts the domain order with its items.
func ToOrderResponse(order *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Total:     order.Total,
		Items:     items,
		CreatedAt: order.CreatedAt,
	}
}
