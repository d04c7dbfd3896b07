package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea del pedido a crear. AdjustmentType admite NONE,
// FIXED_PRICE, PERCENTAGE_OFF y PERCENTAGE_MARKUP.
type OrderItemRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        int64           `json:"quantity" validate:"required,min=1"`
	AdjustmentType  string          `json:"adjustment_type"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	CustomerID      string             `json:"customer_id" validate:"required"`
	Tier            string             `json:"tier"` // vacío = nivel del cliente
	Items           []OrderItemRequest `json:"items" validate:"required,min=1"`
	ShippingAddress string             `json:"shipping_address"` // vacío = dirección actual del cliente
	FeePct          decimal.Decimal    `json:"fee_pct"`
}

// UpdateOrderStatusRequest entrada para cambiar el estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse línea de pedido con la foto de precios.
type OrderItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int64           `json:"quantity"`
	BasePrice       decimal.Decimal `json:"base_price"`
	AdjustmentType  string          `json:"adjustment_type"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	CustomerID      string              `json:"customer_id"`
	CreatedBy       string              `json:"created_by"`
	Tier            string              `json:"tier"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	FeePct          decimal.Decimal     `json:"fee_pct"`
	Fee             decimal.Decimal     `json:"fee"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	RouteID         *string             `json:"route_id,omitempty"`
	RequiresCode    bool                `json:"requires_code"`
	ShippingAddress string              `json:"shipping_address"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItemResponse `json:"items,omitempty"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
