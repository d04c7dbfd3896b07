package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del pedido dentro del ciclo pago/entrega.
type OrderStatus string

const (
	StatusNoPago     OrderStatus = "NO_PAGO"
	StatusPago       OrderStatus = "PAGO"
	StatusFiado      OrderStatus = "FIADO"
	StatusDelivering OrderStatus = "DELIVERING"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// AdjustmentType ajuste manual de precio por línea de pedido.
type AdjustmentType string

const (
	AdjustmentNone             AdjustmentType = "NONE"
	AdjustmentFixedPrice       AdjustmentType = "FIXED_PRICE"
	AdjustmentPercentageOff    AdjustmentType = "PERCENTAGE_OFF"
	AdjustmentPercentageMarkup AdjustmentType = "PERCENTAGE_MARKUP"
)

// Order representa un pedido. Los montos son calculados al crear y nunca se
// recalculan: ShippingAddress y los precios de las líneas son una foto del
// momento de creación.
type Order struct {
	ID              string
	Number          string // "PED-XXXXXXXX", derivado de UUID
	CustomerID      string
	CreatedBy       string // vendedor
	Tier            PriceTier
	Subtotal        decimal.Decimal
	FeePct          decimal.Decimal // comisión/recargo administrativo
	Fee             decimal.Decimal
	Total           decimal.Decimal
	Status          OrderStatus
	RouteID         *string
	DeliveryCode    string // código de confirmación de 4 dígitos
	RequiresCode    bool
	ShippingAddress string
	PaidAt          *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea de pedido con la foto de precios al momento de crear:
// BasePrice es el precio del nivel aplicado y UnitPrice el resultado del
// ajuste manual. Cambios posteriores en el producto no alteran la línea.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	ProductName     string
	Quantity        int64
	BasePrice       decimal.Decimal
	Tier            PriceTier
	AdjustmentType  AdjustmentType
	AdjustmentValue decimal.Decimal
	UnitPrice       decimal.Decimal
	Subtotal        decimal.Decimal
}
