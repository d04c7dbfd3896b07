package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Category       string          `json:"category"`
	TrackStock     bool            `json:"track_stock"`
	CurrentStock   int64           `json:"current_stock"`
	MinStock       int64           `json:"min_stock"`
	PriceMayorista decimal.Decimal `json:"price_mayorista"`
	PriceMinorista decimal.Decimal `json:"price_minorista"`
	PriceFinal     decimal.Decimal `json:"price_final"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category       *string          `json:"category"`
	TrackStock     *bool            `json:"track_stock"`
	CurrentStock   *int64           `json:"current_stock"`
	MinStock       *int64           `json:"min_stock"`
	PriceMayorista *decimal.Decimal `json:"price_mayorista"`
	PriceMinorista *decimal.Decimal `json:"price_minorista"`
	PriceFinal     *decimal.Decimal `json:"price_final"`
	Active         *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	TrackStock     bool            `json:"track_stock"`
	CurrentStock   int64           `json:"current_stock"`
	MinStock       int64           `json:"min_stock"`
	PriceMayorista decimal.Decimal `json:"price_mayorista"`
	PriceMinorista decimal.Decimal `json:"price_minorista"`
	PriceFinal     decimal.Decimal `json:"price_final"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
