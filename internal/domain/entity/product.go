package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con sus tres niveles de precio.
// Si TrackStock es false el producto se vende sin control de inventario
// (stock infinito); CurrentStock solo cambia por creación y cancelación de
// pedidos, nunca por edición directa.
type Product struct {
	ID             string
	SKU            string // código único
	Name           string
	Category       string
	TrackStock     bool
	CurrentStock   int64
	MinStock       int64
	PriceMayorista decimal.Decimal
	PriceMinorista decimal.Decimal
	PriceFinal     decimal.Decimal
	Active         bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PriceForTier devuelve el precio base según el nivel del pedido.
func (p *Product) PriceForTier(tier PriceTier) decimal.Decimal {
	switch tier {
	case TierMayorista:
		return p.PriceMayorista
	case TierMinorista:
		return p.PriceMinorista
	default:
		return p.PriceFinal
	}
}
