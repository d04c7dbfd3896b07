package order

import (
	"github.com/shopspring/decimal"

	"github.com/kioscosoft/distribuidora-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// UnitPrice aplica el ajuste manual de una línea sobre el precio base del
// nivel (servicio de dominio, puro).
//
//	NONE              -> base
//	FIXED_PRICE       -> value
//	PERCENTAGE_OFF    -> base * (1 - value/100)
//	PERCENTAGE_MARKUP -> base * (1 + value/100)
//
// El resultado nunca es negativo (se recorta en cero).
func UnitPrice(base decimal.Decimal, adj entity.AdjustmentType, value decimal.Decimal) decimal.Decimal {
	var price decimal.Decimal
	switch adj {
	case entity.AdjustmentFixedPrice:
		price = value
	case entity.AdjustmentPercentageOff:
		price = base.Mul(decimal.NewFromInt(1).Sub(value.Div(hundred)))
	case entity.AdjustmentPercentageMarkup:
		price = base.Mul(decimal.NewFromInt(1).Add(value.Div(hundred)))
	default:
		price = base
	}
	if price.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return price
}

// ValidAdjustment indica si el tipo de ajuste es conocido.
func ValidAdjustment(adj entity.AdjustmentType) bool {
	switch adj {
	case entity.AdjustmentNone, entity.AdjustmentFixedPrice,
		entity.AdjustmentPercentageOff, entity.AdjustmentPercentageMarkup:
		return true
	}
	return false
}

// Fee calcula el recargo administrativo/comisión sobre el subtotal.
func Fee(subtotal, feePct decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(feePct).Div(hundred)
}
