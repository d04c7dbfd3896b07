package entity

import "time"

// PriceTier nivel de precio aplicado a un cliente o pedido.
type PriceTier string

const (
	TierMayorista PriceTier = "MAYORISTA"
	TierMinorista PriceTier = "MINORISTA"
	TierFinal     PriceTier = "FINAL"
)

// ValidTier indica si el valor corresponde a un nivel de precio conocido.
func ValidTier(t PriceTier) bool {
	switch t {
	case TierMayorista, TierMinorista, TierFinal:
		return true
	}
	return false
}

// Customer representa un cliente de la distribuidora. TaxID (CUIT/NIT) es
// único; la baja es lógica (DeletedAt) para no romper pedidos históricos.
type Customer struct {
	ID        string
	Name      string
	TaxID     string
	Phone     string
	Address   string
	Tier      PriceTier
	CreatedBy string // vendedor que dio de alta el cliente
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
