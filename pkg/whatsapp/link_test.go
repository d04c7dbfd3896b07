package whatsapp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kioscosoft/distribuidora-api/pkg/whatsapp"
)

func TestLink_LimpiaElTelefono(t *testing.T) {
	got := whatsapp.Link("+54 9 11 5555-1234", "")
	assert.Equal(t, "https://wa.me/5491155551234", got)
}

func TestLink_EscapaElTexto(t *testing.T) {
	got := whatsapp.Link("5491155551234", "Hola! Tu pedido PED-AB12CD34 está en camino.")
	assert.Contains(t, got, "https://wa.me/5491155551234?text=")
	assert.Contains(t, got, "PED-AB12CD34")
	assert.NotContains(t, got, " ", "la URL no lleva espacios sin escapar")
}

func TestLink_SinTelefono(t *testing.T) {
	got := whatsapp.Link("", "hola")
	assert.Equal(t, "https://wa.me/?text=hola", got)
}
