package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount convierte el string decimal persistido a decimal.Decimal.
// Un valor vacío o inválido se toma como cero; el calculador nunca recibe errores de parseo.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAmountOr igual que ParseAmount pero con un valor por defecto distinto de cero.
func ParseAmountOr(s string, def decimal.Decimal) decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		return def
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return d
}

// StorageString representación de 2 decimales usada al guardar montos como texto.
func StorageString(d decimal.Decimal) string {
	return d.StringFixed(2)
}
