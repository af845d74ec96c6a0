package entity

import "github.com/shopspring/decimal"

// Tipos de descuento de una línea.
const (
	DiscountPercentage = "percentage" // Discount es un porcentaje del subtotal de la línea
	DiscountFixed      = "fixed"      // Discount es un monto en la moneda de la factura
)

// LineItem representa una línea facturable de una factura.
// Los montos se persisten como NUMERIC y viajan como decimal.Decimal.
type LineItem struct {
	ID           string
	InvoiceID    string
	Description  string
	Quantity     int64
	UnitPrice    decimal.Decimal
	Discount     decimal.Decimal
	DiscountType string // ver constantes Discount*
	TaxRate      decimal.Decimal // puntos porcentuales (0–100, no se valida)
	Position     int             // orden de visualización; no afecta los totales
}

// IsValidDiscountType indica si t es uno de los tipos de descuento soportados.
func IsValidDiscountType(t string) bool {
	return t == DiscountPercentage || t == DiscountFixed
}
