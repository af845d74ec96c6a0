package invoicing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// CurrencyTotals acumulados por código de moneda. Montos de monedas distintas nunca se suman.
type CurrencyTotals struct {
	// Amounts total por moneda.
	Amounts map[string]decimal.Decimal
	// Codes monedas en el orden en que aparecieron por primera vez.
	Codes []string

	// primary moneda de la primera factura cuyo acumulado quedó distinto de cero.
	primary string
}

// currencyOf normaliza la moneda de una factura; vacía equivale a USD.
func currencyOf(inv *entity.Invoice) string {
	code := strings.TrimSpace(inv.Currency)
	if code == "" {
		return entity.DefaultCurrency
	}
	return code
}

// GroupByCurrency suma el total de cada factura en el balde de su moneda.
// El filtrado por estado (pagadas, pendientes...) es responsabilidad del llamador.
func GroupByCurrency(invoices []*entity.Invoice) CurrencyTotals {
	out := CurrencyTotals{Amounts: make(map[string]decimal.Decimal)}
	order := make([]string, 0, len(invoices)) // moneda de cada factura, en orden de iteración

	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		code := currencyOf(inv)
		if _, seen := out.Amounts[code]; !seen {
			out.Codes = append(out.Codes, code)
		}
		out.Amounts[code] = out.Amounts[code].Add(InvoiceTotal(inv).Total)
		order = append(order, code)
	}

	for _, code := range order {
		if !out.Amounts[code].IsZero() {
			out.primary = code
			break
		}
	}
	if out.primary == "" {
		if len(order) > 0 {
			out.primary = order[0]
		} else {
			out.primary = entity.DefaultCurrency
		}
	}
	return out
}

// Primary devuelve la moneda principal y su acumulado, para tarjetas de un solo número.
func (c CurrencyTotals) Primary() (string, decimal.Decimal) {
	code := c.primary
	if code == "" {
		code = entity.DefaultCurrency
	}
	return code, c.Amount(code)
}

// Amount acumulado de una moneda; cero si no hay facturas en ella.
func (c CurrencyTotals) Amount(code string) decimal.Decimal {
	if c.Amounts == nil {
		return decimal.Zero
	}
	return c.Amounts[code]
}

// IsEmpty indica si no se acumuló ninguna factura.
func (c CurrencyTotals) IsEmpty() bool {
	return len(c.Codes) == 0
}
