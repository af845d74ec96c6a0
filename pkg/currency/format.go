package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locales con dirección derecha-a-izquierda: el símbolo va después del número.
var rtlLocales = map[string]bool{"ar": true, "ur": true, "he": true, "fa": true}

// Formatter formatea montos para mostrar según el idioma indicado.
// Es seguro para uso concurrente.
type Formatter struct {
	locale  string
	printer *message.Printer
}

// NewFormatter crea un formateador para el locale (ej. "en", "es", "ar").
// Un locale inválido o vacío usa inglés.
func NewFormatter(locale string) *Formatter {
	locale = strings.ToLower(strings.TrimSpace(locale))
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		locale, tag = "en", language.English
	}
	base, _ := tag.Base()
	return &Formatter{locale: base.String(), printer: message.NewPrinter(tag)}
}

// Locale idioma base efectivo del formateador.
func (f *Formatter) Locale() string { return f.locale }

// Number formatea el monto con 2 decimales y separadores de miles del locale.
func (f *Formatter) Number(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	return f.printer.Sprint(number.Decimal(rounded.Abs().InexactFloat64(), number.Scale(2)))
}

// Format devuelve el monto con símbolo de moneda, ej. "$1,234.50" o "1.234,50 €" en RTL.
func (f *Formatter) Format(amount decimal.Decimal, code string) string {
	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	n := f.Number(amount)
	symbol := Symbol(code)
	if rtlLocales[f.locale] {
		return sign + n + " " + symbol
	}
	return sign + symbol + n
}

// Breakdown par moneda/monto para FormatBreakdown.
type Breakdown struct {
	Code   string
	Amount decimal.Decimal
}

// FormatBreakdown une montos de varias monedas: "$1,200.00 + €340.00".
// Sin montos devuelve el cero de la moneda fallback.
func (f *Formatter) FormatBreakdown(parts []Breakdown, fallback string) string {
	if len(parts) == 0 {
		return f.Format(decimal.Zero, fallback)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, f.Format(p.Amount, p.Code))
	}
	return strings.Join(out, " + ")
}
