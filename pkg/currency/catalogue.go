// Package currency contiene el catálogo de monedas soportadas y el formateo de montos
// para mostrar. El cálculo de totales vive en internal/domain/invoicing y nunca formatea.
package currency

import (
	"strings"

	"github.com/samber/lo"
)

// Currency moneda soportada por la aplicación.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// DefaultCode moneda por defecto.
const DefaultCode = "USD"

var catalogue = []Currency{
	// Norteamérica
	{"USD", "$", "US Dollar"},
	{"CAD", "C$", "Canadian Dollar"},
	{"MXN", "MX$", "Mexican Peso"},

	// Europa
	{"EUR", "€", "Euro"},
	{"GBP", "£", "British Pound"},
	{"CHF", "CHF", "Swiss Franc"},
	{"SEK", "kr", "Swedish Krona"},
	{"NOK", "kr", "Norwegian Krone"},
	{"DKK", "kr", "Danish Krone"},
	{"PLN", "zł", "Polish Zloty"},
	{"CZK", "Kč", "Czech Koruna"},
	{"HUF", "Ft", "Hungarian Forint"},
	{"RON", "lei", "Romanian Leu"},
	{"BGN", "лв", "Bulgarian Lev"},

	// Asia Pacífico
	{"JPY", "¥", "Japanese Yen"},
	{"CNY", "¥", "Chinese Yuan"},
	{"KRW", "₩", "South Korean Won"},
	{"INR", "₹", "Indian Rupee"},
	{"SGD", "S$", "Singapore Dollar"},
	{"HKD", "HK$", "Hong Kong Dollar"},
	{"TWD", "NT$", "Taiwan Dollar"},
	{"THB", "฿", "Thai Baht"},
	{"MYR", "RM", "Malaysian Ringgit"},
	{"IDR", "Rp", "Indonesian Rupiah"},
	{"PHP", "₱", "Philippine Peso"},
	{"VND", "₫", "Vietnamese Dong"},
	{"PKR", "₨", "Pakistani Rupee"},
	{"BDT", "৳", "Bangladeshi Taka"},
	{"LKR", "Rs", "Sri Lankan Rupee"},

	// Oceanía
	{"AUD", "A$", "Australian Dollar"},
	{"NZD", "NZ$", "New Zealand Dollar"},

	// Medio Oriente
	{"AED", "د.إ", "UAE Dirham"},
	{"SAR", "﷼", "Saudi Riyal"},
	{"ILS", "₪", "Israeli Shekel"},
	{"QAR", "ر.ق", "Qatari Riyal"},
	{"KWD", "د.ك", "Kuwaiti Dinar"},
	{"BHD", "د.ب", "Bahraini Dinar"},
	{"OMR", "ر.ع.", "Omani Rial"},
	{"JOD", "د.ا", "Jordanian Dinar"},
	{"LBP", "ل.ل", "Lebanese Pound"},

	// África
	{"ZAR", "R", "South African Rand"},
	{"NGN", "₦", "Nigerian Naira"},
	{"EGP", "E£", "Egyptian Pound"},
	{"KES", "KSh", "Kenyan Shilling"},
	{"GHS", "₵", "Ghanaian Cedi"},
	{"TZS", "TSh", "Tanzanian Shilling"},
	{"UGX", "USh", "Ugandan Shilling"},
	{"MAD", "د.م.", "Moroccan Dirham"},

	// Sudamérica
	{"BRL", "R$", "Brazilian Real"},
	{"ARS", "AR$", "Argentine Peso"},
	{"CLP", "CL$", "Chilean Peso"},
	{"COP", "COL$", "Colombian Peso"},
	{"PEN", "S/", "Peruvian Sol"},
	{"UYU", "$U", "Uruguayan Peso"},

	// Otras
	{"RUB", "₽", "Russian Ruble"},
	{"TRY", "₺", "Turkish Lira"},
	{"UAH", "₴", "Ukrainian Hryvnia"},
}

var byCode = lo.KeyBy(catalogue, func(c Currency) string { return c.Code })

// NormalizeCode quita espacios y pasa a mayúsculas; vacío equivale a USD.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCode
	}
	return code
}

// Lookup busca una moneda por código (no distingue mayúsculas).
func Lookup(code string) (Currency, bool) {
	c, ok := byCode[NormalizeCode(code)]
	return c, ok
}

// IsSupported indica si el código está en el catálogo.
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Symbol devuelve el símbolo de la moneda o el propio código si no se conoce.
func Symbol(code string) string {
	if c, ok := Lookup(code); ok {
		return c.Symbol
	}
	return NormalizeCode(code)
}

// All devuelve una copia del catálogo.
func All() []Currency {
	out := make([]Currency, len(catalogue))
	copy(out, catalogue)
	return out
}
