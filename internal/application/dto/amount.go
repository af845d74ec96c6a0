package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/pkg/currency"
)

// Amount monto recibido en el body. Acepta string ("85.50") o número JSON (85.5);
// se conserva el texto original y se interpreta con Decimal.
type Amount string

// UnmarshalJSON acepta string, número o null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// Decimal interpreta el monto; vacío o inválido vale cero.
func (a Amount) Decimal() decimal.Decimal {
	return currency.ParseAmount(string(a))
}
