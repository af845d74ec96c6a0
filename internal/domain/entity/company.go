package entity

import (
	"strconv"
	"time"
)

// Valores por defecto de la configuración de empresa.
const (
	DefaultPrimaryColor      = "#3B82F6"
	DefaultInvoicePrefix     = "INV"
	DefaultNextInvoiceNumber = 1001
)

// Company representa los datos de la empresa emisora (configuración de facturación).
// Un usuario puede tener varias; solo una es la principal.
type Company struct {
	ID                string
	UserID            string
	CompanyName       string
	Email             string
	Phone             string
	Address           string
	TaxID             string
	Logo              string // URL o data URI; el manejo de archivos queda fuera
	PrimaryColor      string
	InvoicePrefix     string
	NextInvoiceNumber int
	IsPrimary         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FormatInvoiceNumber arma el número visible "PREFIX-N"; prefijo vacío usa DefaultInvoicePrefix.
func FormatInvoiceNumber(prefix string, n int) string {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	return prefix + "-" + strconv.Itoa(n)
}
