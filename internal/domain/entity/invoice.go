package entity

import "time"

// Estados de una factura.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// DefaultCurrency moneda usada cuando la factura no indica una.
const DefaultCurrency = "USD"

// Plantillas de PDF disponibles.
const (
	TemplateModern  = "modern"
	TemplateClassic = "classic"
)

// Invoice representa la cabecera de una factura con sus líneas.
type Invoice struct {
	ID            string
	UserID        string
	CompanyID     string // empresa emisora; vacío = empresa principal del usuario
	ClientID      string
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	Currency      string
	Status        string // ver constantes InvoiceStatus*
	Notes         string
	Template      string
	Items         []LineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsValidInvoiceStatus indica si s es un estado válido de factura.
func IsValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// IsPending indica si la factura está emitida y aún no cobrada (sent u overdue).
func (i *Invoice) IsPending() bool {
	return i.Status == InvoiceStatusSent || i.Status == InvoiceStatusOverdue
}
