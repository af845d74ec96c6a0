package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de factura en el body. Los montos llegan como texto decimal.
type LineItemRequest struct {
	Description  string `json:"description" validate:"omitempty,max=500"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    Amount `json:"unit_price" swaggertype:"string"`
	Discount     Amount `json:"discount" swaggertype:"string"`
	DiscountType string `json:"discount_type" validate:"omitempty,oneof=percentage fixed"` // vacío = percentage
	TaxRate      Amount `json:"tax_rate" swaggertype:"string"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Fechas en formato 2006-01-02 o RFC3339. InvoiceNumber vacío toma el siguiente de la empresa.
type CreateInvoiceRequest struct {
	ClientID      string            `json:"client_id" validate:"omitempty,uuid"`
	CompanyID     string            `json:"company_id" validate:"omitempty,uuid"`
	InvoiceNumber string            `json:"invoice_number" validate:"omitempty,max=50"`
	IssueDate     string            `json:"issue_date" validate:"required"`
	DueDate       string            `json:"due_date" validate:"required"`
	Currency      string            `json:"currency" validate:"omitempty,len=3,alpha"`
	Status        string            `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	Notes         string            `json:"notes" validate:"omitempty,max=5000"`
	Template      string            `json:"template" validate:"omitempty,oneof=modern classic"`
	Items         []LineItemRequest `json:"items" validate:"dive"`
}

// UpdateInvoiceRequest body para PATCH /api/invoices/:id.
// Si Items viene en el body (aunque sea vacío) las líneas se reemplazan completas.
type UpdateInvoiceRequest struct {
	ClientID      *string            `json:"client_id" validate:"omitempty,uuid"`
	CompanyID     *string            `json:"company_id" validate:"omitempty,uuid"`
	InvoiceNumber *string            `json:"invoice_number" validate:"omitempty,min=1,max=50"`
	IssueDate     *string            `json:"issue_date"`
	DueDate       *string            `json:"due_date"`
	Currency      *string            `json:"currency" validate:"omitempty,len=3,alpha"`
	Status        *string            `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	Notes         *string            `json:"notes" validate:"omitempty,max=5000"`
	Template      *string            `json:"template" validate:"omitempty,oneof=modern classic"`
	Items         *[]LineItemRequest `json:"items" validate:"omitempty,dive"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue"`
}

// PreviewInvoiceRequest body para POST /api/invoices/preview (totales sin guardar).
type PreviewInvoiceRequest struct {
	Currency string            `json:"currency" validate:"omitempty,len=3,alpha"`
	Items    []LineItemRequest `json:"items" validate:"dive"`
}

// SendInvoiceRequest body opcional para POST /api/invoices/:id/send.
type SendInvoiceRequest struct {
	To         string `json:"to" validate:"omitempty,email"`         // por defecto el email del cliente
	InvoiceURL string `json:"invoice_url" validate:"omitempty,url"` // enlace "Ver factura" en el correo
}

// LineTotalsResponse montos calculados de una línea.
type LineTotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	AfterDiscount  decimal.Decimal `json:"after_discount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

// InvoiceTotalsResponse totales agregados de la factura.
type InvoiceTotalsResponse struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	Total         decimal.Decimal `json:"total"`
}

// LineItemResponse línea en respuestas. Totals solo se incluye en el detalle de una factura.
type LineItemResponse struct {
	ID           string              `json:"id"`
	Description  string              `json:"description"`
	Quantity     int64               `json:"quantity"`
	UnitPrice    decimal.Decimal     `json:"unit_price"`
	Discount     decimal.Decimal     `json:"discount"`
	DiscountType string              `json:"discount_type"`
	TaxRate      decimal.Decimal     `json:"tax_rate"`
	Position     int                 `json:"position"`
	Totals       *LineTotalsResponse `json:"totals,omitempty"`
}

// InvoiceResponse factura con líneas y totales para GET /api/invoices y /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	ClientID      string                `json:"client_id,omitempty"`
	CompanyID     string                `json:"company_id,omitempty"`
	InvoiceNumber string                `json:"invoice_number"`
	IssueDate     string                `json:"issue_date"`
	DueDate       string                `json:"due_date"`
	Currency      string                `json:"currency"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	Template      string                `json:"template"`
	Items         []LineItemResponse    `json:"items"`
	Totals        InvoiceTotalsResponse `json:"totals"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// PreviewInvoiceResponse totales calculados para una lista de líneas sin guardar.
type PreviewInvoiceResponse struct {
	Currency string                `json:"currency"`
	Lines    []LineTotalsResponse  `json:"lines"`
	Totals   InvoiceTotalsResponse `json:"totals"`
	// Formatted total con símbolo de moneda, listo para mostrar.
	Formatted string `json:"formatted"`
}

// SendInvoiceResponse resultado del envío por correo.
type SendInvoiceResponse struct {
	InvoiceID string `json:"invoice_id"`
	To        string `json:"to"`
	MessageID string `json:"message_id"`
	Status    string `json:"status"` // estado de la factura tras el envío
}
