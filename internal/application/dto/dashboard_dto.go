package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Los montos nunca se suman entre monedas: cada métrica trae el desglose por moneda.
type DashboardSummaryDTO struct {
	TotalInvoices  int                `json:"total_invoices"`
	Revenue        MoneyStatDTO       `json:"revenue"`         // facturas pagadas
	Pending        MoneyStatDTO       `json:"pending"`         // enviadas o vencidas
	PaidThisMonth  MoneyStatDTO       `json:"paid_this_month"` // pagadas con fecha de emisión en el mes en curso
	RecentInvoices []RecentInvoiceDTO `json:"recent_invoices"`
}

// CurrencyAmountDTO acumulado de una moneda.
type CurrencyAmountDTO struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// MoneyStatDTO métrica monetaria para una tarjeta del dashboard.
type MoneyStatDTO struct {
	ByCurrency      []CurrencyAmountDTO `json:"by_currency"`
	PrimaryCurrency string              `json:"primary_currency"`
	PrimaryAmount   decimal.Decimal     `json:"primary_amount"`
	Formatted       string              `json:"formatted"` // desglose "$100.00 + €50.00"
}

// RecentInvoiceDTO fila de la tabla de facturas recientes.
type RecentInvoiceDTO struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	Status        string          `json:"status"`
	Currency      string          `json:"currency"`
	IssueDate     string          `json:"issue_date"`
	Total         decimal.Decimal `json:"total"`
	Formatted     string          `json:"formatted"`
}
