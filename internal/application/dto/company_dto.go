package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa (o POST /api/settings).
type CreateCompanyRequest struct {
	CompanyName       string `json:"company_name" validate:"required,min=1,max=200"`
	Email             string `json:"email" validate:"omitempty,email"`
	Phone             string `json:"phone" validate:"omitempty,max=50"`
	Address           string `json:"address" validate:"omitempty,max=500"`
	TaxID             string `json:"tax_id" validate:"omitempty,max=50"`
	Logo              string `json:"logo"`
	PrimaryColor      string `json:"primary_color" validate:"omitempty,hexcolor"`
	InvoicePrefix     string `json:"invoice_prefix" validate:"omitempty,max=10"`
	NextInvoiceNumber int    `json:"next_invoice_number" validate:"omitempty,min=1"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	CompanyName       *string `json:"company_name" validate:"omitempty,min=1,max=200"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Phone             *string `json:"phone" validate:"omitempty,max=50"`
	Address           *string `json:"address" validate:"omitempty,max=500"`
	TaxID             *string `json:"tax_id" validate:"omitempty,max=50"`
	Logo              *string `json:"logo"`
	PrimaryColor      *string `json:"primary_color" validate:"omitempty,hexcolor"`
	InvoicePrefix     *string `json:"invoice_prefix" validate:"omitempty,max=10"`
	NextInvoiceNumber *int    `json:"next_invoice_number" validate:"omitempty,min=1"`
	IsPrimary         *bool   `json:"is_primary"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                string    `json:"id"`
	CompanyName       string    `json:"company_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	TaxID             string    `json:"tax_id"`
	Logo              string    `json:"logo,omitempty"`
	PrimaryColor      string    `json:"primary_color"`
	InvoicePrefix     string    `json:"invoice_prefix"`
	NextInvoiceNumber int       `json:"next_invoice_number"`
	IsPrimary         bool      `json:"is_primary"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
