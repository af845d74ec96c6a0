package repository

import "github.com/jhoicas/Facturador-api/internal/domain/entity"

// InvoiceFilter filtros opcionales para listar facturas.
type InvoiceFilter struct {
	Status string // vacío = todos
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create persiste la cabecera y las líneas de invoice.Items.
	Create(invoice *entity.Invoice) error
	// Update actualiza solo la cabecera.
	Update(invoice *entity.Invoice) error
	// ReplaceItems borra las líneas actuales e inserta items.
	ReplaceItems(invoiceID string, items []entity.LineItem) error
	// GetByID devuelve la factura con sus líneas; (nil, nil) si no existe.
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(userID, number string) (*entity.Invoice, error)
	// ListByUser devuelve las facturas del usuario con sus líneas, más recientes primero.
	ListByUser(userID string, filter InvoiceFilter) ([]*entity.Invoice, error)
	Delete(id string) error
}
