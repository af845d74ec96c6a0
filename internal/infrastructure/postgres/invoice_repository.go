package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Create y ReplaceItems escriben varias filas: usarlos con una tx (ver TxRunner).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `i.id, i.user_id, i.company_id, i.client_id, i.invoice_number, i.issue_date, i.due_date,
	i.currency, i.status, i.notes, i.template, i.created_at, i.updated_at`

const lineItemColumns = `li.id, li.invoice_id, li.description, li.quantity, li.unit_price,
	li.discount, li.discount_type, li.tax_rate, li.position`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var companyID, clientID *string
	err := row.Scan(&inv.ID, &inv.UserID, &companyID, &clientID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate,
		&inv.Currency, &inv.Status, &inv.Notes, &inv.Template, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.CompanyID = derefStr(companyID)
	inv.ClientID = derefStr(clientID)
	return &inv, nil
}

func scanLineItem(row pgx.Row) (entity.LineItem, error) {
	var li entity.LineItem
	err := row.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &li.UnitPrice,
		&li.Discount, &li.DiscountType, &li.TaxRate, &li.Position)
	return li, err
}

// Create persiste la cabecera y todas sus líneas.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, user_id, company_id, client_id, invoice_number, issue_date, due_date,
		                      currency, status, notes, template, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.UserID, nullIfEmpty(invoice.CompanyID), nullIfEmpty(invoice.ClientID),
		invoice.InvoiceNumber, invoice.IssueDate, invoice.DueDate,
		invoice.Currency, invoice.Status, invoice.Notes, invoice.Template,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %q: %w", invoice.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertItems(invoice.ID, invoice.Items)
}

// insertItems inserta las líneas en un solo batch. Asigna ID, InvoiceID y Position a cada una.
func (r *InvoiceRepo) insertItems(invoiceID string, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	const query = `
		INSERT INTO line_items (id, invoice_id, description, quantity, unit_price, discount, discount_type, tax_rate, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	batch := &pgx.Batch{}
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.InvoiceID = invoiceID
		it.Position = i
		batch.Queue(query, it.ID, it.InvoiceID, it.Description, it.Quantity, it.UnitPrice,
			it.Discount, it.DiscountType, it.TaxRate, it.Position)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	return nil
}

// Update actualiza la cabecera de la factura. Las líneas se cambian con ReplaceItems.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET company_id = $2, client_id = $3, invoice_number = $4, issue_date = $5, due_date = $6,
		    currency = $7, status = $8, notes = $9, template = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, nullIfEmpty(invoice.CompanyID), nullIfEmpty(invoice.ClientID),
		invoice.InvoiceNumber, invoice.IssueDate, invoice.DueDate,
		invoice.Currency, invoice.Status, invoice.Notes, invoice.Template, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %q: %w", invoice.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// ReplaceItems borra todas las líneas de la factura e inserta items.
func (r *InvoiceRepo) ReplaceItems(invoiceID string, items []entity.LineItem) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM line_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}
	return r.insertItems(invoiceID, items)
}

// GetByID obtiene una factura completa (cabecera y líneas) por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices i WHERE i.id = $1`
	return r.getOne(query, id)
}

// GetByNumber obtiene la factura del usuario con ese número.
func (r *InvoiceRepo) GetByNumber(userID, number string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices i WHERE i.user_id = $1 AND i.invoice_number = $2`
	return r.getOne(query, userID, number)
}

func (r *InvoiceRepo) getOne(query string, args ...any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.Items, err = r.itemsByInvoice(inv.ID)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepo) itemsByInvoice(invoiceID string) ([]entity.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items li WHERE li.invoice_id = $1 ORDER BY li.position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.LineItem, 0)
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

// ListByUser lista las facturas del usuario (más recientes primero) con sus líneas.
// Las líneas se cargan en una sola consulta y se agrupan por factura.
func (r *InvoiceRepo) ListByUser(userID string, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	ctx := context.Background()
	where := `i.user_id = $1`
	args := []any{userID}
	if filter.Status != "" {
		where += ` AND i.status = $2`
		args = append(args, filter.Status)
	}

	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices i WHERE `+where+` ORDER BY i.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT `+lineItemColumns+`
		FROM line_items li JOIN invoices i ON i.id = li.invoice_id
		WHERE `+where+` ORDER BY li.invoice_id, li.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer itemRows.Close()
	var items []entity.LineItem
	for itemRows.Next() {
		li, err := scanLineItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, li)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}

	byInvoice := lo.GroupBy(items, func(li entity.LineItem) string { return li.InvoiceID })
	for _, inv := range list {
		inv.Items = byInvoice[inv.ID]
		if inv.Items == nil {
			inv.Items = []entity.LineItem{}
		}
	}
	return list, nil
}

// Delete elimina las líneas y luego la factura.
func (r *InvoiceRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM line_items WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
