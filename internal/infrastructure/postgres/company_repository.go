package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, user_id, company_name, email, phone, address, tax_id, logo,
	primary_color, invoice_prefix, next_invoice_number, is_primary, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.UserID, &c.CompanyName, &c.Email, &c.Phone, &c.Address, &c.TaxID, &c.Logo,
		&c.PrimaryColor, &c.InvoicePrefix, &c.NextInvoiceNumber, &c.IsPrimary, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.UserID, c.CompanyName, c.Email, c.Phone, c.Address, c.TaxID, c.Logo,
		c.PrimaryColor, c.InvoicePrefix, c.NextInvoiceNumber, c.IsPrimary, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetPrimary obtiene la empresa principal del usuario.
func (r *CompanyRepo) GetPrimary(userID string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1 AND is_primary LIMIT 1`
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get primary company: %w", err)
	}
	return c, nil
}

// ListByUser lista las empresas del usuario; la principal primero.
func (r *CompanyRepo) ListByUser(userID string) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1 ORDER BY is_primary DESC, created_at`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables de la empresa. is_primary se cambia con SetPrimary.
func (r *CompanyRepo) Update(c *entity.Company) error {
	query := `
		UPDATE companies
		SET company_name = $2, email = $3, phone = $4, address = $5, tax_id = $6, logo = $7,
		    primary_color = $8, invoice_prefix = $9, next_invoice_number = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyName, c.Email, c.Phone, c.Address, c.TaxID, c.Logo,
		c.PrimaryColor, c.InvoicePrefix, c.NextInvoiceNumber, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// SetPrimary desmarca la principal actual y marca companyID. Ejecutar dentro de una tx.
func (r *CompanyRepo) SetPrimary(userID, companyID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`UPDATE companies SET is_primary = FALSE WHERE user_id = $1 AND id <> $2 AND is_primary`,
		userID, companyID,
	); err != nil {
		return fmt.Errorf("clear primary company: %w", err)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE companies SET is_primary = TRUE WHERE id = $1 AND user_id = $2`,
		companyID, userID,
	)
	if err != nil {
		return fmt.Errorf("set primary company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextInvoiceNumber incrementa el contador y devuelve el número reservado (valor previo al incremento).
func (r *CompanyRepo) NextInvoiceNumber(companyID string) (string, error) {
	query := `
		UPDATE companies SET next_invoice_number = next_invoice_number + 1, updated_at = now()
		WHERE id = $1
		RETURNING invoice_prefix, next_invoice_number - 1`
	var prefix string
	var n int
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(&prefix, &n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return entity.FormatInvoiceNumber(prefix, n), nil
}

// Delete elimina una empresa por ID.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
