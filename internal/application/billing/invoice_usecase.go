package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoicing"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

// InvoiceUseCase CRUD de facturas con líneas y totales calculados.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	companyRepo repository.CompanyRepository
	txRunner    InvoiceTxRunner
	cache       SummaryInvalidator
	formatter   *currency.Formatter
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. cache puede ser nil.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	companyRepo repository.CompanyRepository,
	txRunner InvoiceTxRunner,
	cache SummaryInvalidator,
	formatter *currency.Formatter,
) *InvoiceUseCase {
	if formatter == nil {
		formatter = currency.NewFormatter("")
	}
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
		txRunner:    txRunner,
		cache:       cache,
		formatter:   formatter,
		now:         time.Now,
	}
}

// List devuelve las facturas del usuario con sus totales. status vacío = todas.
func (uc *InvoiceUseCase) List(userID, status string) ([]*dto.InvoiceResponse, error) {
	if status != "" && !entity.IsValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.invoiceRepo.ListByUser(userID, repository.InvoiceFilter{Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, false))
	}
	return out, nil
}

// GetByID devuelve la factura con totales por línea. Ajena o inexistente: domain.ErrNotFound.
func (uc *InvoiceUseCase) GetByID(userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.owned(uc.invoiceRepo, userID, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, true), nil
}

// Create crea cabecera y líneas en una transacción.
// Sin invoice_number se reserva el siguiente número de la empresa emisora.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	issue, err := parseDate("issue_date", in.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := parseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}
	items, err := toLineItems(in.Items)
	if err != nil {
		return nil, err
	}
	if err := uc.checkClient(userID, in.ClientID); err != nil {
		return nil, err
	}
	company, err := uc.resolveCompany(userID, in.CompanyID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !entity.IsValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	template := in.Template
	if template == "" {
		template = entity.TemplateModern
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		UserID:        userID,
		ClientID:      in.ClientID,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		IssueDate:     issue,
		DueDate:       due,
		Currency:      currency.NormalizeCode(in.Currency),
		Status:        status,
		Notes:         in.Notes,
		Template:      template,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if company != nil {
		inv.CompanyID = company.ID
	}

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository, companyRepo repository.CompanyRepository) error {
		if inv.InvoiceNumber == "" {
			if company == nil {
				return fmt.Errorf("%w: invoice_number es obligatorio sin empresa configurada", domain.ErrInvalidInput)
			}
			number, err := companyRepo.NextInvoiceNumber(company.ID)
			if err != nil {
				return fmt.Errorf("reservar número de factura: %w", err)
			}
			inv.InvoiceNumber = number
		}
		existing, err := invoiceRepo.GetByNumber(userID, inv.InvoiceNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("invoice number %q: %w", inv.InvoiceNumber, domain.ErrDuplicate)
		}
		return invoiceRepo.Create(inv)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(userID)
	return toInvoiceResponse(inv, true), nil
}

// Update aplica los campos presentes. Si Items viene en el body, las líneas se reemplazan completas.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	var out *entity.Invoice
	err := uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.CompanyRepository) error {
		inv, err := uc.owned(invoiceRepo, userID, id)
		if err != nil {
			return err
		}
		if err := uc.applyUpdate(invoiceRepo, inv, in); err != nil {
			return err
		}
		inv.UpdatedAt = uc.now()
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		if in.Items != nil {
			items, err := toLineItems(*in.Items)
			if err != nil {
				return err
			}
			if err := invoiceRepo.ReplaceItems(inv.ID, items); err != nil {
				return err
			}
			inv.Items = items
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(userID)
	return toInvoiceResponse(out, true), nil
}

func (uc *InvoiceUseCase) applyUpdate(invoiceRepo repository.InvoiceRepository, inv *entity.Invoice, in dto.UpdateInvoiceRequest) error {
	if in.ClientID != nil {
		if err := uc.checkClient(inv.UserID, *in.ClientID); err != nil {
			return err
		}
		inv.ClientID = *in.ClientID
	}
	if in.CompanyID != nil {
		company, err := uc.resolveCompany(inv.UserID, *in.CompanyID)
		if err != nil {
			return err
		}
		inv.CompanyID = ""
		if company != nil {
			inv.CompanyID = company.ID
		}
	}
	if in.InvoiceNumber != nil {
		number := strings.TrimSpace(*in.InvoiceNumber)
		if number == "" {
			return fmt.Errorf("%w: invoice_number vacío", domain.ErrInvalidInput)
		}
		if number != inv.InvoiceNumber {
			existing, err := invoiceRepo.GetByNumber(inv.UserID, number)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != inv.ID {
				return fmt.Errorf("invoice number %q: %w", number, domain.ErrDuplicate)
			}
			inv.InvoiceNumber = number
		}
	}
	if in.IssueDate != nil {
		d, err := parseDate("issue_date", *in.IssueDate)
		if err != nil {
			return err
		}
		inv.IssueDate = d
	}
	if in.DueDate != nil {
		d, err := parseDate("due_date", *in.DueDate)
		if err != nil {
			return err
		}
		inv.DueDate = d
	}
	if in.Currency != nil {
		inv.Currency = currency.NormalizeCode(*in.Currency)
	}
	if in.Status != nil {
		if !entity.IsValidInvoiceStatus(*in.Status) {
			return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *in.Status)
		}
		inv.Status = *in.Status
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.Template != nil {
		inv.Template = *in.Template
	}
	return nil
}

// UpdateStatus cambia solo el estado de la factura.
func (uc *InvoiceUseCase) UpdateStatus(userID, id, status string) (*dto.InvoiceResponse, error) {
	if !entity.IsValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	inv, err := uc.owned(uc.invoiceRepo, userID, id)
	if err != nil {
		return nil, err
	}
	inv.Status = status
	inv.UpdatedAt = uc.now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	uc.invalidate(userID)
	return toInvoiceResponse(inv, true), nil
}

// Delete elimina líneas y factura en una transacción.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	err := uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.CompanyRepository) error {
		if _, err := uc.owned(invoiceRepo, userID, id); err != nil {
			return err
		}
		return invoiceRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.invalidate(userID)
	return nil
}

// Preview calcula totales de líneas sin persistir nada (vista previa del editor).
func (uc *InvoiceUseCase) Preview(in dto.PreviewInvoiceRequest) (*dto.PreviewInvoiceResponse, error) {
	items, err := toLineItems(in.Items)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.LineTotalsResponse, 0, len(items))
	for _, it := range items {
		lines = append(lines, toLineTotalsResponse(invoicing.LineItemTotal(it)))
	}
	totals := invoicing.Aggregate(items)
	code := currency.NormalizeCode(in.Currency)
	return &dto.PreviewInvoiceResponse{
		Currency:  code,
		Lines:     lines,
		Totals:    toTotalsResponse(totals),
		Formatted: uc.formatter.Format(totals.Total, code),
	}, nil
}

func (uc *InvoiceUseCase) owned(repo repository.InvoiceRepository, userID, id string) (*entity.Invoice, error) {
	inv, err := repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// checkClient valida que el cliente referenciado exista y sea del usuario. Vacío = sin cliente.
func (uc *InvoiceUseCase) checkClient(userID, clientID string) error {
	if clientID == "" {
		return nil
	}
	c, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return err
	}
	if c == nil || c.UserID != userID {
		return fmt.Errorf("%w: client_id no corresponde a un cliente", domain.ErrInvalidInput)
	}
	return nil
}

// resolveCompany devuelve la empresa indicada o, si companyID es vacío, la principal (puede ser nil).
func (uc *InvoiceUseCase) resolveCompany(userID, companyID string) (*entity.Company, error) {
	if companyID == "" {
		return uc.companyRepo.GetPrimary(userID)
	}
	c, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != userID {
		return nil, fmt.Errorf("%w: company_id no corresponde a una empresa", domain.ErrInvalidInput)
	}
	return c, nil
}

func (uc *InvoiceUseCase) invalidate(userID string) {
	if uc.cache != nil {
		uc.cache.Invalidate(userID)
	}
}
