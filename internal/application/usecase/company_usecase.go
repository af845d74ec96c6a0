package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// CompanyTxRunner ejecuta fn con el repo de empresas dentro de una transacción.
type CompanyTxRunner interface {
	RunCompany(ctx context.Context, fn func(companyRepo repository.CompanyRepository) error) error
}

// CompanyUseCase aplica reglas de negocio para empresas emisoras (casos de uso).
// Cada usuario puede tener varias; exactamente una es la principal si tiene alguna.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	txRunner CompanyTxRunner
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, txRunner CompanyTxRunner) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, txRunner: txRunner}
}

// Create crea una empresa con los valores por defecto de facturación.
// La primera empresa del usuario queda como principal.
func (uc *CompanyUseCase) Create(userID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.repo.GetPrimary(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:                uuid.New().String(),
		UserID:            userID,
		CompanyName:       strings.TrimSpace(in.CompanyName),
		Email:             in.Email,
		Phone:             in.Phone,
		Address:           in.Address,
		TaxID:             in.TaxID,
		Logo:              in.Logo,
		PrimaryColor:      orDefault(in.PrimaryColor, entity.DefaultPrimaryColor),
		InvoicePrefix:     orDefault(strings.TrimSpace(in.InvoicePrefix), entity.DefaultInvoicePrefix),
		NextInvoiceNumber: in.NextInvoiceNumber,
		IsPrimary:         current == nil,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if company.NextInvoiceNumber <= 0 {
		company.NextInvoiceNumber = entity.DefaultNextInvoiceNumber
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista las empresas del usuario (la principal primero).
func (uc *CompanyUseCase) List(userID string) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return items, nil
}

// GetByID obtiene una empresa del usuario; domain.ErrNotFound si no existe o es ajena.
func (uc *CompanyUseCase) GetByID(userID, id string) (*dto.CompanyResponse, error) {
	c, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(c), nil
}

// Update aplica los campos presentes. is_primary=true convierte a esta en la principal.
func (uc *CompanyUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	applyCompanyUpdate(c, in)
	if strings.TrimSpace(c.CompanyName) == "" {
		return nil, domain.ErrInvalidInput
	}
	c.UpdatedAt = time.Now()

	makePrimary := in.IsPrimary != nil && *in.IsPrimary && !c.IsPrimary
	err = uc.txRunner.RunCompany(ctx, func(repo repository.CompanyRepository) error {
		if err := repo.Update(c); err != nil {
			return err
		}
		if makePrimary {
			return repo.SetPrimary(userID, c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if makePrimary {
		c.IsPrimary = true
	}
	return entityToCompanyResponse(c), nil
}

// Delete elimina la empresa. Si era la principal, la más antigua restante pasa a serlo.
func (uc *CompanyUseCase) Delete(ctx context.Context, userID, id string) error {
	c, err := uc.owned(userID, id)
	if err != nil {
		return err
	}
	return uc.txRunner.RunCompany(ctx, func(repo repository.CompanyRepository) error {
		if err := repo.Delete(c.ID); err != nil {
			return err
		}
		if !c.IsPrimary {
			return nil
		}
		rest, err := repo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			return nil
		}
		return repo.SetPrimary(userID, rest[0].ID)
	})
}

// GetSettings devuelve la empresa principal; domain.ErrNotFound si el usuario no tiene.
func (uc *CompanyUseCase) GetSettings(userID string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetPrimary(userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(c), nil
}

// SaveSettings crea la empresa principal o actualiza la existente con los datos del body.
// Devuelve created=true si se creó.
func (uc *CompanyUseCase) SaveSettings(ctx context.Context, userID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, bool, error) {
	c, err := uc.repo.GetPrimary(userID)
	if err != nil {
		return nil, false, err
	}
	if c == nil {
		resp, err := uc.Create(userID, in)
		return resp, err == nil, err
	}
	upd := dto.UpdateCompanyRequest{
		CompanyName: &in.CompanyName,
		Email:       &in.Email,
		Phone:       &in.Phone,
		Address:     &in.Address,
		TaxID:       &in.TaxID,
		Logo:        &in.Logo,
	}
	if in.PrimaryColor != "" {
		upd.PrimaryColor = &in.PrimaryColor
	}
	if in.InvoicePrefix != "" {
		upd.InvoicePrefix = &in.InvoicePrefix
	}
	if in.NextInvoiceNumber > 0 {
		upd.NextInvoiceNumber = &in.NextInvoiceNumber
	}
	resp, err := uc.Update(ctx, userID, c.ID, upd)
	return resp, false, err
}

func (uc *CompanyUseCase) owned(userID, id string) (*entity.Company, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func applyCompanyUpdate(c *entity.Company, in dto.UpdateCompanyRequest) {
	if in.CompanyName != nil {
		c.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.TaxID != nil {
		c.TaxID = *in.TaxID
	}
	if in.Logo != nil {
		c.Logo = *in.Logo
	}
	if in.PrimaryColor != nil && *in.PrimaryColor != "" {
		c.PrimaryColor = *in.PrimaryColor
	}
	if in.InvoicePrefix != nil && strings.TrimSpace(*in.InvoicePrefix) != "" {
		c.InvoicePrefix = strings.TrimSpace(*in.InvoicePrefix)
	}
	if in.NextInvoiceNumber != nil && *in.NextInvoiceNumber > 0 {
		c.NextInvoiceNumber = *in.NextInvoiceNumber
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                c.ID,
		CompanyName:       c.CompanyName,
		Email:             c.Email,
		Phone:             c.Phone,
		Address:           c.Address,
		TaxID:             c.TaxID,
		Logo:              c.Logo,
		PrimaryColor:      c.PrimaryColor,
		InvoicePrefix:     c.InvoicePrefix,
		NextInvoiceNumber: c.NextInvoiceNumber,
		IsPrimary:         c.IsPrimary,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
