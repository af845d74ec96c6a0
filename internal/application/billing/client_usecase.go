package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes del usuario autenticado.
type ClientUseCase struct {
	repo  repository.ClientRepository
	cache SummaryInvalidator
}

// NewClientUseCase construye el caso de uso. cache puede ser nil.
func NewClientUseCase(repo repository.ClientRepository, cache SummaryInvalidator) *ClientUseCase {
	return &ClientUseCase{repo: repo, cache: cache}
}

// Create crea un nuevo cliente. Nombre y email son obligatorios.
func (uc *ClientUseCase) Create(userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Address:   in.Address,
		Phone:     in.Phone,
		TaxID:     in.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista los clientes del usuario.
func (uc *ClientUseCase) List(userID string) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// GetByID devuelve el cliente si pertenece al usuario; si no, domain.ErrNotFound.
func (uc *ClientUseCase) GetByID(userID, id string) (*dto.ClientResponse, error) {
	c, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Update aplica solo los campos presentes en el body.
func (uc *ClientUseCase) Update(userID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.TaxID != nil {
		c.TaxID = *in.TaxID
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	uc.invalidate(userID)
	return toClientResponse(c), nil
}

// Delete elimina el cliente. Sus facturas se conservan sin cliente.
func (uc *ClientUseCase) Delete(userID, id string) error {
	if _, err := uc.owned(userID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.invalidate(userID)
	return nil
}

func (uc *ClientUseCase) owned(userID, id string) (*entity.Client, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// invalidate el nombre del cliente aparece en las facturas recientes del dashboard.
func (uc *ClientUseCase) invalidate(userID string) {
	if uc.cache != nil {
		uc.cache.Invalidate(userID)
	}
}
