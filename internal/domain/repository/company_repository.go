package repository

import "github.com/jhoicas/Facturador-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	// GetPrimary devuelve la empresa principal del usuario; (nil, nil) si no tiene.
	GetPrimary(userID string) (*entity.Company, error)
	ListByUser(userID string) ([]*entity.Company, error)
	Update(company *entity.Company) error
	// SetPrimary marca companyID como principal y desmarca las demás del usuario.
	SetPrimary(userID, companyID string) error
	// NextInvoiceNumber reserva el siguiente número ("PREFIX-N") e incrementa el contador.
	NextInvoiceNumber(companyID string) (string, error)
	Delete(id string) error
}
