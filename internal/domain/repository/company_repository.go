package repository

import (
	"context"

	"github.com/jhoicas/contactbook-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Delete desvincula los contactos de la empresa
// en la misma transacción.
type CompanyRepository interface {
	Repository[entity.Company]
	ListByContactBook(ctx context.Context, contactBookID int64) ([]*entity.Company, error)
}
