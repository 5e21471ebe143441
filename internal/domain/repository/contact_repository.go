package repository

import (
	"context"

	"github.com/jhoicas/contactbook-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact.
type ContactRepository interface {
	Repository[entity.Contact]
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Contact, error)
	ListByContactBook(ctx context.Context, contactBookID int64) ([]*entity.Contact, error)
}
