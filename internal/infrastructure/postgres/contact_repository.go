package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/contactbook-api/internal/domain/entity"
	"github.com/jhoicas/contactbook-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

var contactSpec = tableSpec[entity.Contact]{
	entity:  "contact",
	table:   "contacts",
	columns: []string{"contact_book_id", "company_id", "name", "phone", "email", "address"},
	scan: func(row pgx.Row) (*entity.Contact, error) {
		var c entity.Contact
		if err := row.Scan(&c.ID, &c.ContactBookID, &c.CompanyID, &c.Name, &c.Phone, &c.Email, &c.Address); err != nil {
			return nil, err
		}
		return &c, nil
	},
	values: func(c *entity.Contact) []any {
		return []any{c.ContactBookID, c.CompanyID, c.Name, c.Phone, c.Email, c.Address}
	},
	id:    func(c *entity.Contact) int64 { return c.ID },
	setID: func(c *entity.Contact, id int64) { c.ID = id },
}

// ContactRepo implementación de ContactRepository (usable con pool o tx).
type ContactRepo struct {
	*crudRepo[entity.Contact]
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{crudRepo: newCrudRepo(q, contactSpec)}
}

// ListByCompany lista los contactos vinculados a una empresa.
func (r *ContactRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Contact, error) {
	return r.listBy(ctx, "company_id", companyID)
}

// ListByContactBook lista los contactos de una agenda.
func (r *ContactRepo) ListByContactBook(ctx context.Context, contactBookID int64) ([]*entity.Contact, error) {
	return r.listBy(ctx, "contact_book_id", contactBookID)
}
