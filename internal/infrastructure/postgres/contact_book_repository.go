package postgres

import (
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/contactbook-api/internal/domain/entity"
	"github.com/jhoicas/contactbook-api/internal/domain/repository"
)

var _ repository.ContactBookRepository = (*ContactBookRepo)(nil)

var contactBookSpec = tableSpec[entity.ContactBook]{
	entity:  "contact book",
	table:   "contact_books",
	columns: []string{"name"},
	scan: func(row pgx.Row) (*entity.ContactBook, error) {
		var b entity.ContactBook
		if err := row.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		return &b, nil
	},
	values: func(b *entity.ContactBook) []any { return []any{b.Name} },
	id:     func(b *entity.ContactBook) int64 { return b.ID },
	setID:  func(b *entity.ContactBook, id int64) { b.ID = id },
}

// ContactBookRepo adaptador de persistencia para agendas. Borrar una agenda elimina sus
// empresas y contactos (ON DELETE CASCADE en el esquema).
type ContactBookRepo struct {
	*crudRepo[entity.ContactBook]
}

// NewContactBookRepository construye el adaptador.
func NewContactBookRepository(q Querier) *ContactBookRepo {
	return &ContactBookRepo{crudRepo: newCrudRepo(q, contactBookSpec)}
}
