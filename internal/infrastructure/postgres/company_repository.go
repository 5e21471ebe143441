package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/contactbook-api/internal/domain/entity"
	"github.com/jhoicas/contactbook-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

var companySpec = tableSpec[entity.Company]{
	entity:  "company",
	table:   "companies",
	columns: []string{"contact_book_id", "name"},
	scan: func(row pgx.Row) (*entity.Company, error) {
		var c entity.Company
		if err := row.Scan(&c.ID, &c.ContactBookID, &c.Name); err != nil {
			return nil, err
		}
		return &c, nil
	},
	values: func(c *entity.Company) []any { return []any{c.ContactBookID, c.Name} },
	id:     func(c *entity.Company) int64 { return c.ID },
	setID:  func(c *entity.Company, id int64) { c.ID = id },
}

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	*crudRepo[entity.Company]
	tx *TxRunner
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db DB) *CompanyRepo {
	return &CompanyRepo{
		crudRepo: newCrudRepo(db, companySpec),
		tx:       NewTxRunner(db),
	}
}

// ListByContactBook lista las empresas de una agenda.
func (r *CompanyRepo) ListByContactBook(ctx context.Context, contactBookID int64) ([]*entity.Company, error) {
	return r.listBy(ctx, "contact_book_id", contactBookID)
}

// Delete elimina la empresa y desvincula sus contactos (company_id = NULL) en una sola
// transacción. Un lector ve el estado anterior completo o el posterior completo.
//
// La fila de la empresa se bloquea primero para que un INSERT concurrente de un contacto
// que la referencia espere a que la transacción termine. Los contactos se desvinculan antes
// del DELETE porque la FK contacts.company_id no tiene acción en cascada.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	err := r.tx.Run(ctx, func(q Querier) error {
		var locked int64
		err := q.QueryRow(ctx, `SELECT id FROM companies WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			if isNoRows(err) {
				return nil // ya no existe: borrado idempotente
			}
			return fmt.Errorf("lock company: %w", err)
		}
		if _, err := q.Exec(ctx, `UPDATE contacts SET company_id = NULL WHERE company_id = $1`, id); err != nil {
			return fmt.Errorf("detach contacts: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete company row: %w", err)
		}
		return nil
	})
	if err != nil {
		return storageError("delete company", err)
	}
	return nil
}
