package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/contactbook-api/internal/domain"
)

// tableSpec describe cómo mapear una entidad T a su tabla. columns no incluye id.
type tableSpec[T any] struct {
	entity  string // nombre en mensajes de error: "company", "contact"...
	table   string
	columns []string
	scan    func(row pgx.Row) (*T, error)
	values  func(e *T) []any // en el mismo orden que columns
	id      func(e *T) int64
	setID   func(e *T, id int64)
}

// crudRepo implementa el contrato repository.Repository[T] para cualquier tableSpec.
type crudRepo[T any] struct {
	q    Querier
	spec tableSpec[T]
}

func newCrudRepo[T any](q Querier, spec tableSpec[T]) *crudRepo[T] {
	return &crudRepo[T]{q: q, spec: spec}
}

func (r *crudRepo[T]) selectSQL() string {
	return "SELECT id, " + strings.Join(r.spec.columns, ", ") + " FROM " + r.spec.table
}

// Save inserta la entidad; el ID recibido se ignora y se reemplaza por el generado.
func (r *crudRepo[T]) Save(ctx context.Context, e *T) (*T, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.spec.table, strings.Join(r.spec.columns, ", "), placeholders(1, len(r.spec.columns)))
	var id int64
	if err := r.q.QueryRow(ctx, query, r.spec.values(e)...).Scan(&id); err != nil {
		return nil, storageError("insert "+r.spec.entity, err)
	}
	r.spec.setID(e, id)
	return e, nil
}

// Edit actualiza todas las columnas de la fila con el ID de la entidad.
// Si ninguna fila coincide devuelve domain.ErrNotFound.
func (r *crudRepo[T]) Edit(ctx context.Context, e *T) (*T, error) {
	sets := make([]string, len(r.spec.columns))
	for i, col := range r.spec.columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", r.spec.table, strings.Join(sets, ", "))
	id := r.spec.id(e)
	args := append([]any{id}, r.spec.values(e)...)
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return nil, storageError("update "+r.spec.entity, err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, fmt.Errorf("update %s %d: %w", r.spec.entity, id, domain.ErrNotFound)
	}
	return e, nil
}

// Delete elimina la fila por ID. Un ID inexistente no es error.
func (r *crudRepo[T]) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, "DELETE FROM "+r.spec.table+" WHERE id = $1", id)
	if err != nil {
		return storageError("delete "+r.spec.entity, err)
	}
	return nil
}

// Get obtiene la fila por ID; (nil, nil) si no existe.
func (r *crudRepo[T]) Get(ctx context.Context, id int64) (*T, error) {
	e, err := r.spec.scan(r.q.QueryRow(ctx, r.selectSQL()+" WHERE id = $1", id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageError("get "+r.spec.entity, err)
	}
	return e, nil
}

// GetAll devuelve todas las filas ordenadas por ID.
func (r *crudRepo[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.list(ctx, "list "+r.spec.entity, r.selectSQL()+" ORDER BY id")
}

// listBy devuelve las filas cuyo column = value, ordenadas por ID.
func (r *crudRepo[T]) listBy(ctx context.Context, column string, value any) ([]*T, error) {
	query := r.selectSQL() + " WHERE " + column + " = $1 ORDER BY id"
	return r.list(ctx, "list "+r.spec.entity+" by "+column, query, value)
}

func (r *crudRepo[T]) list(ctx context.Context, op, query string, args ...any) ([]*T, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	list := make([]*T, 0)
	for rows.Next() {
		e, err := r.spec.scan(rows)
		if err != nil {
			return nil, storageError("scan "+r.spec.entity, err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return list, nil
}
