// Package testutil dobles en memoria de los repositorios para tests de casos de uso y HTTP.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/contactbook-api/internal/domain"
	"github.com/jhoicas/contactbook-api/internal/domain/entity"
	"github.com/jhoicas/contactbook-api/internal/domain/repository"
)

var (
	_ repository.ContactBookRepository = (*ContactBookRepo)(nil)
	_ repository.CompanyRepository     = (*CompanyRepo)(nil)
	_ repository.ContactRepository     = (*ContactRepo)(nil)
)

// Store agrupa los tres repos en memoria con un único lock, de modo que el borrado de
// empresa desvincula contactos de forma atómica como lo hace PostgreSQL.
type Store struct {
	mu     sync.Mutex
	writes int
	err    error

	Books     *ContactBookRepo
	Companies *CompanyRepo
	Contacts  *ContactRepo
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	s := &Store{}
	s.Books = &ContactBookRepo{table: newTable(s,
		func(b *entity.ContactBook) int64 { return b.ID },
		func(b *entity.ContactBook, id int64) { b.ID = id })}
	s.Companies = &CompanyRepo{table: newTable(s,
		func(c *entity.Company) int64 { return c.ID },
		func(c *entity.Company, id int64) { c.ID = id })}
	s.Contacts = &ContactRepo{table: newTable(s,
		func(c *entity.Contact) int64 { return c.ID },
		func(c *entity.Contact, id int64) { c.ID = id })}
	return s
}

// FailWith hace que toda operación posterior devuelva err envuelto en domain.StorageError.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Writes cuenta las escrituras (Save, Edit, Delete) aplicadas.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) fail(op string) error {
	if s.err != nil {
		return &domain.StorageError{Op: op, Err: s.err}
	}
	return nil
}

type table[T any] struct {
	s     *Store
	rows  map[int64]T
	next  int64
	id    func(*T) int64
	setID func(*T, int64)
}

func newTable[T any](s *Store, id func(*T) int64, setID func(*T, int64)) *table[T] {
	return &table[T]{s: s, rows: make(map[int64]T), id: id, setID: setID}
}

func (t *table[T]) Save(_ context.Context, e *T) (*T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.s.fail("insert"); err != nil {
		return nil, err
	}
	t.next++
	t.setID(e, t.next)
	t.rows[t.next] = *e
	t.s.writes++
	return e, nil
}

func (t *table[T]) Edit(_ context.Context, e *T) (*T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.s.fail("update"); err != nil {
		return nil, err
	}
	id := t.id(e)
	if _, ok := t.rows[id]; !ok {
		return nil, fmt.Errorf("update %d: %w", id, domain.ErrNotFound)
	}
	t.rows[id] = *e
	t.s.writes++
	return e, nil
}

func (t *table[T]) Delete(_ context.Context, id int64) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.deleteLocked(id)
}

func (t *table[T]) deleteLocked(id int64) error {
	if err := t.s.fail("delete"); err != nil {
		return err
	}
	if _, ok := t.rows[id]; ok {
		delete(t.rows, id)
		t.s.writes++
	}
	return nil
}

func (t *table[T]) Get(_ context.Context, id int64) (*T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.s.fail("get"); err != nil {
		return nil, err
	}
	row, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *table[T]) GetAll(_ context.Context) ([]*T, error) {
	return t.filter(func(*T) bool { return true })
}

func (t *table[T]) filter(keep func(*T) bool) ([]*T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.s.fail("list"); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		row := t.rows[id]
		if keep(&row) {
			out = append(out, &row)
		}
	}
	return out, nil
}

// Len número de filas en la tabla.
func (t *table[T]) Len() int {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return len(t.rows)
}

// ContactBookRepo agendas en memoria.
type ContactBookRepo struct{ *table[entity.ContactBook] }

// Delete borra la agenda con sus empresas y contactos (ON DELETE CASCADE en PostgreSQL).
func (r *ContactBookRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.deleteLocked(id); err != nil {
		return err
	}
	for cid, c := range r.s.Companies.rows {
		if c.ContactBookID == id {
			delete(r.s.Companies.rows, cid)
		}
	}
	for cid, c := range r.s.Contacts.rows {
		if c.ContactBookID == id {
			delete(r.s.Contacts.rows, cid)
		}
	}
	return nil
}

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ *table[entity.Company] }

// ListByContactBook empresas de una agenda.
func (r *CompanyRepo) ListByContactBook(_ context.Context, bookID int64) ([]*entity.Company, error) {
	return r.filter(func(c *entity.Company) bool { return c.ContactBookID == bookID })
}

// Delete borra la empresa y pone company_id = nil en sus contactos bajo el mismo lock.
func (r *CompanyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.deleteLocked(id); err != nil {
		return err
	}
	contacts := r.s.Contacts.rows
	for cid, c := range contacts {
		if c.CompanyID != nil && *c.CompanyID == id {
			c.CompanyID = nil
			contacts[cid] = c
		}
	}
	return nil
}

// ContactRepo contactos en memoria.
type ContactRepo struct{ *table[entity.Contact] }

// ListByCompany contactos vinculados a una empresa.
func (r *ContactRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Contact, error) {
	return r.filter(func(c *entity.Contact) bool { return c.CompanyID != nil && *c.CompanyID == companyID })
}

// ListByContactBook contactos de una agenda.
func (r *ContactRepo) ListByContactBook(_ context.Context, bookID int64) ([]*entity.Contact, error) {
	return r.filter(func(c *entity.Contact) bool { return c.ContactBookID == bookID })
}
