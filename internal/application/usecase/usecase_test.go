package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contactbook-api/internal/application/dto"
	"github.com/jhoicas/contactbook-api/internal/application/usecase"
	"github.com/jhoicas/contactbook-api/internal/domain"
	"github.com/jhoicas/contactbook-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *testutil.Store
	books     *usecase.ContactBookUseCase
	companies *usecase.CompanyUseCase
	contacts  *usecase.ContactUseCase
}

func newFixture() *fixture {
	s := testutil.NewStore()
	return &fixture{
		store:     s,
		books:     usecase.NewContactBookUseCase(s.Books, s.Companies, s.Contacts),
		companies: usecase.NewCompanyUseCase(s.Companies, s.Books, s.Contacts),
		contacts:  usecase.NewContactUseCase(s.Contacts, s.Books, s.Companies),
	}
}

func (f *fixture) book(t *testing.T, name string) int64 {
	t.Helper()
	b, err := f.books.Create(context.Background(), dto.ContactBookRequest{Name: name})
	require.NoError(t, err)
	return b.ID
}

func (f *fixture) company(t *testing.T, bookID int64, name string) int64 {
	t.Helper()
	c, err := f.companies.Create(context.Background(), dto.CompanyRequest{ContactBookID: bookID, Name: name})
	require.NoError(t, err)
	return c.ID
}

func ptr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestCompany_CreateYGetByID_RoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bookID := f.book(t, "Clientes")

	created, err := f.companies.Create(ctx, dto.CompanyRequest{ContactBookID: bookID, Name: "  Acme  "})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Acme", created.Name, "el nombre se normaliza")

	got, err := f.companies.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCompany_CreateAgendaInexistente_ValidationError(t *testing.T) {
	f := newFixture()

	_, err := f.companies.Create(context.Background(), dto.CompanyRequest{ContactBookID: 99, Name: "Acme"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "contact_book_id", ve.Field)
	assert.Zero(t, f.store.Companies.Len())
}

func TestCompany_CreateSinNombre_ValidationError(t *testing.T) {
	f := newFixture()
	bookID := f.book(t, "Clientes")

	_, err := f.companies.Create(context.Background(), dto.CompanyRequest{ContactBookID: bookID, Name: "   "})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestCompany_UpdateInexistente_ErrNotFound(t *testing.T) {
	f := newFixture()
	bookID := f.book(t, "Clientes")

	_, err := f.companies.Update(context.Background(), 42, dto.CompanyRequest{ContactBookID: bookID, Name: "Nada"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompany_UpdateNoCambiaAgenda(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b1 := f.book(t, "Uno")
	b2 := f.book(t, "Dos")
	id := f.company(t, b1, "Acme")

	_, err := f.companies.Update(ctx, id, dto.CompanyRequest{ContactBookID: b2, Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.companies.Update(ctx, id, dto.CompanyRequest{ContactBookID: b1, Name: "Acme S.A."})
	require.NoError(t, err)
	assert.Equal(t, "Acme S.A.", out.Name)
}

func TestCompany_ListVacio_NoEsError(t *testing.T) {
	f := newFixture()

	list, err := f.companies.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// Escenario: Company{id:1,"Acme"}, Contact{id:10,companyId:1}; delete(1) deja el contacto sin empresa.
func TestCompany_DeleteDesvinculaContactos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bookID := f.book(t, "Clientes")
	companyID := f.company(t, bookID, "Acme")

	contact, err := f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: bookID, CompanyID: ptr(companyID), Name: "Ana"})
	require.NoError(t, err)
	require.NotNil(t, contact.CompanyID)

	require.NoError(t, f.companies.Delete(ctx, companyID))

	gone, err := f.companies.GetByID(ctx, companyID)
	require.NoError(t, err)
	assert.Nil(t, gone, "la empresa ya no existe")

	detached, err := f.contacts.GetByID(ctx, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, detached, "el contacto no se borra")
	assert.Nil(t, detached.CompanyID, "company_id queda en null")
}

func TestCompany_DeleteInexistente_Idempotente(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.companies.Delete(context.Background(), 12345))
}

func TestCompany_Contacts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bookID := f.book(t, "Clientes")
	acme := f.company(t, bookID, "Acme")
	other := f.company(t, bookID, "Otra")

	_, err := f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: bookID, CompanyID: ptr(acme), Name: "Ana"})
	require.NoError(t, err)
	_, err = f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: bookID, CompanyID: ptr(other), Name: "Beto"})
	require.NoError(t, err)

	list, err := f.companies.Contacts(ctx, acme)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Name)

	_, err = f.companies.Contacts(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contactos
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: contacto con company_id inexistente → ValidationError y ninguna fila escrita.
func TestContact_CreateEmpresaInexistente_SinEscrituras(t *testing.T) {
	f := newFixture()
	bookID := f.book(t, "Clientes")
	writesBefore := f.store.Writes()

	_, err := f.contacts.Create(context.Background(), dto.ContactRequest{ContactBookID: bookID, CompanyID: ptr(77), Name: "Ana"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "company_id", ve.Field)
	assert.Equal(t, writesBefore, f.store.Writes(), "no debe escribirse nada")
	assert.Zero(t, f.store.Contacts.Len())
	assert.Zero(t, f.store.Companies.Len())
}

func TestContact_CreateEmpresaDeOtraAgenda_ValidationError(t *testing.T) {
	f := newFixture()
	b1 := f.book(t, "Uno")
	b2 := f.book(t, "Dos")
	companyID := f.company(t, b2, "Acme")

	_, err := f.contacts.Create(context.Background(), dto.ContactRequest{ContactBookID: b1, CompanyID: ptr(companyID), Name: "Ana"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.store.Contacts.Len())
}

func TestContact_CreateSinEmpresa(t *testing.T) {
	f := newFixture()
	bookID := f.book(t, "Clientes")

	out, err := f.contacts.Create(context.Background(), dto.ContactRequest{
		ContactBookID: bookID,
		Name:          "Ana",
		Email:         "ana@example.com",
		Phone:         " +57 300 000 0000 ",
	})

	require.NoError(t, err)
	assert.Nil(t, out.CompanyID)
	assert.Equal(t, "+57 300 000 0000", out.Phone)
}

func TestContact_EmailInvalido(t *testing.T) {
	f := newFixture()
	bookID := f.book(t, "Clientes")

	_, err := f.contacts.Create(context.Background(), dto.ContactRequest{ContactBookID: bookID, Name: "Ana", Email: "no-es-email"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
}

func TestContact_UpdateInexistente_ErrNotFound(t *testing.T) {
	f := newFixture()
	bookID := f.book(t, "Clientes")

	_, err := f.contacts.Update(context.Background(), 5, dto.ContactRequest{ContactBookID: bookID, Name: "Ana"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContact_UpdateDesvinculaConNull(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bookID := f.book(t, "Clientes")
	companyID := f.company(t, bookID, "Acme")
	c, err := f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: bookID, CompanyID: ptr(companyID), Name: "Ana"})
	require.NoError(t, err)

	out, err := f.contacts.Update(ctx, c.ID, dto.ContactRequest{ContactBookID: bookID, Name: "Ana"})

	require.NoError(t, err)
	assert.Equal(t, c.ID, out.ID)
	assert.Nil(t, out.CompanyID)
}

func TestContact_ErrorDeAlmacenamientoSePropaga(t *testing.T) {
	f := newFixture()
	f.store.FailWith(errors.New("connection refused"))

	_, err := f.contacts.List(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agendas
// ──────────────────────────────────────────────────────────────────────────────

func TestContactBook_Overview(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bookID := f.book(t, "Clientes")
	acme := f.company(t, bookID, "Acme")
	empty := f.company(t, bookID, "Vacía")

	_, err := f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: bookID, CompanyID: ptr(acme), Name: "Ana"})
	require.NoError(t, err)
	_, err = f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: bookID, Name: "Libre"})
	require.NoError(t, err)

	otherBook := f.book(t, "Otra")
	_, err = f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: otherBook, Name: "Ajeno"})
	require.NoError(t, err)

	ov, err := f.books.Overview(ctx, bookID)
	require.NoError(t, err)

	assert.Equal(t, "Clientes", ov.ContactBook.Name)
	require.Len(t, ov.Companies, 2)
	assert.Equal(t, acme, ov.Companies[0].ID)
	require.Len(t, ov.Companies[0].Contacts, 1)
	assert.Equal(t, "Ana", ov.Companies[0].Contacts[0].Name)
	assert.Equal(t, empty, ov.Companies[1].ID)
	assert.Empty(t, ov.Companies[1].Contacts)
	require.Len(t, ov.Unaffiliated, 1)
	assert.Equal(t, "Libre", ov.Unaffiliated[0].Name)
}

func TestContactBook_OverviewInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.books.Overview(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactBook_UpdateInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.books.Update(context.Background(), 3, dto.ContactBookRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactBook_DeleteEliminaEmpresasYContactos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bookID := f.book(t, "Clientes")
	other := f.book(t, "Proveedores")
	companyID := f.company(t, bookID, "Acme")
	_, err := f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: bookID, CompanyID: ptr(companyID), Name: "Ana"})
	require.NoError(t, err)
	_, err = f.contacts.Create(ctx, dto.ContactRequest{ContactBookID: other, Name: "Beto"})
	require.NoError(t, err)

	require.NoError(t, f.books.Delete(ctx, bookID))

	assert.Equal(t, 0, f.store.Companies.Len())
	assert.Equal(t, 1, f.store.Contacts.Len(), "solo sobrevive el contacto de la otra agenda")
	assert.NoError(t, f.books.Delete(ctx, bookID), "segundo borrado es no-op")
}
