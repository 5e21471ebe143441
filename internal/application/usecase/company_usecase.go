package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/contactbook-api/internal/application/dto"
	"github.com/jhoicas/contactbook-api/internal/domain"
	"github.com/jhoicas/contactbook-api/internal/domain/entity"
	"github.com/jhoicas/contactbook-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	books    repository.ContactBookRepository
	contacts repository.ContactRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	books repository.ContactBookRepository,
	contacts repository.ContactRepository,
) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, books: books, contacts: contacts}
}

// Create crea una empresa en una agenda existente.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = domain.NormalizeText(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := uc.requireContactBook(ctx, in.ContactBookID); err != nil {
		return nil, err
	}
	company, err := uc.repo.Save(ctx, &entity.Company{
		ContactBookID: in.ContactBookID,
		Name:          in.Name,
	})
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Update reemplaza los campos de la empresa. La agenda de una empresa no cambia.
// Devuelve domain.ErrNotFound si la empresa no existe.
func (uc *CompanyUseCase) Update(ctx context.Context, id int64, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = domain.NormalizeText(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	current, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("company %d: %w", id, domain.ErrNotFound)
	}
	if current.ContactBookID != in.ContactBookID {
		return nil, domain.NewValidationError("contact_book_id", "no se puede cambiar la agenda de una empresa")
	}
	current.Name = in.Name
	company, err := uc.repo.Edit(ctx, current)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Delete elimina la empresa y desvincula sus contactos. Idempotente.
func (uc *CompanyUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// GetByID obtiene una empresa por ID; (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista todas las empresas.
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return items, nil
}

// Contacts lista los contactos vinculados a la empresa.
func (uc *CompanyUseCase) Contacts(ctx context.Context, id int64) ([]dto.ContactResponse, error) {
	company, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("company %d: %w", id, domain.ErrNotFound)
	}
	list, err := uc.contacts.ListByCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	return toContactResponses(list), nil
}

func (uc *CompanyUseCase) requireContactBook(ctx context.Context, id int64) error {
	book, err := uc.books.Get(ctx, id)
	if err != nil {
		return err
	}
	if book == nil {
		return domain.NewValidationError("contact_book_id", fmt.Sprintf("la agenda %d no existe", id))
	}
	return nil
}
