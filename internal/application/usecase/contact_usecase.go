package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/contactbook-api/internal/application/dto"
	"github.com/jhoicas/contactbook-api/internal/domain"
	"github.com/jhoicas/contactbook-api/internal/domain/entity"
	"github.com/jhoicas/contactbook-api/internal/domain/repository"
)

// ContactUseCase casos de uso CRUD para contactos.
type ContactUseCase struct {
	repo      repository.ContactRepository
	books     repository.ContactBookRepository
	companies repository.CompanyRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(
	repo repository.ContactRepository,
	books repository.ContactBookRepository,
	companies repository.CompanyRepository,
) *ContactUseCase {
	return &ContactUseCase{repo: repo, books: books, companies: companies}
}

// Create crea un contacto. Si company_id viene informado, la empresa debe existir y
// pertenecer a la misma agenda; si no, devuelve *domain.ValidationError sin escribir nada.
func (uc *ContactUseCase) Create(ctx context.Context, in dto.ContactRequest) (*dto.ContactResponse, error) {
	contact, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	saved, err := uc.repo.Save(ctx, contact)
	if err != nil {
		return nil, err
	}
	return toContactResponse(saved), nil
}

// Update reemplaza todos los campos del contacto (incluido company_id: null lo desvincula).
// Devuelve domain.ErrNotFound si el contacto no existe.
func (uc *ContactUseCase) Update(ctx context.Context, id int64, in dto.ContactRequest) (*dto.ContactResponse, error) {
	contact, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	contact.ID = id
	saved, err := uc.repo.Edit(ctx, contact)
	if err != nil {
		return nil, err
	}
	return toContactResponse(saved), nil
}

// Delete elimina un contacto por ID. Idempotente.
func (uc *ContactUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// GetByID obtiene un contacto por ID; (nil, nil) si no existe.
func (uc *ContactUseCase) GetByID(ctx context.Context, id int64) (*dto.ContactResponse, error) {
	contact, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// List lista todos los contactos.
func (uc *ContactUseCase) List(ctx context.Context) ([]dto.ContactResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toContactResponses(list), nil
}

// build normaliza y valida la entrada y comprueba las referencias a agenda y empresa.
func (uc *ContactUseCase) build(ctx context.Context, in dto.ContactRequest) (*entity.Contact, error) {
	in.Name = domain.NormalizeText(in.Name)
	in.Phone = domain.NormalizeText(in.Phone)
	in.Email = domain.NormalizeText(in.Email)
	in.Address = domain.NormalizeText(in.Address)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	book, err := uc.books.Get(ctx, in.ContactBookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.NewValidationError("contact_book_id", fmt.Sprintf("la agenda %d no existe", in.ContactBookID))
	}

	if in.CompanyID != nil {
		company, err := uc.companies.Get(ctx, *in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.NewValidationError("company_id", fmt.Sprintf("la empresa %d no existe", *in.CompanyID))
		}
		if company.ContactBookID != in.ContactBookID {
			return nil, domain.NewValidationError("company_id", "la empresa pertenece a otra agenda")
		}
	}

	return &entity.Contact{
		ContactBookID: in.ContactBookID,
		CompanyID:     in.CompanyID,
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
	}, nil
}
