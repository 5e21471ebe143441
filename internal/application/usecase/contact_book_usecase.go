package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/contactbook-api/internal/application/dto"
	"github.com/jhoicas/contactbook-api/internal/domain"
	"github.com/jhoicas/contactbook-api/internal/domain/entity"
	"github.com/jhoicas/contactbook-api/internal/domain/repository"
)

// ContactBookUseCase casos de uso de agendas y la vista combinada empresa + contactos.
type ContactBookUseCase struct {
	repo      repository.ContactBookRepository
	companies repository.CompanyRepository
	contacts  repository.ContactRepository
}

// NewContactBookUseCase construye el caso de uso.
func NewContactBookUseCase(
	repo repository.ContactBookRepository,
	companies repository.CompanyRepository,
	contacts repository.ContactRepository,
) *ContactBookUseCase {
	return &ContactBookUseCase{repo: repo, companies: companies, contacts: contacts}
}

// Create crea una agenda.
func (uc *ContactBookUseCase) Create(ctx context.Context, in dto.ContactBookRequest) (*dto.ContactBookResponse, error) {
	in.Name = domain.NormalizeText(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	book, err := uc.repo.Save(ctx, &entity.ContactBook{Name: in.Name})
	if err != nil {
		return nil, err
	}
	return toContactBookResponse(book), nil
}

// Update renombra la agenda. Devuelve domain.ErrNotFound si no existe.
func (uc *ContactBookUseCase) Update(ctx context.Context, id int64, in dto.ContactBookRequest) (*dto.ContactBookResponse, error) {
	in.Name = domain.NormalizeText(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	book, err := uc.repo.Edit(ctx, &entity.ContactBook{ID: id, Name: in.Name})
	if err != nil {
		return nil, err
	}
	return toContactBookResponse(book), nil
}

// Delete elimina la agenda junto con sus empresas y contactos. Idempotente.
func (uc *ContactBookUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// GetByID obtiene una agenda; (nil, nil) si no existe.
func (uc *ContactBookUseCase) GetByID(ctx context.Context, id int64) (*dto.ContactBookResponse, error) {
	book, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toContactBookResponse(book), nil
}

// List lista todas las agendas.
func (uc *ContactBookUseCase) List(ctx context.Context) ([]dto.ContactBookResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactBookResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toContactBookResponse(b))
	}
	return items, nil
}

// Overview arma la vista de una agenda: cada empresa con sus contactos y, aparte, los
// contactos sin empresa. Empresas y contactos se leen en paralelo.
func (uc *ContactBookUseCase) Overview(ctx context.Context, id int64) (*dto.ContactBookOverview, error) {
	book, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("contact book %d: %w", id, domain.ErrNotFound)
	}

	var (
		companies []*entity.Company
		contacts  []*entity.Contact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		companies, err = uc.companies.ListByContactBook(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = uc.contacts.ListByContactBook(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCompany := make(map[int64][]*entity.Contact, len(companies))
	var unaffiliated []*entity.Contact
	for _, c := range contacts {
		if c.CompanyID == nil {
			unaffiliated = append(unaffiliated, c)
			continue
		}
		byCompany[*c.CompanyID] = append(byCompany[*c.CompanyID], c)
	}

	out := &dto.ContactBookOverview{
		ContactBook:  *toContactBookResponse(book),
		Companies:    make([]dto.CompanyWithContacts, 0, len(companies)),
		Unaffiliated: toContactResponses(unaffiliated),
	}
	for _, company := range companies {
		out.Companies = append(out.Companies, dto.CompanyWithContacts{
			CompanyResponse: *toCompanyResponse(company),
			Contacts:        toContactResponses(byCompany[company.ID]),
		})
	}
	return out, nil
}
