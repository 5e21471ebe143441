package usecase

import (
	"github.com/jhoicas/contactbook-api/internal/application/dto"
	"github.com/jhoicas/contactbook-api/internal/domain/entity"
)

func toContactBookResponse(b *entity.ContactBook) *dto.ContactBookResponse {
	if b == nil {
		return nil
	}
	return &dto.ContactBookResponse{ID: b.ID, Name: b.Name}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{ID: c.ID, ContactBookID: c.ContactBookID, Name: c.Name}
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	if c == nil {
		return nil
	}
	return &dto.ContactResponse{
		ID:            c.ID,
		ContactBookID: c.ContactBookID,
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
	}
}

func toContactResponses(list []*entity.Contact) []dto.ContactResponse {
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toContactResponse(c))
	}
	return out
}
