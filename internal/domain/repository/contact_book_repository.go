package repository

import "github.com/jhoicas/contactbook-api/internal/domain/entity"

// ContactBookRepository define el puerto de persistencia para ContactBook.
type ContactBookRepository interface {
	Repository[entity.ContactBook]
}
