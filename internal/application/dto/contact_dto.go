package dto

// ContactRequest entrada para crear o reemplazar un contacto. company_id null = sin empresa.
type ContactRequest struct {
	ContactBookID int64  `json:"contact_book_id" validate:"required,gt=0"`
	CompanyID     *int64 `json:"company_id" validate:"omitempty,gt=0"`
	Name          string `json:"name" validate:"required,max=200"`
	Phone         string `json:"phone" validate:"max=50"`
	Email         string `json:"email" validate:"omitempty,email,max=254"`
	Address       string `json:"address" validate:"max=500"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID            int64  `json:"id"`
	ContactBookID int64  `json:"contact_book_id"`
	CompanyID     *int64 `json:"company_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}
