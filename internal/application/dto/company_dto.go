package dto

// CompanyRequest entrada para crear o reemplazar una empresa (PUT reemplaza todos los campos).
type CompanyRequest struct {
	ContactBookID int64  `json:"contact_book_id" validate:"required,gt=0"`
	Name          string `json:"name" validate:"required,max=200"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID            int64  `json:"id"`
	ContactBookID int64  `json:"contact_book_id"`
	Name          string `json:"name"`
}
