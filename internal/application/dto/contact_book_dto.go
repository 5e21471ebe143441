package dto

// ContactBookRequest entrada para crear o reemplazar una agenda.
type ContactBookRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// ContactBookResponse salida de una agenda.
type ContactBookResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CompanyWithContacts empresa con sus contactos vinculados.
type CompanyWithContacts struct {
	CompanyResponse
	Contacts []ContactResponse `json:"contacts"`
}

// ContactBookOverview vista combinada de una agenda: empresas con sus contactos y
// contactos sin empresa.
type ContactBookOverview struct {
	ContactBook  ContactBookResponse   `json:"contact_book"`
	Companies    []CompanyWithContacts `json:"companies"`
	Unaffiliated []ContactResponse     `json:"unaffiliated_contacts"`
}
