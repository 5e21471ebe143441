package entity

// Contact representa una persona de la agenda, opcionalmente vinculada a una empresa.
type Contact struct {
	ID            int64
	ContactBookID int64
	CompanyID     *int64 // nil = contacto sin empresa
	Name          string
	Phone         string
	Email         string
	Address       string
}

// HasCompany informa si el contacto referencia una empresa.
func (c *Contact) HasCompany() bool {
	return c.CompanyID != nil
}
