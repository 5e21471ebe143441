package entity

// ContactBook agrupa empresas y contactos.
type ContactBook struct {
	ID   int64
	Name string
}
