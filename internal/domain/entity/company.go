package entity

// Company representa una empresa dentro de una agenda de contactos.
// El ID lo asigna el almacén al crear y no cambia después.
type Company struct {
	ID            int64
	ContactBookID int64
	Name          string
}
