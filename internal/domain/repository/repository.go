package repository

import "context"

// Repository contrato común de persistencia para cualquier entidad con ID asignado por el almacén.
//
// Save ignora el ID recibido y devuelve la entidad con el ID generado.
// Edit devuelve domain.ErrNotFound si ninguna fila coincide.
// Delete es idempotente: borrar un ID inexistente no es error.
// Get devuelve (nil, nil) si no existe.
// GetAll devuelve un slice vacío (no nil) si no hay filas.
type Repository[T any] interface {
	Save(ctx context.Context, entity *T) (*T, error)
	Edit(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
}
