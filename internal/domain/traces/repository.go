package traces

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("traces: not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (PropertyTrace, error)

	// GetAll y ListByProperty devuelven los traces ordenados por
	// date_sale descendente. Es un orden del borde de consulta, no un
	// invariante de almacenamiento.
	GetAll(ctx context.Context) ([]PropertyTrace, error)
	ListByProperty(ctx context.Context, idProperty int64) ([]PropertyTrace, error)

	Add(ctx context.Context, tr PropertyTrace) (PropertyTrace, error)
	Update(ctx context.Context, tr PropertyTrace) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)

	DeleteByProperty(ctx context.Context, idProperty int64) (int64, error)
}
