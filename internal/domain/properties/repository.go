package properties

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("properties: not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (Property, error)
	GetAll(ctx context.Context) ([]Property, error)
	Add(ctx context.Context, p Property) (Property, error)
	Update(ctx context.Context, p Property) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)

	// CodeInternalExists: sonda de unicidad, excludeID igual que en owners.
	CodeInternalExists(ctx context.Context, codeInternal string, excludeID int64) (bool, error)

	CountByOwner(ctx context.Context, idOwner int64) (int, error)
	ListByOwner(ctx context.Context, idOwner int64) ([]Property, error)

	// UpdateOwnerSnapshot reescribe el snapshot embebido en todas las
	// propiedades que referencian snap.IDOwner y devuelve cuántas tocó.
	// El backend relacional no embebe nada: devuelve 0 sin error.
	UpdateOwnerSnapshot(ctx context.Context, snap OwnerSnapshot) (int64, error)
}
