package owners

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven ambos backends cuando el owner no existe.
var ErrNotFound = errors.New("owners: not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (Owner, error)
	GetAll(ctx context.Context) ([]Owner, error)

	// Add asigna la identidad si falta (clave subrogada en el store
	// documental, secuencia nativa en el relacional) y devuelve la
	// entidad con su id definitivo.
	Add(ctx context.Context, o Owner) (Owner, error)

	// Update reemplaza la entidad completa. ErrNotFound si no existe.
	Update(ctx context.Context, o Owner) error

	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)

	// DocumentNumberExists es la sonda de unicidad. excludeID permite
	// que un owner conserve su propio número en un update sin chocar
	// consigo mismo (0 = no excluir a nadie).
	DocumentNumberExists(ctx context.Context, documentNumber string, excludeID int64) (bool, error)

	// UpdatePropertiesCount persiste el contador derivado. Lo usa el
	// sincronizador tras cada alta/baja de propiedad.
	UpdatePropertiesCount(ctx context.Context, id int64, count int) error
}
