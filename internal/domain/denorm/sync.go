// Package denorm mantiene en línea los datos desnormalizados: el
// snapshot de owner embebido en las propiedades del backend documental
// y el contador cacheado properties_count del owner.
package denorm

import (
	"context"
	"fmt"

	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/domain/properties"
)

// ResyncOwner es idempotente: reescribe el snapshot del owner en todas
// las propiedades que lo referencian (fan-out; el backend relacional
// responde 0) y recalcula + persiste PropertiesCount. Se invoca de
// forma síncrona después de cada update de owner, aceptando su costo de
// latencia a cambio de cerrar la ventana de divergencia.
func ResyncOwner(ctx context.Context, ownerRepo owners.Repository, propRepo properties.Repository, idOwner int64) error {
	o, err := ownerRepo.GetByID(ctx, idOwner)
	if err != nil {
		return err
	}

	if _, err := propRepo.UpdateOwnerSnapshot(ctx, properties.OwnerSnapshot{
		IDOwner: o.IDOwner,
		Name:    o.Name,
		Address: o.Address,
		Photo:   o.Photo,
	}); err != nil {
		return fmt.Errorf("resync owner %d: %w", idOwner, err)
	}

	return RecountOwner(ctx, ownerRepo, propRepo, idOwner)
}

// RecountOwner recalcula y persiste el contador de propiedades del
// owner. Se invoca después de que el alta/baja de la propiedad ya
// confirmó: si esta escritura falla, el contador queda stale. Eso es
// staleness no fatal, no una violación dura; el error sube al caller
// pero el core no reintenta.
func RecountOwner(ctx context.Context, ownerRepo owners.Repository, propRepo properties.Repository, idOwner int64) error {
	n, err := propRepo.CountByOwner(ctx, idOwner)
	if err != nil {
		return fmt.Errorf("recount owner %d: %w", idOwner, err)
	}
	if err := ownerRepo.UpdatePropertiesCount(ctx, idOwner, n); err != nil {
		return fmt.Errorf("recount owner %d: %w", idOwner, err)
	}
	return nil
}
