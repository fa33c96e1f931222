package owners

import "time"

// Owner representa al propietario de una o más propiedades del catálogo.
// IDOwner es la clave subrogada estable (entera, creciente); el handle
// físico del store nunca sale de los adaptadores.
type Owner struct {
	IDOwner int64

	Name    string
	Address string
	Photo   string // path o URI, opcional

	Birthday       *time.Time
	DocumentNumber string // único a nivel global
	Email          string

	// PropertiesCount es un valor derivado (cacheado): cantidad de
	// propiedades que referencian a este owner. Lo mantiene el
	// sincronizador, no el caller.
	PropertiesCount int
}
