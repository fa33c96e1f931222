package traces

import "time"

// PropertyTrace registra un evento de transacción (venta, tasación)
// sobre una propiedad. Value y Tax son montos no negativos.
type PropertyTrace struct {
	IDTrace    int64
	IDProperty int64

	DateSale time.Time
	Name     string // etiqueta del evento
	Value    float64
	Tax      float64
}
