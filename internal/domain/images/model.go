package images

// PropertyImage pertenece a exactamente una propiedad; su ciclo de vida
// está acotado por el de la propiedad (cascade en el relacional,
// limpieza explícita del servicio en el documental).
type PropertyImage struct {
	IDImage    int64
	IDProperty int64

	File    string // path o URI
	Enabled bool
}
