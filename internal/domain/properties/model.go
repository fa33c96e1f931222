package properties

// Property es una propiedad del catálogo. En el modelo normalizado
// IDOwner es una FK; en el documental el adaptador materializa además
// un snapshot embebido del owner (ver OwnerSnapshot).
type Property struct {
	IDProperty int64

	Name    string
	Address string
	Price   float64 // decimal no negativo
	Year    int

	// CodeInternal es único a nivel global.
	CodeInternal string

	IDOwner int64
}

// OwnerSnapshot es la copia desnormalizada de los campos del owner que
// los documentos de propiedad llevan embebida. Debe seguir a la fuente
// de verdad salvo durante la ventana entre el update del owner y el
// resync.
type OwnerSnapshot struct {
	IDOwner int64
	Name    string
	Address string
	Photo   string
}
