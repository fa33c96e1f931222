// Package service orquesta validación, chequeos de existencia y
// unicidad, y delega en la capa de repositorios vía la unidad de
// trabajo. Es el consumidor fino del core: no loguea, solo devuelve
// errores tipados; reintentos y fallbacks son problema del caller.
package service

import "errors"

var (
	// ErrInvalidInput: campo requerido ausente o rango inválido.
	ErrInvalidInput = errors.New("invalid input")

	// Violaciones de unicidad detectadas por sonda previa.
	ErrDocumentNumberInUse = errors.New("document number already in use")
	ErrCodeInternalInUse   = errors.New("internal code already in use")

	// Padres inexistentes.
	ErrOwnerNotFound    = errors.New("owner does not exist")
	ErrPropertyNotFound = errors.New("property does not exist")

	// ErrOwnerHasProperties: borrar un owner referenciado no cascadea
	// en silencio, se rechaza.
	ErrOwnerHasProperties = errors.New("owner still has properties")
)
