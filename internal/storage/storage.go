// Package storage define el contrato de unidad de trabajo que comparten
// los dos backends de persistencia (relacional y documental).
package storage

import (
	"context"
	"errors"

	"realty-catalog/internal/domain/images"
	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/domain/properties"
	"realty-catalog/internal/domain/traces"
)

// ErrTransactionsUnsupported lo devuelve BeginTx en un backend sin
// transacciones multi-statement (el documental). Es un error tipado a
// propósito: el caller que dependa de atomicidad tiene que poder
// detectarlo con errors.Is en vez de perder atomicidad en silencio.
var ErrTransactionsUnsupported = errors.New("storage: transactions unsupported by this backend")

// UnitOfWork agrupa los repositorios de una operación lógica sobre una
// misma sesión. Máquina de estados de la transacción:
//
//	NoTransaction -> BeginTx -> InTransaction -> CommitTx | RollbackTx -> NoTransaction
//
// CommitTx/RollbackTx sin transacción abierta son no-ops. Los
// repositorios no deben sobrevivir a su unidad de trabajo, y una misma
// unidad no es segura para uso concurrente desde varias goroutines.
type UnitOfWork interface {
	Owners() owners.Repository
	Properties() properties.Repository
	Images() images.Repository
	Traces() traces.Repository

	// SaveChanges es el punto de commit: en el backend relacional
	// confirma la transacción implícita y devuelve las filas afectadas
	// desde el último commit; en el documental las escrituras ya son
	// inmediatas y solo devuelve cuántas hubo.
	SaveChanges(ctx context.Context) (int64, error)

	BeginTx(ctx context.Context) error
	CommitTx(ctx context.Context) error
	RollbackTx(ctx context.Context) error

	// Close es idempotente. Si queda una transacción abierta la
	// revierte para no devolver una conexión sucia al pool.
	Close() error
}

// Factory crea una unidad de trabajo por operación lógica.
type Factory interface {
	NewUnitOfWork() UnitOfWork
}
