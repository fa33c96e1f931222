package document

import (
	"context"

	"realty-catalog/internal/domain/images"
	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/domain/properties"
	"realty-catalog/internal/domain/traces"
	"realty-catalog/internal/storage"
)

// NewUnitOfWork crea la unidad de trabajo documental. Acá no hay
// escritura diferida: cada operación persiste de inmediato y
// SaveChanges solo informa cuántas escrituras hubo. BeginTx degrada de
// forma explícita con el error tipado en vez de fingir atomicidad.
func (s *Store) NewUnitOfWork() storage.UnitOfWork {
	u := &unitOfWork{s: s}
	u.owners = &ownersRepo{s: s, u: u}
	u.properties = &propertiesRepo{s: s, u: u}
	u.images = &imagesRepo{s: s, u: u}
	u.traces = &tracesRepo{s: s, u: u}
	return u
}

type unitOfWork struct {
	s      *Store
	writes int64
	closed bool

	owners     *ownersRepo
	properties *propertiesRepo
	images     *imagesRepo
	traces     *tracesRepo
}

func (u *unitOfWork) Owners() owners.Repository         { return u.owners }
func (u *unitOfWork) Properties() properties.Repository { return u.properties }
func (u *unitOfWork) Images() images.Repository         { return u.images }
func (u *unitOfWork) Traces() traces.Repository         { return u.traces }

func (u *unitOfWork) note(n int64) { u.writes += n }

func (u *unitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	n := u.writes
	u.writes = 0
	return n, nil
}

func (u *unitOfWork) BeginTx(ctx context.Context) error {
	return storage.ErrTransactionsUnsupported
}

// CommitTx/RollbackTx sin transacción abierta son no-ops, y acá nunca
// puede haber una abierta.
func (u *unitOfWork) CommitTx(ctx context.Context) error   { return nil }
func (u *unitOfWork) RollbackTx(ctx context.Context) error { return nil }

// Close es idempotente; el Store subyacente es compartido y lo cierra
// quien lo abrió.
func (u *unitOfWork) Close() error {
	u.closed = true
	return nil
}
