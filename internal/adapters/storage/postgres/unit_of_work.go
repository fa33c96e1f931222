package postgres

import (
	"context"
	"database/sql"
	"errors"

	"realty-catalog/internal/domain/images"
	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/domain/properties"
	"realty-catalog/internal/domain/traces"
	"realty-catalog/internal/storage"
)

var (
	// ErrTxAlreadyStarted: BeginTx con una transacción explícita ya abierta.
	ErrTxAlreadyStarted = errors.New("postgres: transaction already started")

	errClosed = errors.New("postgres: unit of work closed")
)

// Factory crea unidades de trabajo sobre un pool compartido.
type Factory struct {
	db *sql.DB
}

func NewFactory(db *sql.DB) *Factory {
	return &Factory{db: db}
}

func (f *Factory) NewUnitOfWork() storage.UnitOfWork {
	u := &unitOfWork{db: f.db}
	u.owners = &ownersRepo{u: u}
	u.properties = &propertiesRepo{u: u}
	u.images = &imagesRepo{u: u}
	u.traces = &tracesRepo{u: u}
	return u
}

// dbtx es lo que ambas sesiones (*sql.DB y *sql.Tx) saben hacer.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// unitOfWork implementa storage.UnitOfWork sobre Postgres. Toda
// escritura entra a una transacción implícita que se abre en la primera
// escritura y se confirma en SaveChanges; BeginTx la vuelve explícita y
// entonces solo CommitTx/RollbackTx la cierran. No es seguro para uso
// concurrente: una unidad por operación lógica.
type unitOfWork struct {
	db       *sql.DB
	tx       *sql.Tx
	explicit bool
	changes  int64
	closed   bool

	owners     *ownersRepo
	properties *propertiesRepo
	images     *imagesRepo
	traces     *tracesRepo
}

func (u *unitOfWork) Owners() owners.Repository         { return u.owners }
func (u *unitOfWork) Properties() properties.Repository { return u.properties }
func (u *unitOfWork) Images() images.Repository         { return u.images }
func (u *unitOfWork) Traces() traces.Repository         { return u.traces }

// q devuelve la sesión activa: la transacción si hay una abierta (las
// lecturas tienen que ver las escrituras pendientes) o el pool.
func (u *unitOfWork) q() dbtx {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// writer garantiza transacción abierta antes de escribir.
func (u *unitOfWork) writer(ctx context.Context) (dbtx, error) {
	if u.closed {
		return nil, errClosed
	}
	if u.tx == nil {
		tx, err := u.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		u.tx = tx
	}
	return u.tx, nil
}

// exec corre una escritura dentro de la transacción y acumula las filas
// afectadas para SaveChanges.
func (u *unitOfWork) exec(ctx context.Context, query string, args ...any) (int64, error) {
	w, err := u.writer(ctx)
	if err != nil {
		return 0, err
	}
	res, err := w.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	u.changes += n
	return n, nil
}

func (u *unitOfWork) noteChange(n int64) { u.changes += n }

func (u *unitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	if u.closed {
		return 0, errClosed
	}
	n := u.changes
	u.changes = 0

	// Bajo transacción explícita SaveChanges no confirma: el punto de
	// cierre es CommitTx/RollbackTx.
	if u.tx != nil && !u.explicit {
		err := u.tx.Commit()
		u.tx = nil
		if err != nil {
			return 0, err
		}
	}
	return n, nil
}

func (u *unitOfWork) BeginTx(ctx context.Context) error {
	if u.closed {
		return errClosed
	}
	if u.explicit {
		return ErrTxAlreadyStarted
	}
	if u.tx == nil {
		tx, err := u.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		u.tx = tx
	}
	u.explicit = true
	return nil
}

// CommitTx sin transacción explícita abierta es un no-op.
func (u *unitOfWork) CommitTx(ctx context.Context) error {
	if u.closed {
		return errClosed
	}
	if !u.explicit {
		return nil
	}
	err := u.tx.Commit()
	u.tx = nil
	u.explicit = false
	return err
}

// RollbackTx sin transacción explícita abierta es un no-op.
func (u *unitOfWork) RollbackTx(ctx context.Context) error {
	if u.closed {
		return errClosed
	}
	if !u.explicit {
		return nil
	}
	err := u.tx.Rollback()
	u.tx = nil
	u.explicit = false
	u.changes = 0
	return err
}

// Close es idempotente. Una transacción todavía abierta se revierte
// para no dejar la conexión sucia en el pool.
func (u *unitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	if u.tx != nil {
		err := u.tx.Rollback()
		u.tx = nil
		u.explicit = false
		return err
	}
	return nil
}
