package document

import (
	"context"
	"errors"
	"testing"

	"realty-catalog/internal/storage"
)

func TestUnitOfWork_BeginTxUnsupported(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	err := uow.BeginTx(context.Background())
	if !errors.Is(err, storage.ErrTransactionsUnsupported) {
		t.Fatalf("BeginTx err = %v, want ErrTransactionsUnsupported", err)
	}
}

func TestUnitOfWork_CommitRollbackAreNoOpsWithoutTx(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()
	if err := uow.CommitTx(ctx); err != nil {
		t.Fatalf("CommitTx without BeginTx: %v", err)
	}
	if err := uow.RollbackTx(ctx); err != nil {
		t.Fatalf("RollbackTx without BeginTx: %v", err)
	}
}

func TestUnitOfWork_SaveChangesCountsWrites(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()
	seedOwner(t, uow, "U-1")
	seedOwner(t, uow, "U-2")

	n, err := uow.SaveChanges(ctx)
	if err != nil {
		t.Fatalf("SaveChanges: %v", err)
	}
	if n != 2 {
		t.Fatalf("SaveChanges = %d, want 2", n)
	}

	// El contador se resetea en cada commit lógico.
	n, _ = uow.SaveChanges(ctx)
	if n != 0 {
		t.Fatalf("second SaveChanges = %d, want 0", n)
	}
}

func TestUnitOfWork_CloseIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()

	if err := uow.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := uow.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
