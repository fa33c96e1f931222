package document

import (
	"context"
	"testing"

	"realty-catalog/internal/domain/owners"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKeyGenerator_EmptyCollection_ReturnsOne(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Keys().NextID(colOwners)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if id != 1 {
		t.Fatalf("NextID on empty collection = %d, want 1", id)
	}
}

func TestKeyGenerator_AdvancesPastExistingIDs(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()

	o, err := uow.Owners().Add(ctx, owners.Owner{
		Name:           "Ana",
		Address:        "Calle 1",
		DocumentNumber: "A-1",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	next, err := s.Keys().NextID(colOwners)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if next <= o.IDOwner {
		t.Fatalf("NextID = %d, want > %d", next, o.IDOwner)
	}
}

func TestKeyGenerator_CollectionsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uow.Owners().Add(ctx, owners.Owner{
			Name:           "Ana",
			Address:        "Calle 1",
			DocumentNumber: "A-1",
		})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	id, err := s.Keys().NextID(colProperties)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if id != 1 {
		t.Fatalf("NextID(properties) = %d, want 1 (owners must not leak)", id)
	}
}
