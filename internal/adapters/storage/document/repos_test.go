package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"realty-catalog/internal/domain/images"
	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/domain/properties"
	"realty-catalog/internal/domain/traces"
)

func seedOwner(t *testing.T, uow interface{ Owners() owners.Repository }, doc string) owners.Owner {
	t.Helper()

	o, err := uow.Owners().Add(context.Background(), owners.Owner{
		Name:           "Ana Pérez",
		Address:        "Calle 1 #2-3",
		Photo:          "photos/ana.jpg",
		DocumentNumber: doc,
		Email:          "ana@example.com",
	})
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return o
}

func seedProperty(t *testing.T, uow interface{ Properties() properties.Repository }, idOwner int64, code string) properties.Property {
	t.Helper()

	p, err := uow.Properties().Add(context.Background(), properties.Property{
		Name:         "Casa Centro",
		Address:      "Carrera 10",
		Price:        250000,
		CodeInternal: code,
		Year:         2015,
		IDOwner:      idOwner,
	})
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return p
}

func TestOwners_AddGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()

	bd := time.Date(1985, 3, 9, 0, 0, 0, 0, time.UTC)
	added, err := uow.Owners().Add(ctx, owners.Owner{
		Name:           "Ana Pérez",
		Address:        "Calle 1 #2-3",
		Photo:          "photos/ana.jpg",
		Birthday:       &bd,
		DocumentNumber: "12345678",
		Email:          "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.IDOwner == 0 {
		t.Fatal("Add did not assign a surrogate id")
	}

	got, err := uow.Owners().GetByID(ctx, added.IDOwner)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != added.Name || got.DocumentNumber != added.DocumentNumber || got.Address != added.Address {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, added)
	}
	if got.Birthday == nil || !got.Birthday.Equal(bd) {
		t.Fatalf("birthday lost in round trip: %v", got.Birthday)
	}
}

func TestOwners_DeleteThenAbsent(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()
	o := seedOwner(t, uow, "D-1")

	if err := uow.Owners().Delete(ctx, o.IDOwner); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := uow.Owners().GetByID(ctx, o.IDOwner); !errors.Is(err, owners.ErrNotFound) {
		t.Fatalf("GetByID after delete: err = %v, want ErrNotFound", err)
	}
	exists, err := uow.Owners().Exists(ctx, o.IDOwner)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("Exists after delete = true, want false")
	}
}

func TestOwners_DocumentNumberProbe(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()

	taken, err := uow.Owners().DocumentNumberExists(ctx, "9999", 0)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if taken {
		t.Fatal("probe before any owner = true, want false")
	}

	holder := seedOwner(t, uow, "9999")
	other := seedOwner(t, uow, "8888")

	taken, _ = uow.Owners().DocumentNumberExists(ctx, "9999", 0)
	if !taken {
		t.Fatal("probe after insert = false, want true")
	}

	// Excluir a otro owner no destapa el número.
	taken, _ = uow.Owners().DocumentNumberExists(ctx, "9999", other.IDOwner)
	if !taken {
		t.Fatal("probe excluding a different owner = false, want true")
	}

	// Excluir al que lo tiene sí: es su propio valor.
	taken, _ = uow.Owners().DocumentNumberExists(ctx, "9999", holder.IDOwner)
	if taken {
		t.Fatal("probe excluding the holder = true, want false")
	}
}

func TestProperties_EmbedOwnerSnapshotOnAdd(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	o := seedOwner(t, uow, "S-1")
	p := seedProperty(t, uow, o.IDOwner, "C-001")

	// El documento persistido tiene que llevar el snapshot, no solo la
	// referencia.
	var doc propertyDoc
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, docKey(colProperties, p.IDProperty), &doc)
	})
	if err != nil {
		t.Fatalf("read raw doc: %v", err)
	}
	if doc.Owner.IDOwner != o.IDOwner || doc.Owner.Name != o.Name || doc.Owner.Address != o.Address || doc.Owner.Photo != o.Photo {
		t.Fatalf("embedded snapshot mismatch: %+v vs owner %+v", doc.Owner, o)
	}
}

func TestProperties_AddWithMissingOwnerFails(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	_, err := uow.Properties().Add(context.Background(), properties.Property{
		Name:         "Casa",
		Address:      "X",
		CodeInternal: "C-x",
		Year:         2000,
		IDOwner:      42,
	})
	if !errors.Is(err, owners.ErrNotFound) {
		t.Fatalf("Add with missing owner: err = %v, want owners.ErrNotFound", err)
	}
}

func TestProperties_UpdateOwnerSnapshotFanOut(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()
	o := seedOwner(t, uow, "S-2")
	p1 := seedProperty(t, uow, o.IDOwner, "C-010")
	p2 := seedProperty(t, uow, o.IDOwner, "C-011")

	other := seedOwner(t, uow, "S-3")
	p3 := seedProperty(t, uow, other.IDOwner, "C-012")

	touched, err := uow.Properties().UpdateOwnerSnapshot(ctx, properties.OwnerSnapshot{
		IDOwner: o.IDOwner,
		Name:    "Ana Renombrada",
		Address: "Nueva Dirección",
		Photo:   "photos/new.jpg",
	})
	if err != nil {
		t.Fatalf("UpdateOwnerSnapshot: %v", err)
	}
	if touched != 2 {
		t.Fatalf("touched = %d, want 2", touched)
	}

	for _, id := range []int64{p1.IDProperty, p2.IDProperty} {
		var doc propertyDoc
		err := s.db.View(func(txn *badger.Txn) error {
			return getJSON(txn, docKey(colProperties, id), &doc)
		})
		if err != nil {
			t.Fatalf("read doc %d: %v", id, err)
		}
		if doc.Owner.Name != "Ana Renombrada" || doc.Owner.Address != "Nueva Dirección" {
			t.Fatalf("property %d snapshot not resynced: %+v", id, doc.Owner)
		}
	}

	// La propiedad del otro owner no se toca.
	var doc propertyDoc
	_ = s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, docKey(colProperties, p3.IDProperty), &doc)
	})
	if doc.Owner.Name == "Ana Renombrada" {
		t.Fatal("fan-out rewrote a property of a different owner")
	}
}

func TestImages_EmbeddedCopyTracksCollection(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()
	o := seedOwner(t, uow, "I-1")
	p := seedProperty(t, uow, o.IDOwner, "C-020")

	img, err := uow.Images().Add(ctx, images.PropertyImage{
		IDProperty: p.IDProperty,
		File:       "img/1.jpg",
		Enabled:    true,
	})
	if err != nil {
		t.Fatalf("Add image: %v", err)
	}

	var doc propertyDoc
	readDoc := func() {
		t.Helper()
		err := s.db.View(func(txn *badger.Txn) error {
			return getJSON(txn, docKey(colProperties, p.IDProperty), &doc)
		})
		if err != nil {
			t.Fatalf("read property doc: %v", err)
		}
	}

	readDoc()
	if len(doc.Images) != 1 || doc.Images[0].File != "img/1.jpg" {
		t.Fatalf("embedded images after add = %+v, want the new one", doc.Images)
	}

	if err := uow.Images().Delete(ctx, img.IDImage); err != nil {
		t.Fatalf("Delete image: %v", err)
	}
	readDoc()
	if len(doc.Images) != 0 {
		t.Fatalf("embedded images after delete = %+v, want empty", doc.Images)
	}
}

func TestImages_DeleteByProperty(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()
	o := seedOwner(t, uow, "I-2")
	p := seedProperty(t, uow, o.IDOwner, "C-021")

	for i := 0; i < 3; i++ {
		_, err := uow.Images().Add(ctx, images.PropertyImage{
			IDProperty: p.IDProperty,
			File:       "img/x.jpg",
			Enabled:    true,
		})
		if err != nil {
			t.Fatalf("Add image: %v", err)
		}
	}

	n, err := uow.Images().DeleteByProperty(ctx, p.IDProperty)
	if err != nil {
		t.Fatalf("DeleteByProperty: %v", err)
	}
	if n != 3 {
		t.Fatalf("deleted = %d, want 3", n)
	}

	left, err := uow.Images().ListByProperty(ctx, p.IDProperty)
	if err != nil {
		t.Fatalf("ListByProperty: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("images left = %d, want 0", len(left))
	}
}

func TestTraces_OrderedByDateSaleDesc(t *testing.T) {
	s := newTestStore(t)
	uow := s.NewUnitOfWork()
	defer uow.Close()

	ctx := context.Background()
	o := seedOwner(t, uow, "T-1")
	p := seedProperty(t, uow, o.IDOwner, "C-030")

	dates := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		_, err := uow.Traces().Add(ctx, traces.PropertyTrace{
			IDProperty: p.IDProperty,
			DateSale:   d,
			Name:       "venta",
			Value:      100,
			Tax:        10,
		})
		if err != nil {
			t.Fatalf("Add trace: %v", err)
		}
	}

	got, err := uow.Traces().ListByProperty(ctx, p.IDProperty)
	if err != nil {
		t.Fatalf("ListByProperty: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].DateSale.After(got[i-1].DateSale) {
			t.Fatalf("traces not in date_sale desc order: %v before %v", got[i-1].DateSale, got[i].DateSale)
		}
	}
}
