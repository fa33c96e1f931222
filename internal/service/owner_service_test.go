package service

import (
	"context"
	"errors"
	"testing"

	"realty-catalog/internal/adapters/storage/document"
	"realty-catalog/internal/storage"
)

// Los tests de servicio corren contra el backend documental en memoria:
// mismo contrato que Postgres, sin infraestructura.
func newTestStore(t *testing.T) storage.Factory {
	t.Helper()

	s, err := document.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func validOwnerInput(doc string) OwnerInput {
	return OwnerInput{
		Name:           "Ana Pérez",
		Address:        "Calle 1 #2-3",
		Photo:          "photos/ana.jpg",
		DocumentNumber: doc,
		Email:          "ana@example.com",
	}
}

func TestOwnerService_Create_RejectsMissingFields(t *testing.T) {
	svc := NewOwnerService(newTestStore(t))

	in := validOwnerInput("123")
	in.Name = "   "
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestOwnerService_Create_RejectsDuplicateDocumentNumber(t *testing.T) {
	svc := NewOwnerService(newTestStore(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, validOwnerInput("12345678")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, validOwnerInput("12345678"))
	if !errors.Is(err, ErrDocumentNumberInUse) {
		t.Fatalf("err = %v, want ErrDocumentNumberInUse", err)
	}
}

func TestOwnerService_GetByID_AbsentIsNilNotError(t *testing.T) {
	svc := NewOwnerService(newTestStore(t))

	o, err := svc.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if o != nil {
		t.Fatalf("owner = %+v, want nil", o)
	}
}

func TestOwnerService_Update_KeepsOwnDocumentNumber(t *testing.T) {
	svc := NewOwnerService(newTestStore(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, validOwnerInput("555"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mismo número, mismo owner: no es colisión.
	in := validOwnerInput("555")
	in.Name = "Ana Renombrada"
	got, err := svc.Update(ctx, created.IDOwner, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got == nil || got.Name != "Ana Renombrada" {
		t.Fatalf("updated owner = %+v", got)
	}
}

func TestOwnerService_Update_RejectsForeignDocumentNumber(t *testing.T) {
	svc := NewOwnerService(newTestStore(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, validOwnerInput("111")); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, validOwnerInput("222"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validOwnerInput("111") // número del primero
	_, err = svc.Update(ctx, second.IDOwner, in)
	if !errors.Is(err, ErrDocumentNumberInUse) {
		t.Fatalf("err = %v, want ErrDocumentNumberInUse", err)
	}
}

func TestOwnerService_Update_AbsentIsNil(t *testing.T) {
	svc := NewOwnerService(newTestStore(t))

	got, err := svc.Update(context.Background(), 404, validOwnerInput("x1"))
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if got != nil {
		t.Fatalf("got = %+v, want nil", got)
	}
}

func TestOwnerService_Delete_RefusedWhileReferenced(t *testing.T) {
	store := newTestStore(t)
	ownersSvc := NewOwnerService(store)
	propsSvc := NewPropertyService(store)
	ctx := context.Background()

	o, err := ownersSvc.Create(ctx, validOwnerInput("777"))
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	p, err := propsSvc.Create(ctx, validPropertyInput("P-1", o.IDOwner))
	if err != nil {
		t.Fatalf("create property: %v", err)
	}

	_, err = ownersSvc.Delete(ctx, o.IDOwner)
	if !errors.Is(err, ErrOwnerHasProperties) {
		t.Fatalf("err = %v, want ErrOwnerHasProperties", err)
	}

	// Sin propiedades el borrado procede y el owner desaparece.
	if _, err := propsSvc.Delete(ctx, p.IDProperty); err != nil {
		t.Fatalf("delete property: %v", err)
	}
	deleted, err := ownersSvc.Delete(ctx, o.IDOwner)
	if err != nil {
		t.Fatalf("delete owner: %v", err)
	}
	if !deleted {
		t.Fatal("deleted = false, want true")
	}

	got, err := ownersSvc.GetByID(ctx, o.IDOwner)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("owner still present after delete: %+v", got)
	}
}

func TestOwnerService_Delete_AbsentIsFalse(t *testing.T) {
	svc := NewOwnerService(newTestStore(t))

	deleted, err := svc.Delete(context.Background(), 31337)
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if deleted {
		t.Fatal("deleted = true, want false")
	}
}

func TestOwnerService_PropertiesCountFollowsProperties(t *testing.T) {
	store := newTestStore(t)
	ownersSvc := NewOwnerService(store)
	propsSvc := NewPropertyService(store)
	ctx := context.Background()

	o, err := ownersSvc.Create(ctx, validOwnerInput("888"))
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	var last int64
	for i, code := range []string{"PC-1", "PC-2", "PC-3"} {
		p, err := propsSvc.Create(ctx, validPropertyInput(code, o.IDOwner))
		if err != nil {
			t.Fatalf("create property %d: %v", i, err)
		}
		last = p.IDProperty
	}

	got, _ := ownersSvc.GetByID(ctx, o.IDOwner)
	if got.PropertiesCount != 3 {
		t.Fatalf("PropertiesCount = %d, want 3", got.PropertiesCount)
	}

	if _, err := propsSvc.Delete(ctx, last); err != nil {
		t.Fatalf("delete property: %v", err)
	}
	got, _ = ownersSvc.GetByID(ctx, o.IDOwner)
	if got.PropertiesCount != 2 {
		t.Fatalf("PropertiesCount after delete = %d, want 2", got.PropertiesCount)
	}
}

func TestOwnerService_UpdateResyncsEmbeddedSnapshots(t *testing.T) {
	store := newTestStore(t)
	ownersSvc := NewOwnerService(store)
	propsSvc := NewPropertyService(store)
	ctx := context.Background()

	o, err := ownersSvc.Create(ctx, validOwnerInput("999"))
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	if _, err := propsSvc.Create(ctx, validPropertyInput("PS-1", o.IDOwner)); err != nil {
		t.Fatalf("create property: %v", err)
	}

	in := validOwnerInput("999")
	in.Name = "Nuevo Nombre"
	in.Address = "Nueva Dirección"
	if _, err := ownersSvc.Update(ctx, o.IDOwner, in); err != nil {
		t.Fatalf("update owner: %v", err)
	}

	// El resync corre síncrono dentro del update; verificamos el efecto
	// a través del fan-out: otra escritura de snapshot no encuentra
	// nada desactualizado que cambiar respecto de la fuente de verdad.
	fresh, err := ownersSvc.GetByID(ctx, o.IDOwner)
	if err != nil || fresh == nil {
		t.Fatalf("get owner: %v, %v", fresh, err)
	}
	if fresh.Name != "Nuevo Nombre" || fresh.PropertiesCount != 1 {
		t.Fatalf("owner after resync = %+v", fresh)
	}
}
