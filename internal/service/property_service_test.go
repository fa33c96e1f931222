package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func validPropertyInput(code string, idOwner int64) PropertyInput {
	return PropertyInput{
		Name:         "Casa Centro",
		Address:      "Carrera 7 #10-20",
		Price:        250_000,
		CodeInternal: code,
		Year:         2015,
		IDOwner:      idOwner,
	}
}

func seedOwnerForProps(t *testing.T, svc *OwnerService, doc string) int64 {
	t.Helper()

	o, err := svc.Create(context.Background(), validOwnerInput(doc))
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return o.IDOwner
}

func TestPropertyService_Create_RejectsUnknownOwner(t *testing.T) {
	svc := NewPropertyService(newTestStore(t))

	_, err := svc.Create(context.Background(), validPropertyInput("X-1", 404))
	if !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("err = %v, want ErrOwnerNotFound", err)
	}
}

func TestPropertyService_Create_RejectsDuplicateCode(t *testing.T) {
	store := newTestStore(t)
	ownersSvc := NewOwnerService(store)
	svc := NewPropertyService(store)
	ctx := context.Background()

	id := seedOwnerForProps(t, ownersSvc, "d-1")
	if _, err := svc.Create(ctx, validPropertyInput("P1", id)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, validPropertyInput("P1", id))
	if !errors.Is(err, ErrCodeInternalInUse) {
		t.Fatalf("err = %v, want ErrCodeInternalInUse", err)
	}

	// El conflicto no debe dejar rastro: una sola propiedad con P1.
	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	n := 0
	for _, p := range all {
		if p.CodeInternal == "P1" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("propiedades con code P1 = %d, want 1", n)
	}
}

func TestPropertyService_Create_RejectsInvalidInput(t *testing.T) {
	svc := NewPropertyService(newTestStore(t))
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*PropertyInput)
	}{
		{"precio negativo", func(in *PropertyInput) { in.Price = -1 }},
		{"año cero", func(in *PropertyInput) { in.Year = 0 }},
		{"code vacío", func(in *PropertyInput) { in.CodeInternal = "  " }},
		{"owner cero", func(in *PropertyInput) { in.IDOwner = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validPropertyInput("V-1", 1)
			tc.mutate(&in)
			if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestPropertyService_Update_MovesBetweenOwners(t *testing.T) {
	store := newTestStore(t)
	ownersSvc := NewOwnerService(store)
	svc := NewPropertyService(store)
	ctx := context.Background()

	first := seedOwnerForProps(t, ownersSvc, "m-1")
	second := seedOwnerForProps(t, ownersSvc, "m-2")

	p, err := svc.Create(ctx, validPropertyInput("MV-1", first))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validPropertyInput("MV-1", second)
	got, err := svc.Update(ctx, p.IDProperty, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.IDOwner != second {
		t.Fatalf("IDOwner = %d, want %d", got.IDOwner, second)
	}

	// Ambos contadores quedan al día tras mover la propiedad.
	o1, _ := ownersSvc.GetByID(ctx, first)
	o2, _ := ownersSvc.GetByID(ctx, second)
	if o1.PropertiesCount != 0 || o2.PropertiesCount != 1 {
		t.Fatalf("counts = %d/%d, want 0/1", o1.PropertiesCount, o2.PropertiesCount)
	}
}

func TestPropertyService_UpdatePrice(t *testing.T) {
	store := newTestStore(t)
	ownersSvc := NewOwnerService(store)
	svc := NewPropertyService(store)
	ctx := context.Background()

	id := seedOwnerForProps(t, ownersSvc, "pr-1")
	p, err := svc.Create(ctx, validPropertyInput("PR-1", id))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.UpdatePrice(ctx, p.IDProperty, 399_500)
	if err != nil {
		t.Fatalf("update price: %v", err)
	}
	if got.Price != 399_500 {
		t.Fatalf("Price = %v, want 399500", got.Price)
	}

	if _, err := svc.UpdatePrice(ctx, p.IDProperty, -5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if got, err := svc.UpdatePrice(ctx, 12345, 10); err != nil || got != nil {
		t.Fatalf("absent: got %v, %v; want nil, nil", got, err)
	}
}

func TestPropertyService_Delete_CascadesImagesAndTraces(t *testing.T) {
	store := newTestStore(t)
	ownersSvc := NewOwnerService(store)
	propsSvc := NewPropertyService(store)
	imagesSvc := NewImageService(store)
	tracesSvc := NewTraceService(store)
	ctx := context.Background()

	id := seedOwnerForProps(t, ownersSvc, "c-1")
	p, err := propsSvc.Create(ctx, validPropertyInput("CD-1", id))
	if err != nil {
		t.Fatalf("create property: %v", err)
	}

	img, err := imagesSvc.Create(ctx, ImageInput{IDProperty: p.IDProperty, File: "a.jpg", Enabled: true})
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	tr, err := tracesSvc.Create(ctx, TraceInput{
		IDProperty: p.IDProperty,
		DateSale:   time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		Name:       "venta inicial",
		Value:      200_000,
		Tax:        8_000,
	})
	if err != nil {
		t.Fatalf("create trace: %v", err)
	}

	deleted, err := propsSvc.Delete(ctx, p.IDProperty)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("deleted = false, want true")
	}

	if got, err := imagesSvc.GetByID(ctx, img.IDImage); err != nil || got != nil {
		t.Fatalf("image survived cascade: %v, %v", got, err)
	}
	if got, err := tracesSvc.GetByID(ctx, tr.IDTrace); err != nil || got != nil {
		t.Fatalf("trace survived cascade: %v, %v", got, err)
	}
}

func TestPropertyService_ListByOwner(t *testing.T) {
	store := newTestStore(t)
	ownersSvc := NewOwnerService(store)
	svc := NewPropertyService(store)
	ctx := context.Background()

	a := seedOwnerForProps(t, ownersSvc, "l-1")
	b := seedOwnerForProps(t, ownersSvc, "l-2")
	for _, code := range []string{"LA-1", "LA-2"} {
		if _, err := svc.Create(ctx, validPropertyInput(code, a)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Create(ctx, validPropertyInput("LB-1", b)); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.ListByOwner(ctx, a)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, p := range got {
		if p.IDOwner != a {
			t.Fatalf("propiedad de otro owner en la lista: %+v", p)
		}
	}
}
