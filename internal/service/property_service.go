package service

import (
	"context"
	"errors"
	"strings"

	"realty-catalog/internal/domain/denorm"
	"realty-catalog/internal/domain/properties"
	"realty-catalog/internal/storage"
)

type PropertyService struct {
	store storage.Factory
}

func NewPropertyService(store storage.Factory) *PropertyService {
	return &PropertyService{store: store}
}

type PropertyInput struct {
	Name         string
	Address      string
	Price        float64
	CodeInternal string
	Year         int
	IDOwner      int64
}

func (in *PropertyInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.CodeInternal = strings.TrimSpace(in.CodeInternal)

	if in.Name == "" || in.Address == "" || in.CodeInternal == "" {
		return ErrInvalidInput
	}
	if in.Price < 0 {
		return ErrInvalidInput
	}
	if in.Year <= 0 {
		return ErrInvalidInput
	}
	if in.IDOwner <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *PropertyService) Create(ctx context.Context, in PropertyInput) (properties.Property, error) {
	if err := in.validate(); err != nil {
		return properties.Property{}, err
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	exists, err := uow.Owners().Exists(ctx, in.IDOwner)
	if err != nil {
		return properties.Property{}, err
	}
	if !exists {
		return properties.Property{}, ErrOwnerNotFound
	}

	taken, err := uow.Properties().CodeInternalExists(ctx, in.CodeInternal, 0)
	if err != nil {
		return properties.Property{}, err
	}
	if taken {
		return properties.Property{}, ErrCodeInternalInUse
	}

	p, err := uow.Properties().Add(ctx, properties.Property{
		Name:         in.Name,
		Address:      in.Address,
		Price:        in.Price,
		CodeInternal: in.CodeInternal,
		Year:         in.Year,
		IDOwner:      in.IDOwner,
	})
	if err != nil {
		return properties.Property{}, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return properties.Property{}, err
	}

	// El recount corre después de que el alta confirmó; si falla, el
	// contador queda stale (no fatal) y el error sube igual.
	if err := denorm.RecountOwner(ctx, uow.Owners(), uow.Properties(), in.IDOwner); err != nil {
		return properties.Property{}, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return properties.Property{}, err
	}
	return p, nil
}

func (s *PropertyService) GetByID(ctx context.Context, id int64) (*properties.Property, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	p, err := uow.Properties().GetByID(ctx, id)
	if errors.Is(err, properties.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PropertyService) GetAll(ctx context.Context) ([]properties.Property, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	return uow.Properties().GetAll(ctx)
}

func (s *PropertyService) ListByOwner(ctx context.Context, idOwner int64) ([]properties.Property, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	return uow.Properties().ListByOwner(ctx, idOwner)
}

func (s *PropertyService) Update(ctx context.Context, id int64, in PropertyInput) (*properties.Property, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	prev, err := uow.Properties().GetByID(ctx, id)
	if errors.Is(err, properties.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if in.IDOwner != prev.IDOwner {
		exists, err := uow.Owners().Exists(ctx, in.IDOwner)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrOwnerNotFound
		}
	}

	taken, err := uow.Properties().CodeInternalExists(ctx, in.CodeInternal, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCodeInternalInUse
	}

	next := properties.Property{
		IDProperty:   id,
		Name:         in.Name,
		Address:      in.Address,
		Price:        in.Price,
		CodeInternal: in.CodeInternal,
		Year:         in.Year,
		IDOwner:      in.IDOwner,
	}
	if err := uow.Properties().Update(ctx, next); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	if err := denorm.RecountOwner(ctx, uow.Owners(), uow.Properties(), prev.IDOwner); err != nil {
		return nil, err
	}
	if in.IDOwner != prev.IDOwner {
		if err := denorm.RecountOwner(ctx, uow.Owners(), uow.Properties(), in.IDOwner); err != nil {
			return nil, err
		}
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	return &next, nil
}

// UpdatePrice es el cambio de precio puntual del catálogo; no toca
// owner ni unicidad.
func (s *PropertyService) UpdatePrice(ctx context.Context, id int64, price float64) (*properties.Property, error) {
	if price < 0 {
		return nil, ErrInvalidInput
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	p, err := uow.Properties().GetByID(ctx, id)
	if errors.Is(err, properties.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Price = price
	if err := uow.Properties().Update(ctx, p); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete limpia imágenes y traces explícitamente antes de borrar la
// propiedad: el backend documental no tiene cascade y así el ciclo de
// vida queda igual en ambos backends.
func (s *PropertyService) Delete(ctx context.Context, id int64) (bool, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	p, err := uow.Properties().GetByID(ctx, id)
	if errors.Is(err, properties.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := uow.Images().DeleteByProperty(ctx, id); err != nil {
		return false, err
	}
	if _, err := uow.Traces().DeleteByProperty(ctx, id); err != nil {
		return false, err
	}
	if err := uow.Properties().Delete(ctx, id); err != nil {
		return false, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return false, err
	}

	if err := denorm.RecountOwner(ctx, uow.Owners(), uow.Properties(), p.IDOwner); err != nil {
		return false, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return false, err
	}
	return true, nil
}
