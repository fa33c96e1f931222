package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"realty-catalog/internal/domain/traces"
	"realty-catalog/internal/storage"
)

type TraceService struct {
	store storage.Factory
}

func NewTraceService(store storage.Factory) *TraceService {
	return &TraceService{store: store}
}

type TraceInput struct {
	IDProperty int64
	DateSale   time.Time
	Name       string
	Value      float64
	Tax        float64
}

func (in *TraceInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.IDProperty <= 0 || in.DateSale.IsZero() {
		return ErrInvalidInput
	}
	if in.Value < 0 || in.Tax < 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *TraceService) Create(ctx context.Context, in TraceInput) (traces.PropertyTrace, error) {
	if err := in.validate(); err != nil {
		return traces.PropertyTrace{}, err
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	exists, err := uow.Properties().Exists(ctx, in.IDProperty)
	if err != nil {
		return traces.PropertyTrace{}, err
	}
	if !exists {
		return traces.PropertyTrace{}, ErrPropertyNotFound
	}

	tr, err := uow.Traces().Add(ctx, traces.PropertyTrace{
		IDProperty: in.IDProperty,
		DateSale:   in.DateSale,
		Name:       in.Name,
		Value:      in.Value,
		Tax:        in.Tax,
	})
	if err != nil {
		return traces.PropertyTrace{}, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return traces.PropertyTrace{}, err
	}
	return tr, nil
}

func (s *TraceService) GetByID(ctx context.Context, id int64) (*traces.PropertyTrace, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	tr, err := uow.Traces().GetByID(ctx, id)
	if errors.Is(err, traces.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (s *TraceService) GetAll(ctx context.Context) ([]traces.PropertyTrace, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	return uow.Traces().GetAll(ctx)
}

func (s *TraceService) ListByProperty(ctx context.Context, idProperty int64) ([]traces.PropertyTrace, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	return uow.Traces().ListByProperty(ctx, idProperty)
}

func (s *TraceService) Update(ctx context.Context, id int64, in TraceInput) (*traces.PropertyTrace, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	prev, err := uow.Traces().GetByID(ctx, id)
	if errors.Is(err, traces.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if in.IDProperty != prev.IDProperty {
		exists, err := uow.Properties().Exists(ctx, in.IDProperty)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrPropertyNotFound
		}
	}

	next := traces.PropertyTrace{
		IDTrace:    id,
		IDProperty: in.IDProperty,
		DateSale:   in.DateSale,
		Name:       in.Name,
		Value:      in.Value,
		Tax:        in.Tax,
	}
	if err := uow.Traces().Update(ctx, next); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *TraceService) Delete(ctx context.Context, id int64) (bool, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	err := uow.Traces().Delete(ctx, id)
	if errors.Is(err, traces.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return false, err
	}
	return true, nil
}
