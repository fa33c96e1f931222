package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"realty-catalog/internal/domain/denorm"
	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/storage"
)

type OwnerService struct {
	store storage.Factory
}

func NewOwnerService(store storage.Factory) *OwnerService {
	return &OwnerService{store: store}
}

// OwnerInput alimenta alta y update (semántica de reemplazo completo).
type OwnerInput struct {
	Name           string
	Address        string
	Photo          string
	Birthday       *time.Time
	DocumentNumber string
	Email          string
}

func (in *OwnerInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Photo = strings.TrimSpace(in.Photo)
	in.DocumentNumber = strings.TrimSpace(in.DocumentNumber)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" || in.Address == "" || in.DocumentNumber == "" {
		return ErrInvalidInput
	}
	return nil
}

func (s *OwnerService) Create(ctx context.Context, in OwnerInput) (owners.Owner, error) {
	if err := in.validate(); err != nil {
		return owners.Owner{}, err
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	taken, err := uow.Owners().DocumentNumberExists(ctx, in.DocumentNumber, 0)
	if err != nil {
		return owners.Owner{}, err
	}
	if taken {
		return owners.Owner{}, ErrDocumentNumberInUse
	}

	o, err := uow.Owners().Add(ctx, owners.Owner{
		Name:           in.Name,
		Address:        in.Address,
		Photo:          in.Photo,
		Birthday:       in.Birthday,
		DocumentNumber: in.DocumentNumber,
		Email:          in.Email,
	})
	if err != nil {
		return owners.Owner{}, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}

// GetByID devuelve nil sin error cuando el owner no existe: ausencia no
// es falla.
func (s *OwnerService) GetByID(ctx context.Context, id int64) (*owners.Owner, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	o, err := uow.Owners().GetByID(ctx, id)
	if errors.Is(err, owners.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OwnerService) GetAll(ctx context.Context) ([]owners.Owner, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	return uow.Owners().GetAll(ctx)
}

// Update reemplaza los campos del owner y después dispara el resync:
// snapshot embebido en las propiedades + contador derivado.
func (s *OwnerService) Update(ctx context.Context, id int64, in OwnerInput) (*owners.Owner, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	prev, err := uow.Owners().GetByID(ctx, id)
	if errors.Is(err, owners.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// La sonda excluye al propio owner: conservar su número no es
	// colisión.
	taken, err := uow.Owners().DocumentNumberExists(ctx, in.DocumentNumber, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDocumentNumberInUse
	}

	prev.Name = in.Name
	prev.Address = in.Address
	prev.Photo = in.Photo
	prev.Birthday = in.Birthday
	prev.DocumentNumber = in.DocumentNumber
	prev.Email = in.Email

	if err := uow.Owners().Update(ctx, prev); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	if err := denorm.ResyncOwner(ctx, uow.Owners(), uow.Properties(), id); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	fresh, err := uow.Owners().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &fresh, nil
}

// Delete devuelve false sin error si el owner no existe, y rechaza con
// ErrOwnerHasProperties mientras alguna propiedad lo referencie.
func (s *OwnerService) Delete(ctx context.Context, id int64) (bool, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	exists, err := uow.Owners().Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	n, err := uow.Properties().CountByOwner(ctx, id)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, ErrOwnerHasProperties
	}

	if err := uow.Owners().Delete(ctx, id); err != nil {
		if errors.Is(err, owners.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return false, err
	}
	return true, nil
}
