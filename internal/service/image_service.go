package service

import (
	"context"
	"errors"
	"strings"

	"realty-catalog/internal/domain/images"
	"realty-catalog/internal/storage"
)

type ImageService struct {
	store storage.Factory
}

func NewImageService(store storage.Factory) *ImageService {
	return &ImageService{store: store}
}

type ImageInput struct {
	IDProperty int64
	File       string
	Enabled    bool
}

func (in *ImageInput) validate() error {
	in.File = strings.TrimSpace(in.File)
	if in.File == "" || in.IDProperty <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *ImageService) Create(ctx context.Context, in ImageInput) (images.PropertyImage, error) {
	if err := in.validate(); err != nil {
		return images.PropertyImage{}, err
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	exists, err := uow.Properties().Exists(ctx, in.IDProperty)
	if err != nil {
		return images.PropertyImage{}, err
	}
	if !exists {
		return images.PropertyImage{}, ErrPropertyNotFound
	}

	img, err := uow.Images().Add(ctx, images.PropertyImage{
		IDProperty: in.IDProperty,
		File:       in.File,
		Enabled:    in.Enabled,
	})
	if err != nil {
		return images.PropertyImage{}, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return images.PropertyImage{}, err
	}
	return img, nil
}

func (s *ImageService) GetByID(ctx context.Context, id int64) (*images.PropertyImage, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	img, err := uow.Images().GetByID(ctx, id)
	if errors.Is(err, images.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *ImageService) GetAll(ctx context.Context) ([]images.PropertyImage, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	return uow.Images().GetAll(ctx)
}

func (s *ImageService) ListByProperty(ctx context.Context, idProperty int64) ([]images.PropertyImage, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	return uow.Images().ListByProperty(ctx, idProperty)
}

func (s *ImageService) Update(ctx context.Context, id int64, in ImageInput) (*images.PropertyImage, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	prev, err := uow.Images().GetByID(ctx, id)
	if errors.Is(err, images.ErrNotFound) {
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

	next := images.PropertyImage{
		IDImage:    id,
		IDProperty: in.IDProperty,
		File:       in.File,
		Enabled:    in.Enabled,
	}
	if err := uow.Images().Update(ctx, next); err != nil {
		return nil, err
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *ImageService) Delete(ctx context.Context, id int64) (bool, error) {
	uow := s.store.NewUnitOfWork()
	defer uow.Close()

	err := uow.Images().Delete(ctx, id)
	if errors.Is(err, images.ErrNotFound) {
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
