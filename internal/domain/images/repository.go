package images

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("images: not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (PropertyImage, error)
	GetAll(ctx context.Context) ([]PropertyImage, error)
	Add(ctx context.Context, img PropertyImage) (PropertyImage, error)
	Update(ctx context.Context, img PropertyImage) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)

	ListByProperty(ctx context.Context, idProperty int64) ([]PropertyImage, error)

	// DeleteByProperty borra todas las imágenes de la propiedad y
	// devuelve cuántas borró. Es la pieza de cascade manual del
	// backend documental.
	DeleteByProperty(ctx context.Context, idProperty int64) (int64, error)
}
