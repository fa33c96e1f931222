package postgres

import (
	"context"
	"database/sql"
	"errors"

	"realty-catalog/internal/domain/images"
)

type imagesRepo struct {
	u *unitOfWork
}

func (r *imagesRepo) GetByID(ctx context.Context, id int64) (images.PropertyImage, error) {
	row := r.u.q().QueryRowContext(ctx, `
		SELECT id_image, id_property, file, enabled
		FROM property_images
		WHERE id_image = $1
	`, id)

	var img images.PropertyImage
	err := row.Scan(&img.IDImage, &img.IDProperty, &img.File, &img.Enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return images.PropertyImage{}, images.ErrNotFound
	}
	if err != nil {
		return images.PropertyImage{}, err
	}
	return img, nil
}

func (r *imagesRepo) GetAll(ctx context.Context) ([]images.PropertyImage, error) {
	return r.list(ctx, `
		SELECT id_image, id_property, file, enabled
		FROM property_images
		ORDER BY id_image
	`)
}

func (r *imagesRepo) ListByProperty(ctx context.Context, idProperty int64) ([]images.PropertyImage, error) {
	return r.list(ctx, `
		SELECT id_image, id_property, file, enabled
		FROM property_images
		WHERE id_property = $1
		ORDER BY id_image
	`, idProperty)
}

func (r *imagesRepo) list(ctx context.Context, query string, args ...any) ([]images.PropertyImage, error) {
	rows, err := r.u.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]images.PropertyImage, 0)
	for rows.Next() {
		var img images.PropertyImage
		if err := rows.Scan(&img.IDImage, &img.IDProperty, &img.File, &img.Enabled); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *imagesRepo) Add(ctx context.Context, img images.PropertyImage) (images.PropertyImage, error) {
	w, err := r.u.writer(ctx)
	if err != nil {
		return images.PropertyImage{}, err
	}

	err = w.QueryRowContext(ctx, `
		INSERT INTO property_images (id_property, file, enabled)
		VALUES ($1,$2,$3)
		RETURNING id_image
	`, img.IDProperty, img.File, img.Enabled).Scan(&img.IDImage)
	if err != nil {
		return images.PropertyImage{}, err
	}

	r.u.noteChange(1)
	return img, nil
}

func (r *imagesRepo) Update(ctx context.Context, img images.PropertyImage) error {
	n, err := r.u.exec(ctx, `
		UPDATE property_images
		SET id_property = $2, file = $3, enabled = $4
		WHERE id_image = $1
	`, img.IDImage, img.IDProperty, img.File, img.Enabled)
	if err != nil {
		return err
	}
	if n == 0 {
		return images.ErrNotFound
	}
	return nil
}

func (r *imagesRepo) Delete(ctx context.Context, id int64) error {
	n, err := r.u.exec(ctx, `DELETE FROM property_images WHERE id_image = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return images.ErrNotFound
	}
	return nil
}

func (r *imagesRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.u.q().QueryRowContext(ctx, `SELECT 1 FROM property_images WHERE id_image = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *imagesRepo) DeleteByProperty(ctx context.Context, idProperty int64) (int64, error) {
	return r.u.exec(ctx, `DELETE FROM property_images WHERE id_property = $1`, idProperty)
}
