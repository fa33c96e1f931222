package postgres

import (
	"context"
	"database/sql"
	"errors"

	"realty-catalog/internal/domain/properties"
)

type propertiesRepo struct {
	u *unitOfWork
}

const propertyColumns = `id_property, name, address, price, code_internal, year, id_owner`

func (r *propertiesRepo) GetByID(ctx context.Context, id int64) (properties.Property, error) {
	row := r.u.q().QueryRowContext(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		WHERE id_property = $1
	`, id)

	var p properties.Property
	err := row.Scan(&p.IDProperty, &p.Name, &p.Address, &p.Price, &p.CodeInternal, &p.Year, &p.IDOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return properties.Property{}, properties.ErrNotFound
	}
	if err != nil {
		return properties.Property{}, err
	}
	return p, nil
}

func (r *propertiesRepo) GetAll(ctx context.Context) ([]properties.Property, error) {
	return r.list(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		ORDER BY id_property
	`)
}

func (r *propertiesRepo) ListByOwner(ctx context.Context, idOwner int64) ([]properties.Property, error) {
	return r.list(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		WHERE id_owner = $1
		ORDER BY id_property
	`, idOwner)
}

func (r *propertiesRepo) list(ctx context.Context, query string, args ...any) ([]properties.Property, error) {
	rows, err := r.u.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]properties.Property, 0)
	for rows.Next() {
		var p properties.Property
		if err := rows.Scan(&p.IDProperty, &p.Name, &p.Address, &p.Price, &p.CodeInternal, &p.Year, &p.IDOwner); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertiesRepo) Add(ctx context.Context, p properties.Property) (properties.Property, error) {
	w, err := r.u.writer(ctx)
	if err != nil {
		return properties.Property{}, err
	}

	err = w.QueryRowContext(ctx, `
		INSERT INTO properties (name, address, price, code_internal, year, id_owner)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id_property
	`,
		p.Name,
		p.Address,
		p.Price,
		p.CodeInternal,
		p.Year,
		p.IDOwner,
	).Scan(&p.IDProperty)
	if err != nil {
		return properties.Property{}, err
	}

	r.u.noteChange(1)
	return p, nil
}

func (r *propertiesRepo) Update(ctx context.Context, p properties.Property) error {
	n, err := r.u.exec(ctx, `
		UPDATE properties
		SET
			name = $2,
			address = $3,
			price = $4,
			code_internal = $5,
			year = $6,
			id_owner = $7
		WHERE id_property = $1
	`,
		p.IDProperty,
		p.Name,
		p.Address,
		p.Price,
		p.CodeInternal,
		p.Year,
		p.IDOwner,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return properties.ErrNotFound
	}
	return nil
}

func (r *propertiesRepo) Delete(ctx context.Context, id int64) error {
	// Las FK con ON DELETE CASCADE arrastran imágenes y traces.
	n, err := r.u.exec(ctx, `DELETE FROM properties WHERE id_property = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return properties.ErrNotFound
	}
	return nil
}

func (r *propertiesRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.u.q().QueryRowContext(ctx, `SELECT 1 FROM properties WHERE id_property = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *propertiesRepo) CodeInternalExists(ctx context.Context, codeInternal string, excludeID int64) (bool, error) {
	var one int
	err := r.u.q().QueryRowContext(ctx, `
		SELECT 1 FROM properties
		WHERE code_internal = $1 AND id_property <> $2
		LIMIT 1
	`, codeInternal, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *propertiesRepo) CountByOwner(ctx context.Context, idOwner int64) (int, error) {
	var n int
	err := r.u.q().QueryRowContext(ctx, `
		SELECT count(*) FROM properties WHERE id_owner = $1
	`, idOwner).Scan(&n)
	return n, err
}

// UpdateOwnerSnapshot no tiene nada que reescribir en el modelo
// normalizado: el owner vive en su tabla y las propiedades solo llevan
// la FK.
func (r *propertiesRepo) UpdateOwnerSnapshot(ctx context.Context, snap properties.OwnerSnapshot) (int64, error) {
	return 0, nil
}
