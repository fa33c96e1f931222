package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"realty-catalog/internal/domain/owners"
)

type ownersRepo struct {
	u *unitOfWork
}

const ownerColumns = `id_owner, name, address, photo, birthday, document_number, email, properties_count`

func (r *ownersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	row := r.u.q().QueryRowContext(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		WHERE id_owner = $1
	`, id)
	return scanOwner(row)
}

func (r *ownersRepo) GetAll(ctx context.Context) ([]owners.Owner, error) {
	rows, err := r.u.q().QueryContext(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		ORDER BY id_owner
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		o, err := scanOwnerRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *ownersRepo) Add(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	w, err := r.u.writer(ctx)
	if err != nil {
		return owners.Owner{}, err
	}

	err = w.QueryRowContext(ctx, `
		INSERT INTO owners (name, address, photo, birthday, document_number, email, properties_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id_owner
	`,
		o.Name,
		o.Address,
		o.Photo,
		toNullDate(o.Birthday),
		o.DocumentNumber,
		o.Email,
		o.PropertiesCount,
	).Scan(&o.IDOwner)
	if err != nil {
		return owners.Owner{}, err
	}

	r.u.noteChange(1)
	return o, nil
}

func (r *ownersRepo) Update(ctx context.Context, o owners.Owner) error {
	n, err := r.u.exec(ctx, `
		UPDATE owners
		SET
			name = $2,
			address = $3,
			photo = $4,
			birthday = $5,
			document_number = $6,
			email = $7
		WHERE id_owner = $1
	`,
		o.IDOwner,
		o.Name,
		o.Address,
		o.Photo,
		toNullDate(o.Birthday),
		o.DocumentNumber,
		o.Email,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *ownersRepo) Delete(ctx context.Context, id int64) error {
	n, err := r.u.exec(ctx, `DELETE FROM owners WHERE id_owner = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *ownersRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.u.q().QueryRowContext(ctx, `SELECT 1 FROM owners WHERE id_owner = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ownersRepo) DocumentNumberExists(ctx context.Context, documentNumber string, excludeID int64) (bool, error) {
	var one int
	err := r.u.q().QueryRowContext(ctx, `
		SELECT 1 FROM owners
		WHERE document_number = $1 AND id_owner <> $2
		LIMIT 1
	`, documentNumber, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ownersRepo) UpdatePropertiesCount(ctx context.Context, id int64, count int) error {
	n, err := r.u.exec(ctx, `
		UPDATE owners SET properties_count = $2 WHERE id_owner = $1
	`, id, count)
	if err != nil {
		return err
	}
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func scanOwner(row *sql.Row) (owners.Owner, error) {
	var o owners.Owner
	var bd sql.NullTime
	err := row.Scan(
		&o.IDOwner,
		&o.Name,
		&o.Address,
		&o.Photo,
		&bd,
		&o.DocumentNumber,
		&o.Email,
		&o.PropertiesCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return owners.Owner{}, owners.ErrNotFound
	}
	if err != nil {
		return owners.Owner{}, err
	}
	o.Birthday = fromNullDate(bd)
	return o, nil
}

func scanOwnerRows(rows *sql.Rows) (owners.Owner, error) {
	var o owners.Owner
	var bd sql.NullTime
	if err := rows.Scan(
		&o.IDOwner,
		&o.Name,
		&o.Address,
		&o.Photo,
		&bd,
		&o.DocumentNumber,
		&o.Email,
		&o.PropertiesCount,
	); err != nil {
		return owners.Owner{}, err
	}
	o.Birthday = fromNullDate(bd)
	return o, nil
}

// birthday es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullDate(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
