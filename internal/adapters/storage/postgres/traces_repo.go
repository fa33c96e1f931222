package postgres

import (
	"context"
	"database/sql"
	"errors"

	"realty-catalog/internal/domain/traces"
)

type tracesRepo struct {
	u *unitOfWork
}

func (r *tracesRepo) GetByID(ctx context.Context, id int64) (traces.PropertyTrace, error) {
	row := r.u.q().QueryRowContext(ctx, `
		SELECT id_trace, id_property, date_sale, name, value, tax
		FROM property_traces
		WHERE id_trace = $1
	`, id)

	var tr traces.PropertyTrace
	err := row.Scan(&tr.IDTrace, &tr.IDProperty, &tr.DateSale, &tr.Name, &tr.Value, &tr.Tax)
	if errors.Is(err, sql.ErrNoRows) {
		return traces.PropertyTrace{}, traces.ErrNotFound
	}
	if err != nil {
		return traces.PropertyTrace{}, err
	}
	return tr, nil
}

// Orden por date_sale desc: es el borde de consulta, no un invariante
// de almacenamiento.
func (r *tracesRepo) GetAll(ctx context.Context) ([]traces.PropertyTrace, error) {
	return r.list(ctx, `
		SELECT id_trace, id_property, date_sale, name, value, tax
		FROM property_traces
		ORDER BY date_sale DESC, id_trace DESC
	`)
}

func (r *tracesRepo) ListByProperty(ctx context.Context, idProperty int64) ([]traces.PropertyTrace, error) {
	return r.list(ctx, `
		SELECT id_trace, id_property, date_sale, name, value, tax
		FROM property_traces
		WHERE id_property = $1
		ORDER BY date_sale DESC, id_trace DESC
	`, idProperty)
}

func (r *tracesRepo) list(ctx context.Context, query string, args ...any) ([]traces.PropertyTrace, error) {
	rows, err := r.u.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]traces.PropertyTrace, 0)
	for rows.Next() {
		var tr traces.PropertyTrace
		if err := rows.Scan(&tr.IDTrace, &tr.IDProperty, &tr.DateSale, &tr.Name, &tr.Value, &tr.Tax); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

func (r *tracesRepo) Add(ctx context.Context, tr traces.PropertyTrace) (traces.PropertyTrace, error) {
	w, err := r.u.writer(ctx)
	if err != nil {
		return traces.PropertyTrace{}, err
	}

	err = w.QueryRowContext(ctx, `
		INSERT INTO property_traces (id_property, date_sale, name, value, tax)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id_trace
	`, tr.IDProperty, tr.DateSale, tr.Name, tr.Value, tr.Tax).Scan(&tr.IDTrace)
	if err != nil {
		return traces.PropertyTrace{}, err
	}

	r.u.noteChange(1)
	return tr, nil
}

func (r *tracesRepo) Update(ctx context.Context, tr traces.PropertyTrace) error {
	n, err := r.u.exec(ctx, `
		UPDATE property_traces
		SET id_property = $2, date_sale = $3, name = $4, value = $5, tax = $6
		WHERE id_trace = $1
	`, tr.IDTrace, tr.IDProperty, tr.DateSale, tr.Name, tr.Value, tr.Tax)
	if err != nil {
		return err
	}
	if n == 0 {
		return traces.ErrNotFound
	}
	return nil
}

func (r *tracesRepo) Delete(ctx context.Context, id int64) error {
	n, err := r.u.exec(ctx, `DELETE FROM property_traces WHERE id_trace = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return traces.ErrNotFound
	}
	return nil
}

func (r *tracesRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.u.q().QueryRowContext(ctx, `SELECT 1 FROM property_traces WHERE id_trace = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *tracesRepo) DeleteByProperty(ctx context.Context, idProperty int64) (int64, error) {
	return r.u.exec(ctx, `DELETE FROM property_traces WHERE id_property = $1`, idProperty)
}
