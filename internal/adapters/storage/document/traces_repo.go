package document

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"realty-catalog/internal/domain/traces"
)

type tracesRepo struct {
	s *Store
	u *unitOfWork
}

func (r *tracesRepo) GetByID(ctx context.Context, id int64) (traces.PropertyTrace, error) {
	var doc traceDoc
	err := r.s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, docKey(colTraces, id), &doc)
	})
	if isKeyNotFound(err) {
		return traces.PropertyTrace{}, traces.ErrNotFound
	}
	if err != nil {
		return traces.PropertyTrace{}, err
	}
	return doc.toModel(), nil
}

func (r *tracesRepo) GetAll(ctx context.Context) ([]traces.PropertyTrace, error) {
	return r.collect(func(traces.PropertyTrace) bool { return true })
}

func (r *tracesRepo) ListByProperty(ctx context.Context, idProperty int64) ([]traces.PropertyTrace, error) {
	return r.collect(func(tr traces.PropertyTrace) bool { return tr.IDProperty == idProperty })
}

func (r *tracesRepo) collect(keep func(traces.PropertyTrace) bool) ([]traces.PropertyTrace, error) {
	out := make([]traces.PropertyTrace, 0)
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachTrace(txn, func(doc traceDoc) error {
			if tr := doc.toModel(); keep(tr) {
				out = append(out, tr)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// date_sale descendente en el borde de consulta.
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateSale.Equal(out[j].DateSale) {
			return out[i].IDTrace > out[j].IDTrace
		}
		return out[i].DateSale.After(out[j].DateSale)
	})
	return out, nil
}

func (r *tracesRepo) Add(ctx context.Context, tr traces.PropertyTrace) (traces.PropertyTrace, error) {
	r.s.keys.mu.Lock()
	defer r.s.keys.mu.Unlock()

	err := r.s.db.Update(func(txn *badger.Txn) error {
		if tr.IDTrace == 0 {
			tr.IDTrace = nextIDIn(txn, colTraces)
		}
		doc := traceDoc{
			StorageID:  uuid.NewString(),
			IDTrace:    tr.IDTrace,
			IDProperty: tr.IDProperty,
			DateSale:   tr.DateSale,
			Name:       tr.Name,
			Value:      tr.Value,
			Tax:        tr.Tax,
		}
		return setJSON(txn, docKey(colTraces, tr.IDTrace), doc)
	})
	if err != nil {
		return traces.PropertyTrace{}, err
	}

	r.u.note(1)
	return tr, nil
}

func (r *tracesRepo) Update(ctx context.Context, tr traces.PropertyTrace) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colTraces, tr.IDTrace)

		var prev traceDoc
		if err := getJSON(txn, key, &prev); err != nil {
			return err
		}

		doc := traceDoc{
			StorageID:  prev.StorageID,
			IDTrace:    tr.IDTrace,
			IDProperty: tr.IDProperty,
			DateSale:   tr.DateSale,
			Name:       tr.Name,
			Value:      tr.Value,
			Tax:        tr.Tax,
		}
		return setJSON(txn, key, doc)
	})
	if isKeyNotFound(err) {
		return traces.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

func (r *tracesRepo) Delete(ctx context.Context, id int64) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colTraces, id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if isKeyNotFound(err) {
		return traces.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

func (r *tracesRepo) Exists(ctx context.Context, id int64) (bool, error) {
	err := r.s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(docKey(colTraces, id))
		return err
	})
	if isKeyNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *tracesRepo) DeleteByProperty(ctx context.Context, idProperty int64) (int64, error) {
	var deleted int64
	err := r.s.db.Update(func(txn *badger.Txn) error {
		var victims []int64
		err := eachTrace(txn, func(doc traceDoc) error {
			if doc.IDProperty == idProperty {
				victims = append(victims, doc.IDTrace)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, id := range victims {
			if err := txn.Delete(docKey(colTraces, id)); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.u.note(deleted)
	return deleted, nil
}

func eachTrace(txn *badger.Txn, fn func(traceDoc) error) error {
	prefix := colPrefix(colTraces)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var doc traceDoc
		err := it.Item().Value(func(b []byte) error {
			return decodeJSON(b, &doc)
		})
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}
