package document

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"realty-catalog/internal/domain/owners"
)

type ownersRepo struct {
	s *Store
	u *unitOfWork
}

func (r *ownersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	var doc ownerDoc
	err := r.s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, docKey(colOwners, id), &doc)
	})
	if isKeyNotFound(err) {
		return owners.Owner{}, owners.ErrNotFound
	}
	if err != nil {
		return owners.Owner{}, err
	}
	return doc.toModel(), nil
}

func (r *ownersRepo) GetAll(ctx context.Context) ([]owners.Owner, error) {
	out := make([]owners.Owner, 0)
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachOwner(txn, func(doc ownerDoc) error {
			out = append(out, doc.toModel())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ownersRepo) Add(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	// El lock acopla leer-max con escribir el documento nuevo; sin él
	// dos altas concurrentes podrían sintetizar el mismo id.
	r.s.keys.mu.Lock()
	defer r.s.keys.mu.Unlock()

	err := r.s.db.Update(func(txn *badger.Txn) error {
		if o.IDOwner == 0 {
			o.IDOwner = nextIDIn(txn, colOwners)
		}
		doc := ownerDoc{
			StorageID:       uuid.NewString(),
			IDOwner:         o.IDOwner,
			Name:            o.Name,
			Address:         o.Address,
			Photo:           o.Photo,
			Birthday:        o.Birthday,
			DocumentNumber:  o.DocumentNumber,
			Email:           o.Email,
			PropertiesCount: o.PropertiesCount,
		}
		return setJSON(txn, docKey(colOwners, o.IDOwner), doc)
	})
	if err != nil {
		return owners.Owner{}, err
	}

	r.u.note(1)
	return o, nil
}

func (r *ownersRepo) Update(ctx context.Context, o owners.Owner) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colOwners, o.IDOwner)

		var prev ownerDoc
		if err := getJSON(txn, key, &prev); err != nil {
			return err
		}

		// Reemplazo completo, conservando el handle físico y el
		// contador derivado (lo mantiene el sincronizador).
		doc := ownerDoc{
			StorageID:       prev.StorageID,
			IDOwner:         o.IDOwner,
			Name:            o.Name,
			Address:         o.Address,
			Photo:           o.Photo,
			Birthday:        o.Birthday,
			DocumentNumber:  o.DocumentNumber,
			Email:           o.Email,
			PropertiesCount: prev.PropertiesCount,
		}
		return setJSON(txn, key, doc)
	})
	if isKeyNotFound(err) {
		return owners.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

func (r *ownersRepo) Delete(ctx context.Context, id int64) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colOwners, id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if isKeyNotFound(err) {
		return owners.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

func (r *ownersRepo) Exists(ctx context.Context, id int64) (bool, error) {
	err := r.s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(docKey(colOwners, id))
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

func (r *ownersRepo) DocumentNumberExists(ctx context.Context, documentNumber string, excludeID int64) (bool, error) {
	found := false
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachOwner(txn, func(doc ownerDoc) error {
			if doc.DocumentNumber == documentNumber && doc.IDOwner != excludeID {
				found = true
			}
			return nil
		})
	})
	return found, err
}

func (r *ownersRepo) UpdatePropertiesCount(ctx context.Context, id int64, count int) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colOwners, id)

		var doc ownerDoc
		if err := getJSON(txn, key, &doc); err != nil {
			return err
		}
		doc.PropertiesCount = count
		return setJSON(txn, key, doc)
	})
	if isKeyNotFound(err) {
		return owners.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

func eachOwner(txn *badger.Txn, fn func(ownerDoc) error) error {
	prefix := colPrefix(colOwners)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var doc ownerDoc
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
