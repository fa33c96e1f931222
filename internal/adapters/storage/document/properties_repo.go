package document

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/domain/properties"
)

type propertiesRepo struct {
	s *Store
	u *unitOfWork
}

func (r *propertiesRepo) GetByID(ctx context.Context, id int64) (properties.Property, error) {
	var doc propertyDoc
	err := r.s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, docKey(colProperties, id), &doc)
	})
	if isKeyNotFound(err) {
		return properties.Property{}, properties.ErrNotFound
	}
	if err != nil {
		return properties.Property{}, err
	}
	return doc.toModel(), nil
}

func (r *propertiesRepo) GetAll(ctx context.Context) ([]properties.Property, error) {
	out := make([]properties.Property, 0)
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachProperty(txn, func(doc propertyDoc) error {
			out = append(out, doc.toModel())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *propertiesRepo) ListByOwner(ctx context.Context, idOwner int64) ([]properties.Property, error) {
	out := make([]properties.Property, 0)
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachProperty(txn, func(doc propertyDoc) error {
			if doc.Owner.IDOwner == idOwner {
				out = append(out, doc.toModel())
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *propertiesRepo) Add(ctx context.Context, p properties.Property) (properties.Property, error) {
	r.s.keys.mu.Lock()
	defer r.s.keys.mu.Unlock()

	err := r.s.db.Update(func(txn *badger.Txn) error {
		// El documento lleva el snapshot embebido, no una FK: se
		// materializa acá desde la fuente de verdad.
		snap, err := ownerSnapshotIn(txn, p.IDOwner)
		if err != nil {
			return err
		}

		if p.IDProperty == 0 {
			p.IDProperty = nextIDIn(txn, colProperties)
		}
		doc := propertyDoc{
			StorageID:    uuid.NewString(),
			IDProperty:   p.IDProperty,
			Name:         p.Name,
			Address:      p.Address,
			Price:        p.Price,
			CodeInternal: p.CodeInternal,
			Year:         p.Year,
			Owner:        snap,
			Images:       embeddedImagesIn(txn, p.IDProperty),
		}
		return setJSON(txn, docKey(colProperties, p.IDProperty), doc)
	})
	if err != nil {
		return properties.Property{}, err
	}

	r.u.note(1)
	return p, nil
}

func (r *propertiesRepo) Update(ctx context.Context, p properties.Property) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colProperties, p.IDProperty)

		var prev propertyDoc
		if err := getJSON(txn, key, &prev); err != nil {
			return err
		}

		snap, err := ownerSnapshotIn(txn, p.IDOwner)
		if err != nil {
			return err
		}

		doc := propertyDoc{
			StorageID:    prev.StorageID,
			IDProperty:   p.IDProperty,
			Name:         p.Name,
			Address:      p.Address,
			Price:        p.Price,
			CodeInternal: p.CodeInternal,
			Year:         p.Year,
			Owner:        snap,
			Images:       embeddedImagesIn(txn, p.IDProperty),
		}
		return setJSON(txn, key, doc)
	})
	if isKeyNotFound(err) {
		return properties.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

// Delete borra solo el documento de la propiedad. Sin cascade nativo,
// imágenes y traces los limpia el servicio vía DeleteByProperty.
func (r *propertiesRepo) Delete(ctx context.Context, id int64) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colProperties, id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if isKeyNotFound(err) {
		return properties.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

func (r *propertiesRepo) Exists(ctx context.Context, id int64) (bool, error) {
	err := r.s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(docKey(colProperties, id))
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

func (r *propertiesRepo) CodeInternalExists(ctx context.Context, codeInternal string, excludeID int64) (bool, error) {
	found := false
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachProperty(txn, func(doc propertyDoc) error {
			if doc.CodeInternal == codeInternal && doc.IDProperty != excludeID {
				found = true
			}
			return nil
		})
	})
	return found, err
}

func (r *propertiesRepo) CountByOwner(ctx context.Context, idOwner int64) (int, error) {
	n := 0
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachProperty(txn, func(doc propertyDoc) error {
			if doc.Owner.IDOwner == idOwner {
				n++
			}
			return nil
		})
	})
	return n, err
}

func (r *propertiesRepo) UpdateOwnerSnapshot(ctx context.Context, snap properties.OwnerSnapshot) (int64, error) {
	var touched int64
	err := r.s.db.Update(func(txn *badger.Txn) error {
		var stale []propertyDoc
		err := eachProperty(txn, func(doc propertyDoc) error {
			if doc.Owner.IDOwner == snap.IDOwner {
				stale = append(stale, doc)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, doc := range stale {
			doc.Owner = ownerSnapshotDoc{
				IDOwner: snap.IDOwner,
				Name:    snap.Name,
				Address: snap.Address,
				Photo:   snap.Photo,
			}
			if err := setJSON(txn, docKey(colProperties, doc.IDProperty), doc); err != nil {
				return err
			}
			touched++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.u.note(touched)
	return touched, nil
}

// ownerSnapshotIn resuelve el snapshot desde el documento del owner.
func ownerSnapshotIn(txn *badger.Txn, idOwner int64) (ownerSnapshotDoc, error) {
	var doc ownerDoc
	err := getJSON(txn, docKey(colOwners, idOwner), &doc)
	if isKeyNotFound(err) {
		return ownerSnapshotDoc{}, owners.ErrNotFound
	}
	if err != nil {
		return ownerSnapshotDoc{}, err
	}
	return ownerSnapshotDoc{
		IDOwner: doc.IDOwner,
		Name:    doc.Name,
		Address: doc.Address,
		Photo:   doc.Photo,
	}, nil
}

func eachProperty(txn *badger.Txn, fn func(propertyDoc) error) error {
	prefix := colPrefix(colProperties)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var doc propertyDoc
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
