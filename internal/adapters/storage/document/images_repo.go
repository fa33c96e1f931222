package document

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"realty-catalog/internal/domain/images"
)

type imagesRepo struct {
	s *Store
	u *unitOfWork
}

func (r *imagesRepo) GetByID(ctx context.Context, id int64) (images.PropertyImage, error) {
	var doc imageDoc
	err := r.s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, docKey(colImages, id), &doc)
	})
	if isKeyNotFound(err) {
		return images.PropertyImage{}, images.ErrNotFound
	}
	if err != nil {
		return images.PropertyImage{}, err
	}
	return doc.toModel(), nil
}

func (r *imagesRepo) GetAll(ctx context.Context) ([]images.PropertyImage, error) {
	out := make([]images.PropertyImage, 0)
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachImage(txn, func(doc imageDoc) error {
			out = append(out, doc.toModel())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *imagesRepo) ListByProperty(ctx context.Context, idProperty int64) ([]images.PropertyImage, error) {
	out := make([]images.PropertyImage, 0)
	err := r.s.db.View(func(txn *badger.Txn) error {
		return eachImage(txn, func(doc imageDoc) error {
			if doc.IDProperty == idProperty {
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

func (r *imagesRepo) Add(ctx context.Context, img images.PropertyImage) (images.PropertyImage, error) {
	r.s.keys.mu.Lock()
	defer r.s.keys.mu.Unlock()

	err := r.s.db.Update(func(txn *badger.Txn) error {
		if img.IDImage == 0 {
			img.IDImage = nextIDIn(txn, colImages)
		}
		doc := imageDoc{
			StorageID:  uuid.NewString(),
			IDImage:    img.IDImage,
			IDProperty: img.IDProperty,
			File:       img.File,
			Enabled:    img.Enabled,
		}
		if err := setJSON(txn, docKey(colImages, img.IDImage), doc); err != nil {
			return err
		}
		return refreshEmbeddedImages(txn, img.IDProperty)
	})
	if err != nil {
		return images.PropertyImage{}, err
	}

	r.u.note(1)
	return img, nil
}

func (r *imagesRepo) Update(ctx context.Context, img images.PropertyImage) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colImages, img.IDImage)

		var prev imageDoc
		if err := getJSON(txn, key, &prev); err != nil {
			return err
		}

		doc := imageDoc{
			StorageID:  prev.StorageID,
			IDImage:    img.IDImage,
			IDProperty: img.IDProperty,
			File:       img.File,
			Enabled:    img.Enabled,
		}
		if err := setJSON(txn, key, doc); err != nil {
			return err
		}

		// La copia embebida vive en el documento de la propiedad; si
		// la imagen cambió de dueño hay que refrescar ambos.
		if err := refreshEmbeddedImages(txn, img.IDProperty); err != nil {
			return err
		}
		if prev.IDProperty != img.IDProperty {
			return refreshEmbeddedImages(txn, prev.IDProperty)
		}
		return nil
	})
	if isKeyNotFound(err) {
		return images.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

func (r *imagesRepo) Delete(ctx context.Context, id int64) error {
	err := r.s.db.Update(func(txn *badger.Txn) error {
		key := docKey(colImages, id)

		var prev imageDoc
		if err := getJSON(txn, key, &prev); err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return refreshEmbeddedImages(txn, prev.IDProperty)
	})
	if isKeyNotFound(err) {
		return images.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.u.note(1)
	return nil
}

func (r *imagesRepo) Exists(ctx context.Context, id int64) (bool, error) {
	err := r.s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(docKey(colImages, id))
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

func (r *imagesRepo) DeleteByProperty(ctx context.Context, idProperty int64) (int64, error) {
	var deleted int64
	err := r.s.db.Update(func(txn *badger.Txn) error {
		var victims []int64
		err := eachImage(txn, func(doc imageDoc) error {
			if doc.IDProperty == idProperty {
				victims = append(victims, doc.IDImage)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, id := range victims {
			if err := txn.Delete(docKey(colImages, id)); err != nil {
				return err
			}
			deleted++
		}
		return refreshEmbeddedImages(txn, idProperty)
	})
	if err != nil {
		return 0, err
	}

	r.u.note(deleted)
	return deleted, nil
}

// refreshEmbeddedImages reescribe la lista de sub-documentos de imagen
// dentro del documento de la propiedad. Si la propiedad ya no existe
// (flujo de borrado) no hay nada que refrescar.
func refreshEmbeddedImages(txn *badger.Txn, idProperty int64) error {
	key := docKey(colProperties, idProperty)

	var doc propertyDoc
	err := getJSON(txn, key, &doc)
	if isKeyNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	doc.Images = embeddedImagesIn(txn, idProperty)
	return setJSON(txn, key, doc)
}

// embeddedImagesIn junta los documentos de imagen de la propiedad tal
// como van embebidos.
func embeddedImagesIn(txn *badger.Txn, idProperty int64) []imageDoc {
	out := make([]imageDoc, 0)
	_ = eachImage(txn, func(doc imageDoc) error {
		if doc.IDProperty == idProperty {
			out = append(out, doc)
		}
		return nil
	})
	return out
}

func eachImage(txn *badger.Txn, fn func(imageDoc) error) error {
	prefix := colPrefix(colImages)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var doc imageDoc
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
