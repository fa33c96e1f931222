// Package document implementa el backend documental del catálogo sobre
// Badger: una colección (prefijo de clave) por entidad, documentos
// JSON, claves subrogadas sintetizadas por el generador y snapshot de
// owner embebido en cada documento de propiedad. No hay transacciones
// multi-repositorio: BeginTx responde con el error tipado de storage.
package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	colOwners     = "owners"
	colProperties = "properties"
	colImages     = "images"
	colTraces     = "traces"
)

type Store struct {
	db   *badger.DB
	keys *KeyGenerator
}

// Open abre (o crea) el store en disco.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, keys: &KeyGenerator{db: db}}, nil
}

// OpenInMemory abre un store volátil (dev y tests).
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, keys: &KeyGenerator{db: db}}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Keys expone el generador de claves subrogadas del store.
func (s *Store) Keys() *KeyGenerator {
	return s.keys
}

// docKey arma la clave física: prefijo de colección + id decimal con
// padding fijo, así el orden de bytes coincide con el orden numérico y
// el máximo es la última clave del prefijo.
func docKey(collection string, id int64) []byte {
	return []byte(fmt.Sprintf("%s/%020d", collection, id))
}

func colPrefix(collection string) []byte {
	return []byte(collection + "/")
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(b []byte) error {
		return json.Unmarshal(b, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, b)
}

func decodeJSON(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

func isKeyNotFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}
