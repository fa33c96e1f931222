package document

import (
	"strconv"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// KeyGenerator sintetiza claves subrogadas enteras para un store sin
// autoincremento nativo: max(id existente) + 1, o 1 con la colección
// vacía. El mutex serializa la secuencia leer-max-y-escribir dentro del
// proceso, así dos altas concurrentes no pueden obtener el mismo id.
// Entre procesos el hazard sigue existiendo; este store es embebido y
// lo abre un solo proceso, que es justamente lo que Badger exige.
type KeyGenerator struct {
	mu sync.Mutex
	db *badger.DB
}

// NextID devuelve el siguiente id para la colección sin reservarlo:
// dos llamadas sin escritura intermedia devuelven el mismo valor.
func (g *KeyGenerator) NextID(collection string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var id int64
	err := g.db.View(func(txn *badger.Txn) error {
		id = nextIDIn(txn, collection)
		return nil
	})
	return id, err
}

// nextIDIn lee el máximo dentro de una transacción ya abierta. Los
// repos lo llaman con g.mu tomado para acoplar la lectura del máximo
// con la escritura del documento nuevo.
func nextIDIn(txn *badger.Txn, collection string) int64 {
	prefix := colPrefix(collection)

	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	// Con padding fijo la última clave del prefijo es el id máximo.
	seek := append(append([]byte{}, prefix...), 0xff)
	it.Seek(seek)
	if !it.ValidForPrefix(prefix) {
		return 1
	}

	key := string(it.Item().Key())
	raw := strings.TrimPrefix(key, string(prefix))
	max, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 1
	}
	return max + 1
}
