// Package kv defines the ordered, transactional key-value contract the alias
// store persists through, plus its SQLite implementation. The store depends
// on nothing beyond these operations.
package kv

// DB is an ordered, durable key-value table keyed by alias name.
type DB interface {
	// BeginRead opens a read-only transaction.
	BeginRead() (ReadTx, error)
	// BeginWrite opens a read-write transaction.
	BeginWrite() (WriteTx, error)
	Close() error
}

// ReadTx is a consistent read-only view of the table.
type ReadTx interface {
	// Get returns the value stored under key.
	Get(key string) (value string, ok bool, err error)
	// All returns every entry in key order.
	All() ([]Pair, error)
	// Done releases the transaction.
	Done() error
}

// WriteTx extends ReadTx with mutations. Nothing becomes visible to other
// transactions until Commit returns nil.
type WriteTx interface {
	Get(key string) (value string, ok bool, err error)
	All() ([]Pair, error)
	// Insert stores value under key, replacing any existing value.
	Insert(key, value string) error
	// Remove deletes key, returning the previous value when one existed.
	Remove(key string) (value string, ok bool, err error)
	Commit() error
	// Rollback discards the transaction. After Commit it is a no-op, so it
	// can sit in a defer.
	Rollback() error
}

// Pair is one key-value entry.
type Pair struct {
	Key   string
	Value string
}
