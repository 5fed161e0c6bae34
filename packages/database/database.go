// Package database opens the key value stores the faucet keeps its ledger in.
package database

import (
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
)

// DB represents a database abstraction.
type DB interface {
	// NewStore creates a new KVStore backed by the database.
	NewStore() kvstore.KVStore
	// Close closes a DB.
	Close() error

	// RequiresGC returns true if the database requires garbage collection.
	RequiresGC() bool
	// GC runs the garbage collection.
	GC() error
	// Size returns the size of the database on disk in bytes.
	Size() int64
}

type memDB struct {
	store kvstore.KVStore
}

// NewMemDB returns a new in-memory (not persisted) DB object. Every store it hands out shares the same map, so a
// ledger reopened on it sees what was written before.
func NewMemDB() DB {
	return &memDB{store: mapdb.NewMapDB()}
}

func (db *memDB) NewStore() kvstore.KVStore {
	return db.store
}

func (db *memDB) Close() error {
	return nil
}

func (db *memDB) RequiresGC() bool {
	return false
}

func (db *memDB) GC() error {
	return nil
}

func (db *memDB) Size() int64 {
	return 0
}
