package database

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
)

const (
	// DBVersion defines the version of the database schema this version of the faucet supports.
	// Every time there's a breaking change regarding the stored data, this version flag should be adjusted.
	DBVersion = 1
)

var (
	// ErrDBVersionIncompatible is returned if the database was written by an incompatible schema version.
	ErrDBVersionIncompatible = errors.New("database version is not compatible. please delete your database folder and restart")

	// the key under which the database version is stored
	dbVersionKey = []byte("dbVersion")
)

// CheckDatabaseVersion checks whether the store is compatible with the current schema version.
// It sets the version if the store is new.
func CheckDatabaseVersion(store kvstore.KVStore) error {
	value, err := store.Get(dbVersionKey)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		if err = store.Set(dbVersionKey, []byte{DBVersion}); err != nil {
			return errors.Errorf("unable to persist db version number: %w", err)
		}
		return nil
	}
	if err != nil {
		return errors.Errorf("unable to read db version number: %w", err)
	}

	if len(value) != 1 || value[0] != DBVersion {
		return errors.Errorf("%w: supported version: %d, version of database: %v", ErrDBVersionIncompatible, DBVersion, value)
	}

	return nil
}
