package database

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
)

var healthKey = []byte("db_health")

// MarkDatabaseUnhealthy marks the database as not healthy, meaning that it wasn't shutdown properly.
func MarkDatabaseUnhealthy(store kvstore.KVStore) error {
	if err := store.Set(healthKey, []byte{}); err != nil {
		return errors.Errorf("failed to set database health state: %w", err)
	}

	return nil
}

// MarkDatabaseHealthy marks the database as healthy, respectively correctly closed.
func MarkDatabaseHealthy(store kvstore.KVStore) error {
	if err := store.Delete(healthKey); err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		return errors.Errorf("failed to set database health state: %w", err)
	}

	return nil
}

// IsDatabaseUnhealthy tells whether the database is unhealthy, meaning not shutdown properly.
func IsDatabaseUnhealthy(store kvstore.KVStore) (bool, error) {
	contains, err := store.Has(healthKey)
	if err != nil {
		return false, errors.Errorf("failed to read database health state: %w", err)
	}

	return contains, nil
}
