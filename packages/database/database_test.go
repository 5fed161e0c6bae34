package database

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDatabaseVersion(t *testing.T) {
	db := NewMemDB()
	store := db.NewStore()

	require.NoError(t, CheckDatabaseVersion(store))
	require.NoError(t, CheckDatabaseVersion(db.NewStore()))

	require.NoError(t, store.Set(dbVersionKey, []byte{DBVersion + 1}))
	assert.True(t, errors.Is(CheckDatabaseVersion(store), ErrDBVersionIncompatible))
}

func TestNewDB(t *testing.T) {
	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	store := db.NewStore()
	require.NoError(t, store.Set([]byte("key"), []byte("value")))

	value, err := store.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
	assert.True(t, db.RequiresGC())
}
