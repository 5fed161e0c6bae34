package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.key")

	keyPair, err := generateKeyFile(path, false)
	require.NoError(t, err)

	loaded, err := loadKeyFile(path)
	require.NoError(t, err)
	assert.Equal(t, keyPair.PublicKey, loaded.PublicKey)

	_, err = generateKeyFile(path, false)
	assert.Error(t, err)

	replaced, err := generateKeyFile(path, true)
	require.NoError(t, err)
	assert.NotEqual(t, keyPair.PublicKey, replaced.PublicKey)
}

func TestLoadKeyFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.key")

	_, err := loadKeyFile(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("0OIl"), 0o600))
	_, err = loadKeyFile(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("3mJr7AoUXx2Wqd"), 0o600))
	_, err = loadKeyFile(path)
	assert.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	_, err := parseAddress("mint", "")
	assert.Error(t, err)

	_, err = parseAddress("mint", "not-base58!")
	assert.Error(t, err)
}
