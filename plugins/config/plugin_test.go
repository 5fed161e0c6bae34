package config

import (
	"os"
	"path/filepath"
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"webapi": {"bindAddress": "0.0.0.0:9000"}, "faucet": {"claimWorkers": 4}}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FAUCET_CLAIMWORKERS=8\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FAUCET_CLAIMWORKERS") })

	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.String("webapi.bindAddress", "127.0.0.1:8080", "")
	flags.Int("faucet.claimWorkers", 1, "")
	flags.String("logger.level", "info", "")
	require.NoError(t, flags.Parse([]string{"--logger.level=debug"}))

	v := viper.New()
	require.NoError(t, fetch(v, flags, dir, "config", filepath.Join(dir, ".env"), false))

	assert.Equal(t, "0.0.0.0:9000", v.GetString("webapi.bindAddress"))
	assert.Equal(t, 8, v.GetInt("faucet.claimWorkers"))
	assert.Equal(t, "debug", v.GetString("logger.level"))
}

func TestFetch_MissingConfig(t *testing.T) {
	dir := t.TempDir()
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.String("webapi.bindAddress", "127.0.0.1:8080", "")

	v := viper.New()
	require.NoError(t, fetch(v, flags, dir, "config", filepath.Join(dir, ".env"), true))
	assert.Equal(t, "127.0.0.1:8080", v.GetString("webapi.bindAddress"))

	assert.Error(t, fetch(viper.New(), flags, dir, "config", filepath.Join(dir, ".env"), false))
}
