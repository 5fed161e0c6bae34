package logger

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewRootLogger(t *testing.T) {
	config := viper.New()
	config.Set(CfgLoggerLevel, "warn")
	config.Set(CfgLoggerEncoding, "json")
	config.Set(CfgLoggerOutputPaths, []string{filepath.Join(t.TempDir(), "faucet.log")})

	log, err := NewRootLogger(config)
	require.NoError(t, err)
	assert.False(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Desugar().Core().Enabled(zapcore.WarnLevel))

	config.Set(CfgLoggerLevel, "loud")
	_, err = NewRootLogger(config)
	assert.Error(t, err)
}
