package logger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewRootLogger builds the root logger of the node from the logger.* settings. Plugins derive their loggers from
// it with Named.
func NewRootLogger(config *viper.Viper) (*logger.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(config.GetString(CfgLoggerLevel))); err != nil {
		return nil, errors.Errorf("invalid log level %q: %w", config.GetString(CfgLoggerLevel), err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if config.GetString(CfgLoggerEncoding) == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapConfig := zap.Config{
		Level:             level,
		Encoding:          config.GetString(CfgLoggerEncoding),
		EncoderConfig:     encoderConfig,
		OutputPaths:       config.GetStringSlice(CfgLoggerOutputPaths),
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     config.GetBool(CfgLoggerDisableCaller),
		DisableStacktrace: config.GetBool(CfgLoggerDisableStacktrace),
	}

	root, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Errorf("failed to build logger: %w", err)
	}

	return root.Sugar(), nil
}
