package logger

import (
	flag "github.com/spf13/pflag"
)

const (
	// CfgLoggerLevel defines the minimum level of the log messages.
	CfgLoggerLevel = "logger.level"
	// CfgLoggerDisableCaller disables the annotation of log messages with their call site.
	CfgLoggerDisableCaller = "logger.disableCaller"
	// CfgLoggerDisableStacktrace disables the stack traces of error log messages.
	CfgLoggerDisableStacktrace = "logger.disableStacktrace"
	// CfgLoggerEncoding defines the encoding of the log messages ("console" or "json").
	CfgLoggerEncoding = "logger.encoding"
	// CfgLoggerOutputPaths defines where log messages are written to.
	CfgLoggerOutputPaths = "logger.outputPaths"
)

func init() {
	flag.String(CfgLoggerLevel, "info", "log level")
	flag.Bool(CfgLoggerDisableCaller, true, "disable the caller annotation of log messages")
	flag.Bool(CfgLoggerDisableStacktrace, false, "disable stack traces of error log messages")
	flag.String(CfgLoggerEncoding, "console", "log encoding")
	flag.StringSlice(CfgLoggerOutputPaths, []string{"stdout", "faucet.log"}, "log output paths")
}
