package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init is called,
// so packages can log from tests without any setup.
var Log = zap.NewNop()

// Init installs a development logger at debug level.
func Init() {
	InitWithLevel("debug")
}

// InitWithLevel installs a development logger at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func InitWithLevel(level string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	l, err := config.Build()
	if err != nil {
		// Keep the previous logger, there is nowhere else to report this
		return
	}
	Log = l
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
