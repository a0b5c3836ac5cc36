package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.SugaredLogger = zap.NewNop().Sugar()

// Init builds the process-wide logger. Debug switches to development
// encoding with DebugLevel enabled.
func Init(debug bool) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Development = true
	}

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	L = log.Sugar()
}

func Sync() {
	_ = L.Sync()
}
