package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger so callers depend on one logging type.
type Logger struct {
	*zap.SugaredLogger
}

// L is the process-wide logger for code that runs before dependency wiring
// (config loading, main). Everything else receives a *Logger explicitly.
var L *Logger

func init() {
	L, _ = NewLogger(false)
	if L == nil {
		L = NewNop()
	}
}

// NewLogger builds a JSON production logger, or a console development logger when debug is set.
func NewLogger(debug bool) (*Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}
