package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality.
type Logger struct {
	*zap.SugaredLogger
}

// Global logger for convenience in one-off paths; prefer injecting.
var L *Logger

// New builds a console logger. Debug output is gated behind
// INVOICEGEN_DEBUG so normal CLI runs stay quiet.
func New() *Logger {
	level := zapcore.WarnLevel
	if os.Getenv("INVOICEGEN_DEBUG") != "" {
		level = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		// Fall back to a no-op logger rather than failing the CLI over logging.
		zapLogger = zap.NewNop()
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}
}

func init() {
	L = New()
}
