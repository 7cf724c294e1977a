package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	global *zap.SugaredLogger
)

// Init builds the global sugared logger. Safe to call more than once;
// later calls replace the logger but keep the configured level.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	global = newLogger()
}

// Logger returns the global sugared logger. It must return a non-nil
// *SugaredLogger even if Init was never called.
func Logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		global = newLogger()
	}
	return global
}

// SetLevel changes the minimum level of the global logger.
// Accepted values: debug, info, warn, error.
func SetLevel(name string) error {
	switch strings.ToLower(name) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "info":
		level.SetLevel(zapcore.InfoLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %s", name)
	}
	return nil
}

// Level reports the current minimum level as a string.
func Level() string {
	return level.Level().String()
}

func newLogger() *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core).Sugar()
}
