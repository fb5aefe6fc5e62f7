// Package logging builds the zap logger shared by the binaries.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jask/catalogedit/internal/config"
)

// Setup builds a logger writing JSON to the rotated log file and, when
// console is set, human readable lines to stderr. With neither a file nor a
// console it returns a no-op logger. The result is installed as the zap
// global.
func Setup(cfg config.LogConfig, console bool) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	var cores []zapcore.Core
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     7,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotated),
			level,
		))
	}
	if console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			level,
		))
	}

	logger := zap.NewNop()
	if len(cores) > 0 {
		logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
