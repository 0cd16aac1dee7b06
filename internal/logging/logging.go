// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/roach88/qsynth/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for cfg and a closer for its sink.
//
// With no file configured the logger writes a console encoding to stderr.
// Otherwise it writes JSON to a lumberjack-rotated file. The closer must be
// called on shutdown; it is a no-op for stderr.
func New(cfg config.Log) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "log level %q", cfg.Level)
	}

	if cfg.File == "" {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
		return zap.New(core), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create log directory")
	}
	rot := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rot), level)
	return zap.New(core, zap.AddCaller()), rot, nil
}

// Verbose lowers cfg's level to debug.
func Verbose(cfg config.Log) config.Log {
	cfg.Level = zapcore.DebugLevel.String()
	return cfg
}
