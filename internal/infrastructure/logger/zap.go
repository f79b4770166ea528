package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wifi-agent/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapAdapter)(nil)

// ZapAdapter backs LoggerPort with a zap SugaredLogger. Output goes to
// stderr so the stdio transport keeps stdout for protocol frames.
type ZapAdapter struct {
	sugar *zap.SugaredLogger
}

func NewZapAdapter(level string) (*ZapAdapter, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &ZapAdapter{sugar: zl.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used in tests and as a
// placeholder before configuration is loaded.
func NewNop() *ZapAdapter {
	return &ZapAdapter{sugar: zap.NewNop().Sugar()}
}

func (l *ZapAdapter) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapAdapter) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapAdapter) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapAdapter) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapAdapter) WithField(key string, value any) output.LoggerPort {
	return &ZapAdapter{sugar: l.sugar.With(key, value)}
}

func (l *ZapAdapter) Close() error {
	// Sync on stderr returns ENOTTY under some terminals.
	_ = l.sugar.Sync()
	return nil
}
