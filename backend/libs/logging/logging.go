package logging

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options tune logger construction. Empty values fall back to the LOG_LEVEL and
// LOG_FORMAT environment variables, then to info/json.
type Options struct {
	Service string
	Level   string
	Format  string
}

// NewLogger configures a zap logger tagged with the service name.
func NewLogger(opts Options) (*zap.Logger, error) {
	levelStr := opts.Level
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}
	format := opts.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(parseLevel(levelStr)),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding(format),
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if cfg.Encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.OutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if opts.Service != "" {
		logger = logger.With(zap.String("service", opts.Service))
	}
	return logger, nil
}

func parseLevel(raw string) zapcore.Level {
	var level zapcore.Level
	if err := level.Set(strings.ToLower(strings.TrimSpace(raw))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func encoding(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "console") {
		return "console"
	}
	return "json"
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     func(t time.Time, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(t.UTC().Format(time.RFC3339Nano)) },
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
