package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level    string
	Encoding string // json or console
	// LogstashAddr, when set, tees every entry to a Logstash TCP input.
	LogstashAddr string
	Service      string
}

// New builds the process logger. The returned cleanup flushes zap and closes
// the Logstash connection.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, nil, fmt.Errorf("logging: invalid level %q: %w", opts.Level, err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var consoleEnc zapcore.Encoder
	switch strings.ToLower(opts.Encoding) {
	case "", "json":
		consoleEnc = zapcore.NewJSONEncoder(encCfg)
	case "console":
		devCfg := encCfg
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEnc = zapcore.NewConsoleEncoder(devCfg)
	default:
		return nil, nil, fmt.Errorf("logging: unknown encoding %q", opts.Encoding)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stdout), level),
	}

	var sink *LogstashSink
	if addr := strings.TrimSpace(opts.LogstashAddr); addr != "" {
		s, err := NewLogstashSink(addr)
		if err != nil {
			return nil, nil, err
		}
		sink = s
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if opts.Service != "" {
		logger = logger.With(zap.String("service", opts.Service))
	}

	cleanup := func() {
		_ = logger.Sync()
		if sink != nil {
			_ = sink.Close()
		}
	}
	return logger, cleanup, nil
}
