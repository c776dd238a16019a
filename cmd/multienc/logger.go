package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger builds a zap logger from c.
// The "stdout" and "stderr" outputs write to the given writers; any other output is a file path,
// written through a rotating lumberjack sink.
// The returned close function releases the file sinks.
func SetupLogger(c LogConfig, stdout, stderr io.Writer) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	atom := zap.NewAtomicLevelAt(level)

	var encoder zapcore.Encoder
	switch strings.ToLower(c.Format) {
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.RFC3339TimeEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	var sinks []io.Closer
	var cores []zapcore.Core
	for _, out := range c.Outputs {
		var ws zapcore.WriteSyncer
		switch strings.ToLower(out) {
		case "stdout":
			ws = zapcore.AddSync(stdout)
		case "stderr":
			ws = zapcore.AddSync(stderr)
		default:
			sink := fileSink(out, c)
			sinks = append(sinks, sink)
			ws = zapcore.AddSync(sink)
		}
		cores = append(cores, zapcore.NewCore(encoder, ws, atom))
	}

	closeSinks := func() error {
		var errs []error
		for _, s := range sinks {
			errs = append(errs, s.Close())
		}
		return errors.Join(errs...)
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
	return logger, closeSinks, nil
}

// fileSink returns a lumberjack logger appending to path, creating its directory on first write.
func fileSink(path string, c LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    max(c.MaxSizeMB, 1),
		MaxBackups: c.MaxBackups,
	}
}
