package main

import (
	"syscall/js"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type consoleSink struct{}

func (consoleSink) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}

func newLogger(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.AddSync(consoleSink{}),
		level,
	)
	return zap.New(core)
}
