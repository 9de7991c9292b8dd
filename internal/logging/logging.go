// Package logging provides the structured logger shared by every package in
// this server. It wraps zap the way the rest-of-pack packetd-packetd/logger
// package does: a console encoder writing to a single stream, exposed as a
// small sugared interface so call sites stay terse.
package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a leveled, structured logger. The zero value is not usable;
// construct one with New.
type Logger struct {
	sugared *zap.SugaredLogger
}

// New builds a Logger that writes console-encoded entries to stderr, per
// spec: diagnostic detail belongs in logs, never in a client-facing reply.
func New() Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zapcore.DebugLevel)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return Logger{sugared: logger.Sugar()}
}

// Nop returns a Logger that discards everything, for tests that don't care
// about log output.
func Nop() Logger {
	return Logger{sugared: zap.NewNop().Sugar()}
}

func (l Logger) Debugf(template string, args ...any) { l.sugared.Debugf(template, args...) }
func (l Logger) Infof(template string, args ...any)  { l.sugared.Infof(template, args...) }
func (l Logger) Warnf(template string, args ...any)  { l.sugared.Warnf(template, args...) }
func (l Logger) Errorf(template string, args ...any) { l.sugared.Errorf(template, args...) }

// With returns a child Logger annotated with the given key/value pairs,
// used to tag every log line emitted for one connection with its ID.
func (l Logger) With(keysAndValues ...any) Logger {
	return Logger{sugared: l.sugared.With(keysAndValues...)}
}

// Sync flushes buffered log entries. Errors are ignored: stderr sync
// failures on process exit are not actionable.
func (l Logger) Sync() {
	_ = l.sugared.Sync()
}
