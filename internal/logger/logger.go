// Package logger is the application's leveled logger: off, normal
// (info and above) or verbose (debug and above). It wraps a zap sugared
// logger whose level can be changed while other goroutines log.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn and error output.
	LevelNormal
	// LevelVerbose adds debug output.
	LevelVerbose
)

// silent sits above every zap level, so nothing is enabled at it.
const silent = zapcore.FatalLevel + 1

func (l Level) zapLevel() zapcore.Level {
	switch {
	case l <= LevelOff:
		return silent
	case l >= LevelVerbose:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps a config string to a Level. Unknown values map to LevelNormal.
func ParseLevel(s string) Level {
	switch s {
	case "off", "quiet", "none":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Logger formats printf-style messages through zap.
type Logger struct {
	atom  zap.AtomicLevel
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New returns a console logger writing to out, or stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = "T"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.CallerKey = ""

	atom := zap.NewAtomicLevelAt(level.zapLevel())
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(out)), atom)
	base := zap.New(core)
	return &Logger{atom: atom, base: base, sugar: base.Sugar()}
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level Level) { l.atom.SetLevel(level.zapLevel()) }

// GetLevel reports the current level.
func (l *Logger) GetLevel() Level {
	switch lvl := l.atom.Level(); {
	case lvl > zapcore.FatalLevel:
		return LevelOff
	case lvl <= zapcore.DebugLevel:
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// RedirectStdLog sends output of the standard library logger, used by
// some third-party packages, through this logger at info level. The
// returned func restores the previous behaviour.
func (l *Logger) RedirectStdLog() func() {
	return zap.RedirectStdLog(l.base)
}

func (l *Logger) Debug(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered output.
func (l *Logger) Sync() error { return l.sugar.Sync() }
