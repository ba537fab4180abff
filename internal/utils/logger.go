package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevels is the ordered set of severities accepted by LOG_LEVEL.
var LogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL", "UNKNOWN"}

var zerologLevels = map[string]zerolog.Level{
	"DEBUG":   zerolog.DebugLevel,
	"INFO":    zerolog.InfoLevel,
	"WARN":    zerolog.WarnLevel,
	"ERROR":   zerolog.ErrorLevel,
	"FATAL":   zerolog.FatalLevel,
	"UNKNOWN": zerolog.PanicLevel,
}

// ParseLogLevel maps a configured severity onto zerolog. Values outside
// LogLevels, including the empty string, resolve to WARN.
func ParseLogLevel(level string) zerolog.Level {
	if lvl, ok := zerologLevels[strings.ToUpper(strings.TrimSpace(level))]; ok {
		return lvl
	}
	return zerolog.WarnLevel
}

// Logger is a leveled key/value logger backed by zerolog.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger builds a logger from cfg. Output goes to stdout unless a file is
// configured, in which case it is rotated by lumberjack.
func NewLogger(cfg LoggerConfig) *Logger {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
	}
	return NewLoggerWithWriter(out, cfg.Level)
}

// NewLoggerWithWriter builds a logger writing JSON lines to w.
func NewLoggerWithWriter(w io.Writer, level string) *Logger {
	zl := zerolog.New(w).With().Timestamp().Logger().Level(ParseLogLevel(level))
	return &Logger{zl: zl}
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Level reports the active severity threshold.
func (l *Logger) Level() zerolog.Level {
	return l.zl.GetLevel()
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keysAndValues ...any) *Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		ctx = ctx.Interface(fieldKey(keysAndValues[i]), keysAndValues[i+1])
	}
	return &Logger{zl: ctx.Logger()}
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	write(l.zl.Debug(), msg, keysAndValues)
}

func (l *Logger) Info(msg string, keysAndValues ...any) {
	write(l.zl.Info(), msg, keysAndValues)
}

func (l *Logger) Warn(msg string, keysAndValues ...any) {
	write(l.zl.Warn(), msg, keysAndValues)
}

func (l *Logger) Error(msg string, keysAndValues ...any) {
	write(l.zl.Error(), msg, keysAndValues)
}

// Fatal logs and exits the process.
func (l *Logger) Fatal(msg string, keysAndValues ...any) {
	write(l.zl.Fatal(), msg, keysAndValues)
}

// write attaches pairs to the event. A trailing key without a value is dropped.
func write(e *zerolog.Event, msg string, keysAndValues []any) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fieldKey(keysAndValues[i])
		switch v := keysAndValues[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case json.RawMessage:
			var compact bytes.Buffer
			if len(v) > 0 && json.Compact(&compact, v) == nil {
				e = e.RawJSON(key, compact.Bytes())
			} else {
				e = e.Str(key, string(v))
			}
		case string:
			e = e.Str(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	e.Msg(msg)
}

func fieldKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
