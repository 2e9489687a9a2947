package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
)

type Fields map[string]interface{}

type LogLevel int32

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	CRITICAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Logger writes one line per record:
//
//	[LEVEL] [service] [trace_id=... k=v] file:line message
type Logger struct {
	level   atomic.Int32
	out     *log.Logger
	service string
	closer  io.Closer
}

// New writes to stdout and, when logDir is set, to a rotated app.log inside it.
func New(logDir, serviceName, level string) (*Logger, error) {
	if logDir == "" {
		return newLogger(log.New(os.Stdout, "", log.LstdFlags), serviceName, level, nil), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", logDir, err)
	}
	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    constants.LoggerMaxSize,
		MaxBackups: constants.LoggerMaxBackups,
		MaxAge:     constants.LoggerMaxAge,
		Compress:   true,
	}
	out := log.New(io.MultiWriter(os.Stdout, rotated), "", log.LstdFlags)
	return newLogger(out, serviceName, level, rotated), nil
}

// NewWriter is used by tests that want to inspect log output.
func NewWriter(w io.Writer, serviceName, level string) *Logger {
	return newLogger(log.New(w, "", 0), serviceName, level, nil)
}

func newLogger(out *log.Logger, service, level string, closer io.Closer) *Logger {
	l := &Logger{out: out, service: service, closer: closer}
	l.level.Store(int32(parseLevel(level)))
	return l
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) ShouldLog(level LogLevel) bool {
	return int32(level) >= l.level.Load()
}

func (l *Logger) SetLevel(level string) {
	l.level.Store(int32(parseLevel(level)))
}

func (l *Logger) root() Entry {
	return Entry{logger: l}
}

func (l *Logger) Debug(msg string)    { l.root().emit(DEBUG, msg) }
func (l *Logger) Info(msg string)     { l.root().emit(INFO, msg) }
func (l *Logger) Warn(msg string)     { l.root().emit(WARNING, msg) }
func (l *Logger) Error(msg string)    { l.root().emit(ERROR, msg) }
func (l *Logger) Critical(msg string) { l.root().emit(CRITICAL, msg) }

func (l *Logger) Debugf(format string, args ...any) { l.root().emit(DEBUG, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.root().emit(INFO, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.root().emit(WARNING, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.root().emit(ERROR, fmt.Sprintf(format, args...)) }

func (l *Logger) Criticalf(format string, args ...any) {
	l.root().emit(CRITICAL, fmt.Sprintf(format, args...))
}

func (l *Logger) Fatal(msg string) {
	l.root().emit(CRITICAL, msg)
	os.Exit(1)
}

func (l *Logger) Fatalf(format string, args ...any) {
	l.root().emit(CRITICAL, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// WithFields binds structured fields and the trace id carried by ctx.
func (l *Logger) WithFields(ctx context.Context, fields Fields) *Entry {
	return &Entry{logger: l, ctx: ctx, fields: fields}
}

type Entry struct {
	logger *Logger
	ctx    context.Context
	fields Fields
}

func (e Entry) Debug(msg string)    { e.emit(DEBUG, msg) }
func (e Entry) Info(msg string)     { e.emit(INFO, msg) }
func (e Entry) Warn(msg string)     { e.emit(WARNING, msg) }
func (e Entry) Error(msg string)    { e.emit(ERROR, msg) }
func (e Entry) Critical(msg string) { e.emit(CRITICAL, msg) }

func (e Entry) Debugf(format string, args ...any) { e.emit(DEBUG, fmt.Sprintf(format, args...)) }
func (e Entry) Infof(format string, args ...any)  { e.emit(INFO, fmt.Sprintf(format, args...)) }
func (e Entry) Warnf(format string, args ...any)  { e.emit(WARNING, fmt.Sprintf(format, args...)) }
func (e Entry) Errorf(format string, args ...any) { e.emit(ERROR, fmt.Sprintf(format, args...)) }

func (e Entry) Criticalf(format string, args ...any) {
	e.emit(CRITICAL, fmt.Sprintf(format, args...))
}

// emit must be called directly from an exported method so the caller frame
// resolves to user code.
func (e Entry) emit(level LogLevel, msg string) {
	if !e.logger.ShouldLog(level) {
		return
	}

	var b strings.Builder
	b.WriteString("[" + level.String() + "]")
	if e.logger.service != "" {
		b.WriteString(" [" + e.logger.service + "]")
	}
	if kv := e.pairs(); len(kv) > 0 {
		b.WriteString(" [" + strings.Join(kv, " ") + "]")
	}

	file, line := "unknown", 0
	if _, path, n, ok := runtime.Caller(2); ok {
		file, line = filepath.Base(path), n
	}
	fmt.Fprintf(&b, " %s:%d %s", file, line, msg)

	_ = e.logger.out.Output(0, b.String())
}

func (e Entry) pairs() []string {
	var kv []string
	if e.ctx != nil {
		if traceID, ok := e.ctx.Value(constants.TraceIDKey).(string); ok && traceID != "" {
			kv = append(kv, "trace_id="+traceID)
		}
	}

	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, fmt.Sprintf("%s=%v", k, e.fields[k]))
	}
	return kv
}

func parseLevel(value string) LogLevel {
	switch strings.TrimSpace(strings.ToUpper(value)) {
	case "DEBUG":
		return DEBUG
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	case "CRITICAL":
		return CRITICAL
	default:
		return INFO
	}
}
