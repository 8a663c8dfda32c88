package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/coreos/go-systemd/v22/journal"
)

const defaultBufferSize = 1000

// Logger is satisfied by *slog.Logger. Packages that only log accept it
// so tests can pass a discarding logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config selects the global level, the stdout format and per-module levels.
type Config struct {
	Level   string
	Format  string
	Modules map[string]string
}

var (
	mutex       sync.RWMutex
	config      Config
	initialized bool
	loggers     = map[string]*slog.Logger{}
	levels      = map[string]*slog.LevelVar{}
	sinks       = map[string]*atomic.Pointer[slog.Handler]{}
	globalLevel = &slog.LevelVar{}
	logBuffer   *History
	logCallback LogCallback
)

// Initialize applies cfg. Loggers handed out earlier keep their identity and
// switch to the new format, sinks and levels.
func Initialize(cfg Config) {
	mutex.Lock()
	defer mutex.Unlock()

	config = cfg
	initialized = true
	logBuffer = NewHistory(defaultBufferSize)
	globalLevel.Set(levelOr(cfg.Level, slog.LevelInfo))

	for module, lv := range levels {
		lv.Set(moduleLevel(module))
		h := createHandler(cfg.Format, lv)
		sinks[module].Store(&h)
	}
	slog.SetDefault(slog.New(createHandler(cfg.Format, globalLevel)))
}

// GetBuffer returns the in-memory log history, nil before Initialize.
func GetBuffer() *History {
	mutex.RLock()
	defer mutex.RUnlock()
	return logBuffer
}

// SetLogCallback registers a function receiving every buffered entry; nil
// removes it.
func SetLogCallback(callback LogCallback) {
	mutex.Lock()
	defer mutex.Unlock()
	logCallback = callback
}

// GetLogger returns the logger of module. Every record carries a module
// attribute.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	logger, ok := loggers[module]
	mutex.RUnlock()
	if ok {
		return logger
	}

	mutex.Lock()
	defer mutex.Unlock()
	if logger, ok := loggers[module]; ok {
		return logger
	}

	lv := &slog.LevelVar{}
	lv.Set(moduleLevel(module))
	h := createHandler(currentFormat(), lv)
	sink := &atomic.Pointer[slog.Handler]{}
	sink.Store(&h)

	levels[module] = lv
	sinks[module] = sink
	loggers[module] = slog.New(&swapHandler{sink: sink}).With("module", module)
	return loggers[module]
}

// moduleLevel must be called with mutex held.
func moduleLevel(module string) slog.Level {
	if !initialized {
		return slog.LevelInfo
	}
	level := levelOr(config.Level, slog.LevelInfo)
	return levelOr(config.Modules[module], level)
}

// currentFormat must be called with mutex held.
func currentFormat() string {
	if initialized {
		return config.Format
	}
	return "text"
}

// swapHandler forwards to a module's current handler chain, which Initialize
// replaces. Attributes and groups added through With are replayed on the
// chain in effect when a record is handled.
type swapHandler struct {
	sink *atomic.Pointer[slog.Handler]
	ops  []func(slog.Handler) slog.Handler
}

func (s *swapHandler) current() slog.Handler {
	h := *s.sink.Load()
	for _, op := range s.ops {
		h = op(h)
	}
	return h
}

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*s.sink.Load()).Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.current().Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s *swapHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s *swapHandler) with(op func(slog.Handler) slog.Handler) *swapHandler {
	return &swapHandler{sink: s.sink, ops: append(slices.Clone(s.ops), op)}
}

// createHandler builds the sink chain: stdout unless it is absent or already
// captured by the journal, the journal when reachable, and the in-memory
// history.
func createHandler(format string, level slog.Leveler) slog.Handler {
	var handlers []slog.Handler

	journalOK := IsJournalAvailable()
	if w, ok := stdoutWriter(journalOK); ok {
		opts := &slog.HandlerOptions{Level: level}
		if format == "json" {
			handlers = append(handlers, slog.NewJSONHandler(w, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(w, opts))
		}
	}
	if journalOK {
		handlers = append(handlers, NewJournalHandler(level))
	}
	handlers = append(handlers, NewBufferHandler(level))

	if len(handlers) == 1 {
		return handlers[0]
	}
	return NewMultiHandler(handlers...)
}

// stdoutWriter is replaced in tests.
var stdoutWriter = stdoutSink

// stdoutSink reports whether stdout should receive text or json output.
func stdoutSink(journalOK bool) (io.Writer, bool) {
	if journalOK {
		if captured, err := journal.StdoutIsJournalStream(); err == nil && captured {
			return nil, false
		}
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return nil, false
	}
	mode := fi.Mode()
	usable := mode&os.ModeCharDevice != 0 || mode&os.ModeNamedPipe != 0 ||
		mode&os.ModeSocket != 0 || mode.IsRegular()
	return os.Stdout, usable
}

func levelOr(s string, fallback slog.Level) slog.Level {
	if l := parseLevel(s); l != nil {
		return *l
	}
	return fallback
}

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLevel returns nil for unknown names.
func parseLevel(s string) *slog.Level {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return nil
	}
	return &l
}
