// Package logger provides the global structured logger for vigil.
//
// Logs are written as JSON to a rotating file so they never corrupt the
// alternate-screen TUI. WARN and ERROR entries are additionally captured in a
// small ring buffer that the status bar reads to surface problem counts while
// debug mode is active.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured WARN/ERROR log record for in-app display.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Format renders the entry as a single display line.
func (e Entry) Format() string {
	level := "INFO"
	switch {
	case e.Level == slog.LevelDebug:
		level = "DEBUG"
	case e.Level == slog.LevelWarn:
		level = "WARN"
	case e.Level >= slog.LevelError:
		level = "ERROR"
	}
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), level, e.Message)
}

// capture is a fixed-size circular buffer of recent WARN/ERROR entries.
type capture struct {
	mu      sync.RWMutex
	entries []Entry
	head    int
	count   int

	warnCount  int
	errorCount int
}

func newCapture(size int) *capture {
	return &capture{entries: make([]Entry, size)}
}

func (c *capture) add(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[c.head] = e
	c.head = (c.head + 1) % len(c.entries)
	if c.count < len(c.entries) {
		c.count++
	}

	if e.Level == slog.LevelWarn {
		c.warnCount++
	} else if e.Level >= slog.LevelError {
		c.errorCount++
	}
}

func (c *capture) all() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, c.count)
	for i := 0; i < c.count; i++ {
		out[i] = c.entries[(c.head-c.count+i+len(c.entries))%len(c.entries)]
	}
	return out
}

func (c *capture) counts() (warn, errs int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warnCount, c.errorCount
}

// captureHandler wraps another slog handler and mirrors WARN+ records
// into the capture buffer.
type captureHandler struct {
	inner slog.Handler
	buf   *capture
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.buf.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), buf: h.buf}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), buf: h.buf}
}

var (
	// Log is the global structured logger.
	Log *slog.Logger
	// LogPath is the resolved path of the active log file.
	LogPath string

	logWriter    *lumberjack.Logger
	buf          *capture
	debugEnabled bool
)

// Level is the logging verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Init sets up the global logger. An empty path defaults to
// ~/.config/vigil/vigil.log.
func Init(level Level, logPath string) {
	debugEnabled = level == LevelDebug

	slogLevel := slog.LevelInfo
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	}

	if logPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		dir := filepath.Join(home, ".config", "vigil")
		_ = os.MkdirAll(dir, 0755)
		logPath = filepath.Join(dir, "vigil.log")
	}
	LogPath = logPath

	logWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}

	buf = newCapture(100)

	handler := &captureHandler{
		inner: slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: slogLevel}),
		buf:   buf,
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Close flushes and closes the log file.
func Close() {
	if logWriter != nil {
		logWriter.Close()
	}
}

func get() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { get().Error(msg, args...) }

// With returns a logger with additional attributes.
func With(args ...any) *slog.Logger { return get().With(args...) }

// Counts returns the captured warning and error counts.
func Counts() (warn, errs int) {
	if buf == nil {
		return 0, 0
	}
	return buf.counts()
}

// Entries returns the captured WARN/ERROR entries, oldest first.
func Entries() []Entry {
	if buf == nil {
		return nil
	}
	return buf.all()
}

// IsDebugEnabled reports whether debug mode is active.
func IsDebugEnabled() bool { return debugEnabled }
