// Package logging writes the program log. The terminal belongs to the
// interface while it runs, so every entry goes to a file: plain entries in
// the text format and trace entries as JSON lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

const defaultLogFile = "keyring-tui.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logFile      *os.File
	logger       *clog.Logger
	tracer       *clog.Logger
)

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Close flushes and closes the log file. Later writes reopen it.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = nil
	logger = nil
	tracer = nil
}

// openLocked lazily opens the log file and builds both loggers on it.
func openLocked() bool {
	if logFile != nil {
		return true
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return false
	}
	logFile = f
	logger = newLogger(f, clog.TextFormatter)
	tracer = newLogger(f, clog.JSONFormatter)
	return true
}

func newLogger(w io.Writer, formatter clog.Formatter) *clog.Logger {
	return clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter,
		Level:           clog.DebugLevel,
	})
}

func write(fn func(*clog.Logger)) {
	mu.Lock()
	defer mu.Unlock()
	if !openLocked() {
		return
	}
	fn(logger)
}

// Error writes err to the log file.
func Error(err error) {
	if err == nil {
		return
	}
	write(func(l *clog.Logger) { l.Error(err.Error()) })
}

// Infof writes an info entry.
func Infof(format string, v ...interface{}) {
	write(func(l *clog.Logger) { l.Info(fmt.Sprintf(format, v...)) })
}

// Warnf writes a warning entry.
func Warnf(format string, v ...interface{}) {
	write(func(l *clog.Logger) { l.Warn(fmt.Sprintf(format, v...)) })
}

// Debugf writes a debug entry.
func Debugf(format string, v ...interface{}) {
	write(func(l *clog.Logger) { l.Debug(fmt.Sprintf(format, v...)) })
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Trace appends a structured JSON entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled || !openLocked() {
		return
	}
	if payload == nil {
		tracer.Info("trace", "event", event)
		return
	}
	tracer.Info("trace", "event", event, "payload", payload)
}
