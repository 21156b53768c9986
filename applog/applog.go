// Package applog writes application-level log lines to a file under the
// user's home directory (~/.fleetchat/logs/app.log).
//
// The chat surface owns the terminal, so nothing may log to stdout or
// stderr; when the log file cannot be opened every call degrades to a
// silent no-op.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	setup  sync.Once
	sink   io.WriteCloser
	logger *log.Logger
)

func get() *log.Logger {
	setup.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		dir := filepath.Join(home, ".fleetchat", "logs")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return
		}
		f, err := os.OpenFile(filepath.Join(dir, "app.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return
		}
		sink = f
		logger = log.New(f, "", log.Ldate|log.Ltime)
	})
	return logger
}

// Info records a general informational message.
func Info(format string, args ...any) {
	if l := get(); l != nil {
		l.Printf("INFO  "+format, args...)
	}
}

// Error records an error condition.
func Error(format string, args ...any) {
	if l := get(); l != nil {
		l.Printf("ERROR "+format, args...)
	}
}

// Event records a categorized application event (chat turns, session
// saves, capability changes).
func Event(category, format string, args ...any) {
	if l := get(); l != nil {
		l.Printf("%s %s", fmt.Sprintf("%-12s", category), fmt.Sprintf(format, args...))
	}
}

// Close releases the log file.
func Close() {
	if sink != nil {
		sink.Close()
	}
}
