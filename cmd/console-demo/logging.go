package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logFileName = "console-demo.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging opens dir/console-demo.log when debug is set, rotating a file
// past maxLogSize. Without debug, or when the file cannot be opened, log
// output is discarded; the terminal owns stdout and stderr while running.
func setupLogging(debug bool, dir string) (*os.File, *slog.Logger) {
	discard := slog.New(slog.DiscardHandler)
	if !debug {
		return nil, discard
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, discard
	}

	logPath := filepath.Join(dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("console-demo-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, discard
	}
	return f, newLogger(f)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
