package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// A log file that grows past maxLogSizeBytes is cut back to roughly its last
// keepLogSizeBytes.
const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// cappedLog is an append-only file that trims itself from the front. The
// kept tail starts at a line boundary whenever one exists.
type cappedLog struct {
	mu    sync.Mutex
	f     *os.File
	size  int64
	limit int64
	keep  int64
}

func openCappedLog(path string, limit, keep int64) (*cappedLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	l := &cappedLog{f: f, size: info.Size(), limit: limit, keep: keep}
	if l.size > l.limit {
		if err := l.trim(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return l, nil
}

func (l *cappedLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.f.Write(p)
	l.size += int64(n)
	if err != nil || l.size <= l.limit {
		return n, err
	}
	return n, l.trim()
}

func (l *cappedLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

func (l *cappedLog) trim() error {
	tail := make([]byte, min(l.keep, l.size))
	n, err := l.f.ReadAt(tail, l.size-int64(len(tail)))
	if err != nil && err != io.EOF {
		return err
	}
	tail = tail[:n]
	if i := bytes.IndexByte(tail, '\n'); i >= 0 && i < len(tail)-1 {
		tail = tail[i+1:]
	}

	if err := l.f.Truncate(0); err != nil {
		return err
	}
	// O_APPEND places the write at the new end of file.
	written, err := l.f.Write(tail)
	l.size = int64(written)
	return err
}

// newServeLogger builds the server logger. In stdio mode stdout carries the
// protocol, so logs go to stderr. A configured log path also gets a copy.
func newServeLogger(level, transport, logPath string, stdout, stderr io.Writer) (*slog.Logger, func(), error) {
	out := stdout
	if transport == "stdio" {
		out = stderr
	}

	cleanup := func() {}
	if logPath != "" {
		file, err := openCappedLog(logPath, maxLogSizeBytes, keepLogSizeBytes)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(out, file)
		cleanup = func() { file.Close() }
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
	return logger, cleanup, nil
}
