package app

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 5
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// newLogger returns a JSON logger writing to w.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// setupLogging installs a logger that writes to a rotating file at path.
// The returned writer must be closed on exit.
func setupLogging(path string, debug bool) io.Closer {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}

	slog.SetDefault(newLogger(w, debug))

	return w
}
