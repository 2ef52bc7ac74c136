package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// setupLogging installs a JSON slog logger writing to stderr and, when the user
// cache dir is usable, to a log file truncated on every run. The returned
// function closes the file.
func setupLogging(debug bool) func() {
	sinks := []io.Writer{os.Stderr}
	closeFn := func() {}

	path, err := logFilePath()
	if err == nil {
		var f *os.File
		f, err = os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			sinks = append(sinks, f)
			closeFn = func() { _ = f.Close() }
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, path, err)
	}

	slog.SetDefault(newLogger(io.MultiWriter(sinks...), debug))
	return closeFn
}

// newLogger logs at info, or at debug with source locations when debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// logFilePath returns <user cache dir>/<app id>/app.log, creating the directory owner-only.
func logFilePath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}
	dir := filepath.Join(base, config.AppID)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(dir, config.LogFileName), nil
}
