package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
	"github.com/tartampluch/go-anniversary/internal/feed"
	"github.com/tartampluch/go-anniversary/internal/server"
)

// Worker keeps the served feed current. It is the only goroutine touching
// Session once serving starts; HTTP handlers only read what it publishes.
type Worker struct {
	Session   *engine.Session
	Generator *feed.Generator
	Server    *server.FeedServer
	Window    feed.Window
	Interval  time.Duration // 0 builds once and then idles

	// Reload, when set, refreshes the roster (e.g. from a remote URL) before each rebuild.
	Reload func(ctx context.Context) error

	// Ready, when set, is closed after the first build attempt.
	Ready chan struct{}
}

// Run publishes a first feed immediately, then rebuilds on every tick until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	// Rebuild logs its own failures; the server keeps the previous feed.
	_ = w.Rebuild(ctx)
	if w.Ready != nil {
		close(w.Ready)
	}

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, w.Interval)

	if w.Interval <= 0 {
		<-ctx.Done()
		log.Info(config.MsgWorkerStop)
		return nil
	}

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return nil
		case <-ticker.C:
			_ = w.Rebuild(ctx)
		}
	}
}

// Rebuild reloads the roster if configured, regenerates the feed and publishes it.
// A failed reload keeps the previous roster; a failed build keeps the previous feed.
func (w *Worker) Rebuild(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Debug(config.MsgFeedRequested)

	if w.Reload != nil {
		if err := w.Reload(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn(config.MsgReloadFailed, config.LogKeyError, err)
		}
	}

	data, count, err := w.Generator.Build(ctx, w.Session, w.Window)
	if err != nil {
		log.Error(config.MsgFeedFailed, config.LogKeyError, err)
		return err
	}

	w.Server.Publish(data, count, w.Session.Clock.Now())
	return nil
}
