// Package server publishes the latest anniversaries feed over HTTP.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// snapshot is one published version of the feed with its validators.
type snapshot struct {
	data     []byte
	etag     string
	modified time.Time // truncated to seconds, the resolution of HTTP dates
	events   int
}

// FeedServer serves the most recent feed on config.RouteRoot.
// Publishing goes through an atomic pointer: handlers never block the worker
// that rebuilds the feed, and always see a complete version.
type FeedServer struct {
	Port string
	Bind string // Empty means config.LocalhostBindAddr.

	current atomic.Pointer[snapshot]
	addr    atomic.Pointer[net.Addr]
}

// NewFeedServer creates a server for port on the loopback interface.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{Port: port}
}

// Publish replaces the served feed. modified becomes the Last-Modified date.
func (s *FeedServer) Publish(data []byte, events int, modified time.Time) {
	sum := sha256.Sum256(data)
	snap := &snapshot{
		data:     data,
		etag:     fmt.Sprintf(config.FormatETag, hex.EncodeToString(sum[:])),
		modified: modified.UTC().Truncate(time.Second),
		events:   events,
	}
	s.current.Store(snap)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyEvents, events,
		config.LogKeyETag, snap.etag,
	)
}

// Ready reports whether a feed has been published yet.
func (s *FeedServer) Ready() bool {
	return s.current.Load() != nil
}

// Addr returns the bound address once Run is listening, or nil.
func (s *FeedServer) Addr() net.Addr {
	if a := s.addr.Load(); a != nil {
		return *a
	}
	return nil
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.serveFeed)
	return mux
}

// Run listens on Bind:Port and serves until ctx is cancelled, then shuts down gracefully.
func (s *FeedServer) Run(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}
	bind := s.Bind
	if bind == "" {
		bind = config.LocalhostBindAddr
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(bind, s.Port))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener. The listener is closed on return.
func (s *FeedServer) Serve(ctx context.Context, ln net.Listener) error {
	addr := ln.Addr()
	s.addr.Store(&addr)

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serveErr := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, addr.String(),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serveErr:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

func (s *FeedServer) serveFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	snap := s.current.Load()
	if snap == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, snap.etag)
	h.Set(config.HeaderLastModified, snap.modified.Format(http.TimeFormat))

	if notModified(r, snap) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set(config.HeaderContentLength, strconv.Itoa(len(snap.data)))
	if r.Method == http.MethodHead {
		return
	}
	if _, err := bytes.NewReader(snap.data).WriteTo(w); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// notModified evaluates If-None-Match first, and If-Modified-Since only when
// no entity tag was sent (RFC 9110 section 13.2.2).
func notModified(r *http.Request, snap *snapshot) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == snap.etag || match == "*"
	}
	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if t, err := http.ParseTime(since); err == nil {
			return !snap.modified.After(t)
		}
	}
	return false
}
