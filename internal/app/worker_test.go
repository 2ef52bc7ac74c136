package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-anniversary/internal/app"
	"github.com/tartampluch/go-anniversary/internal/engine"
	"github.com/tartampluch/go-anniversary/internal/feed"
	"github.com/tartampluch/go-anniversary/internal/server"
)

func newWorker(t *testing.T) (*app.Worker, *server.FeedServer) {
	t.Helper()
	s := engine.NewSession(engine.FixedClock{At: fixedNow}, engine.EnglishLabel)
	_, err := s.AddPerson("Ada", engine.Date(2000, 3, 15))
	require.NoError(t, err)

	srv := server.NewFeedServer("0")
	return &app.Worker{
		Session:   s,
		Generator: &feed.Generator{},
		Server:    srv,
		Window:    feed.DefaultWindow(),
	}, srv
}

func TestWorker_RebuildPublishes(t *testing.T) {
	w, srv := newWorker(t)
	require.False(t, srv.Ready())

	require.NoError(t, w.Rebuild(context.Background()))
	assert.True(t, srv.Ready())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SUMMARY:Ada: 25 Years")
}

func TestWorker_FailedReloadStillBuilds(t *testing.T) {
	w, srv := newWorker(t)
	calls := 0
	w.Reload = func(context.Context) error {
		calls++
		return errors.New("upstream down")
	}

	require.NoError(t, w.Rebuild(context.Background()))
	assert.Equal(t, 1, calls)
	assert.True(t, srv.Ready(), "Previous roster is still published")
}

func TestWorker_RunTicksUntilCancelled(t *testing.T) {
	w, _ := newWorker(t)
	w.Interval = 10 * time.Millisecond
	w.Ready = make(chan struct{})

	reloads := make(chan struct{}, 16)
	w.Reload = func(context.Context) error {
		select {
		case reloads <- struct{}{}:
		default:
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	<-w.Ready
	require.Eventually(t, func() bool { return len(reloads) >= 3 }, 2*time.Second, 5*time.Millisecond,
		"Initial build plus ticks")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop")
	}
}

func TestWorker_CancelledReload(t *testing.T) {
	w, srv := newWorker(t)
	ctx, cancel := context.WithCancel(context.Background())
	w.Reload = func(context.Context) error {
		cancel()
		return context.Canceled
	}

	assert.ErrorIs(t, w.Rebuild(ctx), context.Canceled)
	assert.False(t, srv.Ready())
}
