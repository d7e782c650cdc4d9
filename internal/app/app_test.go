package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nfrund/healthtrack/internal/account"
	"github.com/nfrund/healthtrack/internal/config"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/pubsub"
	"github.com/nfrund/healthtrack/internal/session"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(backend.Close)
	return &config.Config{
		APIBaseURL:    backend.URL,
		Addr:          "127.0.0.1:0",
		SessionSecret: "a-very-secret-key-for-testing-!!",
		HTTPTimeout:   time.Second,
	}
}

func TestServer_Wiring(t *testing.T) {
	i := New(testConfig(t))
	defer Shutdown(i)

	s, err := Server(i)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	again, err := Server(i)
	require.NoError(t, err)
	assert.Same(t, s, again, "services are singletons")
}

func TestAccounts_ShareBus(t *testing.T) {
	i := New(testConfig(t))
	defer Shutdown(i)

	f := do.MustInvoke[*account.Factory](i)
	bus := do.MustInvoke[*Bus](i)
	assert.Equal(t, bus, f.Publisher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan session.Event, 1)
	require.NoError(t, pubsub.Subscribe(ctx, bus, session.ExpiredEvent, func(_ context.Context, ev session.Event) error {
		got <- ev
		return nil
	}))

	storage := &session.MemoryStorage{}
	require.NoError(t, storage.Save(session.Record{Token: "tok-1"}))
	acc := f.Open(storage, nil)
	assert.ErrorIs(t, acc.Session.Resolve(ctx), domain.ErrSessionExpired)

	select {
	case ev := <-got:
		assert.Equal(t, session.ReasonUnauthorized, ev.Reason)
	case <-time.After(time.Second):
		t.Fatal("expired event not delivered")
	}
}

func TestTracingConfig(t *testing.T) {
	tc := tracingConfig(&config.Config{})
	assert.Equal(t, pubsub.DefaultTracingConfig(), tc)

	tc = tracingConfig(&config.Config{TracingEnabled: true, TracingZipkinURL: "http://zipkin:9411/api/v2/spans"})
	assert.True(t, tc.Enabled)
	assert.Equal(t, "http://zipkin:9411/api/v2/spans", tc.ZipkinURL)
	assert.Equal(t, pubsub.DefaultTracingConfig().ServiceName, tc.ServiceName)
}
