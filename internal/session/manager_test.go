package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nfrund/healthtrack/internal/apiclient"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/pubsub"
	"github.com/nfrund/healthtrack/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend is a hand-written session.Backend.
type mockBackend struct {
	loginRes  *domain.AuthResult
	loginErr  error
	meUser    *domain.UserProfile
	meErr     error
	meCalls   atomic.Int32
	onMe      func()
	lastLogin domain.LoginRequest
}

func (b *mockBackend) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	b.lastLogin = req
	return b.loginRes, b.loginErr
}

func (b *mockBackend) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	return b.loginRes, b.loginErr
}

func (b *mockBackend) Me(ctx context.Context) (*domain.UserProfile, error) {
	b.meCalls.Add(1)
	if b.onMe != nil {
		b.onMe()
	}
	return b.meUser, b.meErr
}

// countingStorage records how often the durable copy is cleared.
type countingStorage struct {
	session.MemoryStorage
	clears atomic.Int32
}

func (s *countingStorage) Clear() error {
	s.clears.Add(1)
	return s.MemoryStorage.Clear()
}

func ayu() *domain.UserProfile {
	return &domain.UserProfile{ID: 7, Name: "Ayu", Email: "ayu@example.com"}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 7, "exp": exp.Unix()}).
		SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return tok
}

func TestManager_LoginStoresTokenAndUser(t *testing.T) {
	backend := &mockBackend{loginRes: &domain.AuthResult{Token: "tok", User: *ayu()}}
	store := &session.MemoryStorage{}
	m := session.NewManager(backend, store)

	user, err := m.Login(context.Background(), "ayu@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ayu", user.Name)
	assert.Equal(t, "ayu@example.com", backend.lastLogin.Email)

	st := m.State()
	assert.Equal(t, "tok", st.Token)
	assert.True(t, st.Authenticated())
	assert.False(t, st.Loading)

	rec, _ := store.Load()
	assert.Equal(t, "tok", rec.Token)
	require.NotNil(t, rec.User)
	assert.Equal(t, uint(7), rec.User.ID)
}

func TestManager_LoginFailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"server message", &domain.AuthError{Status: 401, Message: "Email atau password salah"}, "Email atau password salah"},
		{"no message", &domain.AuthError{Status: 500}, domain.DefaultLoginMessage},
		{"transport", &domain.FetchError{Op: "auth.login", Err: errors.New("dial tcp: refused")}, domain.DefaultLoginMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &session.MemoryStorage{}
			m := session.NewManager(&mockBackend{loginErr: tt.err}, store)

			_, err := m.Login(context.Background(), "a@b.c", "bad")
			var authErr *domain.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantMsg, authErr.Message)

			assert.Equal(t, session.State{}, m.State())
			rec, _ := store.Load()
			assert.Empty(t, rec.Token)
		})
	}
}

func TestManager_LoginWithoutTokenIsRejected(t *testing.T) {
	m := session.NewManager(&mockBackend{loginRes: &domain.AuthResult{User: *ayu()}}, &session.MemoryStorage{})

	_, err := m.Register(context.Background(), "a@b.c", "secret1", "A")
	assert.Equal(t, domain.DefaultRegisterMessage, domain.AuthMessage(err, ""))
	assert.False(t, m.State().Authenticated())
}

func TestManager_ResolveRestoresUser(t *testing.T) {
	store := &session.MemoryStorage{}
	require.NoError(t, store.Save(session.Record{Token: "stored"}))

	backend := &mockBackend{meUser: ayu()}
	m := session.NewManager(backend, store)
	backend.onMe = func() {
		st := m.State()
		assert.True(t, st.Loading, "loading while /auth/me is in flight")
		assert.Nil(t, st.User)
	}

	require.NoError(t, m.Resolve(context.Background()))
	st := m.State()
	assert.Equal(t, "stored", st.Token)
	assert.Equal(t, "Ayu", st.User.Name)
	assert.False(t, st.Loading)
}

func TestManager_ResolveRunsOnce(t *testing.T) {
	store := &session.MemoryStorage{}
	require.NoError(t, store.Save(session.Record{Token: "stored"}))
	backend := &mockBackend{meUser: ayu()}
	m := session.NewManager(backend, store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Resolve(context.Background())
		}()
	}
	wg.Wait()
	_ = m.Resolve(context.Background())

	assert.Equal(t, int32(1), backend.meCalls.Load())
}

func TestManager_ResolveWithoutStoredToken(t *testing.T) {
	backend := &mockBackend{}
	m := session.NewManager(backend, &session.MemoryStorage{})

	require.NoError(t, m.Resolve(context.Background()))
	assert.Zero(t, backend.meCalls.Load())
	assert.Equal(t, session.State{}, m.State())
}

func TestManager_ResolveFailureClearsEverything(t *testing.T) {
	store := &countingStorage{}
	require.NoError(t, store.Save(session.Record{Token: "stored", User: ayu()}))
	m := session.NewManager(&mockBackend{meErr: &domain.FetchError{Op: "auth.me", Status: 500}}, store)

	assert.Error(t, m.Resolve(context.Background()))
	assert.Equal(t, session.State{}, m.State())
	rec, _ := store.Load()
	assert.Empty(t, rec.Token)
	assert.Nil(t, rec.User)
}

func TestManager_ResolveCancelledKeepsStoredToken(t *testing.T) {
	store := &session.MemoryStorage{}
	require.NoError(t, store.Save(session.Record{Token: "stored"}))
	m := session.NewManager(&mockBackend{meErr: &domain.FetchError{Op: "auth.me", Err: context.Canceled}}, store)

	assert.ErrorIs(t, m.Resolve(context.Background()), context.Canceled)
	assert.False(t, m.State().Loading)
	assert.False(t, m.State().Authenticated())
	rec, _ := store.Load()
	assert.Equal(t, "stored", rec.Token)
}

func TestManager_ResolveSkipsBackendForExpiredJWT(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &session.MemoryStorage{}
	require.NoError(t, store.Save(session.Record{Token: signedToken(t, now.Add(-time.Minute))}))

	var hooks int
	backend := &mockBackend{meUser: ayu()}
	m := session.NewManager(backend, store,
		session.WithClock(func() time.Time { return now }),
		session.OnExpired(func(ctx context.Context) { hooks++ }),
	)

	assert.ErrorIs(t, m.Resolve(context.Background()), domain.ErrSessionExpired)
	assert.Zero(t, backend.meCalls.Load())
	assert.Equal(t, 1, hooks)
	assert.Equal(t, session.State{}, m.State())
}

func TestManager_LogoutIsIdempotent(t *testing.T) {
	store := &session.MemoryStorage{}
	m := session.NewManager(&mockBackend{loginRes: &domain.AuthResult{Token: "tok", User: *ayu()}}, store)
	_, err := m.Login(context.Background(), "ayu@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, m.Logout(context.Background()))
	require.NoError(t, m.Logout(context.Background()))

	assert.Equal(t, session.State{}, m.State())
	rec, _ := store.Load()
	assert.Empty(t, rec.Token)
}

func TestManager_UpdateUser(t *testing.T) {
	store := &session.MemoryStorage{}
	m := session.NewManager(&mockBackend{loginRes: &domain.AuthResult{Token: "tok", User: *ayu()}}, store)

	assert.ErrorIs(t, m.UpdateUser(*ayu()), domain.ErrNotAuthenticated)

	_, err := m.Login(context.Background(), "ayu@example.com", "secret1")
	require.NoError(t, err)

	height := 160.0
	updated := *ayu()
	updated.HeightCm = &height
	require.NoError(t, m.UpdateUser(updated))
	height = 1 // the manager keeps its own copy

	st := m.State()
	assert.Equal(t, "tok", st.Token)
	require.NotNil(t, st.User.HeightCm)
	assert.Equal(t, 160.0, *st.User.HeightCm)

	rec, _ := store.Load()
	assert.Equal(t, 160.0, *rec.User.HeightCm)
}

func TestManager_ExpireIsIdempotent(t *testing.T) {
	store := &countingStorage{}
	var hooks int
	m := session.NewManager(&mockBackend{loginRes: &domain.AuthResult{Token: "tok", User: *ayu()}}, store,
		session.OnExpired(func(ctx context.Context) { hooks++ }))
	_, err := m.Login(context.Background(), "ayu@example.com", "secret1")
	require.NoError(t, err)

	assert.True(t, m.Expire(context.Background()))
	assert.False(t, m.Expire(context.Background()))
	assert.Equal(t, 1, hooks)
	assert.Equal(t, int32(1), store.clears.Load())
	assert.Equal(t, session.State{}, m.State())
}

// Concurrent 401s from one page produce one reset and one redirect.
func TestManager_ConcurrentUnauthorizedResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{
				"token": "tok", "user": map[string]any{"id": 7, "name": "Ayu"},
			}})
			return
		}
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	store := &countingStorage{}
	var redirects atomic.Int32
	m := session.NewManager(client, store, session.OnExpired(func(ctx context.Context) { redirects.Add(1) }))
	client.Bind(m)

	_, err := m.Login(context.Background(), "ayu@example.com", "secret1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 6)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.SymptomHistory(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	}
	assert.Equal(t, int32(1), redirects.Load())
	assert.Equal(t, int32(1), store.clears.Load())
	assert.Empty(t, m.Token())
}

func TestManager_PublishesExpiredEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	got := make(chan session.Event, 1)
	require.NoError(t, pubsub.Subscribe(ctx, bus, session.ExpiredEvent, func(ctx context.Context, ev session.Event) error {
		got <- ev
		return nil
	}))

	m := session.NewManager(&mockBackend{loginRes: &domain.AuthResult{Token: "tok", User: *ayu()}}, &session.MemoryStorage{},
		session.WithPublisher(bus))
	_, err := m.Login(ctx, "ayu@example.com", "secret1")
	require.NoError(t, err)
	m.Expire(ctx)

	select {
	case ev := <-got:
		assert.Equal(t, session.ReasonUnauthorized, ev.Reason)
		assert.Equal(t, uint(7), ev.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("expired event not delivered")
	}
}
