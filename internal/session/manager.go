// Package session holds the signed-in state of one client: the bearer token,
// the user's profile and whether the stored credential is still being
// resolved. It is the single writer of that state and of its durable copy.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/pubsub"
)

// Backend is the part of the API the session talks to directly.
type Backend interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)
	Me(ctx context.Context) (*domain.UserProfile, error)
}

// State is a point-in-time copy of the session.
type State struct {
	User    *domain.UserProfile
	Token   string
	Loading bool
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Reasons carried by session events.
const (
	ReasonUnauthorized = "unauthorized"
	ReasonTokenExpired = "token_expired"
	ReasonLogin        = "login"
	ReasonRegister     = "register"
	ReasonLogout       = "logout"
)

// Event is the payload of the session topics.
type Event struct {
	UserID uint      `json:"user_id,omitempty"`
	Email  string    `json:"email,omitempty"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

var (
	// ExpiredEvent fires once per forced reset.
	ExpiredEvent = pubsub.NewEvent[Event]("session.expired", "session reset after the backend rejected its token")
	// StartedEvent fires after a login or registration.
	StartedEvent = pubsub.NewEvent[Event]("session.started", "user signed in or registered")
	// EndedEvent fires after an explicit logout.
	EndedEvent = pubsub.NewEvent[Event]("session.ended", "user logged out")
)

// Manager owns the session state. It is safe for concurrent use.
type Manager struct {
	backend   Backend
	storage   Storage
	publisher pubsub.Publisher
	logger    *slog.Logger
	now       func() time.Time
	onExpired []func(ctx context.Context)

	mu      sync.Mutex
	user    *domain.UserProfile
	token   string
	loading bool

	resolveOnce sync.Once
	resolveErr  error
}

// Option configures a Manager.
type Option func(*Manager)

// WithPublisher publishes session events on p.
func WithPublisher(p pubsub.Publisher) Option {
	return func(m *Manager) { m.publisher = p }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock replaces time.Now, for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// OnExpired registers fn to run after each forced reset. The terminal client
// uses it to tell the user to log in again.
func OnExpired(fn func(ctx context.Context)) Option {
	return func(m *Manager) { m.onExpired = append(m.onExpired, fn) }
}

// NewManager creates a logged-out manager backed by storage. Call Resolve to
// pick up a stored credential.
func NewManager(backend Backend, storage Storage, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		storage: storage,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{User: m.user.Clone(), Token: m.token, Loading: m.loading}
}

// Token returns the bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Resolve turns a stored token into a signed-in user by asking the backend
// who owns it. It runs at most once per Manager; later calls return the first
// result. Any failure other than cancellation clears the stored credential.
func (m *Manager) Resolve(ctx context.Context) error {
	m.resolveOnce.Do(func() {
		m.resolveErr = m.resolve(ctx)
	})
	return m.resolveErr
}

func (m *Manager) resolve(ctx context.Context) error {
	rec, err := m.storage.Load()
	if err != nil {
		m.logger.WarnContext(ctx, "Discarding unreadable stored session", "error", err)
		m.reset()
		return fmt.Errorf("load session: %w", err)
	}
	if rec.Token == "" {
		return nil
	}

	m.mu.Lock()
	m.token = rec.Token
	m.loading = true
	m.mu.Unlock()

	if TokenExpired(rec.Token, m.now()) {
		m.expire(ctx, ReasonTokenExpired)
		return domain.ErrSessionExpired
	}

	user, err := m.backend.Me(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			m.mu.Lock()
			m.loading = false
			m.mu.Unlock()
			return err
		}
		// A 401 has already reset the session through Expire.
		m.logger.InfoContext(ctx, "Stored session rejected", "error", err)
		m.reset()
		return err
	}

	m.mu.Lock()
	if m.token == rec.Token {
		m.user = user.Clone()
	}
	m.loading = false
	m.mu.Unlock()
	return nil
}

// Login signs in with email and password. On failure the state is unchanged
// and the error is a *domain.AuthError carrying a displayable message.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	res, err := m.backend.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, authFailure(err, domain.DefaultLoginMessage)
	}
	return m.establish(ctx, res, ReasonLogin, domain.DefaultLoginMessage)
}

// Register creates an account and signs in with it, with Login's failure
// semantics.
func (m *Manager) Register(ctx context.Context, email, password, name string) (*domain.UserProfile, error) {
	res, err := m.backend.Register(ctx, domain.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, authFailure(err, domain.DefaultRegisterMessage)
	}
	return m.establish(ctx, res, ReasonRegister, domain.DefaultRegisterMessage)
}

func (m *Manager) establish(ctx context.Context, res *domain.AuthResult, reason, fallback string) (*domain.UserProfile, error) {
	if res == nil || res.Token == "" {
		return nil, &domain.AuthError{Message: fallback, Err: errors.New("response carried no token")}
	}
	user := res.User.Clone()
	if err := m.storage.Save(Record{Token: res.Token, User: user}); err != nil {
		return nil, &domain.AuthError{Message: fallback, Err: fmt.Errorf("persist session: %w", err)}
	}

	m.mu.Lock()
	m.token = res.Token
	m.user = user
	m.loading = false
	m.mu.Unlock()

	m.publish(ctx, StartedEvent, user, reason)
	return user.Clone(), nil
}

// Logout forgets the session locally. It makes no backend call and is safe to
// repeat.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	prev := m.user
	had := m.token != ""
	m.user, m.token, m.loading = nil, "", false
	m.mu.Unlock()

	if err := m.storage.Clear(); err != nil {
		return err
	}
	if had {
		m.publish(ctx, EndedEvent, prev, ReasonLogout)
	}
	return nil
}

// UpdateUser replaces the signed-in user's profile, leaving the token alone.
func (m *Manager) UpdateUser(profile domain.UserProfile) error {
	m.mu.Lock()
	if m.token == "" {
		m.mu.Unlock()
		return domain.ErrNotAuthenticated
	}
	user := profile.Clone()
	m.user = user
	rec := Record{Token: m.token, User: user.Clone()}
	m.mu.Unlock()

	return m.storage.Save(rec)
}

// Expire resets the session after the backend rejected its token. Only the
// call that performed the reset returns true; concurrent or repeated calls
// are no-ops, so the event and the expiry hooks run once per session.
func (m *Manager) Expire(ctx context.Context) bool {
	return m.expire(ctx, ReasonUnauthorized)
}

func (m *Manager) expire(ctx context.Context, reason string) bool {
	m.mu.Lock()
	if m.token == "" && m.user == nil {
		m.loading = false
		m.mu.Unlock()
		return false
	}
	prev := m.user
	m.user, m.token, m.loading = nil, "", false
	m.mu.Unlock()

	if err := m.storage.Clear(); err != nil {
		m.logger.WarnContext(ctx, "Failed to clear stored session", "error", err)
	}
	m.logger.InfoContext(ctx, "Session expired", "reason", reason)
	m.publish(ctx, ExpiredEvent, prev, reason)
	for _, fn := range m.onExpired {
		fn(ctx)
	}
	return true
}

// reset clears memory and storage without announcing it.
func (m *Manager) reset() {
	m.mu.Lock()
	m.user, m.token, m.loading = nil, "", false
	m.mu.Unlock()
	if err := m.storage.Clear(); err != nil {
		m.logger.Warn("Failed to clear stored session", "error", err)
	}
}

func (m *Manager) publish(ctx context.Context, ev pubsub.Event[Event], user *domain.UserProfile, reason string) {
	if m.publisher == nil {
		return
	}
	payload := Event{Reason: reason, At: m.now().UTC()}
	var userID string
	if user != nil {
		payload.UserID = user.ID
		payload.Email = user.Email
		userID = strconv.FormatUint(uint64(user.ID), 10)
	}
	if err := pubsub.Publish(context.WithoutCancel(ctx), m.publisher, ev, userID, payload); err != nil {
		m.logger.WarnContext(ctx, "Failed to publish session event", "topic", ev.Name(), "error", err)
	}
}

// authFailure normalises a login or registration error to *domain.AuthError
// with a non-empty message.
func authFailure(err error, fallback string) error {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		if authErr.Message == "" {
			return &domain.AuthError{Status: authErr.Status, Message: fallback, Err: authErr.Err}
		}
		return authErr
	}
	return &domain.AuthError{Message: fallback, Err: err}
}
