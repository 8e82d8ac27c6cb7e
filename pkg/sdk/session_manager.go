package sdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// SessionState is the authentication state seen by the application.
type SessionState int

const (
	// StateUnknown is the state before Restore has run.
	StateUnknown SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionObserver is called after every state transition.
type SessionObserver func(state SessionState, user *User)

var errMissingAccessToken = errors.New("authentication response carried no access token")

// SessionManager owns the session lifecycle: restoring a stored session, sign in,
// sign up, sign out and profile refresh. It is safe for concurrent use.
//
// A 401 seen by any request made through the same Client moves the manager to
// StateUnauthenticated.
type SessionManager struct {
	client *Client
	store  SessionStore
	logger *slog.Logger

	mu    sync.RWMutex
	state SessionState
	user  *User

	obsMu     sync.Mutex
	nextObsID int
	observers map[int]SessionObserver
}

// NewSessionManager returns a manager in StateUnknown bound to client and its store.
func NewSessionManager(client *Client) *SessionManager {
	m := &SessionManager{
		client:    client,
		store:     client.store,
		logger:    client.logger,
		observers: make(map[int]SessionObserver),
	}
	client.OnUnauthorized(func() {
		m.transition(StateUnauthenticated, nil)
	})
	return m
}

// Subscribe registers fn for state transitions and returns a function that
// removes it.
func (m *SessionManager) Subscribe(fn SessionObserver) func() {
	m.obsMu.Lock()
	id := m.nextObsID
	m.nextObsID++
	m.observers[id] = fn
	m.obsMu.Unlock()

	return func() {
		m.obsMu.Lock()
		delete(m.observers, id)
		m.obsMu.Unlock()
	}
}

// State returns the current state.
func (m *SessionManager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the current normalized user, or nil when not authenticated.
func (m *SessionManager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsAuthenticated reports whether the manager holds an authenticated user.
func (m *SessionManager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Restore resumes a stored session. Without a stored token the manager becomes
// unauthenticated. With one, the profile is fetched; any failure to do so clears
// the stored session. Only a store that cannot be read is reported as an error.
func (m *SessionManager) Restore(ctx context.Context) (*User, error) {
	session, err := LoadSession(ctx, m.store)
	if err != nil {
		m.transition(StateUnauthenticated, nil)
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		m.transition(StateUnauthenticated, nil)
		return nil, nil
	}

	user, err := m.loadProfile(ctx)
	if err != nil {
		m.logger.Warn("stored session could not be restored", "error", err)
		m.teardown(ctx)
		return nil, nil
	}

	m.transition(StateAuthenticated, user)
	return user, nil
}

// SignIn authenticates with email and password. Login errors are returned as
// received and leave the state unchanged.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*User, error) {
	pair, err := m.client.Auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, pair.Access, pair.Refresh)
}

// SignUp registers an account. When the backend answers with tokens the user is
// signed in and returned; otherwise the raw response is returned with a nil user
// and the state is unchanged.
func (m *SessionManager) SignUp(ctx context.Context, data map[string]any) (*User, Record, error) {
	resp, err := m.client.Auth.Register(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	access := resp.String("access")
	if access == "" {
		return nil, resp, nil
	}
	user, err := m.establish(ctx, access, resp.String("refresh"))
	return user, resp, err
}

// SignOut tells the backend to end the session and then clears local state. The
// backend call is best effort: its failure is logged and local teardown proceeds.
func (m *SessionManager) SignOut(ctx context.Context) error {
	refresh, err := m.store.Get(ctx, KeyRefreshToken)
	if err != nil {
		m.logger.Warn("could not read refresh token", "error", err)
	}
	if err := m.client.Auth.Logout(ctx, refresh); err != nil {
		m.logger.Warn("logout request failed", "error", err)
	}

	clearErr := ClearSession(context.WithoutCancel(ctx), m.store)
	m.transition(StateUnauthenticated, nil)
	if clearErr != nil {
		return fmt.Errorf("clear session: %w", clearErr)
	}
	return nil
}

// Refresh re-fetches the profile. On failure the cached user stays in use and
// the error is only logged, unless the session itself is gone (401 or no token),
// in which case the error is returned and the state is unauthenticated.
func (m *SessionManager) Refresh(ctx context.Context) (*User, error) {
	user, err := m.loadProfile(ctx)
	if err == nil {
		m.transition(StateAuthenticated, user)
		return user, nil
	}

	if IsUnauthorized(err) || errors.Is(err, ErrNotAuthenticated) {
		m.transition(StateUnauthenticated, nil)
		return nil, err
	}

	m.logger.Warn("profile refresh failed, using cached user", "error", err)
	if current := m.User(); current != nil {
		return current, nil
	}
	return m.CachedUser(ctx)
}

// RenewToken exchanges the stored refresh token for a new access token.
func (m *SessionManager) RenewToken(ctx context.Context) error {
	refresh, err := m.store.Get(ctx, KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("read refresh token: %w", err)
	}
	if refresh == "" {
		return ErrNotAuthenticated
	}

	pair, err := m.client.Auth.Refresh(ctx, refresh)
	if err != nil {
		return err
	}
	if pair.Access == "" {
		return errMissingAccessToken
	}
	if err := SaveTokens(ctx, m.store, pair.Access, pair.Refresh); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// CachedUser returns the user stored with the session, or nil when there is none.
func (m *SessionManager) CachedUser(ctx context.Context) (*User, error) {
	session, err := LoadSession(ctx, m.store)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return session.CachedUser, nil
}

// establish persists a fresh token pair and loads the profile. If the profile
// cannot be loaded the tokens are removed again.
func (m *SessionManager) establish(ctx context.Context, access, refresh string) (*User, error) {
	if access == "" {
		return nil, errMissingAccessToken
	}
	if err := ClearSession(ctx, m.store); err != nil {
		return nil, fmt.Errorf("clear previous session: %w", err)
	}
	if err := SaveTokens(ctx, m.store, access, refresh); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	user, err := m.loadProfile(ctx)
	if err != nil {
		m.teardown(ctx)
		return nil, err
	}

	m.transition(StateAuthenticated, user)
	return user, nil
}

func (m *SessionManager) loadProfile(ctx context.Context) (*User, error) {
	profile, err := m.client.Users.Current(ctx)
	if err != nil {
		return nil, err
	}

	token, err := m.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	claims, _ := DecodeToken(token)

	user := NormalizeUser(profile, claims)
	if err := saveCachedUser(ctx, m.store, &user); err != nil {
		return nil, fmt.Errorf("cache user: %w", err)
	}
	return &user, nil
}

// teardown clears the stored session. Observers are not notified again when a
// 401 already moved the manager to StateUnauthenticated.
func (m *SessionManager) teardown(ctx context.Context) {
	if err := ClearSession(context.WithoutCancel(ctx), m.store); err != nil {
		m.logger.Warn("failed to clear session", "error", err)
	}
	if m.State() == StateUnauthenticated {
		return
	}
	m.transition(StateUnauthenticated, nil)
}

func (m *SessionManager) transition(state SessionState, user *User) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.mu.Unlock()

	m.obsMu.Lock()
	observers := make([]SessionObserver, 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.obsMu.Unlock()

	for _, fn := range observers {
		fn(state, user)
	}
}
