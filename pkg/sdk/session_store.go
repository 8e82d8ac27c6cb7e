package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Session store slots. The names match the keys the mobile client used so that
// stores written by either client stay readable.
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refreshToken"
	KeyUserData     = "userData"
)

// SessionKeys lists every slot owned by a session.
var SessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUserData}

// SessionStore persists the session slots. Get returns "" and a nil error for a
// missing key. Implementations must not cache reads: the pipeline relies on seeing
// a token cleared by a concurrent 401 on its next call.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ClearSession deletes all session slots. Every slot is attempted even when an
// earlier delete fails.
func ClearSession(ctx context.Context, store SessionStore) error {
	var errs []error
	for _, key := range SessionKeys {
		if err := store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// SaveTokens persists the access and refresh tokens. An empty value leaves the
// corresponding slot untouched.
func SaveTokens(ctx context.Context, store SessionStore, access, refresh string) error {
	if access != "" {
		if err := store.Set(ctx, KeyAccessToken, access); err != nil {
			return fmt.Errorf("save access token: %w", err)
		}
	}
	if refresh != "" {
		if err := store.Set(ctx, KeyRefreshToken, refresh); err != nil {
			return fmt.Errorf("save refresh token: %w", err)
		}
	}
	return nil
}

// LoadSession reads the current session. It returns nil, nil when no access token
// is stored. A cached user blob that cannot be decoded is ignored.
func LoadSession(ctx context.Context, store SessionStore) (*Session, error) {
	access, err := store.Get(ctx, KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	if access == "" {
		return nil, nil
	}

	refresh, err := store.Get(ctx, KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("read refresh token: %w", err)
	}

	session := &Session{AccessToken: access, RefreshToken: refresh}

	blob, err := store.Get(ctx, KeyUserData)
	if err != nil {
		return nil, fmt.Errorf("read cached user: %w", err)
	}
	if blob != "" {
		var user User
		if err := json.Unmarshal([]byte(blob), &user); err == nil {
			session.CachedUser = &user
		}
	}

	return session, nil
}

func saveCachedUser(ctx context.Context, store SessionStore, user *User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal cached user: %w", err)
	}
	return store.Set(ctx, KeyUserData, string(data))
}

// MemoryStore is a process-local SessionStore, useful for embedding and tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

var _ SessionStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
