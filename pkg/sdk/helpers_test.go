package sdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// countingTransport counts round trips and optionally fails them all.
type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
	err   error
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	if t.err != nil {
		return nil, t.err
	}
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.Handler, opts ...sdk.ClientOption) (*sdk.Client, *sdk.MemoryStore) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := sdk.NewMemoryStore()
	all := append([]sdk.ClientOption{
		sdk.WithSessionStore(store),
		sdk.WithRetryInterval(time.Millisecond),
	}, opts...)
	return sdk.NewClient(srv.URL+"/api", all...), store
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T, userID int) string {
	return signedToken(t, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
}

func seedSession(t *testing.T, store sdk.SessionStore, access string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, sdk.KeyAccessToken, access))
	require.NoError(t, store.Set(ctx, sdk.KeyRefreshToken, "refresh-token"))
	require.NoError(t, store.Set(ctx, sdk.KeyUserData, `{"id":7,"primary_role":"citizen"}`))
}

func assertSessionCleared(t *testing.T, store sdk.SessionStore) {
	t.Helper()
	for _, key := range sdk.SessionKeys {
		v, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		require.Empty(t, v, "session key %s should be cleared", key)
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// lockedStore fails every read, like a keyring that refuses access.
type lockedStore struct {
	*sdk.MemoryStore
	err error
}

func (s lockedStore) Get(context.Context, string) (string, error) {
	return "", s.err
}
