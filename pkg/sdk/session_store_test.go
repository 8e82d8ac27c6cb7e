package sdk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// failingStore fails every delete of one key.
type failingStore struct {
	*sdk.MemoryStore
	failKey string
}

func (s *failingStore) Delete(ctx context.Context, key string) error {
	if key == s.failKey {
		return errors.New("keychain locked")
	}
	return s.MemoryStore.Delete(ctx, key)
}

func TestLoadSession(t *testing.T) {
	ctx := context.Background()
	store := sdk.NewMemoryStore()

	session, err := sdk.LoadSession(ctx, store)
	require.NoError(t, err)
	assert.Nil(t, session)

	require.NoError(t, sdk.SaveTokens(ctx, store, "access", ""))
	require.NoError(t, store.Set(ctx, sdk.KeyUserData, "{not json"))

	session, err = sdk.LoadSession(ctx, store)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "access", session.AccessToken)
	assert.Empty(t, session.RefreshToken)
	assert.Nil(t, session.CachedUser)
}

func TestClearSession_AttemptsEveryKey(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: sdk.NewMemoryStore(), failKey: sdk.KeyAccessToken}
	seedSession(t, store, "access")

	err := sdk.ClearSession(ctx, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keychain locked")

	refresh, _ := store.Get(ctx, sdk.KeyRefreshToken)
	user, _ := store.Get(ctx, sdk.KeyUserData)
	assert.Empty(t, refresh)
	assert.Empty(t, user)
}
