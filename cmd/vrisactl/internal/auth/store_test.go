package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", sessionFile)

	store, err := NewFileStoreAt(path)
	require.NoError(t, err)

	v, err := store.Get(ctx, sdk.KeyAccessToken)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, sdk.SaveTokens(ctx, store, "access", "refresh"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	v, err = store.Get(ctx, sdk.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", v)

	require.NoError(t, sdk.ClearSession(ctx, store))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "session file should be removed once empty")
}

func TestFileStore_SeesExternalChanges(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), sessionFile)

	first, err := NewFileStoreAt(path)
	require.NoError(t, err)
	second, err := NewFileStoreAt(path)
	require.NoError(t, err)

	require.NoError(t, first.Set(ctx, sdk.KeyAccessToken, "abc"))
	v, err := second.Get(ctx, sdk.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, second.Delete(ctx, sdk.KeyAccessToken))
	v, err = first.Get(ctx, sdk.KeyAccessToken)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestFileStore_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), sessionFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store, err := NewFileStoreAt(path)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), sdk.KeyAccessToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupted session file")
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()
	store := NewKeyringStore("vrisa-test")

	v, err := store.Get(ctx, sdk.KeyUserData)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, store.Set(ctx, sdk.KeyUserData, `{"id":1}`))
	v, err = store.Get(ctx, sdk.KeyUserData)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, v)

	require.NoError(t, store.Delete(ctx, sdk.KeyUserData))
	require.NoError(t, store.Delete(ctx, sdk.KeyUserData), "deleting a missing slot is not an error")
}

func TestNewSessionStore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		backend string
		want    any
		wantErr bool
	}{
		{backend: "", want: &KeyringStore{}},
		{backend: "keyring", want: &KeyringStore{}},
		{backend: "FILE", want: &FileStore{}},
		{backend: "memory", want: &sdk.MemoryStore{}},
		{backend: "sqlite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			store, err := NewSessionStore(tt.backend)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown session backend")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
		})
	}
}
