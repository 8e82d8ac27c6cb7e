package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// KeyringService is the service name the session slots are filed under in the
// platform keychain.
const KeyringService = "vrisa"

// KeyringStore implements sdk.SessionStore on top of the operating system's
// secret storage (Keychain, Secret Service, Windows Credential Manager).
type KeyringStore struct {
	service string
}

var _ sdk.SessionStore = (*KeyringStore)(nil)

// NewKeyringStore returns a store using the given keychain service name, or
// KeyringService when empty.
func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = KeyringService
	}
	return &KeyringStore{service: service}
}

func (s *KeyringStore) Get(_ context.Context, key string) (string, error) {
	value, err := keyring.Get(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring read %s: %w", key, err)
	}
	return value, nil
}

func (s *KeyringStore) Set(_ context.Context, key, value string) error {
	if err := keyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("keyring write %s: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) Delete(_ context.Context, key string) error {
	err := keyring.Delete(s.service, key)
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("keyring delete %s: %w", key, err)
}
