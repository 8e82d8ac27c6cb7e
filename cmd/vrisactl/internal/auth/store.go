package auth

import (
	"fmt"
	"strings"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// Session storage backends selectable with --session-backend.
const (
	BackendKeyring = "keyring"
	BackendFile    = "file"
	BackendMemory  = "memory"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendKeyring, BackendFile, BackendMemory}

// NewSessionStore builds the store for the named backend. An empty name selects
// the keyring.
func NewSessionStore(backend string) (sdk.SessionStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendKeyring:
		return NewKeyringStore(""), nil
	case BackendFile:
		return NewFileStore()
	case BackendMemory:
		return sdk.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q (expected one of %s)", backend, strings.Join(Backends, ", "))
	}
}
