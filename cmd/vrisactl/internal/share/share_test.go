package share

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

func TestOpener_Share(t *testing.T) {
	var opened string
	o := NewOpener(nil)
	o.open = func(path string) error {
		opened = path
		return nil
	}

	require.NoError(t, o.Share(context.Background(), "/tmp/r.pdf", "application/pdf"))
	assert.Equal(t, "/tmp/r.pdf", opened)
}

func TestOpener_Unavailable(t *testing.T) {
	o := NewOpener(nil)
	o.open = func(string) error { return errors.New("exec: \"xdg-open\": executable file not found in $PATH") }

	err := o.Share(context.Background(), "/tmp/r.pdf", "application/pdf")
	require.ErrorIs(t, err, sdk.ErrShareUnavailable)
	assert.Contains(t, err.Error(), "xdg-open")
}

func TestOpener_CancelledContext(t *testing.T) {
	called := false
	o := NewOpener(nil)
	o.open = func(string) error {
		called = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, o.Share(ctx, "/tmp/r.pdf", "application/pdf"), context.Canceled)
	assert.False(t, called)
}
