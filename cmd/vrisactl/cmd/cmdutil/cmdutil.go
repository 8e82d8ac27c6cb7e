package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/client"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/config"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/dirctx"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// CommandTimeout bounds one command, retries included.
const CommandTimeout = 2 * time.Minute

// SDKClient returns the shared SDK client from the injected config.
func SDKClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

// SessionManager returns the shared session manager from the injected config.
func SessionManager(ctx context.Context) (*sdk.SessionManager, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SessionManager(ctx)
}

// Printer returns the output printer selected by --output.
func Printer(ctx context.Context) *output.Printer {
	return config.MustFromContext(ctx).Printer
}

// Context returns the command context bounded by CommandTimeout.
func Context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return client.WithTimeout(cmd.Context(), CommandTimeout)
}

// ResolveStation picks the station for a command: the explicit flag value, then
// the .vrisa file in the working directory. A corrupted .vrisa file is reported
// and ignored.
func ResolveStation(explicit int64, required bool) (int64, error) {
	dc, err := dirctx.Read()
	if err != nil {
		pterm.Warning.Printf("Warning: .vrisa file corrupted or invalid, ignoring: %v\n", err)
		dc = nil
	}
	return dirctx.ResolveStationID(explicit, dc, required)
}

// Describe turns SDK errors into messages suited to the terminal.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, sdk.ErrNotAuthenticated) {
		return "not logged in; please run `vrisactl auth login`"
	}
	if errors.Is(err, sdk.ErrSessionStore) {
		return fmt.Sprintf("%s (check the --session-backend storage is unlocked and readable)", err)
	}

	var apiErr *sdk.APIError
	if errors.As(err, &apiErr) {
		switch {
		case sdk.IsLocal(err):
			return err.Error()
		case apiErr.StatusCode == 0:
			return fmt.Sprintf("%s (check VRISA_API_HOST/VRISA_API_PORT and that the server is reachable)", err)
		case apiErr.StatusCode == 401:
			return fmt.Sprintf("%s [401]; session cleared, please run `vrisactl auth login`", err)
		default:
			return fmt.Sprintf("%s [%d]", err, apiErr.StatusCode)
		}
	}
	return err.Error()
}
