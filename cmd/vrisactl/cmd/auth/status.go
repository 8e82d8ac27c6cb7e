package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/config"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

var statusVerify bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	Long: `Shows the stored session and the cached user. With --verify the stored
session is resumed against the server the way the app does at startup: the
profile is fetched, and a session that cannot be verified is cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		store, err := cfg.ClientProvider.Store(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}

		session, err := sdk.LoadSession(cmd.Context(), store)
		if err != nil {
			return err
		}
		if session == nil {
			return sdk.ErrNotAuthenticated
		}

		user := session.CachedUser
		if statusVerify {
			manager, err := cmdutil.SessionManager(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := cmdutil.Context(cmd)
			defer cancel()

			user, err = verifySession(ctx, manager)
			if err != nil {
				return err
			}
		}

		if !cfg.Printer.Structured() {
			pterm.DefaultSection.Println("Authentication Status")
			if exp := session.ExpiresAt(); !exp.IsZero() {
				if session.IsExpired() {
					pterm.Warning.Printf("Access token expired at: %s (run `vrisactl auth refresh`)\n", exp.Format(time.RFC1123))
				} else {
					pterm.Info.Printf("Logged in with token expiring at: %s\n", exp.Format(time.RFC1123))
				}
			} else {
				pterm.Info.Println("Logged in (token expiry unknown)")
			}
			if session.RefreshToken == "" {
				pterm.Warning.Println("No refresh token stored")
			}
		}

		if user == nil {
			pterm.Warning.Println("No cached user; run `vrisactl auth status --verify`")
			return nil
		}
		return cmdutil.PrintUser(cmd.Context(), user)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusVerify, "verify", false, "Fetch the profile from the server")
}

// verifySession resumes the stored session. A session the server did not accept
// has already been cleared when ErrNotAuthenticated is returned.
func verifySession(ctx context.Context, manager *sdk.SessionManager) (*sdk.User, error) {
	user, err := manager.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("stored session could not be verified and was cleared: %w", sdk.ErrNotAuthenticated)
	}
	return user, nil
}
