package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from VriSA",
	Long: `Tells the server to end the session and removes the local session. The
local session is removed even when the server cannot be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := cmdutil.SessionManager(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		if err := manager.SignOut(ctx); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		pterm.Success.Println("Logged out successfully")
		return nil
	},
}
