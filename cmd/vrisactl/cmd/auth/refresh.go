package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Renew the access token",
	Long:  `Exchanges the stored refresh token for a new access token and reloads the profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := cmdutil.SessionManager(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		if err := manager.RenewToken(ctx); err != nil {
			return fmt.Errorf("failed to renew token: %w", err)
		}

		user, err := manager.Refresh(ctx)
		if err != nil {
			return err
		}

		if user == nil {
			pterm.Success.Println("Token renewed")
			return nil
		}
		pterm.Success.Printf("Token renewed for %s\n", displayName(user.FullName(), user.Email))
		return nil
	},
}
