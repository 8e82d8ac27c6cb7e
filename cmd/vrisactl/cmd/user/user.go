package user

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// UserCmd is the parent command for user operations
var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Show and update user profiles",
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your profile",
	Long: `Re-fetches your profile from the server. When the server cannot be reached the
last known profile is shown instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := cmdutil.SessionManager(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		user, err := manager.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if user == nil {
			return sdk.ErrNotAuthenticated
		}
		return cmdutil.PrintUser(cmd.Context(), user)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show a user profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		user, err := client.Users.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get user %d: %w", id, err)
		}
		return cmdutil.Printer(cmd.Context()).Record(user)
	},
}

var (
	updateID     int64
	updateData   string
	updateFields []string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a user profile",
	Long: `Updates your own account, or the profile of --id. The body comes from --data
(inline JSON or @file) and repeated --field key=value pairs; fields override
--data. Your cached profile is refreshed afterwards.`,
	Example: `  vrisactl user update --field first_name=Ana --field phone=3001234567
  vrisactl user update --id 12 --data @profile.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, warnings, err := cmdutil.ParseFields(updateData, updateFields)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			pterm.Warning.Println(w)
		}
		if len(body) == 0 {
			return fmt.Errorf("nothing to update (use --data or --field)")
		}

		manager, err := cmdutil.SessionManager(cmd.Context())
		if err != nil {
			return err
		}
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		var updated sdk.Record
		if updateID > 0 {
			updated, err = client.Users.UpdateProfile(ctx, updateID, body)
		} else {
			updated, err = client.Users.UpdateMe(ctx, body)
		}
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		// Keep the cached session user in step with the server.
		if _, err := manager.Refresh(ctx); err != nil {
			pterm.Warning.Printf("Profile updated but the session could not be refreshed: %v\n", err)
		}

		p := cmdutil.Printer(cmd.Context())
		if !p.Structured() {
			pterm.Success.Println("Profile updated")
		}
		return p.Record(updated)
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

func init() {
	f := updateCmd.Flags()
	f.Int64Var(&updateID, "id", 0, "Profile id to update (default: your own account)")
	f.StringVar(&updateData, "data", "", "Request body as JSON, or @file")
	f.StringArrayVar(&updateFields, "field", nil, "Body field (key=value), repeatable")

	UserCmd.AddCommand(meCmd)
	UserCmd.AddCommand(getCmd)
	UserCmd.AddCommand(updateCmd)
}
