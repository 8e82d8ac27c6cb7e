package auth

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
)

var registration forms.Registration

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a VriSA account",
	Long: `Registers a new account. Citizens are signed in immediately when the server
returns tokens. Organization members (--organization with --role) are created
pending review and must sign in once an administrator completes their
registration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := registration
		if form.Password == "" {
			form.Password = os.Getenv("VRISA_PASSWORD")
		}
		if form.PasswordConfirm == "" {
			form.PasswordConfirm = form.Password
		}
		if form.RequestedRole != "" {
			form.BelongsToOrganization = form.BelongsToOrganization || form.RequestedRole != "citizen"
		}
		if err := forms.Validate(form); err != nil {
			return err
		}

		manager, err := cmdutil.SessionManager(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		user, resp, err := manager.SignUp(ctx, form.Payload())
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		if user == nil {
			pterm.Success.Println("Account created. Sign in with `vrisactl auth login` once it is active.")
			if message := resp.String("message"); message != "" {
				pterm.Info.Println(message)
			}
			return nil
		}

		pterm.Success.Printf("Account created and signed in as %s\n", displayName(user.FullName(), user.Email))
		return cmdutil.PrintUser(cmd.Context(), user)
	},
}

func init() {
	f := registerCmd.Flags()
	f.StringVar(&registration.Email, "email", "", "Account email")
	f.StringVar(&registration.Password, "password", "", "Password, at least 6 characters (or VRISA_PASSWORD)")
	f.StringVar(&registration.PasswordConfirm, "password-confirm", "", "Password confirmation (defaults to --password)")
	f.StringVar(&registration.FirstName, "first-name", "", "First name")
	f.StringVar(&registration.LastName, "last-name", "", "Last name")
	f.StringVar(&registration.Phone, "phone", "", "Phone number")
	f.BoolVar(&registration.BelongsToOrganization, "organization", false, "Register on behalf of an organization")
	f.StringVar(&registration.RequestedRole, "role", "", "Requested role: station_admin, researcher, institution_head or citizen")
	f.Int64Var(&registration.InstitutionID, "institution", 0, "Institution id for organization members")
}
