package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to VriSA",
	Long: `Signs in with email and password and stores the session in the configured
session backend (the OS keychain by default).

Missing values are prompted for when running in a terminal. For scripts, pass
--email and set VRISA_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := forms.Login{Email: strings.TrimSpace(loginEmail), Password: loginPassword}
		if form.Password == "" {
			form.Password = os.Getenv("VRISA_PASSWORD")
		}
		if err := promptMissing(&form); err != nil {
			return err
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

		user, err := manager.SignIn(ctx, form.Email, form.Password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", displayName(user.FullName(), user.Email), user.PrimaryRole)
		if user.NeedsRegistrationCompletion() {
			pterm.Warning.Println("Your organization registration is not complete yet; an administrator must assign your institution.")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prefer VRISA_PASSWORD or the prompt)")
}

func promptMissing(form *forms.Login) error {
	if !isTerminal(os.Stdin) {
		return nil
	}
	if form.Email == "" {
		email, err := pterm.DefaultInteractiveTextInput.Show("Email")
		if err != nil {
			return err
		}
		form.Email = strings.TrimSpace(email)
	}
	if form.Password == "" {
		password, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
		if err != nil {
			return err
		}
		form.Password = password
	}
	return nil
}

func displayName(name, email string) string {
	if name == "" {
		return email
	}
	return name
}

// isTerminal checks if the given file is a terminal (TTY)
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
