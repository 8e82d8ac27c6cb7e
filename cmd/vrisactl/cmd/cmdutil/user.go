package cmdutil

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// PrintUser renders a normalized user and, on the terminal, reminds
// organization users who still have to complete their registration.
func PrintUser(ctx context.Context, user *sdk.User) error {
	p := Printer(ctx)

	rec, err := output.ToRecord(user)
	if err != nil {
		return err
	}
	if p.Structured() {
		return p.Record(rec)
	}

	pterm.DefaultSection.Println("User")
	if err := p.Record(rec); err != nil {
		return err
	}
	if user.NeedsRegistrationCompletion() {
		pterm.Warning.Printf("Registration incomplete for role %q: an institution must still be assigned.\n", user.RequestedRole)
	}
	return nil
}
