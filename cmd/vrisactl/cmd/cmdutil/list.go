package cmdutil

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// PrintList renders a list payload. JSON and YAML print the payload exactly as
// the backend sent it, pagination metadata included. Tables show the items and
// point at the next page when there is one.
func PrintList(ctx context.Context, payload any, noun string, columns ...output.Column) error {
	return printList(Printer(ctx), payload, noun, columns...)
}

func printList(p *output.Printer, payload any, noun string, columns ...output.Column) error {
	if p.Structured() {
		return p.Value(payload)
	}

	page := sdk.NewPage(payload)
	if !page.IsList() {
		pterm.Warning.Printf("Unexpected response for %s, showing it as returned\n", noun)
		return p.Value(payload)
	}
	if len(page.Items) == 0 {
		pterm.Info.Printf("No %s found\n", noun)
		return nil
	}

	if err := p.Records(page.Records(), columns...); err != nil {
		return err
	}
	if page.HasMore() {
		pterm.Info.Printf("Showing %d of %d %s, next page: %s\n", len(page.Items), page.Count, noun, page.Next)
	}
	return nil
}
