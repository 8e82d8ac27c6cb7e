package measurement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
)

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "List measured variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		variables, err := client.Measurements.Variables(ctx)
		if err != nil {
			return fmt.Errorf("failed to list variables: %w", err)
		}
		return cmdutil.PrintList(cmd.Context(), variables, "variables",
			output.Column{Header: "ID", Key: "id"},
			output.Column{Header: "CODE", Key: "code"},
			output.Column{Header: "NAME", Key: "name"},
			output.Column{Header: "UNIT", Key: "unit"},
		)
	},
}
