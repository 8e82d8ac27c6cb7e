package measurement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
)

var latestStation int64

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the latest readings",
	Long:  `Shows the latest readings of a station, or of every station when none is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stationID, err := cmdutil.ResolveStation(latestStation, false)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		latest, err := client.Measurements.Latest(ctx, stationID)
		if err != nil {
			return fmt.Errorf("failed to load latest readings: %w", err)
		}
		return cmdutil.Printer(cmd.Context()).Value(latest)
	},
}

func init() {
	latestCmd.Flags().Int64Var(&latestStation, "station", 0, "Station id")
}
