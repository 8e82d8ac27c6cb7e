package station

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stations",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		stations, err := client.Stations.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list stations: %w", err)
		}

		return cmdutil.PrintList(cmd.Context(), stations, "stations", stationColumns...)
	},
}

var getCmd = &cobra.Command{
	Use:   "get [<station-id>]",
	Short: "Get details of a station",
	Long:  `Shows one station. Uses the .vrisa context if no id is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var explicit int64
		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid station id %q", args[0])
			}
			explicit = id
		}
		stationID, err := cmdutil.ResolveStation(explicit, true)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		station, err := client.Stations.Get(ctx, stationID)
		if err != nil {
			return fmt.Errorf("failed to get station %d: %w", stationID, err)
		}
		return cmdutil.Printer(cmd.Context()).Record(station)
	},
}
