package station

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/config"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/dirctx"
)

var (
	useClear bool
	useForce bool
)

var useCmd = &cobra.Command{
	Use:   "use [<station-id>]",
	Short: "Set the default station for this directory",
	Long: `Writes a .vrisa file in the current directory so that station-scoped
commands (sensor by-station, measurement aqi/latest, report download, dashboard)
default to this station.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if useClear {
			if err := dirctx.Remove(); err != nil {
				return err
			}
			pterm.Success.Println("Default station cleared")
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("station id required (or --clear)")
		}

		stationID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || stationID <= 0 {
			return fmt.Errorf("invalid station id %q", args[0])
		}

		existing, err := dirctx.Read()
		if err != nil && !useForce {
			return fmt.Errorf("%w (use --force to overwrite)", err)
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

		now := time.Now().UTC()
		dc := &dirctx.DirectoryContext{
			Version:     dirctx.FileVersion,
			StationID:   stationID,
			StationName: station.String("name"),
			ServerURL:   client.BaseURL(),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if existing != nil {
			dc.CreatedAt = existing.CreatedAt
		}
		if err := dirctx.Write(dc); err != nil {
			return err
		}

		if cfg := config.MustFromContext(cmd.Context()); !cfg.Printer.Structured() {
			pterm.Success.Printf("Default station set to %d (%s)\n", stationID, dc.StationName)
		}
		return nil
	},
}

func init() {
	useCmd.Flags().BoolVar(&useClear, "clear", false, "Remove the .vrisa file")
	useCmd.Flags().BoolVar(&useForce, "force", false, "Overwrite a corrupted .vrisa file")
}
