package dashboard

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

var (
	dashboardStation int64
	dashboardWatch   time.Duration
)

// DashboardCmd shows the current AQI next to the station list
var DashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the current AQI and the station list",
	Long: `Loads the current AQI and the station list in parallel. A part that fails to
load is shown as unavailable. With --watch the dashboard is reloaded on that
interval until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stationID, err := cmdutil.ResolveStation(dashboardStation, false)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		if dashboardWatch <= 0 {
			return show(cmd, client, stationID)
		}

		ticker := time.NewTicker(dashboardWatch)
		defer ticker.Stop()
		for {
			if err := show(cmd, client, stationID); err != nil {
				return err
			}
			select {
			case <-cmd.Context().Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func show(cmd *cobra.Command, client *sdk.Client, stationID int64) error {
	ctx, cancel := cmdutil.Context(cmd)
	defer cancel()

	dash, err := sdk.LoadDashboard(ctx, client, stationID)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	return render(cmdutil.Printer(cmd.Context()), dash)
}

// summary flattens the dashboard for structured output.
func summary(dash *sdk.Dashboard) sdk.Record {
	rec := sdk.Record{"aqi": nil, "stations": dash.Stations}
	if value, ok := dash.AQIValue(); ok {
		category := sdk.ClassifyAQI(value)
		rec["aqi"] = value
		rec["category"] = category.Label
		rec["category_level"] = category.Level
		rec["color"] = category.Color
	}
	return rec
}

func render(p *output.Printer, dash *sdk.Dashboard) error {
	if p.Structured() {
		return p.Value(summary(dash))
	}

	pterm.DefaultSection.Println("Air Quality")
	if value, ok := dash.AQIValue(); ok {
		category := sdk.ClassifyAQI(value)
		pterm.Info.Printf("AQI %.0f: %s\n", value, category.Label)
		if pollutant := dash.AQI.String("main_pollutant"); pollutant != "" {
			pterm.Info.Printf("Main pollutant: %s\n", pollutant)
		}
	} else {
		pterm.Warning.Println("Current AQI unavailable")
	}

	pterm.DefaultSection.Printf("Stations (%d)\n", len(dash.Stations))
	return p.Records(dash.Stations,
		output.Column{Header: "ID", Key: "id"},
		output.Column{Header: "NAME", Key: "name"},
		output.Column{Header: "LOCATION", Key: "location"},
		output.Column{Header: "STATUS", Key: "operative_status"},
	)
}

func init() {
	DashboardCmd.Flags().Int64Var(&dashboardStation, "station", 0, "Station for the AQI (defaults to the .vrisa station, else the whole network)")
	DashboardCmd.Flags().DurationVar(&dashboardWatch, "watch", 0, "Reload interval, e.g. 1m (0 shows once)")
}
