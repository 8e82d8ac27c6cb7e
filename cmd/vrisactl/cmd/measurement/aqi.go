package measurement

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

var aqiStation int64

var aqiCmd = &cobra.Command{
	Use:   "aqi",
	Short: "Show the current air quality index",
	Long: `Shows the current AQI of a station (--station or the .vrisa station), or the
network-wide value when no station is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stationID, err := cmdutil.ResolveStation(aqiStation, false)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		aqi, err := client.Measurements.CurrentAQI(ctx, stationID)
		if err != nil {
			return fmt.Errorf("failed to load current AQI: %w", err)
		}

		return printAQI(cmd, aqi)
	},
}

// printAQI adds the category of the index to the record before rendering it.
func printAQI(cmd *cobra.Command, aqi sdk.Record) error {
	p := cmdutil.Printer(cmd.Context())
	value, ok := aqi.Float("aqi")
	if !ok {
		if !p.Structured() {
			pterm.Warning.Println("The server returned no AQI value")
		}
		return p.Record(aqi)
	}

	category := sdk.ClassifyAQI(value)
	out := sdk.Record{}
	for k, v := range aqi {
		out[k] = v
	}
	out["category"] = category.Label
	out["category_level"] = category.Level

	if !p.Structured() {
		pterm.DefaultSection.Println("Air Quality Index")
		pterm.Info.Printf("AQI %.0f: %s\n", value, category.Label)
	}
	return p.Record(out)
}

func init() {
	aqiCmd.Flags().Int64Var(&aqiStation, "station", 0, "Station id")
}
