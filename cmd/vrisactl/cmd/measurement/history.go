package measurement

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

var (
	historyVariable string
	historyStation  int64
	historyPeriod   string
	historyPoints   int
	historyRaw      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recent series of one variable",
	Long: `Fetches the readings of a variable over the last period (24h, 7d, 30d or any
Go duration) and averages them down to --points values, the way the trends
chart does. --raw prints the server payload untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := parsePeriod(historyPeriod)
		if err != nil {
			return err
		}
		stationID, err := cmdutil.ResolveStation(historyStation, false)
		if err != nil {
			return err
		}

		end := time.Now()
		query := sdk.HistoryQuery{
			StationID:    stationID,
			VariableCode: historyVariable,
			Start:        end.Add(-period),
			End:          end,
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		payload, err := client.Measurements.History(ctx, query.Values())
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		p := cmdutil.Printer(cmd.Context())
		if historyRaw {
			return p.Value(payload)
		}

		samples := sdk.Downsample(sdk.Samples(payload), historyPoints)
		if len(samples) == 0 && !p.Structured() {
			pterm.Info.Printf("No %s readings in the last %s\n", historyVariable, historyPeriod)
			return nil
		}

		records := make([]sdk.Record, 0, len(samples))
		for _, s := range samples {
			records = append(records, sdk.Record{"measure_date": s.MeasureDate, "value": s.Value})
		}
		return p.Records(records,
			output.Column{Header: "DATE", Key: "measure_date"},
			output.Column{Header: strings.ToUpper(historyVariable), Value: func(r sdk.Record) string {
				v, _ := r.Float("value")
				return strconv.FormatFloat(v, 'f', 2, 64)
			}},
		)
	},
}

// parsePeriod accepts Go durations plus whole days ("7d").
func parsePeriod(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid period %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid period %q (use 24h, 7d, 30d or a Go duration)", s)
	}
	return d, nil
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyVariable, "variable", "PM2.5", "Variable code (PM2.5, PM10, CO, NO2, SO2, O3, TEMP, HUM)")
	f.Int64Var(&historyStation, "station", 0, "Station id (defaults to the .vrisa station, else all)")
	f.StringVar(&historyPeriod, "period", "24h", "Window ending now: 24h, 7d, 30d, ...")
	f.IntVar(&historyPoints, "points", 25, "Maximum number of averaged points (0 keeps every reading)")
	f.BoolVar(&historyRaw, "raw", false, "Print the server payload")
}
