package report

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/config"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/share"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

type downloadFunc func(*sdk.ReportExporter, context.Context, sdk.ReportQuery) (*sdk.ExportResult, error)

// reportKinds maps the download argument to the exporter call. needsEnd is set
// for reports the backend only serves over a date range.
var reportKinds = map[string]struct {
	download downloadFunc
	needsEnd bool
}{
	"air-quality": {download: (*sdk.ReportExporter).DownloadAirQuality},
	"trends":      {download: (*sdk.ReportExporter).DownloadTrends, needsEnd: true},
	"alerts":      {download: (*sdk.ReportExporter).DownloadAlerts, needsEnd: true},
}

var (
	downloadStation  int64
	downloadStart    string
	downloadEnd      string
	downloadVariable string
)

var downloadCmd = &cobra.Command{
	Use:       "download <air-quality|trends|alerts>",
	Short:     "Download a PDF report and open it",
	ValidArgs: []string{"air-quality", "trends", "alerts"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Downloads a report into the export directory and opens it with the system
viewer (disable with --no-open). The air-quality report covers a single day
unless --end is given; trends and alerts need both --start and --end.`,
	Example: `  vrisactl report download air-quality --station 3 --start 2025-01-15
  vrisactl report download trends --start 2025-01-01 --end 2025-01-31 --variable PM10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := reportKinds[args[0]]

		query, err := reportQuery(kind.needsEnd)
		if err != nil {
			return err
		}

		gcfg := config.MustFromContext(cmd.Context())
		var sharer sdk.Sharer
		if !gcfg.Settings.NoOpen {
			sharer = share.NewOpener(gcfg.Logger)
		}

		exporter, err := gcfg.ClientProvider.ReportExporter(cmd.Context(), sharer)
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		p := cmdutil.Printer(cmd.Context())
		var spinner *pterm.SpinnerPrinter
		if !p.Structured() {
			spinner, _ = pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Downloading " + args[0] + " report")
		}
		result, err := kind.download(exporter, ctx, query)
		if spinner != nil {
			_ = spinner.Stop()
		}
		if err != nil {
			return fmt.Errorf("failed to download %s report: %w", args[0], err)
		}

		return printResult(p, result)
	},
}

// reportQuery validates the date flags. The start date defaults to today.
func reportQuery(needsEnd bool) (sdk.ReportQuery, error) {
	rng := forms.ReportRange{StartDate: downloadStart, EndDate: downloadEnd}
	if rng.StartDate == "" {
		rng.StartDate = time.Now().Format(time.DateOnly)
	}
	if err := forms.Validate(rng); err != nil {
		return sdk.ReportQuery{}, err
	}
	if needsEnd && rng.EndDate == "" {
		return sdk.ReportQuery{}, fmt.Errorf("--end is required for this report")
	}
	if rng.EndDate != "" && rng.EndDate < rng.StartDate {
		return sdk.ReportQuery{}, fmt.Errorf("--end %s is before --start %s", rng.EndDate, rng.StartDate)
	}

	stationID, err := cmdutil.ResolveStation(downloadStation, false)
	if err != nil {
		return sdk.ReportQuery{}, err
	}
	return sdk.ReportQuery{
		StationID:    stationID,
		StartDate:    rng.StartDate,
		EndDate:      rng.EndDate,
		VariableCode: downloadVariable,
	}, nil
}

func printResult(p *output.Printer, result *sdk.ExportResult) error {
	rec := sdk.Record{
		"path":      result.Path,
		"mime_type": result.MIMEType,
		"size":      result.Size,
		"shared":    result.Shared,
	}
	if result.MIMEType == "application/pdf" {
		if pages, err := output.PDFPageCount(result.Path); err == nil {
			rec["pages"] = pages
		}
	}
	if p.Structured() {
		return p.Value(rec)
	}

	pterm.Success.Printf("Saved %s (%s)\n", result.Path, humanize.Bytes(uint64(result.Size)))
	if pages, ok := rec["pages"]; ok {
		pterm.Info.Printf("%d page(s)\n", pages)
	}
	return nil
}

func init() {
	f := downloadCmd.Flags()
	f.Int64Var(&downloadStation, "station", 0, "Station id (defaults to the .vrisa station, else all)")
	f.StringVar(&downloadStart, "start", "", "Start date, YYYY-MM-DD (default today)")
	f.StringVar(&downloadEnd, "end", "", "End date, YYYY-MM-DD")
	f.StringVar(&downloadVariable, "variable", "", "Variable code filter (air-quality and trends)")
}
