package report

import (
	"fmt"
	"net/url"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// ReportCmd is the parent command for report operations
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "List, generate and download reports",
}

var reportColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "TYPE", Key: "report_type"},
	{Header: "STATION", Key: "station"},
	{Header: "START", Key: "start_date"},
	{Header: "END", Key: "end_date"},
	{Header: "CREATED", Key: "created_at"},
}

var (
	listType    string
	listStation int64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated reports",
	Long:  `Lists generated reports, optionally only one type: air_quality, trends or critical_alerts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		filters := url.Values{}
		if listStation > 0 {
			filters.Set("station_id", fmt.Sprint(listStation))
		}

		var reports any
		switch listType {
		case "":
			reports, err = client.Reports.List(ctx, filters)
		case sdk.ReportTypeAirQuality:
			reports, err = client.Reports.ListAirQuality(ctx, filters)
		case sdk.ReportTypeTrends:
			reports, err = client.Reports.ListTrends(ctx, filters)
		case sdk.ReportTypeCriticalAlerts:
			reports, err = client.Reports.ListCriticalAlerts(ctx, filters)
		default:
			return fmt.Errorf("unknown report type %q (use %s, %s or %s)", listType,
				sdk.ReportTypeAirQuality, sdk.ReportTypeTrends, sdk.ReportTypeCriticalAlerts)
		}
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}
		return cmdutil.PrintList(cmd.Context(), reports, "reports", reportColumns...)
	},
}

var (
	generateData   string
	generateFields []string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the server to generate a report",
	Long: `Sends a report generation request. The body comes from --data (inline JSON or
@file) and repeated --field key=value pairs; fields override --data.`,
	Example: `  vrisactl report generate --field report_type=air_quality --field station=3 \
    --field start_date=2025-01-01 --field end_date=2025-01-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, warnings, err := cmdutil.ParseFields(generateData, generateFields)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			pterm.Warning.Println(w)
		}
		if len(body) == 0 {
			return fmt.Errorf("no report parameters given (use --data or --field)")
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		rep, err := client.Reports.Generate(ctx, body)
		if err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		p := cmdutil.Printer(cmd.Context())
		if !p.Structured() {
			pterm.Success.Printf("Report %d generated\n", rep.ID())
		}
		return p.Record(rep)
	},
}

var generalCmd = &cobra.Command{
	Use:   "general",
	Short: "Show the general network report",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		general, err := client.Reports.General(ctx)
		if err != nil {
			return fmt.Errorf("failed to load general report: %w", err)
		}
		return cmdutil.Printer(cmd.Context()).Value(general)
	},
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "Report type: air_quality, trends or critical_alerts")
	listCmd.Flags().Int64Var(&listStation, "station", 0, "Only reports for this station")

	generateCmd.Flags().StringVar(&generateData, "data", "", "Request body as JSON, or @file")
	generateCmd.Flags().StringArrayVar(&generateFields, "field", nil, "Body field (key=value), repeatable")

	ReportCmd.AddCommand(listCmd)
	ReportCmd.AddCommand(generateCmd)
	ReportCmd.AddCommand(generalCmd)
	ReportCmd.AddCommand(downloadCmd)
}
