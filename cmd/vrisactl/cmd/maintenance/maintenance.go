package maintenance

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// MaintenanceCmd is the parent command for sensor maintenance logs
var MaintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Manage sensor maintenance logs",
}

var logColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "SENSOR", Key: "sensor"},
	{Header: "DATE", Key: "log_date"},
	{Header: "DESCRIPTION", Value: func(r sdk.Record) string {
		d := []rune(r.String("description"))
		if len(d) > 48 {
			return string(d[:48]) + "..."
		}
		return string(d)
	}},
	{Header: "CERTIFICATE", Value: func(r sdk.Record) string {
		if r.String("certificate") != "" {
			return "yes"
		}
		return ""
	}},
}

var createForm forms.MaintenanceLog

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a maintenance performed on a sensor",
	RunE: func(cmd *cobra.Command, args []string) error {
		form := createForm
		form.Description = strings.TrimSpace(form.Description)
		if form.Date == "" {
			form.Date = time.Now().Format(time.DateOnly)
		}
		if err := forms.Validate(form); err != nil {
			return err
		}

		body, err := maintenanceBody(form)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		log, err := client.Sensors.CreateMaintenanceLog(ctx, body)
		if err != nil {
			return fmt.Errorf("failed to create maintenance log: %w", err)
		}

		pterm.Success.Printf("Maintenance log %d created for sensor %d\n", log.ID(), form.SensorID)
		return nil
	},
}

// maintenanceBody builds the multipart form. The log date is sent as an
// ISO-8601 timestamp at UTC midnight.
func maintenanceBody(form forms.MaintenanceLog) (*sdk.Multipart, error) {
	date, err := time.Parse(time.DateOnly, form.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", form.Date, err)
	}

	body := sdk.NewMultipart().
		Set("sensor", strconv.FormatInt(form.SensorID, 10)).
		Set("log_date", date.UTC().Format(time.RFC3339)).
		Set("description", form.Description)

	if form.Certificate != "" {
		mtype, err := mimetype.DetectFile(form.Certificate)
		if err != nil {
			return nil, fmt.Errorf("failed to read certificate: %w", err)
		}
		if err := body.AttachFile("certificate", form.Certificate, mtype.String()); err != nil {
			return nil, err
		}
	}
	return body, nil
}

var (
	listSensor  int64
	listStation int64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List maintenance logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := url.Values{}
		if listSensor > 0 {
			filters.Set("sensor", strconv.FormatInt(listSensor, 10))
		}
		stationID, err := cmdutil.ResolveStation(listStation, false)
		if err != nil {
			return err
		}
		if stationID > 0 {
			filters.Set("station", strconv.FormatInt(stationID, 10))
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		logs, err := client.Sensors.ListMaintenanceLogs(ctx, filters)
		if err != nil {
			return fmt.Errorf("failed to list maintenance logs: %w", err)
		}
		return cmdutil.PrintList(cmd.Context(), logs, "maintenance logs", logColumns...)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <log-id>",
	Short: "Get a maintenance log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid log id %q", args[0])
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		log, err := client.Sensors.GetMaintenanceLog(ctx, logID)
		if err != nil {
			return fmt.Errorf("failed to get maintenance log %d: %w", logID, err)
		}
		return cmdutil.Printer(cmd.Context()).Record(log)
	},
}

func init() {
	f := createCmd.Flags()
	f.Int64Var(&createForm.SensorID, "sensor", 0, "Sensor id")
	f.StringVar(&createForm.Date, "date", "", "Maintenance date YYYY-MM-DD (default today)")
	f.StringVar(&createForm.Description, "description", "", "What was done")
	f.StringVar(&createForm.Certificate, "certificate", "", "Certificate file to attach")

	listCmd.Flags().Int64Var(&listSensor, "sensor", 0, "Only logs of this sensor")
	listCmd.Flags().Int64Var(&listStation, "station", 0, "Only logs of this station (defaults to the .vrisa station)")

	MaintenanceCmd.AddCommand(createCmd)
	MaintenanceCmd.AddCommand(listCmd)
	MaintenanceCmd.AddCommand(getCmd)
}
