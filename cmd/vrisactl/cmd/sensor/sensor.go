package sensor

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// SensorCmd is the parent command for sensor operations
var SensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Inspect station sensors",
}

var sensorColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "MODEL", Key: "model"},
	{Header: "SERIAL", Key: "serial_number"},
	{Header: "STATION", Value: func(r sdk.Record) string {
		if name := r.String("station_name"); name != "" {
			return name
		}
		return output.FormatValue(r["station"])
	}},
	{Header: "STATUS", Key: "status"},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sensors",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		sensors, err := client.Sensors.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list sensors: %w", err)
		}
		return cmdutil.PrintList(cmd.Context(), sensors, "sensors", sensorColumns...)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <sensor-id>",
	Short: "Get details of a sensor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sensorID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sensor id %q", args[0])
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		sensor, err := client.Sensors.Get(ctx, sensorID)
		if err != nil {
			return fmt.Errorf("failed to get sensor %d: %w", sensorID, err)
		}
		return cmdutil.Printer(cmd.Context()).Record(sensor)
	},
}

var byStationID int64

var byStationCmd = &cobra.Command{
	Use:   "by-station",
	Short: "List the sensors of a station",
	Long:  `Lists the sensors installed at a station. Uses the .vrisa station if --station is omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stationID, err := cmdutil.ResolveStation(byStationID, true)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		sensors, err := client.Sensors.ListByStation(ctx, stationID)
		if err != nil {
			return fmt.Errorf("failed to list sensors of station %d: %w", stationID, err)
		}
		return cmdutil.PrintList(cmd.Context(), sensors, "sensors", sensorColumns...)
	},
}

func init() {
	byStationCmd.Flags().Int64Var(&byStationID, "station", 0, "Station id")

	SensorCmd.AddCommand(listCmd)
	SensorCmd.AddCommand(getCmd)
	SensorCmd.AddCommand(byStationCmd)
}
