package station

import (
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// StationCmd is the parent command for station operations
var StationCmd = &cobra.Command{
	Use:   "station",
	Short: "Manage monitoring stations",
	Long: `Commands for listing and registering monitoring stations and for the
affiliation and registration-request review workflows.`,
}

func init() {
	StationCmd.AddCommand(listCmd)
	StationCmd.AddCommand(getCmd)
	StationCmd.AddCommand(registerCmd)
	StationCmd.AddCommand(useCmd)
	StationCmd.AddCommand(affiliationCmd)
	StationCmd.AddCommand(registrationCmd)
}

var stationColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "LOCATION", Key: "location"},
	{Header: "INSTITUTION", Value: func(r sdk.Record) string {
		if name := r.String("institution_name"); name != "" {
			return name
		}
		return output.FormatValue(r["institution"])
	}},
	{Header: "STATUS", Key: "status"},
}

var requestColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "STATION", Value: func(r sdk.Record) string {
		if name := r.String("station_name"); name != "" {
			return name
		}
		if name := r.String("name"); name != "" {
			return name
		}
		return output.FormatValue(r["station"])
	}},
	{Header: "STATUS", Key: "status"},
	{Header: "REQUESTED", Key: "created_at"},
	{Header: "COMMENTS", Key: "comments"},
}
