package station

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
)

var registerForm forms.StationRegistration

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a station for review",
	Long: `Registers a station on behalf of a station administrator. The station is
reviewed by an administrator before it becomes active.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := registerForm
		if err := forms.Validate(form); err != nil {
			return err
		}

		body := map[string]any{
			"name":        form.Name,
			"location":    form.Location,
			"institution": form.InstitutionID,
		}
		// Coordinates are only sent as a pair.
		if cmd.Flags().Changed("latitude") && cmd.Flags().Changed("longitude") {
			body["latitude"] = form.Latitude
			body["longitude"] = form.Longitude
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		station, err := client.Stations.Register(ctx, body)
		if err != nil {
			return fmt.Errorf("failed to register station: %w", err)
		}

		pterm.Success.Println("Station registered. It will be reviewed by an administrator.")
		return cmdutil.Printer(cmd.Context()).Record(station)
	},
}

func init() {
	f := registerCmd.Flags()
	f.StringVar(&registerForm.Name, "name", "", "Station name")
	f.StringVar(&registerForm.Location, "location", "", "Station location or address")
	f.Int64Var(&registerForm.InstitutionID, "institution", 0, "Owning institution id")
	f.Float64Var(&registerForm.Latitude, "latitude", 0, "Latitude in decimal degrees")
	f.Float64Var(&registerForm.Longitude, "longitude", 0, "Longitude in decimal degrees")
}
