package station

import (
	"fmt"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

var registrationCmd = &cobra.Command{
	Use:   "registration",
	Short: "Station registration requests",
	Long: `A registration request proposes a new station together with its sensor data
and calibration certificate. Administrators accept or reject it.`,
}

var (
	registrationForm   forms.StationRegistration
	registrationFields []string
)

var registrationRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Submit a station registration request",
	Long: `Submits the request as multipart form data. Extra form fields (sensor model,
serial number, ...) can be passed with repeated --field key=value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := registrationForm
		if err := forms.Validate(form); err != nil {
			return err
		}

		body, err := registrationBody(form, registrationFields, cmd.Flags().Changed("latitude") && cmd.Flags().Changed("longitude"))
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		req, err := client.Stations.RequestRegistration(ctx, body)
		if err != nil {
			return fmt.Errorf("failed to submit registration request: %w", err)
		}

		pterm.Success.Printf("Registration request %d submitted (status %s)\n", req.ID(), req.String("status"))
		return nil
	},
}

// registrationBody assembles the multipart form. The certificate's content
// type is sniffed from the file itself.
func registrationBody(form forms.StationRegistration, extra []string, withCoordinates bool) (*sdk.Multipart, error) {
	fields, warnings, err := cmdutil.ParseFields("", extra)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		pterm.Warning.Println(w)
	}

	body := sdk.NewMultipart()
	for k, v := range fields {
		body.Set(k, fmt.Sprint(v))
	}
	body.Set("name", form.Name).
		Set("location", form.Location).
		Set("institution", strconv.FormatInt(form.InstitutionID, 10))
	if withCoordinates {
		body.Set("latitude", strconv.FormatFloat(form.Latitude, 'f', -1, 64)).
			Set("longitude", strconv.FormatFloat(form.Longitude, 'f', -1, 64))
	}

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

var registrationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List station registration requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		requests, err := client.Stations.ListRegistrationRequests(ctx)
		if err != nil {
			return fmt.Errorf("failed to list registration requests: %w", err)
		}
		return cmdutil.PrintList(cmd.Context(), requests, "registration requests", requestColumns...)
	},
}

var registrationReviewCmd = &cobra.Command{
	Use:   "review <request-id> <accept|reject>",
	Short: "Accept or reject a station registration request",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		requestID, review, err := parseReviewArgs(args)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		if _, err := client.Stations.ReviewRegistrationRequest(ctx, requestID, review.Status, review.Comments); err != nil {
			return fmt.Errorf("failed to review registration request %d: %w", requestID, err)
		}

		pterm.Success.Printf("Registration request %d marked %s\n", requestID, review.Status)
		return nil
	},
}

func init() {
	f := registrationRequestCmd.Flags()
	f.StringVar(&registrationForm.Name, "name", "", "Station name")
	f.StringVar(&registrationForm.Location, "location", "", "Station location or address")
	f.Int64Var(&registrationForm.InstitutionID, "institution", 0, "Owning institution id")
	f.Float64Var(&registrationForm.Latitude, "latitude", 0, "Latitude in decimal degrees")
	f.Float64Var(&registrationForm.Longitude, "longitude", 0, "Longitude in decimal degrees")
	f.StringVar(&registrationForm.Certificate, "certificate", "", "Calibration certificate file to attach")
	f.StringArrayVar(&registrationFields, "field", nil, "Extra form field (key=value), repeatable")

	registrationReviewCmd.Flags().StringVar(&reviewComments, "comments", "", "Review comments")

	registrationCmd.AddCommand(registrationRequestCmd)
	registrationCmd.AddCommand(registrationListCmd)
	registrationCmd.AddCommand(registrationReviewCmd)
}
