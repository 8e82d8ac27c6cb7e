package institution

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// InstitutionCmd is the parent command for institution operations
var InstitutionCmd = &cobra.Command{
	Use:     "institution",
	Aliases: []string{"inst"},
	Short:   "Manage institutions",
}

var institutionColumns = []output.Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "NIT", Key: "nit"},
	{Header: "CITY", Key: "city"},
	{Header: "STATUS", Key: "validation_status"},
}

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List institutions",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		filters := url.Values{}
		if listStatus != "" {
			filters.Set("validation_status", listStatus)
		}

		institutions, err := client.Institutions.List(ctx, filters)
		if err != nil {
			return fmt.Errorf("failed to list institutions: %w", err)
		}
		return cmdutil.PrintList(cmd.Context(), institutions, "institutions", institutionColumns...)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <institution-id>",
	Short: "Show one institution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		inst, err := client.Institutions.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get institution %d: %w", id, err)
		}
		return cmdutil.Printer(cmd.Context()).Record(inst)
	},
}

var registerForm forms.Institution

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register an institution for approval",
	Long: `Submits a new institution. With --documentation the request is sent as
multipart form data carrying the supporting document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := registerForm
		if err := forms.Validate(form); err != nil {
			return err
		}

		body, err := institutionBody(form)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		inst, err := client.Institutions.Register(ctx, body)
		if err != nil {
			return fmt.Errorf("failed to register institution: %w", err)
		}

		p := cmdutil.Printer(cmd.Context())
		if !p.Structured() {
			pterm.Success.Printf("Institution %q registered with id %d, pending approval\n", form.Name, inst.ID())
			return nil
		}
		return p.Record(inst)
	},
}

// institutionBody returns a JSON map, or a multipart form when a document is
// attached.
func institutionBody(form forms.Institution) (any, error) {
	fields := map[string]string{
		"name":                form.Name,
		"nit":                 form.NIT,
		"address":             form.Address,
		"city":                form.City,
		"representative_name": form.RepresentativeName,
		"email":               form.Email,
		"phone":               form.Phone,
	}

	if form.Documentation == "" {
		body := map[string]any{}
		for k, v := range fields {
			if v != "" {
				body[k] = v
			}
		}
		return body, nil
	}

	body := sdk.NewMultipart()
	for k, v := range fields {
		if v != "" {
			body.Set(k, v)
		}
	}
	mtype, err := mimetype.DetectFile(form.Documentation)
	if err != nil {
		return nil, fmt.Errorf("failed to read documentation: %w", err)
	}
	if err := body.AttachFile("documentation", form.Documentation, mtype.String()); err != nil {
		return nil, err
	}
	return body, nil
}

var approveCmd = &cobra.Command{
	Use:   "approve <institution-id>",
	Short: "Approve a pending institution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		if _, err := client.Institutions.Approve(ctx, id); err != nil {
			return fmt.Errorf("failed to approve institution %d: %w", id, err)
		}

		pterm.Success.Printf("Institution %d approved\n", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid institution id %q", s)
	}
	return id, nil
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by validation status (PENDING, ACCEPTED, REJECTED)")

	f := registerCmd.Flags()
	f.StringVar(&registerForm.Name, "name", "", "Institution name")
	f.StringVar(&registerForm.NIT, "nit", "", "Tax identification number")
	f.StringVar(&registerForm.Address, "address", "", "Street address")
	f.StringVar(&registerForm.City, "city", "", "City")
	f.StringVar(&registerForm.RepresentativeName, "representative", "", "Legal representative")
	f.StringVar(&registerForm.Email, "email", "", "Contact email")
	f.StringVar(&registerForm.Phone, "phone", "", "Contact phone")
	f.StringVar(&registerForm.Documentation, "documentation", "", "Supporting document to attach")

	InstitutionCmd.AddCommand(listCmd)
	InstitutionCmd.AddCommand(getCmd)
	InstitutionCmd.AddCommand(registerCmd)
	InstitutionCmd.AddCommand(approveCmd)
}
