package station

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
)

var affiliationCmd = &cobra.Command{
	Use:   "affiliation",
	Short: "Station affiliation requests",
	Long: `Station administrators ask an institution to adopt their station; institution
heads review those requests. The server filters the list by the caller's role.`,
}

var (
	affiliationStation     int64
	affiliationInstitution int64
	reviewComments         string
)

var affiliationRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Ask an institution to adopt a station",
	RunE: func(cmd *cobra.Command, args []string) error {
		stationID, err := cmdutil.ResolveStation(affiliationStation, true)
		if err != nil {
			return err
		}
		if affiliationInstitution <= 0 {
			return fmt.Errorf("--institution is required")
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		req, err := client.Stations.CreateAffiliationRequest(ctx, map[string]any{
			"station":            stationID,
			"target_institution": affiliationInstitution,
		})
		if err != nil {
			return fmt.Errorf("failed to create affiliation request: %w", err)
		}

		pterm.Success.Printf("Affiliation request %d created\n", req.ID())
		return nil
	},
}

var affiliationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List affiliation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.Context(cmd)
		defer cancel()

		requests, err := client.Stations.ListAffiliationRequests(ctx)
		if err != nil {
			return fmt.Errorf("failed to list affiliation requests: %w", err)
		}
		return cmdutil.PrintList(cmd.Context(), requests, "affiliation requests", requestColumns...)
	},
}

var affiliationReviewCmd = &cobra.Command{
	Use:   "review <request-id> <accept|reject>",
	Short: "Accept or reject an affiliation request",
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

		if _, err := client.Stations.ReviewAffiliationRequest(ctx, requestID, review.Status, review.Comments); err != nil {
			return fmt.Errorf("failed to review affiliation request %d: %w", requestID, err)
		}

		pterm.Success.Printf("Affiliation request %d marked %s\n", requestID, review.Status)
		return nil
	},
}

func parseReviewArgs(args []string) (int64, forms.Review, error) {
	requestID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || requestID <= 0 {
		return 0, forms.Review{}, fmt.Errorf("invalid request id %q", args[0])
	}
	review := forms.Review{Status: forms.NormalizeReviewStatus(args[1]), Comments: reviewComments}
	if err := forms.Validate(review); err != nil {
		return 0, forms.Review{}, err
	}
	return requestID, review, nil
}

func init() {
	affiliationRequestCmd.Flags().Int64Var(&affiliationStation, "station", 0, "Station id (defaults to the .vrisa station)")
	affiliationRequestCmd.Flags().Int64Var(&affiliationInstitution, "institution", 0, "Target institution id")
	affiliationReviewCmd.Flags().StringVar(&reviewComments, "comments", "", "Review comments")

	affiliationCmd.AddCommand(affiliationRequestCmd)
	affiliationCmd.AddCommand(affiliationListCmd)
	affiliationCmd.AddCommand(affiliationReviewCmd)
}
