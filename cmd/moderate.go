package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"courtside/internal/bootstrap"
	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
	"courtside/internal/errs"
	ingestuc "courtside/internal/usecase/ingest"
	"courtside/internal/usecase/moderation"
)

var moderateCmd = &cobra.Command{
	Use:   "moderate",
	Short: "Review pending records and decide approvals",
}

var moderatePendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List records awaiting an approval decision",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *ingestuc.Service, svc *moderation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		out := cmd.OutOrStdout()

		facilities, err := svc.PendingFacilities(ctx)
		if err != nil {
			return errs.Wrap(err, "list pending facilities")
		}
		events, err := svc.PendingEvents(ctx)
		if err != nil {
			return errs.Wrap(err, "list pending events")
		}

		for _, rec := range facilities {
			fmt.Fprintf(out, "facility #%d %q sport=%s district=%s\n", rec.FacilityID, rec.Name, rec.Sport, rec.District)
		}
		for _, rec := range events {
			fmt.Fprintf(out, "event #%d %q sport=%s date=%s category=%s\n", rec.EventID, rec.Name, rec.Sport, rec.EventDate, rec.Category)
		}
		if len(facilities) == 0 && len(events) == 0 {
			fmt.Fprintln(out, "no pending records")
		}
		return nil
	}),
}

var moderateApproveCmd = &cobra.Command{
	Use:   "approve <facility|event> <id>",
	Short: "Approve a pending record, publishing it",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *ingestuc.Service, svc *moderation.Service) error {
		return runDecision(cmd, svc, catalog.StatusApproved)
	}),
}

var moderateRejectCmd = &cobra.Command{
	Use:   "reject <facility|event> <id>",
	Short: "Reject a pending record",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *ingestuc.Service, svc *moderation.Service) error {
		return runDecision(cmd, svc, catalog.StatusRejected)
	}),
}

func runDecision(cmd *cobra.Command, svc *moderation.Service, target catalog.ApprovalStatus) error {
	ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

	kind, id, err := parseRecordArgs(cmd.Flags().Args())
	if err != nil {
		return err
	}

	var decision moderation.Decision
	if target == catalog.StatusApproved {
		decision, err = svc.Approve(ctx, kind, id)
	} else {
		decision, err = svc.Reject(ctx, kind, id)
	}
	if err != nil {
		return errs.Wrapf(err, "decide %s %d", kind, id)
	}

	if decision.Changed {
		fmt.Fprintf(cmd.OutOrStdout(), "%s #%d is now %s\n", kind, id, decision.Status)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s #%d already %s, nothing to do\n", kind, id, decision.Status)
	}
	return nil
}

func parseRecordArgs(args []string) (catalog.Kind, uint64, error) {
	if len(args) != 2 {
		return "", 0, fmt.Errorf("expected <facility|event> <id>, got %d arguments", len(args))
	}

	var kind catalog.Kind
	switch args[0] {
	case "facility":
		kind = catalog.KindFacility
	case "event":
		kind = catalog.KindEvent
	default:
		return "", 0, fmt.Errorf("unknown record kind %q, want facility or event", args[0])
	}

	id, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return "", 0, errs.Wrapf(err, "parse record id %q", args[1])
	}
	return kind, id, nil
}

func init() {
	rootCmd.AddCommand(moderateCmd)
	moderateCmd.AddCommand(moderatePendingCmd)
	moderateCmd.AddCommand(moderateApproveCmd)
	moderateCmd.AddCommand(moderateRejectCmd)
}
