package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"courtside/internal/bootstrap"
	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
	"courtside/internal/domain/ingest"
	"courtside/internal/errs"
	ingestuc "courtside/internal/usecase/ingest"
	"courtside/internal/usecase/moderation"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Preview facility or event candidates without writing to the store",
}

var searchFacilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "Search for sports facility candidates",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *ingestuc.Service, _ *moderation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		sport, _ := cmd.Flags().GetString("sport")
		district, _ := cmd.Flags().GetString("district")
		asJSON, _ := cmd.Flags().GetBool("json")

		candidates, err := svc.SearchFacilities(ctx, ingestuc.SearchFacilitiesInput{
			Sport:    sport,
			District: district,
		})
		if err != nil {
			return errs.Wrap(err, "search facilities")
		}

		return writeCandidates(cmd, candidates, asJSON)
	}),
}

var searchEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Search for sports event candidates",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *ingestuc.Service, _ *moderation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		sport, _ := cmd.Flags().GetString("sport")
		category, _ := cmd.Flags().GetString("category")
		startDate, _ := cmd.Flags().GetString("start-date")
		endDate, _ := cmd.Flags().GetString("end-date")
		asJSON, _ := cmd.Flags().GetBool("json")

		candidates, err := svc.SearchEvents(ctx, ingestuc.SearchEventsInput{
			Sport:     sport,
			Category:  category,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			return errs.Wrap(err, "search events")
		}

		return writeCandidates(cmd, candidates, asJSON)
	}),
}

func writeCandidates(cmd *cobra.Command, candidates []ingest.Candidate, asJSON bool) error {
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(candidates); err != nil {
			return errs.Wrap(err, "encode candidates")
		}
		return nil
	}

	if len(candidates) == 0 {
		_, err := fmt.Fprintln(out, "no candidates found")
		return errs.Wrap(err, "write search output")
	}

	for i, cand := range candidates {
		line := fmt.Sprintf("%d. [%s] %s sport=%s district=%s", i+1, cand.Ref, cand.Name, cand.SportType, cand.District)
		if cand.Kind == catalog.KindEvent {
			line += fmt.Sprintf(" date=%s time=%s-%s category=%s", cand.EventDate.Format("2006-01-02"), cand.StartTime, cand.EndTime, cand.Category)
		} else if cand.Address != "" {
			line += " address=" + cand.Address
		}
		if !cand.LocationConfirmed {
			line += " (location unconfirmed)"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return errs.Wrap(err, "write search output")
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.AddCommand(searchFacilitiesCmd)
	searchCmd.AddCommand(searchEventsCmd)

	searchFacilitiesCmd.Flags().String("sport", "", "Sport filter, e.g. tennis or basketball")
	searchFacilitiesCmd.Flags().String("district", "", "Hong Kong district filter, e.g. sha-tin")
	searchFacilitiesCmd.Flags().Bool("json", false, "Emit candidates as JSON")

	searchEventsCmd.Flags().String("sport", "", "Sport filter, e.g. badminton")
	searchEventsCmd.Flags().String("category", "", "Event category filter: competition, lessons, watching or social")
	searchEventsCmd.Flags().String("start-date", "", "Earliest event date (YYYY-MM-DD)")
	searchEventsCmd.Flags().String("end-date", "", "Latest event date (YYYY-MM-DD)")
	searchEventsCmd.Flags().Bool("json", false, "Emit candidates as JSON")
}
