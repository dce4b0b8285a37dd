package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"courtside/internal/bootstrap"
	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
	"courtside/internal/errs"
	"courtside/internal/ports"
	ingestuc "courtside/internal/usecase/ingest"
	"courtside/internal/usecase/moderation"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse approved catalog records",
}

var listFacilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "List approved facilities",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *ingestuc.Service, svc *moderation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		sportFlag, _ := cmd.Flags().GetString("sport")
		districtFlag, _ := cmd.Flags().GetString("district")

		var sport catalog.SportType
		if sportFlag != "" {
			sport = catalog.NormalizeSportType(sportFlag)
		}
		var district catalog.District
		if districtFlag != "" {
			district = catalog.NormalizeDistrict(districtFlag)
		}

		records, err := svc.PublicFacilities(ctx, sport, district)
		if err != nil {
			return errs.Wrap(err, "list facilities")
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "no approved facilities")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintf(out, "#%d %s sport=%s district=%s address=%s\n", rec.FacilityID, rec.Name, rec.Sport, rec.District, rec.Address)
		}
		return nil
	}),
}

var listEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List approved events",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *ingestuc.Service, svc *moderation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		sportFlag, _ := cmd.Flags().GetString("sport")
		categoryFlag, _ := cmd.Flags().GetString("category")
		dateFrom, _ := cmd.Flags().GetString("start-date")
		dateTo, _ := cmd.Flags().GetString("end-date")

		filter := ports.EventFilter{DateFrom: dateFrom, DateTo: dateTo}
		if sportFlag != "" {
			filter.Sport = catalog.NormalizeSportType(sportFlag)
		}
		if categoryFlag != "" {
			filter.Category = catalog.NormalizeEventCategory(categoryFlag)
		}

		records, err := svc.PublicEvents(ctx, filter)
		if err != nil {
			return errs.Wrap(err, "list events")
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "no approved events")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintf(out, "#%d %s sport=%s category=%s date=%s %s-%s\n", rec.EventID, rec.Name, rec.Sport, rec.Category, rec.EventDate, rec.StartTime, rec.EndTime)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listFacilitiesCmd)
	listCmd.AddCommand(listEventsCmd)

	listFacilitiesCmd.Flags().String("sport", "", "Sport filter")
	listFacilitiesCmd.Flags().String("district", "", "Hong Kong district filter")

	listEventsCmd.Flags().String("sport", "", "Sport filter")
	listEventsCmd.Flags().String("category", "", "Event category filter")
	listEventsCmd.Flags().String("start-date", "", "Earliest event date (YYYY-MM-DD)")
	listEventsCmd.Flags().String("end-date", "", "Latest event date (YYYY-MM-DD)")
}
