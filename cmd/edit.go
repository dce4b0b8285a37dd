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

// editCmd applies field-level corrections to a stored record. Only flags
// that were explicitly set are written; approval status is out of reach here
// and must go through `moderate`.
var editCmd = &cobra.Command{
	Use:   "edit <facility|event> <id>",
	Short: "Edit fields of a stored record",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *ingestuc.Service, svc *moderation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		kind, id, err := parseRecordArgs(cmd.Flags().Args())
		if err != nil {
			return err
		}

		if kind == catalog.KindEvent {
			update := eventUpdateFromFlags(cmd)
			rec, err := svc.EditEvent(ctx, id, update)
			if err != nil {
				return errs.Wrapf(err, "edit event %d", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "event #%d updated: %s\n", rec.EventID, rec.Name)
			return nil
		}

		update := facilityUpdateFromFlags(cmd)
		rec, err := svc.EditFacility(ctx, id, update)
		if err != nil {
			return errs.Wrapf(err, "edit facility %d", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "facility #%d updated: %s\n", rec.FacilityID, rec.Name)
		return nil
	}),
}

func facilityUpdateFromFlags(cmd *cobra.Command) ports.FacilityFieldsUpdate {
	var update ports.FacilityFieldsUpdate
	if v, ok := changedString(cmd, "name"); ok {
		update.Name = &v
	}
	if v, ok := changedString(cmd, "sport"); ok {
		sport := catalog.NormalizeSportType(v)
		update.Sport = &sport
	}
	if v, ok := changedString(cmd, "district"); ok {
		district := catalog.NormalizeDistrict(v)
		update.District = &district
	}
	if v, ok := changedString(cmd, "location-name"); ok {
		update.LocationName = &v
	}
	if v, ok := changedString(cmd, "address"); ok {
		update.Address = &v
	}
	if v, ok := changedString(cmd, "description"); ok {
		update.Description = &v
	}
	if v, ok := changedString(cmd, "website"); ok {
		update.Website = &v
	}
	if v, ok := changedString(cmd, "image-url"); ok {
		update.ImageURL = &v
	}
	return update
}

func eventUpdateFromFlags(cmd *cobra.Command) ports.EventFieldsUpdate {
	var update ports.EventFieldsUpdate
	if v, ok := changedString(cmd, "name"); ok {
		update.Name = &v
	}
	if v, ok := changedString(cmd, "sport"); ok {
		sport := catalog.NormalizeSportType(v)
		update.Sport = &sport
	}
	if v, ok := changedString(cmd, "category"); ok {
		category := catalog.NormalizeEventCategory(v)
		update.Category = &category
	}
	if v, ok := changedString(cmd, "skill"); ok {
		skill := catalog.NormalizeSkillLevel(v)
		update.Skill = &skill
	}
	if v, ok := changedString(cmd, "location-name"); ok {
		update.LocationName = &v
	}
	if v, ok := changedString(cmd, "address"); ok {
		update.Address = &v
	}
	if v, ok := changedString(cmd, "date"); ok {
		update.EventDate = &v
	}
	if v, ok := changedString(cmd, "start-time"); ok {
		update.StartTime = &v
	}
	if v, ok := changedString(cmd, "end-time"); ok {
		update.EndTime = &v
	}
	if v, ok := changedString(cmd, "description"); ok {
		update.Description = &v
	}
	if v, ok := changedString(cmd, "website"); ok {
		update.Website = &v
	}
	if v, ok := changedString(cmd, "image-url"); ok {
		update.ImageURL = &v
	}
	if cmd.Flags().Changed("max-participants") {
		n, _ := cmd.Flags().GetInt("max-participants")
		update.MaxParticipants = &n
	}
	return update
}

func changedString(cmd *cobra.Command, name string) (string, bool) {
	if !cmd.Flags().Changed(name) {
		return "", false
	}
	v, _ := cmd.Flags().GetString(name)
	return v, true
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("name", "", "Record name")
	editCmd.Flags().String("sport", "", "Sport type")
	editCmd.Flags().String("district", "", "Hong Kong district (facilities only)")
	editCmd.Flags().String("category", "", "Event category (events only)")
	editCmd.Flags().String("skill", "", "Skill level (events only)")
	editCmd.Flags().String("location-name", "", "Venue name")
	editCmd.Flags().String("address", "", "Street address")
	editCmd.Flags().String("date", "", "Event date YYYY-MM-DD (events only)")
	editCmd.Flags().String("start-time", "", "Start time HH:MM (events only)")
	editCmd.Flags().String("end-time", "", "End time HH:MM (events only)")
	editCmd.Flags().String("description", "", "Description text")
	editCmd.Flags().String("website", "", "Website URL")
	editCmd.Flags().String("image-url", "", "Image URL")
	editCmd.Flags().Int("max-participants", 0, "Maximum participants (events only)")
}
