package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
	domainingest "courtside/internal/domain/ingest"
	"courtside/internal/errs"
	"courtside/internal/ports"
)

// CommitFacility persists one previously previewed facility candidate in
// pending state. Commit is separate from search so a caller can preview many
// candidates and import a subset. A candidate the dedup checker matches
// against an existing facility is rejected without any store mutation.
func (s *Service) CommitFacility(ctx context.Context, cand domainingest.Candidate) (uint64, error) {
	if ctx == nil {
		return 0, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return 0, errs.Wrap(err, "check context")
	}
	if s.repo == nil || s.uow == nil {
		return 0, errors.New("catalog repository and unit of work are required")
	}

	cand.Kind = catalog.KindFacility
	if !cand.HasRequiredFields() || !cand.WithinBounds() {
		return 0, ErrInvalidCandidate
	}

	exists, matchedID, err := s.facilityExists(ctx, cand.Name, cand.ConfirmedCoordinates())
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: matches facility %d", ErrDuplicateRecord, matchedID)
	}

	create := ports.FacilityCreate{
		Name:         cand.Name,
		Sport:        defaultedSport(cand.SportType),
		District:     defaultedDistrict(cand.District),
		LocationName: cand.LocationName,
		Address:      cand.Address,
		Description:  cand.Description,
		Website:      cand.Website,
		ImageURL:     cand.ImageURL,
		Status:       catalog.StatusPending,
		SearchSource: defaultedSource(cand.Source),
	}
	if coords := cand.ConfirmedCoordinates(); coords != nil {
		lat, lng := coords.Latitude, coords.Longitude
		create.Latitude = &lat
		create.Longitude = &lng
	}

	var facilityID uint64
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		id, createErr := s.repo.CreateFacility(txCtx, create)
		if createErr != nil {
			return createErr
		}
		facilityID = id
		return nil
	}); err != nil {
		return 0, errs.Wrap(err, "commit facility")
	}

	logging.Info(logging.WithAttrs(ctx, slog.String("component", "usecase.ingest")),
		"facility committed pending approval",
		slog.Uint64("facility_id", facilityID),
		slog.String("source", create.SearchSource))
	return facilityID, nil
}

// CommitEvent is the event-kind counterpart of CommitFacility.
func (s *Service) CommitEvent(ctx context.Context, cand domainingest.Candidate) (uint64, error) {
	if ctx == nil {
		return 0, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return 0, errs.Wrap(err, "check context")
	}
	if s.repo == nil || s.uow == nil {
		return 0, errors.New("catalog repository and unit of work are required")
	}

	cand.Kind = catalog.KindEvent
	if !cand.HasRequiredFields() {
		return 0, ErrInvalidCandidate
	}

	eventDate := cand.EventDate.Format("2006-01-02")
	exists, matchedID, err := s.eventExists(ctx, cand.Name, eventDate)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: matches event %d", ErrDuplicateRecord, matchedID)
	}

	create := ports.EventCreate{
		Name:            cand.Name,
		Sport:           defaultedSport(cand.SportType),
		Category:        defaultedCategory(cand.Category),
		Skill:           defaultedSkill(cand.Skill),
		LocationName:    cand.LocationName,
		Address:         cand.Address,
		EventDate:       eventDate,
		StartTime:       cand.StartTime,
		EndTime:         cand.EndTime,
		Description:     cand.Description,
		Website:         cand.Website,
		ImageURL:        cand.ImageURL,
		MaxParticipants: cand.MaxParticipants,
		Status:          catalog.StatusPending,
		SearchSource:    defaultedSource(cand.Source),
	}
	if coords := cand.ConfirmedCoordinates(); coords != nil {
		lat, lng := coords.Latitude, coords.Longitude
		create.Latitude = &lat
		create.Longitude = &lng
	}

	var eventID uint64
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		id, createErr := s.repo.CreateEvent(txCtx, create)
		if createErr != nil {
			return createErr
		}
		eventID = id
		return nil
	}); err != nil {
		return 0, errs.Wrap(err, "commit event")
	}

	logging.Info(logging.WithAttrs(ctx, slog.String("component", "usecase.ingest")),
		"event committed pending approval",
		slog.Uint64("event_id", eventID),
		slog.String("source", create.SearchSource))
	return eventID, nil
}

func eventDateFilter(eventDate string) ports.EventFilter {
	return ports.EventFilter{DateFrom: eventDate, DateTo: eventDate}
}

func defaultedSport(sport catalog.SportType) catalog.SportType {
	if sport == "" {
		return catalog.SportOther
	}
	return sport
}

func defaultedDistrict(district catalog.District) catalog.District {
	if district == "" {
		return catalog.DefaultDistrict
	}
	return district
}

func defaultedCategory(category catalog.EventCategory) catalog.EventCategory {
	if category == "" {
		return catalog.CategoryCompetition
	}
	return category
}

func defaultedSkill(skill catalog.SkillLevel) catalog.SkillLevel {
	if skill == "" {
		return catalog.SkillAllLevels
	}
	return skill
}

func defaultedSource(source string) string {
	if source == "" {
		return SourceOffline
	}
	return source
}
