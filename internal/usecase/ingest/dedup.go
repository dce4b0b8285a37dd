package ingest

import (
	"context"
	"strings"

	"courtside/internal/domain/catalog"
	"courtside/internal/errs"
)

// proximityDelta is the coordinate tolerance, in decimal degrees on both
// axes, treated as "the same place" (about 100 m at this latitude).
const proximityDelta = 0.001

// namesSimilar is the symmetric name heuristic: case-insensitive substring
// containment in either direction.
func namesSimilar(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

func coordinatesNear(a *catalog.Coordinates, lat, lng *float64) bool {
	if a == nil || lat == nil || lng == nil {
		return false
	}
	dLat := a.Latitude - *lat
	dLng := a.Longitude - *lng
	if dLat < 0 {
		dLat = -dLat
	}
	if dLng < 0 {
		dLng = -dLng
	}
	return dLat <= proximityDelta && dLng <= proximityDelta
}

// facilityExists runs the duplicate check against every stored facility.
// Either similar names OR nearby coordinates count as a duplicate: providers
// drift on names between calls while keeping the location, and report known
// facilities at marginally different coordinates. False positives are cheap
// here; false negatives clutter the moderation queue. Full scan, fine at
// current dataset size. The check is advisory: the store itself enforces no
// uniqueness, and two concurrent commits can still both pass it.
func (s *Service) facilityExists(ctx context.Context, name string, coords *catalog.Coordinates) (bool, uint64, error) {
	existing, err := s.repo.ListAllFacilities(ctx)
	if err != nil {
		return false, 0, errs.Wrap(err, "scan facilities for duplicates")
	}
	for _, facility := range existing {
		if namesSimilar(name, facility.Name) {
			return true, facility.FacilityID, nil
		}
		if coordinatesNear(coords, facility.Latitude, facility.Longitude) {
			return true, facility.FacilityID, nil
		}
	}
	return false, 0, nil
}

// eventExists applies the name heuristic within the same calendar date.
func (s *Service) eventExists(ctx context.Context, name string, eventDate string) (bool, uint64, error) {
	existing, err := s.repo.ListEvents(ctx, eventDateFilter(eventDate))
	if err != nil {
		return false, 0, errs.Wrap(err, "scan events for duplicates")
	}
	for _, event := range existing {
		if namesSimilar(name, event.Name) {
			return true, event.EventID, nil
		}
	}
	return false, 0, nil
}
