// Package ingest turns provider output into candidate facility and event
// records: a line-oriented parser for free-text search responses, candidate
// validation, and the merge rule for repeated names within one response.
package ingest

import (
	"strings"
	"time"

	"courtside/internal/domain/catalog"
)

// Candidate is an unvalidated, unpersisted record extracted from a provider
// response. It lives in memory between a search call and an explicit commit.
type Candidate struct {
	// Ref correlates a previewed candidate with a later commit.
	Ref  string       `json:"ref"`
	Kind catalog.Kind `json:"kind"`
	Name string       `json:"name"`

	SportType catalog.SportType     `json:"sport_type"`
	District  catalog.District      `json:"district,omitempty"`
	Category  catalog.EventCategory `json:"category,omitempty"`
	Skill     catalog.SkillLevel    `json:"skill_level,omitempty"`

	LocationName string               `json:"location_name,omitempty"`
	Address      string               `json:"address,omitempty"`
	Coordinates  *catalog.Coordinates `json:"coordinates,omitempty"`
	// LocationConfirmed is false while the location is still the seeded
	// city-center placeholder.
	LocationConfirmed bool `json:"location_confirmed"`

	EventDate time.Time `json:"event_date,omitempty"`
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`

	Description     string `json:"description,omitempty"`
	Website         string `json:"website,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	MaxParticipants int    `json:"max_participants,omitempty"`

	// Source tags the provider that produced the candidate. Observability
	// only; no business rule branches on it.
	Source string `json:"source"`
}

// HasRequiredFields reports whether the candidate carries everything a
// commit needs: a name always, and for events the date and both times.
func (c Candidate) HasRequiredFields() bool {
	if strings.TrimSpace(c.Name) == "" {
		return false
	}
	if c.Kind == catalog.KindEvent {
		return !c.EventDate.IsZero() && c.StartTime != "" && c.EndTime != ""
	}
	return true
}

// WithinBounds applies the facility coordinate sanity box. Events and
// unknown coordinates pass.
func (c Candidate) WithinBounds() bool {
	if c.Kind != catalog.KindFacility {
		return true
	}
	return catalog.WithinServiceArea(c.Coordinates)
}

// ConfirmedCoordinates returns the candidate's coordinates only when they
// came from the provider rather than the seeded placeholder.
func (c Candidate) ConfirmedCoordinates() *catalog.Coordinates {
	if !c.LocationConfirmed {
		return nil
	}
	return c.Coordinates
}

// FilterValid drops candidates missing required fields or reporting
// out-of-area facility coordinates, preserving order.
func FilterValid(candidates []Candidate) []Candidate {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.HasRequiredFields() || !c.WithinBounds() {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
