// Package offline provides the deterministic fallback providers used when no
// live integration is configured or a live call fails. The datasets are
// hand-authored, embedded, and shape-compatible with live responses: the
// event provider renders the same labeled text format the language-model
// provider emits, so the full parse pipeline runs on both paths.
package offline

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"courtside/internal/domain/catalog"
	"courtside/internal/errs"
	"courtside/internal/ports"
)

//go:embed facilities.yaml
var facilitiesYAML []byte

//go:embed events.yaml
var eventsYAML []byte

type facilityEntry struct {
	Name        string  `yaml:"name"`
	Sport       string  `yaml:"sport"`
	District    string  `yaml:"district"`
	Address     string  `yaml:"address"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	Description string  `yaml:"description"`
}

type eventEntry struct {
	Name        string `yaml:"name"`
	Sport       string `yaml:"sport"`
	Category    string `yaml:"category"`
	Skill       string `yaml:"skill"`
	Location    string `yaml:"location"`
	Coordinates string `yaml:"coordinates"`
	DaysAhead   int    `yaml:"days_ahead"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Description string `yaml:"description"`
}

// LocationProvider serves the embedded facility dataset, filtered by the
// same sport/district predicates a live query would apply.
type LocationProvider struct {
	entries []facilityEntry
}

var _ ports.LocationProvider = (*LocationProvider)(nil)

func NewLocationProvider() (*LocationProvider, error) {
	var entries []facilityEntry
	if err := yaml.Unmarshal(facilitiesYAML, &entries); err != nil {
		return nil, errs.Wrap(err, "decode embedded facilities")
	}
	return &LocationProvider{entries: entries}, nil
}

func (p *LocationProvider) SearchPlaces(ctx context.Context, query ports.LocationQuery) ([]ports.PlaceHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	hits := make([]ports.PlaceHit, 0, len(p.entries))
	for _, entry := range p.entries {
		if query.Sport != "" && catalog.SportType(entry.Sport) != query.Sport {
			continue
		}
		if query.District != "" && catalog.District(entry.District) != query.District {
			continue
		}
		hits = append(hits, ports.PlaceHit{
			Name:    entry.Name,
			Address: entry.Address + ", Hong Kong",
			Coordinates: &catalog.Coordinates{
				Latitude:  entry.Latitude,
				Longitude: entry.Longitude,
			},
			CategoryTags: []string{entry.Sport},
			Description:  entry.Description,
		})
	}
	return hits, nil
}

// EventTextProvider renders the embedded event dataset into the labeled text
// format the parser consumes. Dates are offsets from now so the entries stay
// upcoming no matter when the fallback runs.
type EventTextProvider struct {
	entries []eventEntry
	now     func() time.Time
}

var _ ports.EventTextProvider = (*EventTextProvider)(nil)

func NewEventTextProvider() (*EventTextProvider, error) {
	var entries []eventEntry
	if err := yaml.Unmarshal(eventsYAML, &entries); err != nil {
		return nil, errs.Wrap(err, "decode embedded events")
	}
	return &EventTextProvider{entries: entries, now: time.Now}, nil
}

func (p *EventTextProvider) SearchEvents(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}

	var b strings.Builder
	b.WriteString("Here are upcoming sports events in Hong Kong:\n\n")
	for i, entry := range p.entries {
		date := p.now().AddDate(0, 0, entry.DaysAhead).Format("2006-01-02")
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, entry.Name)
		fmt.Fprintf(&b, "- **Date:** %s\n", date)
		fmt.Fprintf(&b, "- **Time:** %s - %s\n", entry.Start, entry.End)
		fmt.Fprintf(&b, "- **Location:** %s\n", entry.Location)
		if entry.Coordinates != "" {
			fmt.Fprintf(&b, "- **Coordinates:** %s\n", entry.Coordinates)
		}
		fmt.Fprintf(&b, "- **Sport:** %s\n", entry.Sport)
		fmt.Fprintf(&b, "- **Category:** %s\n", entry.Category)
		fmt.Fprintf(&b, "- **Skill Level:** %s\n", entry.Skill)
		fmt.Fprintf(&b, "- **Description:** %s\n", entry.Description)
		b.WriteString("\n")
	}
	return b.String(), nil
}
