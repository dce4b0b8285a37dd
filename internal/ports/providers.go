package ports

import (
	"context"
	"errors"

	"courtside/internal/domain/catalog"
)

// ErrProviderUnavailable marks a provider integration that cannot serve the
// request: missing credentials, network failure, or a malformed payload.
// Callers degrade to offline fallback data rather than surfacing it.
var ErrProviderUnavailable = errors.New("search provider unavailable")

// LocationQuery narrows a location-provider search.
type LocationQuery struct {
	Sport    catalog.SportType
	District catalog.District
}

// PlaceHit is one structured result from a location provider.
type PlaceHit struct {
	Name         string
	Address      string
	Coordinates  *catalog.Coordinates
	CategoryTags []string
	Description  string
	Rating       float64
	PhotoRef     string
}

// LocationProvider searches structured place hits for sports facilities.
type LocationProvider interface {
	SearchPlaces(ctx context.Context, query LocationQuery) ([]PlaceHit, error)
}

// EventTextProvider answers a natural-language query with a free-form text
// blob; the ingest parser extracts candidates from it.
type EventTextProvider interface {
	SearchEvents(ctx context.Context, query string) (string, error)
}
