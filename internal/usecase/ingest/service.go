// Package ingest orchestrates external-data discovery: querying a provider
// (or its offline fallback), parsing and normalizing the response into
// candidates, filtering invalid ones, and committing accepted candidates to
// the canonical store in pending state.
package ingest

import (
	"errors"
	"time"

	"courtside/internal/ports"
)

var (
	// ErrDuplicateRecord rejects a commit the dedup checker judges
	// pre-existing. Expected outcome, not a system fault.
	ErrDuplicateRecord = errors.New("record already exists or could not be imported")
	// ErrInvalidCandidate rejects a commit missing required fields or
	// reporting out-of-area coordinates.
	ErrInvalidCandidate = errors.New("candidate is missing required fields or out of bounds")
)

// Source tags recorded on committed rows, observability only.
const (
	SourcePlaces  = "places"
	SourceLLM     = "llm"
	SourceOffline = "offline"
)

const providerCacheTTL = 6 * time.Hour

// Providers bundles the live integrations (nil when unconfigured) with the
// always-present offline fallbacks. Selection happens once here, not per
// call site, so the two paths cannot drift apart.
type Providers struct {
	LiveLocations     ports.LocationProvider
	LiveEvents        ports.EventTextProvider
	FallbackLocations ports.LocationProvider
	FallbackEvents    ports.EventTextProvider
}

type Service struct {
	providers Providers
	repo      ports.CatalogRepository
	uow       ports.UnitOfWork
	cache     ports.Cache
	now       func() time.Time
}

// NewService wires the ingestion orchestrator. Search operations never
// mutate the store; Commit* are the only writers.
func NewService(repo ports.CatalogRepository, uow ports.UnitOfWork, cache ports.Cache, providers Providers) *Service {
	return &Service{
		providers: providers,
		repo:      repo,
		uow:       uow,
		cache:     cache,
		now:       time.Now,
	}
}
