package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
	domainingest "courtside/internal/domain/ingest"
	"courtside/internal/errs"
	"courtside/internal/ports"
)

// SearchFacilitiesInput carries free-text filters; empty strings mean "any".
type SearchFacilitiesInput struct {
	Sport    string
	District string
}

// SearchFacilities previews facility candidates matching the filters. It
// consults the live location provider when one is wired, degrades to the
// offline dataset on any provider failure, and never touches the store.
func (s *Service) SearchFacilities(ctx context.Context, input SearchFacilitiesInput) ([]domainingest.Candidate, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	query := ports.LocationQuery{}
	if strings.TrimSpace(input.Sport) != "" {
		query.Sport = catalog.NormalizeSportType(input.Sport)
	}
	if strings.TrimSpace(input.District) != "" {
		query.District = catalog.NormalizeDistrict(input.District)
	}

	hits, source := s.locationHits(ctx, query)

	candidates := make([]domainingest.Candidate, 0, len(hits))
	for _, hit := range hits {
		candidates = append(candidates, candidateFromHit(hit, query, source))
	}
	return domainingest.FilterValid(candidates), nil
}

// locationHits resolves the provider path: cache, live call, then fallback.
func (s *Service) locationHits(ctx context.Context, query ports.LocationQuery) ([]ports.PlaceHit, string) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "usecase.ingest"))

	if s.providers.LiveLocations != nil {
		cacheKey := fmt.Sprintf("places:%s:%s", query.Sport, query.District)
		if cached, found := s.cachedHits(logCtx, cacheKey); found {
			return cached, SourcePlaces
		}

		hits, err := s.providers.LiveLocations.SearchPlaces(ctx, query)
		if err == nil {
			s.storeHits(logCtx, cacheKey, hits)
			return hits, SourcePlaces
		}
		logging.Warn(logCtx, "location provider failed, using offline fallback",
			slog.Any("err", errs.Loggable(err)))
	}

	hits, err := s.providers.FallbackLocations.SearchPlaces(ctx, query)
	if err != nil {
		// The offline dataset is embedded; a failure here means the
		// context is gone. Return empty rather than erroring the search.
		logging.Warn(logCtx, "offline location fallback failed", slog.Any("err", errs.Loggable(err)))
		return nil, SourceOffline
	}
	return hits, SourceOffline
}

func (s *Service) cachedHits(ctx context.Context, key string) ([]ports.PlaceHit, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil || !found {
		if err != nil {
			logging.Warn(ctx, "provider cache read failed", slog.Any("err", errs.Loggable(err)))
		}
		return nil, false
	}
	var hits []ports.PlaceHit
	if err := json.Unmarshal([]byte(raw), &hits); err != nil {
		logging.Warn(ctx, "provider cache entry unreadable", slog.Any("err", errs.Loggable(err)))
		return nil, false
	}
	return hits, true
}

func (s *Service) storeHits(ctx context.Context, key string, hits []ports.PlaceHit) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(hits)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), providerCacheTTL); err != nil {
		logging.Warn(ctx, "provider cache write failed", slog.Any("err", errs.Loggable(err)))
	}
}

func candidateFromHit(hit ports.PlaceHit, query ports.LocationQuery, source string) domainingest.Candidate {
	sport := query.Sport
	if sport == "" {
		sport = catalog.NormalizeSportType(strings.Join(hit.CategoryTags, " "))
	}

	cand := domainingest.Candidate{
		Ref:          uuid.New().String(),
		Kind:         catalog.KindFacility,
		Name:         strings.TrimSpace(hit.Name),
		SportType:    sport,
		District:     catalog.NormalizeDistrict(hit.Address),
		LocationName: strings.TrimSpace(hit.Name),
		Address:      strings.TrimSpace(hit.Address),
		Description:  strings.TrimSpace(hit.Description),
		Skill:        catalog.SkillAllLevels,
		Source:       source,
	}
	if hit.Coordinates != nil {
		coords := *hit.Coordinates
		cand.Coordinates = &coords
		cand.LocationConfirmed = true
	} else {
		placeholder := catalog.UnconfirmedLocation()
		cand.Coordinates = &placeholder
	}
	if hit.PhotoRef != "" {
		cand.ImageURL = hit.PhotoRef
	}
	return cand
}
