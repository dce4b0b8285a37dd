package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
	domainingest "courtside/internal/domain/ingest"
	"courtside/internal/errs"
)

// SearchEventsInput carries free-text filters; empty strings mean "any".
// Date bounds are inclusive 2006-01-02 strings.
type SearchEventsInput struct {
	Sport     string
	Category  string
	StartDate string
	EndDate   string
}

// SearchEvents previews event candidates: it queries the natural-language
// provider (offline fallback on failure), parses the text blob into
// candidates, fills normalization defaults, and applies the filters. No
// store mutation.
func (s *Service) SearchEvents(ctx context.Context, input SearchEventsInput) ([]domainingest.Candidate, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	hints := domainingest.ParseHints{
		Kind:     catalog.KindEvent,
		Sport:    catalog.SportOther,
		Category: catalog.CategoryCompetition,
	}
	if strings.TrimSpace(input.Sport) != "" {
		hints.Sport = catalog.NormalizeSportType(input.Sport)
	}
	if strings.TrimSpace(input.Category) != "" {
		hints.Category = catalog.NormalizeEventCategory(input.Category)
	}

	text, source := s.eventSearchText(ctx, buildEventQuery(input, hints))
	hints.Source = source

	candidates := domainingest.ParseSearchText(ctx, text, hints)
	for i := range candidates {
		s.fillEventDefaults(&candidates[i])
	}
	candidates = s.filterEvents(candidates, input, hints)
	return domainingest.FilterValid(candidates), nil
}

func (s *Service) eventSearchText(ctx context.Context, query string) (string, string) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "usecase.ingest"))

	if s.providers.LiveEvents != nil {
		cacheKey := "events:" + query
		if s.cache != nil {
			if cached, found, err := s.cache.Get(logCtx, cacheKey); err == nil && found {
				return cached, SourceLLM
			}
		}

		text, err := s.providers.LiveEvents.SearchEvents(ctx, query)
		if err == nil {
			if s.cache != nil {
				if cacheErr := s.cache.Set(logCtx, cacheKey, text, providerCacheTTL); cacheErr != nil {
					logging.Warn(logCtx, "provider cache write failed", slog.Any("err", errs.Loggable(cacheErr)))
				}
			}
			return text, SourceLLM
		}
		logging.Warn(logCtx, "event provider failed, using offline fallback",
			slog.Any("err", errs.Loggable(err)))
	}

	text, err := s.providers.FallbackEvents.SearchEvents(ctx, query)
	if err != nil {
		logging.Warn(logCtx, "offline event fallback failed", slog.Any("err", errs.Loggable(err)))
		return "", SourceOffline
	}
	return text, SourceOffline
}

func buildEventQuery(input SearchEventsInput, hints domainingest.ParseHints) string {
	var b strings.Builder
	b.WriteString("upcoming ")
	if hints.Sport != catalog.SportOther {
		b.WriteString(strings.ReplaceAll(string(hints.Sport), "_", " "))
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "%s events in Hong Kong", hints.Category)
	if input.StartDate != "" {
		fmt.Fprintf(&b, " from %s", input.StartDate)
	}
	if input.EndDate != "" {
		fmt.Fprintf(&b, " until %s", input.EndDate)
	}
	return b.String()
}

// fillEventDefaults applies the documented normalization fallbacks so every
// surviving candidate has a complete temporal block.
func (s *Service) fillEventDefaults(cand *domainingest.Candidate) {
	if cand.EventDate.IsZero() {
		cand.EventDate = catalog.DefaultEventDate(s.now())
	}
	if cand.StartTime == "" || cand.EndTime == "" {
		window := catalog.DefaultTimeRange()
		if cand.StartTime == "" {
			cand.StartTime = window.Start
		}
		if cand.EndTime == "" {
			cand.EndTime = window.End
		}
	}
}

// filterEvents applies the caller's predicates uniformly to live and
// fallback results.
func (s *Service) filterEvents(candidates []domainingest.Candidate, input SearchEventsInput, hints domainingest.ParseHints) []domainingest.Candidate {
	filterSport := strings.TrimSpace(input.Sport) != ""
	filterCategory := strings.TrimSpace(input.Category) != ""

	var from, to time.Time
	if d, ok := catalog.ParseDate(input.StartDate); ok {
		from = d
	}
	if d, ok := catalog.ParseDate(input.EndDate); ok {
		to = d
	}

	kept := make([]domainingest.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if filterSport && cand.SportType != hints.Sport {
			continue
		}
		if filterCategory && cand.Category != hints.Category {
			continue
		}
		if !from.IsZero() && cand.EventDate.Before(from) {
			continue
		}
		if !to.IsZero() && cand.EventDate.After(to) {
			continue
		}
		kept = append(kept, cand)
	}
	return kept
}
