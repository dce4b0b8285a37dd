package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"courtside/internal/domain/catalog"
	domainingest "courtside/internal/domain/ingest"
	"courtside/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "courtside/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "courtside/internal/infrastructure/persistence/sqlite/uow"
	"courtside/internal/infrastructure/provider/offline"
	"courtside/internal/ports"
)

type testCache struct {
	data map[string]string
}

func newTestCache() *testCache {
	return &testCache{
		data: make(map[string]string),
	}
}

func (c *testCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *testCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type failingLocationProvider struct{}

func (failingLocationProvider) SearchPlaces(context.Context, ports.LocationQuery) ([]ports.PlaceHit, error) {
	return nil, ports.ErrProviderUnavailable
}

type failingEventProvider struct{}

func (failingEventProvider) SearchEvents(context.Context, string) (string, error) {
	return "", ports.ErrProviderUnavailable
}

type countingLocationProvider struct {
	calls int
	hits  []ports.PlaceHit
}

func (p *countingLocationProvider) SearchPlaces(context.Context, ports.LocationQuery) ([]ports.PlaceHit, error) {
	p.calls++
	return p.hits, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Facility{},
		&model.Event{},
		&model.ProviderCacheKV{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func fallbackProviders(t *testing.T) Providers {
	t.Helper()

	locations, err := offline.NewLocationProvider()
	if err != nil {
		t.Fatalf("offline locations: %v", err)
	}
	events, err := offline.NewEventTextProvider()
	if err != nil {
		t.Fatalf("offline events: %v", err)
	}
	return Providers{
		FallbackLocations: locations,
		FallbackEvents:    events,
	}
}

func setupService(t *testing.T) (*Service, *testCache) {
	t.Helper()

	db := openTestDB(t)
	cache := newTestCache()
	repo := sqliterepo.NewCatalogRepository(db)
	uow := sqliteuow.NewUnitOfWork(db)
	return NewService(repo, uow, cache, fallbackProviders(t)), cache
}

func TestSearchFacilitiesOfflineFiltered(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	got, err := svc.SearchFacilities(ctx, SearchFacilitiesInput{Sport: "tennis", District: "central"})
	if err != nil {
		t.Fatalf("search facilities: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}

	cand := got[0]
	if cand.Name != "Hong Kong Park Tennis Courts" {
		t.Errorf("name = %q", cand.Name)
	}
	if cand.SportType != catalog.SportTennis {
		t.Errorf("sport = %s", cand.SportType)
	}
	if cand.District != catalog.DistrictCentralWestern {
		t.Errorf("district = %s", cand.District)
	}
	if !cand.LocationConfirmed || cand.Coordinates == nil {
		t.Error("offline entries carry real coordinates")
	}
	if cand.Source != SourceOffline {
		t.Errorf("source = %q", cand.Source)
	}
}

func TestSearchFacilitiesUnfilteredReturnsDataset(t *testing.T) {
	svc, _ := setupService(t)

	got, err := svc.SearchFacilities(context.Background(), SearchFacilitiesInput{})
	if err != nil {
		t.Fatalf("search facilities: %v", err)
	}
	if len(got) < 5 {
		t.Fatalf("got %d candidates, want the full offline dataset", len(got))
	}
	for _, cand := range got {
		if cand.Kind != catalog.KindFacility {
			t.Errorf("candidate %q kind = %s", cand.Name, cand.Kind)
		}
		if cand.Ref == "" {
			t.Errorf("candidate %q has no ref", cand.Name)
		}
	}
}

func TestSearchFacilitiesFallsBackOnProviderFailure(t *testing.T) {
	svc, _ := setupService(t)
	svc.providers.LiveLocations = failingLocationProvider{}

	got, err := svc.SearchFacilities(context.Background(), SearchFacilitiesInput{Sport: "tennis"})
	if err != nil {
		t.Fatalf("search facilities: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected offline fallback results after provider failure")
	}
	for _, cand := range got {
		if cand.Source != SourceOffline {
			t.Errorf("candidate %q source = %q, want offline", cand.Name, cand.Source)
		}
	}
}

func TestSearchFacilitiesCachesLiveHits(t *testing.T) {
	svc, cache := setupService(t)
	live := &countingLocationProvider{
		hits: []ports.PlaceHit{{
			Name:         "Happy Valley Tennis Courts",
			Address:      "Happy Valley, Hong Kong",
			Coordinates:  &catalog.Coordinates{Latitude: 22.2700, Longitude: 114.1830},
			CategoryTags: []string{"tennis"},
		}},
	}
	svc.providers.LiveLocations = live

	ctx := context.Background()
	input := SearchFacilitiesInput{Sport: "tennis", District: "happy valley"}

	first, err := svc.SearchFacilities(ctx, input)
	if err != nil {
		t.Fatalf("first search: %v", err)
	}
	second, err := svc.SearchFacilities(ctx, input)
	if err != nil {
		t.Fatalf("second search: %v", err)
	}

	if live.calls != 1 {
		t.Errorf("provider called %d times, want 1 (second hit from cache)", live.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("result sizes = %d, %d, want 1 each", len(first), len(second))
	}
	if len(cache.data) == 0 {
		t.Error("expected a cached provider payload")
	}
	if second[0].Source != SourcePlaces {
		t.Errorf("source = %q, want places", second[0].Source)
	}
}

func TestSearchEventsOfflineFiltered(t *testing.T) {
	svc, _ := setupService(t)

	got, err := svc.SearchEvents(context.Background(), SearchEventsInput{Sport: "running"})
	if err != nil {
		t.Fatalf("search events: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}

	cand := got[0]
	if cand.Name != "Harbour Runners Social 10K" {
		t.Errorf("name = %q", cand.Name)
	}
	if cand.SportType != catalog.SportRunning {
		t.Errorf("sport = %s", cand.SportType)
	}
	if cand.Category != catalog.CategorySocial {
		t.Errorf("category = %s", cand.Category)
	}
	if cand.StartTime != "07:30" || cand.EndTime != "09:00" {
		t.Errorf("time = %s-%s", cand.StartTime, cand.EndTime)
	}
	if cand.EventDate.IsZero() {
		t.Error("event date should be set from the rendered text")
	}
	if cand.Source != SourceOffline {
		t.Errorf("source = %q", cand.Source)
	}
}

func TestSearchEventsDateRangeFilter(t *testing.T) {
	svc, _ := setupService(t)

	// The offline runner social sits seven days out; a six-to-eight day
	// window should isolate it.
	now := time.Now()
	input := SearchEventsInput{
		StartDate: now.AddDate(0, 0, 6).Format("2006-01-02"),
		EndDate:   now.AddDate(0, 0, 8).Format("2006-01-02"),
	}

	got, err := svc.SearchEvents(context.Background(), input)
	if err != nil {
		t.Fatalf("search events: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if got[0].Name != "Harbour Runners Social 10K" {
		t.Errorf("name = %q", got[0].Name)
	}
}

func TestSearchEventsFallsBackOnProviderFailure(t *testing.T) {
	svc, _ := setupService(t)
	svc.providers.LiveEvents = failingEventProvider{}

	got, err := svc.SearchEvents(context.Background(), SearchEventsInput{})
	if err != nil {
		t.Fatalf("search events: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected offline fallback results after provider failure")
	}
	for _, cand := range got {
		if cand.Source != SourceOffline {
			t.Errorf("candidate %q source = %q, want offline", cand.Name, cand.Source)
		}
	}
}

func TestCommitFacilityPersistsPending(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	id, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Kind:              catalog.KindFacility,
		Name:              "Victoria Park Tennis Courts",
		SportType:         catalog.SportTennis,
		District:          catalog.DistrictWanChai,
		Address:           "1 Hing Fat Street, Causeway Bay",
		Coordinates:       &catalog.Coordinates{Latitude: 22.2820, Longitude: 114.1890},
		LocationConfirmed: true,
		Source:            SourcePlaces,
	})
	if err != nil {
		t.Fatalf("commit facility: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a facility id")
	}

	rec, err := svc.repo.GetFacility(ctx, id)
	if err != nil {
		t.Fatalf("get facility: %v", err)
	}
	if rec.Status != catalog.StatusPending {
		t.Errorf("status = %s, want pending", rec.Status)
	}
	if rec.Latitude == nil || *rec.Latitude != 22.2820 {
		t.Errorf("latitude = %v", rec.Latitude)
	}
	if rec.SearchSource != SourcePlaces {
		t.Errorf("search source = %q", rec.SearchSource)
	}
}

func TestCommitFacilityRejectsSimilarName(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Name: "Victoria Park Tennis Courts",
	}); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	_, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Name: "victoria park",
	})
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("err = %v, want ErrDuplicateRecord", err)
	}
}

func TestCommitFacilityRejectsNearbyCoordinates(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Name:              "Victoria Park Tennis Courts",
		Coordinates:       &catalog.Coordinates{Latitude: 22.2820, Longitude: 114.1890},
		LocationConfirmed: true,
	}); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	// Renamed but within the proximity tolerance of the stored courts.
	_, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Name:              "Causeway Bay Public Courts",
		Coordinates:       &catalog.Coordinates{Latitude: 22.2825, Longitude: 114.1893},
		LocationConfirmed: true,
	})
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("err = %v, want ErrDuplicateRecord", err)
	}

	// Same renamed facility but far away: both checks miss, commit lands.
	if _, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Name:              "Causeway Bay Public Courts",
		Coordinates:       &catalog.Coordinates{Latitude: 22.3820, Longitude: 114.2700},
		LocationConfirmed: true,
	}); err != nil {
		t.Fatalf("distant commit: %v", err)
	}
}

func TestCommitFacilityPlaceholderCoordinatesDoNotMatch(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	placeholder := catalog.UnconfirmedLocation()
	if _, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Name:        "First Unlocated Hall",
		Coordinates: &placeholder,
	}); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	// Both candidates carry the seeded city-center point, but neither
	// confirmed it, so proximity must not fire.
	if _, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Name:        "Second Unlocated Hall",
		Coordinates: &placeholder,
	}); err != nil {
		t.Fatalf("second commit: %v", err)
	}
}

func TestCommitFacilityInvalidCandidates(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.CommitFacility(ctx, domainingest.Candidate{Name: "  "}); !errors.Is(err, ErrInvalidCandidate) {
		t.Errorf("blank name err = %v, want ErrInvalidCandidate", err)
	}

	_, err := svc.CommitFacility(ctx, domainingest.Candidate{
		Name:              "Shenzhen Bay Sports Centre",
		Coordinates:       &catalog.Coordinates{Latitude: 22.52, Longitude: 113.94},
		LocationConfirmed: true,
	})
	if err != nil {
		t.Fatalf("in-bounds border commit: %v", err)
	}

	_, err = svc.CommitFacility(ctx, domainingest.Candidate{
		Name:              "Guangzhou Stadium",
		Coordinates:       &catalog.Coordinates{Latitude: 23.13, Longitude: 113.26},
		LocationConfirmed: true,
	})
	if !errors.Is(err, ErrInvalidCandidate) {
		t.Errorf("out-of-bounds err = %v, want ErrInvalidCandidate", err)
	}
}

func TestCommitEventDuplicateSameDateOnly(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	base := domainingest.Candidate{
		Kind:      catalog.KindEvent,
		Name:      "Victoria Park Morning Tennis Ladder",
		SportType: catalog.SportTennis,
		EventDate: time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "12:00",
	}
	if _, err := svc.CommitEvent(ctx, base); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	repeat := base
	repeat.Name = "morning tennis ladder"
	if _, err := svc.CommitEvent(ctx, repeat); !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("same-date err = %v, want ErrDuplicateRecord", err)
	}

	nextWeek := base
	nextWeek.EventDate = base.EventDate.AddDate(0, 0, 7)
	if _, err := svc.CommitEvent(ctx, nextWeek); err != nil {
		t.Fatalf("different-date commit: %v", err)
	}
}

func TestCommitEventRequiresTemporalFields(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CommitEvent(context.Background(), domainingest.Candidate{
		Kind: catalog.KindEvent,
		Name: "Dateless Event",
	})
	if !errors.Is(err, ErrInvalidCandidate) {
		t.Fatalf("err = %v, want ErrInvalidCandidate", err)
	}
}

func TestCommitEventDefaultsEnums(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	id, err := svc.CommitEvent(ctx, domainingest.Candidate{
		Kind:      catalog.KindEvent,
		Name:      "Unclassified Gathering",
		EventDate: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "11:00",
	})
	if err != nil {
		t.Fatalf("commit event: %v", err)
	}

	rec, err := svc.repo.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if rec.Sport != catalog.SportOther {
		t.Errorf("sport = %s, want other", rec.Sport)
	}
	if rec.Category != catalog.CategoryCompetition {
		t.Errorf("category = %s, want competition", rec.Category)
	}
	if rec.Skill != catalog.SkillAllLevels {
		t.Errorf("skill = %s, want all_levels", rec.Skill)
	}
	if rec.SearchSource != SourceOffline {
		t.Errorf("search source = %q, want offline default", rec.SearchSource)
	}
}

func TestSearchDoesNotWrite(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.SearchFacilities(ctx, SearchFacilitiesInput{Sport: "tennis"}); err != nil {
		t.Fatalf("search facilities: %v", err)
	}
	if _, err := svc.SearchEvents(ctx, SearchEventsInput{}); err != nil {
		t.Fatalf("search events: %v", err)
	}

	facilities, err := svc.repo.ListAllFacilities(ctx)
	if err != nil {
		t.Fatalf("list facilities: %v", err)
	}
	if len(facilities) != 0 {
		t.Errorf("search persisted %d facilities, want 0", len(facilities))
	}
	events, err := svc.repo.ListEvents(ctx, ports.EventFilter{})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("search persisted %d events, want 0", len(events))
	}
}
