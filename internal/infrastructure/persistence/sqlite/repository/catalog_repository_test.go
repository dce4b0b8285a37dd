package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"courtside/internal/domain/catalog"
	"courtside/internal/infrastructure/persistence/sqlite/model"
	"courtside/internal/ports"
)

func setupRepository(t *testing.T) *CatalogRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Facility{}, &model.Event{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewCatalogRepository(db)
}

func TestFacilityRoundTrip(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	lat, lng := 22.2820, 114.1890
	id, err := repo.CreateFacility(ctx, ports.FacilityCreate{
		Name:         "Victoria Park Tennis Courts",
		Sport:        catalog.SportTennis,
		District:     catalog.DistrictWanChai,
		LocationName: "Victoria Park",
		Address:      "1 Hing Fat Street, Causeway Bay",
		Latitude:     &lat,
		Longitude:    &lng,
		Status:       catalog.StatusPending,
		SearchSource: "places",
	})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}

	rec, err := repo.GetFacility(ctx, id)
	if err != nil {
		t.Fatalf("get facility: %v", err)
	}
	if rec.Name != "Victoria Park Tennis Courts" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.Sport != catalog.SportTennis || rec.District != catalog.DistrictWanChai {
		t.Errorf("enums = %s/%s", rec.Sport, rec.District)
	}
	if rec.Latitude == nil || *rec.Latitude != lat {
		t.Errorf("latitude = %v", rec.Latitude)
	}
	if rec.Status != catalog.StatusPending {
		t.Errorf("status = %s", rec.Status)
	}
	if rec.CreatedAt == "" || rec.UpdatedAt == "" {
		t.Error("timestamps should be set on create")
	}
}

func TestGetFacilityNotFound(t *testing.T) {
	repo := setupRepository(t)

	if _, err := repo.GetFacility(context.Background(), 42); !errors.Is(err, ports.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestListFacilitiesFilters(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	seed := []ports.FacilityCreate{
		{Name: "A", Sport: catalog.SportTennis, District: catalog.DistrictWanChai, Status: catalog.StatusApproved},
		{Name: "B", Sport: catalog.SportTennis, District: catalog.DistrictShaTin, Status: catalog.StatusPending},
		{Name: "C", Sport: catalog.SportBadminton, District: catalog.DistrictWanChai, Status: catalog.StatusApproved},
	}
	for _, create := range seed {
		if _, err := repo.CreateFacility(ctx, create); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	approved, err := repo.ListFacilities(ctx, ports.FacilityFilter{Status: catalog.StatusApproved})
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(approved) != 2 {
		t.Errorf("approved = %d, want 2", len(approved))
	}

	tennisWanChai, err := repo.ListFacilities(ctx, ports.FacilityFilter{
		Sport:    catalog.SportTennis,
		District: catalog.DistrictWanChai,
	})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(tennisWanChai) != 1 || tennisWanChai[0].Name != "A" {
		t.Errorf("filtered = %+v", tennisWanChai)
	}

	all, err := repo.ListAllFacilities(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3 regardless of status", len(all))
	}
}

func TestListEventsDateWindow(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	for _, date := range []string{"2026-09-05", "2026-09-12", "2026-09-20"} {
		if _, err := repo.CreateEvent(ctx, ports.EventCreate{
			Name:      "Event " + date,
			Sport:     catalog.SportRunning,
			Category:  catalog.CategorySocial,
			Skill:     catalog.SkillAllLevels,
			EventDate: date,
			StartTime: "07:30",
			EndTime:   "09:00",
			Status:    catalog.StatusPending,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	window, err := repo.ListEvents(ctx, ports.EventFilter{
		DateFrom: "2026-09-10",
		DateTo:   "2026-09-15",
	})
	if err != nil {
		t.Fatalf("list window: %v", err)
	}
	if len(window) != 1 || window[0].EventDate != "2026-09-12" {
		t.Fatalf("window = %+v", window)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	id, err := repo.CreateFacility(ctx, ports.FacilityCreate{
		Name:   "Southorn Playground",
		Sport:  catalog.SportBasketball,
		Status: catalog.StatusPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, err := repo.UpdateFacilityStatus(ctx, id, catalog.StatusApproved)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if rec.Status != catalog.StatusApproved {
		t.Errorf("status = %s", rec.Status)
	}

	if _, err := repo.UpdateFacilityStatus(ctx, 9999, catalog.StatusApproved); !errors.Is(err, ports.ErrRecordNotFound) {
		t.Errorf("missing row err = %v, want ErrRecordNotFound", err)
	}
}

func TestUpdateEventFieldsPartial(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	id, err := repo.CreateEvent(ctx, ports.EventCreate{
		Name:      "Beginner Badminton Clinic",
		Sport:     catalog.SportBadminton,
		Category:  catalog.CategoryLessons,
		Skill:     catalog.SkillBeginner,
		EventDate: "2026-09-20",
		StartTime: "19:00",
		EndTime:   "21:00",
		Status:    catalog.StatusPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newDate := "2026-09-27"
	rec, err := repo.UpdateEventFields(ctx, id, ports.EventFieldsUpdate{EventDate: &newDate})
	if err != nil {
		t.Fatalf("update fields: %v", err)
	}
	if rec.EventDate != newDate {
		t.Errorf("date = %s", rec.EventDate)
	}
	if rec.StartTime != "19:00" || rec.Name != "Beginner Badminton Clinic" {
		t.Errorf("untouched fields changed: %+v", rec)
	}

	// An empty update reads the row back without writing.
	same, err := repo.UpdateEventFields(ctx, id, ports.EventFieldsUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if same.UpdatedAt != rec.UpdatedAt {
		t.Errorf("empty update bumped updated_at: %s -> %s", rec.UpdatedAt, same.UpdatedAt)
	}
}
