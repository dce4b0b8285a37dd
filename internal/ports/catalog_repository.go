package ports

import (
	"context"
	"errors"

	"courtside/internal/domain/catalog"
)

var ErrRecordNotFound = errors.New("catalog record not found")

// FacilityRecord is a persisted facility row. Coordinates are nullable: nil
// means the location was never confirmed.
type FacilityRecord struct {
	FacilityID   uint64
	Name         string
	Sport        catalog.SportType
	District     catalog.District
	LocationName string
	Address      string
	Latitude     *float64
	Longitude    *float64
	Description  string
	Website      string
	ImageURL     string
	Status       catalog.ApprovalStatus
	SearchSource string
	CreatedAt    string
	UpdatedAt    string
}

// EventRecord is a persisted event row. EventDate is a calendar date in
// 2006-01-02 form; times are 24-hour HH:MM.
type EventRecord struct {
	EventID         uint64
	Name            string
	Sport           catalog.SportType
	Category        catalog.EventCategory
	Skill           catalog.SkillLevel
	LocationName    string
	Address         string
	Latitude        *float64
	Longitude       *float64
	EventDate       string
	StartTime       string
	EndTime         string
	Description     string
	Website         string
	ImageURL        string
	MaxParticipants int
	Status          catalog.ApprovalStatus
	SearchSource    string
	CreatedAt       string
	UpdatedAt       string
}

type FacilityCreate struct {
	Name         string
	Sport        catalog.SportType
	District     catalog.District
	LocationName string
	Address      string
	Latitude     *float64
	Longitude    *float64
	Description  string
	Website      string
	ImageURL     string
	Status       catalog.ApprovalStatus
	SearchSource string
}

type EventCreate struct {
	Name            string
	Sport           catalog.SportType
	Category        catalog.EventCategory
	Skill           catalog.SkillLevel
	LocationName    string
	Address         string
	Latitude        *float64
	Longitude       *float64
	EventDate       string
	StartTime       string
	EndTime         string
	Description     string
	Website         string
	ImageURL        string
	MaxParticipants int
	Status          catalog.ApprovalStatus
	SearchSource    string
}

// FacilityFilter narrows facility reads. Zero values mean "any".
type FacilityFilter struct {
	Status   catalog.ApprovalStatus
	Sport    catalog.SportType
	District catalog.District
}

// EventFilter narrows event reads. Date bounds are inclusive 2006-01-02
// strings; zero values mean "any".
type EventFilter struct {
	Status   catalog.ApprovalStatus
	Sport    catalog.SportType
	Category catalog.EventCategory
	DateFrom string
	DateTo   string
}

// FacilityFieldsUpdate is a field-level administrative edit. Nil pointers
// leave the column untouched; approval status is never part of it.
type FacilityFieldsUpdate struct {
	Name         *string
	Sport        *catalog.SportType
	District     *catalog.District
	LocationName *string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	Description  *string
	Website      *string
	ImageURL     *string
}

type EventFieldsUpdate struct {
	Name            *string
	Sport           *catalog.SportType
	Category        *catalog.EventCategory
	Skill           *catalog.SkillLevel
	LocationName    *string
	Address         *string
	EventDate       *string
	StartTime       *string
	EndTime         *string
	Description     *string
	Website         *string
	ImageURL        *string
	MaxParticipants *int
}

type CatalogReadRepository interface {
	GetFacility(ctx context.Context, facilityID uint64) (FacilityRecord, error)
	GetEvent(ctx context.Context, eventID uint64) (EventRecord, error)
	ListFacilities(ctx context.Context, filter FacilityFilter) ([]FacilityRecord, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]EventRecord, error)
	// ListAllFacilities is the deduplication full scan, status-blind.
	ListAllFacilities(ctx context.Context) ([]FacilityRecord, error)
}

type CatalogWriteRepository interface {
	CreateFacility(ctx context.Context, create FacilityCreate) (uint64, error)
	CreateEvent(ctx context.Context, create EventCreate) (uint64, error)
	UpdateFacilityStatus(ctx context.Context, facilityID uint64, status catalog.ApprovalStatus) (FacilityRecord, error)
	UpdateEventStatus(ctx context.Context, eventID uint64, status catalog.ApprovalStatus) (EventRecord, error)
	UpdateFacilityFields(ctx context.Context, facilityID uint64, update FacilityFieldsUpdate) (FacilityRecord, error)
	UpdateEventFields(ctx context.Context, eventID uint64, update EventFieldsUpdate) (EventRecord, error)
}

type CatalogRepository interface {
	CatalogReadRepository
	CatalogWriteRepository
}
