package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"courtside/internal/domain/catalog"
	"courtside/internal/errs"
	"courtside/internal/infrastructure/persistence/sqlite/model"
	"courtside/internal/ports"
)

type CatalogRepository struct {
	db *gorm.DB
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (r *CatalogRepository) GetFacility(ctx context.Context, facilityID uint64) (ports.FacilityRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.FacilityRecord{}, err
	}

	var row model.Facility
	if err := db.Where("facility_id = ?", facilityID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.FacilityRecord{}, ports.ErrRecordNotFound
		}
		return ports.FacilityRecord{}, errs.Wrap(err, "query facility")
	}
	return mapFacility(row), nil
}

func (r *CatalogRepository) GetEvent(ctx context.Context, eventID uint64) (ports.EventRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.EventRecord{}, err
	}

	var row model.Event
	if err := db.Where("event_id = ?", eventID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EventRecord{}, ports.ErrRecordNotFound
		}
		return ports.EventRecord{}, errs.Wrap(err, "query event")
	}
	return mapEvent(row), nil
}

func (r *CatalogRepository) ListFacilities(ctx context.Context, filter ports.FacilityFilter) ([]ports.FacilityRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Facility{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Sport != "" {
		query = query.Where("sport = ?", string(filter.Sport))
	}
	if filter.District != "" {
		query = query.Where("district = ?", string(filter.District))
	}

	var rows []model.Facility
	if err := query.Order("facility_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query facilities")
	}

	items := make([]ports.FacilityRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapFacility(row))
	}
	return items, nil
}

func (r *CatalogRepository) ListEvents(ctx context.Context, filter ports.EventFilter) ([]ports.EventRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Event{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Sport != "" {
		query = query.Where("sport = ?", string(filter.Sport))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if filter.DateFrom != "" {
		query = query.Where("event_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("event_date <= ?", filter.DateTo)
	}

	var rows []model.Event
	if err := query.Order("event_date asc, event_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query events")
	}

	items := make([]ports.EventRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapEvent(row))
	}
	return items, nil
}

// ListAllFacilities is the dedup full scan. Fine at current dataset size;
// revisit with a spatial index if the facility count grows by orders of
// magnitude.
func (r *CatalogRepository) ListAllFacilities(ctx context.Context) ([]ports.FacilityRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Facility
	if err := db.Order("facility_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "scan facilities")
	}

	items := make([]ports.FacilityRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapFacility(row))
	}
	return items, nil
}

func (r *CatalogRepository) CreateFacility(ctx context.Context, create ports.FacilityCreate) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	now := nowUTCString()
	row := model.Facility{
		Name:         create.Name,
		Sport:        string(create.Sport),
		District:     string(create.District),
		LocationName: create.LocationName,
		Address:      create.Address,
		Latitude:     create.Latitude,
		Longitude:    create.Longitude,
		Description:  create.Description,
		Website:      create.Website,
		ImageURL:     create.ImageURL,
		Status:       string(create.Status),
		SearchSource: create.SearchSource,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&row).Error; err != nil {
		return 0, errs.Wrap(err, "insert facility")
	}
	return row.FacilityID, nil
}

func (r *CatalogRepository) CreateEvent(ctx context.Context, create ports.EventCreate) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	now := nowUTCString()
	row := model.Event{
		Name:            create.Name,
		Sport:           string(create.Sport),
		Category:        string(create.Category),
		Skill:           string(create.Skill),
		LocationName:    create.LocationName,
		Address:         create.Address,
		Latitude:        create.Latitude,
		Longitude:       create.Longitude,
		EventDate:       create.EventDate,
		StartTime:       create.StartTime,
		EndTime:         create.EndTime,
		Description:     create.Description,
		Website:         create.Website,
		ImageURL:        create.ImageURL,
		MaxParticipants: create.MaxParticipants,
		Status:          string(create.Status),
		SearchSource:    create.SearchSource,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(&row).Error; err != nil {
		return 0, errs.Wrap(err, "insert event")
	}
	return row.EventID, nil
}

func (r *CatalogRepository) UpdateFacilityStatus(ctx context.Context, facilityID uint64, status catalog.ApprovalStatus) (ports.FacilityRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.FacilityRecord{}, err
	}

	result := db.Model(&model.Facility{}).
		Where("facility_id = ?", facilityID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": nowUTCString(),
		})
	if result.Error != nil {
		return ports.FacilityRecord{}, errs.Wrap(result.Error, "update facility status")
	}
	if result.RowsAffected == 0 {
		return ports.FacilityRecord{}, ports.ErrRecordNotFound
	}
	return r.GetFacility(ctx, facilityID)
}

func (r *CatalogRepository) UpdateEventStatus(ctx context.Context, eventID uint64, status catalog.ApprovalStatus) (ports.EventRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.EventRecord{}, err
	}

	result := db.Model(&model.Event{}).
		Where("event_id = ?", eventID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": nowUTCString(),
		})
	if result.Error != nil {
		return ports.EventRecord{}, errs.Wrap(result.Error, "update event status")
	}
	if result.RowsAffected == 0 {
		return ports.EventRecord{}, ports.ErrRecordNotFound
	}
	return r.GetEvent(ctx, eventID)
}

func (r *CatalogRepository) UpdateFacilityFields(ctx context.Context, facilityID uint64, update ports.FacilityFieldsUpdate) (ports.FacilityRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.FacilityRecord{}, err
	}

	columns := map[string]any{}
	setString(columns, "name", update.Name)
	if update.Sport != nil {
		columns["sport"] = string(*update.Sport)
	}
	if update.District != nil {
		columns["district"] = string(*update.District)
	}
	setString(columns, "location_name", update.LocationName)
	setString(columns, "address", update.Address)
	if update.Latitude != nil {
		columns["latitude"] = *update.Latitude
	}
	if update.Longitude != nil {
		columns["longitude"] = *update.Longitude
	}
	setString(columns, "description", update.Description)
	setString(columns, "website", update.Website)
	setString(columns, "image_url", update.ImageURL)

	if len(columns) == 0 {
		return r.GetFacility(ctx, facilityID)
	}
	columns["updated_at"] = nowUTCString()

	result := db.Model(&model.Facility{}).Where("facility_id = ?", facilityID).Updates(columns)
	if result.Error != nil {
		return ports.FacilityRecord{}, errs.Wrap(result.Error, "update facility fields")
	}
	if result.RowsAffected == 0 {
		return ports.FacilityRecord{}, ports.ErrRecordNotFound
	}
	return r.GetFacility(ctx, facilityID)
}

func (r *CatalogRepository) UpdateEventFields(ctx context.Context, eventID uint64, update ports.EventFieldsUpdate) (ports.EventRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.EventRecord{}, err
	}

	columns := map[string]any{}
	setString(columns, "name", update.Name)
	if update.Sport != nil {
		columns["sport"] = string(*update.Sport)
	}
	if update.Category != nil {
		columns["category"] = string(*update.Category)
	}
	if update.Skill != nil {
		columns["skill"] = string(*update.Skill)
	}
	setString(columns, "location_name", update.LocationName)
	setString(columns, "address", update.Address)
	setString(columns, "event_date", update.EventDate)
	setString(columns, "start_time", update.StartTime)
	setString(columns, "end_time", update.EndTime)
	setString(columns, "description", update.Description)
	setString(columns, "website", update.Website)
	setString(columns, "image_url", update.ImageURL)
	if update.MaxParticipants != nil {
		columns["max_participants"] = *update.MaxParticipants
	}

	if len(columns) == 0 {
		return r.GetEvent(ctx, eventID)
	}
	columns["updated_at"] = nowUTCString()

	result := db.Model(&model.Event{}).Where("event_id = ?", eventID).Updates(columns)
	if result.Error != nil {
		return ports.EventRecord{}, errs.Wrap(result.Error, "update event fields")
	}
	if result.RowsAffected == 0 {
		return ports.EventRecord{}, ports.ErrRecordNotFound
	}
	return r.GetEvent(ctx, eventID)
}

func setString(columns map[string]any, name string, value *string) {
	if value != nil {
		columns[name] = *value
	}
}

func mapFacility(row model.Facility) ports.FacilityRecord {
	return ports.FacilityRecord{
		FacilityID:   row.FacilityID,
		Name:         row.Name,
		Sport:        catalog.SportType(row.Sport),
		District:     catalog.District(row.District),
		LocationName: row.LocationName,
		Address:      row.Address,
		Latitude:     row.Latitude,
		Longitude:    row.Longitude,
		Description:  row.Description,
		Website:      row.Website,
		ImageURL:     row.ImageURL,
		Status:       catalog.ApprovalStatus(row.Status),
		SearchSource: row.SearchSource,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapEvent(row model.Event) ports.EventRecord {
	return ports.EventRecord{
		EventID:         row.EventID,
		Name:            row.Name,
		Sport:           catalog.SportType(row.Sport),
		Category:        catalog.EventCategory(row.Category),
		Skill:           catalog.SkillLevel(row.Skill),
		LocationName:    row.LocationName,
		Address:         row.Address,
		Latitude:        row.Latitude,
		Longitude:       row.Longitude,
		EventDate:       row.EventDate,
		StartTime:       row.StartTime,
		EndTime:         row.EndTime,
		Description:     row.Description,
		Website:         row.Website,
		ImageURL:        row.ImageURL,
		MaxParticipants: row.MaxParticipants,
		Status:          catalog.ApprovalStatus(row.Status),
		SearchSource:    row.SearchSource,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
