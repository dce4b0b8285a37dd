package model

type Event struct {
	EventID         uint64   `gorm:"column:event_id;primaryKey;autoIncrement"`
	Name            string   `gorm:"column:name;type:text;not null;index"`
	Sport           string   `gorm:"column:sport;type:text;not null;index"`
	Category        string   `gorm:"column:category;type:text;not null;index"`
	Skill           string   `gorm:"column:skill;type:text;not null"`
	LocationName    string   `gorm:"column:location_name;type:text;not null"`
	Address         string   `gorm:"column:address;type:text;not null"`
	Latitude        *float64 `gorm:"column:latitude"`
	Longitude       *float64 `gorm:"column:longitude"`
	EventDate       string   `gorm:"column:event_date;type:text;not null;index"`
	StartTime       string   `gorm:"column:start_time;type:text;not null"`
	EndTime         string   `gorm:"column:end_time;type:text;not null"`
	Description     string   `gorm:"column:description;type:text;not null"`
	Website         string   `gorm:"column:website;type:text;not null"`
	ImageURL        string   `gorm:"column:image_url;type:text;not null"`
	MaxParticipants int      `gorm:"column:max_participants;not null;default:0"`
	Status          string   `gorm:"column:status;type:text;not null;index"`
	SearchSource    string   `gorm:"column:search_source;type:text;not null"`
	CreatedAt       string   `gorm:"column:created_at;type:text;not null"`
	UpdatedAt       string   `gorm:"column:updated_at;type:text;not null"`
}

func (Event) TableName() string {
	return "events"
}
