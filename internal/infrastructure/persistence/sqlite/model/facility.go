package model

type Facility struct {
	FacilityID   uint64   `gorm:"column:facility_id;primaryKey;autoIncrement"`
	Name         string   `gorm:"column:name;type:text;not null;index"`
	Sport        string   `gorm:"column:sport;type:text;not null;index"`
	District     string   `gorm:"column:district;type:text;not null;index"`
	LocationName string   `gorm:"column:location_name;type:text;not null"`
	Address      string   `gorm:"column:address;type:text;not null"`
	Latitude     *float64 `gorm:"column:latitude"`
	Longitude    *float64 `gorm:"column:longitude"`
	Description  string   `gorm:"column:description;type:text;not null"`
	Website      string   `gorm:"column:website;type:text;not null"`
	ImageURL     string   `gorm:"column:image_url;type:text;not null"`
	Status       string   `gorm:"column:status;type:text;not null;index"`
	SearchSource string   `gorm:"column:search_source;type:text;not null"`
	CreatedAt    string   `gorm:"column:created_at;type:text;not null"`
	UpdatedAt    string   `gorm:"column:updated_at;type:text;not null"`
}

func (Facility) TableName() string {
	return "facilities"
}
