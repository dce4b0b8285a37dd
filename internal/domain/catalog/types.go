// Package catalog holds the closed vocabularies and pure value rules for
// facilities and events: sport types, districts, event categories, skill
// levels, approval states, and the Hong Kong service-area bounds.
package catalog

// Kind distinguishes the two entity families in the canonical store.
type Kind string

const (
	KindFacility Kind = "facility"
	KindEvent    Kind = "event"
)

type SportType string

const (
	SportBasketball  SportType = "basketball"
	SportFootball    SportType = "football"
	SportTennis      SportType = "tennis"
	SportBadminton   SportType = "badminton"
	SportSwimming    SportType = "swimming"
	SportRunning     SportType = "running"
	SportVolleyball  SportType = "volleyball"
	SportTableTennis SportType = "table_tennis"
	SportSquash      SportType = "squash"
	SportFitness     SportType = "fitness"
	SportYoga        SportType = "yoga"
	SportCycling     SportType = "cycling"
	SportHiking      SportType = "hiking"
	SportGolf        SportType = "golf"
	SportOther       SportType = "other"
)

type District string

const (
	DistrictCentralWestern District = "central_western"
	DistrictWanChai        District = "wan_chai"
	DistrictEastern        District = "eastern"
	DistrictSouthern       District = "southern"
	DistrictYauTsimMong    District = "yau_tsim_mong"
	DistrictShamShuiPo     District = "sham_shui_po"
	DistrictKowloonCity    District = "kowloon_city"
	DistrictWongTaiSin     District = "wong_tai_sin"
	DistrictKwunTong       District = "kwun_tong"
	DistrictKwaiTsing      District = "kwai_tsing"
	DistrictTsuenWan       District = "tsuen_wan"
	DistrictTuenMun        District = "tuen_mun"
	DistrictYuenLong       District = "yuen_long"
	DistrictNorth          District = "north"
	DistrictTaiPo          District = "tai_po"
	DistrictShaTin         District = "sha_tin"
	DistrictSaiKung        District = "sai_kung"
	DistrictIslands        District = "islands"
)

// DefaultDistrict is the fallback when a free-text district cannot be mapped.
const DefaultDistrict = DistrictCentralWestern

type EventCategory string

const (
	CategoryCompetition EventCategory = "competition"
	CategoryLessons     EventCategory = "lessons"
	CategoryWatching    EventCategory = "watching"
	CategorySocial      EventCategory = "social"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
	SkillAllLevels    SkillLevel = "all_levels"
)

// Coordinates is a WGS84 point. A nil *Coordinates means "location unknown",
// which is distinct from the zero value (the Gulf of Guinea).
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Hong Kong service-area bounding box. Candidates reporting facility
// coordinates outside it are treated as hallucinated and dropped.
const (
	BoundsMinLatitude  = 22.1
	BoundsMaxLatitude  = 22.6
	BoundsMinLongitude = 113.8
	BoundsMaxLongitude = 114.5
)

// WithinServiceArea reports whether the point is inside the Hong Kong
// bounding box. Unknown coordinates are allowed through.
func WithinServiceArea(c *Coordinates) bool {
	if c == nil {
		return true
	}
	return c.Latitude >= BoundsMinLatitude && c.Latitude <= BoundsMaxLatitude &&
		c.Longitude >= BoundsMinLongitude && c.Longitude <= BoundsMaxLongitude
}

// UnconfirmedLocation is the city-center placeholder seeded on candidates
// until a provider line supplies a real location.
func UnconfirmedLocation() Coordinates {
	return Coordinates{Latitude: 22.2819, Longitude: 114.1582}
}
