package catalog

import "strings"

// The normalizers below are total: any input, including the empty string,
// maps to a member of the closed enum. Matching is ordered case-insensitive
// substring containment, first hit wins.

type sportAlias struct {
	needle string
	sport  SportType
}

// Order matters: "table tennis" must be tested before "tennis".
var sportAliases = []sportAlias{
	{"table tennis", SportTableTennis},
	{"ping pong", SportTableTennis},
	{"basketball", SportBasketball},
	{"football", SportFootball},
	{"soccer", SportFootball},
	{"futsal", SportFootball},
	{"tennis", SportTennis},
	{"badminton", SportBadminton},
	{"swim", SportSwimming},
	{"run", SportRunning},
	{"jog", SportRunning},
	{"volleyball", SportVolleyball},
	{"squash", SportSquash},
	{"gym", SportFitness},
	{"fitness", SportFitness},
	{"yoga", SportYoga},
	{"cycl", SportCycling},
	{"bike", SportCycling},
	{"hik", SportHiking},
	{"trail", SportHiking},
	{"golf", SportGolf},
}

// NormalizeSportType maps free text onto the sport enum, defaulting to other.
func NormalizeSportType(text string) SportType {
	lowered := strings.ToLower(text)
	for _, alias := range sportAliases {
		if strings.Contains(lowered, alias.needle) {
			return alias.sport
		}
	}
	return SportOther
}

type districtAlias struct {
	needle   string
	district District
}

var districtAliases = []districtAlias{
	{"central", DistrictCentralWestern},
	{"western", DistrictCentralWestern},
	{"sheung wan", DistrictCentralWestern},
	{"mid-levels", DistrictCentralWestern},
	{"wan chai", DistrictWanChai},
	{"wanchai", DistrictWanChai},
	{"causeway bay", DistrictWanChai},
	{"happy valley", DistrictWanChai},
	{"north point", DistrictEastern},
	{"quarry bay", DistrictEastern},
	{"sai wan ho", DistrictEastern},
	{"shau kei wan", DistrictEastern},
	{"chai wan", DistrictEastern},
	{"eastern", DistrictEastern},
	{"aberdeen", DistrictSouthern},
	{"ap lei chau", DistrictSouthern},
	{"stanley", DistrictSouthern},
	{"repulse bay", DistrictSouthern},
	{"southern", DistrictSouthern},
	{"tsim sha tsui", DistrictYauTsimMong},
	{"yau ma tei", DistrictYauTsimMong},
	{"mong kok", DistrictYauTsimMong},
	{"mongkok", DistrictYauTsimMong},
	{"jordan", DistrictYauTsimMong},
	{"sham shui po", DistrictShamShuiPo},
	{"cheung sha wan", DistrictShamShuiPo},
	{"kowloon city", DistrictKowloonCity},
	{"to kwa wan", DistrictKowloonCity},
	{"ho man tin", DistrictKowloonCity},
	{"hung hom", DistrictKowloonCity},
	{"wong tai sin", DistrictWongTaiSin},
	{"diamond hill", DistrictWongTaiSin},
	{"kwun tong", DistrictKwunTong},
	{"ngau tau kok", DistrictKwunTong},
	{"lam tin", DistrictKwunTong},
	{"kwai chung", DistrictKwaiTsing},
	{"tsing yi", DistrictKwaiTsing},
	{"kwai tsing", DistrictKwaiTsing},
	{"tsuen wan", DistrictTsuenWan},
	{"tuen mun", DistrictTuenMun},
	{"yuen long", DistrictYuenLong},
	{"tin shui wai", DistrictYuenLong},
	{"sheung shui", DistrictNorth},
	{"fanling", DistrictNorth},
	{"tai po", DistrictTaiPo},
	{"sha tin", DistrictShaTin},
	{"shatin", DistrictShaTin},
	{"ma on shan", DistrictShaTin},
	{"sai kung", DistrictSaiKung},
	{"tseung kwan o", DistrictSaiKung},
	{"lantau", DistrictIslands},
	{"tung chung", DistrictIslands},
	{"cheung chau", DistrictIslands},
	{"lamma", DistrictIslands},
	{"discovery bay", DistrictIslands},
	{"islands", DistrictIslands},
	{"kowloon", DistrictYauTsimMong},
}

// NormalizeDistrict maps free-text place wording onto one of the eighteen
// Hong Kong districts, defaulting to DefaultDistrict rather than erroring.
func NormalizeDistrict(text string) District {
	lowered := strings.ToLower(text)
	for _, alias := range districtAliases {
		if strings.Contains(lowered, alias.needle) {
			return alias.district
		}
	}
	return DefaultDistrict
}

type categoryAlias struct {
	needle   string
	category EventCategory
}

var categoryAliases = []categoryAlias{
	{"competition", CategoryCompetition},
	{"tournament", CategoryCompetition},
	{"match", CategoryCompetition},
	{"league", CategoryCompetition},
	{"race", CategoryCompetition},
	{"lesson", CategoryLessons},
	{"class", CategoryLessons},
	{"coach", CategoryLessons},
	{"training", CategoryLessons},
	{"workshop", CategoryLessons},
	{"watch", CategoryWatching},
	{"viewing", CategoryWatching},
	{"screening", CategoryWatching},
	{"spectat", CategoryWatching},
	{"social", CategorySocial},
	{"meetup", CategorySocial},
	{"casual", CategorySocial},
	{"friendly", CategorySocial},
}

func NormalizeEventCategory(text string) EventCategory {
	lowered := strings.ToLower(text)
	for _, alias := range categoryAliases {
		if strings.Contains(lowered, alias.needle) {
			return alias.category
		}
	}
	return CategoryCompetition
}

type skillAlias struct {
	needle string
	level  SkillLevel
}

var skillAliases = []skillAlias{
	{"all level", SkillAllLevels},
	{"any level", SkillAllLevels},
	{"everyone", SkillAllLevels},
	{"open", SkillAllLevels},
	{"beginner", SkillBeginner},
	{"novice", SkillBeginner},
	{"starter", SkillBeginner},
	{"intermediate", SkillIntermediate},
	{"advanced", SkillAdvanced},
	{"expert", SkillExpert},
	{"pro", SkillExpert},
	{"elite", SkillExpert},
}

func NormalizeSkillLevel(text string) SkillLevel {
	lowered := strings.ToLower(text)
	for _, alias := range skillAliases {
		if strings.Contains(lowered, alias.needle) {
			return alias.level
		}
	}
	return SkillAllLevels
}
