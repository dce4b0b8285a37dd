package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeRange is a start/end pair in 24-hour HH:MM form.
type TimeRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

const (
	defaultStartTime = "09:00"
	defaultEndTime   = "11:00"
	latestEndHour    = 23
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	reISODate     = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	reWordedDate  = regexp.MustCompile(`(?i)([A-Za-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*,?\s*(\d{4})`)
	reDayFirst    = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\.?\s*,?\s*(\d{4})`)
	reNumericDate = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)

	reClockTime = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?`)
	reTimeRange = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?\s*(?:-|–|—|to)\s*(\d{1,2}):(\d{2})\s*(am|pm)?`)

	reCoordinates = regexp.MustCompile(`(-?\d{1,3}\.\d+)\s*,\s*(-?\d{1,3}\.\d+)`)
)

// ParseDate extracts a calendar date from free text. It tries, in order:
// ISO YYYY-MM-DD, "Month DD, YYYY", "DD Month YYYY", and numeric D-M-YYYY
// read as day-month-year. The zero time and false are returned when no form
// matches; callers substitute a default rather than failing the candidate.
func ParseDate(text string) (time.Time, bool) {
	if m := reISODate.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[3], m[2], m[1]); ok {
			return d, true
		}
	}
	if m := reWordedDate.FindStringSubmatch(text); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[1])]; ok {
			if d, ok := buildDate(m[2], strconv.Itoa(int(month)), m[3]); ok {
				return d, true
			}
		}
	}
	if m := reDayFirst.FindStringSubmatch(text); m != nil {
		if month, ok := monthsByName[strings.ToLower(m[2])]; ok {
			if d, ok := buildDate(m[1], strconv.Itoa(int(month)), m[3]); ok {
				return d, true
			}
		}
	}
	if m := reNumericDate.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// DefaultEventDate is the substitute when a provider omits or garbles the
// date: one calendar month out from now.
func DefaultEventDate(now time.Time) time.Time {
	next := now.AddDate(0, 1, 0)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
}

func buildDate(dayText, monthText, yearText string) (time.Time, bool) {
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthText)
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject those.
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

// ParseTimeRange extracts a start-end time pair from free text. A lone time
// gets an end synthesized two hours later, capped at 23:00. When nothing
// matches, the fixed default window is returned and matched is false.
func ParseTimeRange(text string) (TimeRange, bool) {
	if m := reTimeRange.FindStringSubmatch(text); m != nil {
		start, okStart := clockTime(m[1], m[2], m[3])
		end, okEnd := clockTime(m[4], m[5], m[6])
		if okStart && okEnd {
			return TimeRange{Start: start, End: end}, true
		}
	}
	if m := reClockTime.FindStringSubmatch(text); m != nil {
		if start, ok := clockTime(m[1], m[2], m[3]); ok {
			return TimeRange{Start: start, End: endTwoHoursAfter(start)}, true
		}
	}
	return TimeRange{Start: defaultStartTime, End: defaultEndTime}, false
}

func clockTime(hourText, minuteText, meridiem string) (string, bool) {
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil || minute > 59 {
		return "", false
	}
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func endTwoHoursAfter(start string) string {
	hour, _ := strconv.Atoi(start[:2])
	hour += 2
	if hour > latestEndHour || (hour == latestEndHour && start[3:] != "00") {
		return fmt.Sprintf("%02d:00", latestEndHour)
	}
	return fmt.Sprintf("%02d:%s", hour, start[3:])
}

// DefaultTimeRange is the fixed window substituted when a provider gives no
// usable time at all.
func DefaultTimeRange() TimeRange {
	return TimeRange{Start: defaultStartTime, End: defaultEndTime}
}

// ParseClockTime extracts a single HH:MM time (optionally with am/pm) and
// returns it in 24-hour form.
func ParseClockTime(text string) (string, bool) {
	m := reClockTime.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return clockTime(m[1], m[2], m[3])
}

// ParseCoordinates extracts a decimal "lat, lng" pair. It returns nil, not
// the zero point, when nothing parses, so callers can tell "unknown" apart
// from the equator.
func ParseCoordinates(text string) *Coordinates {
	m := reCoordinates.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &Coordinates{Latitude: lat, Longitude: lng}
}

// MatchesDate reports whether the line contains any recognizable date form,
// without committing to a parse. Used for opportunistic unlabeled lines.
func MatchesDate(text string) bool {
	_, ok := ParseDate(text)
	return ok
}

// MatchesTimeRange reports whether the line contains an explicit start-end
// time pair.
func MatchesTimeRange(text string) bool {
	return reTimeRange.MatchString(text)
}
