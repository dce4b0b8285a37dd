package ingest

import (
	"bufio"
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
)

// ParseHints seeds every candidate opened while scanning one response.
type ParseHints struct {
	Kind     catalog.Kind
	Sport    catalog.SportType
	Category catalog.EventCategory
	Source   string
}

// Field keys used by the dispatch table and the same-name merge.
const (
	fieldName            = "name"
	fieldDate            = "date"
	fieldStartTime       = "start_time"
	fieldEndTime         = "end_time"
	fieldLocation        = "location"
	fieldAddress         = "address"
	fieldSport           = "sport"
	fieldCategory        = "category"
	fieldDescription     = "description"
	fieldWebsite         = "website"
	fieldImage           = "image"
	fieldCoordinates     = "coordinates"
	fieldSkill           = "skill"
	fieldMaxParticipants = "max_participants"
)

var (
	reNumberedItem = regexp.MustCompile(`^\s*\d+[.)]\s+(.+)$`)
	reBulletItem   = regexp.MustCompile(`^\s*[-*•]\s+(.+)$`)
	reBoldTitle    = regexp.MustCompile(`^\s*\*\*(.+?)\*\*:?\s*$`)
	reLabeledLine  = regexp.MustCompile(`^\s*(?:[-*•]\s+)?\*{0,2}([A-Za-z][A-Za-z /]{0,24}?)\*{0,2}\s*:\s*(.+)$`)
	reBoldMarkers  = regexp.MustCompile(`\*\*`)
	reFirstNumber  = regexp.MustCompile(`\d+`)
)

// labelFields maps a normalized label to the field it routes into. Multiple
// spellings from drifting provider formats collapse onto one field.
var labelFields = map[string]string{
	"name":             fieldName,
	"facility":         fieldName,
	"event":            fieldName,
	"date":             fieldDate,
	"event date":       fieldDate,
	"when":             fieldDate,
	"time":             fieldStartTime, // full range; setter fills both ends
	"start time":       fieldStartTime,
	"end time":         fieldEndTime,
	"location":         fieldLocation,
	"venue":            fieldLocation,
	"where":            fieldLocation,
	"address":          fieldAddress,
	"sport":            fieldSport,
	"sport type":       fieldSport,
	"type":             fieldSport,
	"category":         fieldCategory,
	"description":      fieldDescription,
	"details":          fieldDescription,
	"website":          fieldWebsite,
	"url":              fieldWebsite,
	"link":             fieldWebsite,
	"image":            fieldImage,
	"photo":            fieldImage,
	"coordinates":      fieldCoordinates,
	"gps":              fieldCoordinates,
	"coords":           fieldCoordinates,
	"skill level":      fieldSkill,
	"skill":            fieldSkill,
	"level":            fieldSkill,
	"max participants": fieldMaxParticipants,
	"participants":     fieldMaxParticipants,
	"capacity":         fieldMaxParticipants,
}

// accumulator is the in-progress candidate plus a record of which fields an
// explicit line has already written, for first-write-wins merging.
type accumulator struct {
	cand Candidate
	set  map[string]bool
}

type responseParser struct {
	hints   ParseHints
	current *accumulator
	ordered []*accumulator
	byName  map[string]*accumulator
}

// ParseSearchText scans a free-text provider response line by line and
// returns the candidates it describes, in response order. The scan is a
// single pass: each line either opens a new candidate (numbered, bulleted,
// or bold-titled), routes a labeled value into a field, opportunistically
// fills a missing date or time range, or joins the description. Candidates
// repeating an earlier name supplement it field-by-field, first write wins.
// Malformed field values are logged and skipped without aborting the
// candidate or the response.
func ParseSearchText(ctx context.Context, text string, hints ParseHints) []Candidate {
	p := &responseParser{
		hints:  hints,
		byName: make(map[string]*accumulator),
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.consumeLine(ctx, scanner.Text())
	}
	p.flush()

	out := make([]Candidate, 0, len(p.ordered))
	for _, acc := range p.ordered {
		out = append(out, acc.cand)
	}
	return out
}

func (p *responseParser) consumeLine(ctx context.Context, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if m := reLabeledLine.FindStringSubmatch(trimmed); m != nil {
		label := strings.ToLower(strings.TrimSpace(m[1]))
		if field, ok := labelFields[label]; ok && p.current != nil {
			value := strings.TrimSpace(reBoldMarkers.ReplaceAllString(m[2], ""))
			p.setField(ctx, field, value)
			return
		}
	}

	if m := reNumberedItem.FindStringSubmatch(trimmed); m != nil {
		p.openCandidate(m[1])
		return
	}
	if m := reBoldTitle.FindStringSubmatch(trimmed); m != nil {
		p.openCandidate(m[1])
		return
	}
	if m := reBulletItem.FindStringSubmatch(trimmed); m != nil {
		p.openCandidate(m[1])
		return
	}

	if p.current == nil {
		// Preamble chatter before the first item.
		return
	}

	// Providers sometimes emit the date or time bare, without a label.
	if p.hints.Kind == catalog.KindEvent && !p.current.set[fieldDate] && catalog.MatchesDate(trimmed) {
		p.setField(ctx, fieldDate, trimmed)
		return
	}
	if p.hints.Kind == catalog.KindEvent && !p.current.set[fieldStartTime] && catalog.MatchesTimeRange(trimmed) {
		p.setField(ctx, fieldStartTime, trimmed)
		return
	}

	p.appendDescription(trimmed)
}

func (p *responseParser) openCandidate(title string) {
	p.flush()

	name := strings.TrimSpace(reBoldMarkers.ReplaceAllString(title, ""))
	name = strings.TrimSuffix(name, ":")

	cand := Candidate{
		Ref:       uuid.New().String(),
		Kind:      p.hints.Kind,
		Name:      name,
		SportType: p.hints.Sport,
		Skill:     catalog.SkillAllLevels,
		Source:    p.hints.Source,
	}
	switch p.hints.Kind {
	case catalog.KindFacility:
		cand.District = catalog.DefaultDistrict
	case catalog.KindEvent:
		cand.Category = p.hints.Category
	}
	placeholder := catalog.UnconfirmedLocation()
	cand.Coordinates = &placeholder
	cand.LocationConfirmed = false

	p.current = &accumulator{cand: cand, set: make(map[string]bool)}
}

func (p *responseParser) setField(ctx context.Context, field, value string) {
	acc := p.current
	switch field {
	case fieldName:
		acc.cand.Name = value
	case fieldDate:
		date, ok := catalog.ParseDate(value)
		if !ok {
			logging.Warn(ctx, "unparseable date value skipped", slog.String("value", value))
			return
		}
		acc.cand.EventDate = date
	case fieldStartTime:
		tr, ok := catalog.ParseTimeRange(value)
		if !ok {
			logging.Warn(ctx, "unparseable time value skipped", slog.String("value", value))
			return
		}
		acc.cand.StartTime = tr.Start
		if !acc.set[fieldEndTime] {
			acc.cand.EndTime = tr.End
		}
	case fieldEndTime:
		end, ok := catalog.ParseClockTime(value)
		if !ok {
			logging.Warn(ctx, "unparseable end time skipped", slog.String("value", value))
			return
		}
		acc.cand.EndTime = end
	case fieldLocation:
		acc.cand.LocationName = value
		acc.cand.LocationConfirmed = true
		if coords := catalog.ParseCoordinates(value); coords != nil {
			acc.cand.Coordinates = coords
			acc.set[fieldCoordinates] = true
		}
		if acc.cand.Kind == catalog.KindFacility && !acc.set[fieldAddress] {
			acc.cand.District = catalog.NormalizeDistrict(value)
		}
	case fieldAddress:
		acc.cand.Address = value
		acc.cand.LocationConfirmed = true
		if acc.cand.Kind == catalog.KindFacility {
			acc.cand.District = catalog.NormalizeDistrict(value)
		}
	case fieldSport:
		acc.cand.SportType = catalog.NormalizeSportType(value)
	case fieldCategory:
		if acc.cand.Kind == catalog.KindEvent {
			acc.cand.Category = catalog.NormalizeEventCategory(value)
		}
	case fieldDescription:
		p.appendDescription(value)
	case fieldWebsite:
		acc.cand.Website = value
	case fieldImage:
		acc.cand.ImageURL = value
	case fieldCoordinates:
		coords := catalog.ParseCoordinates(value)
		if coords == nil {
			logging.Warn(ctx, "unparseable coordinates skipped", slog.String("value", value))
			return
		}
		acc.cand.Coordinates = coords
		acc.cand.LocationConfirmed = true
	case fieldSkill:
		acc.cand.Skill = catalog.NormalizeSkillLevel(value)
	case fieldMaxParticipants:
		digits := reFirstNumber.FindString(value)
		if digits == "" {
			logging.Warn(ctx, "unparseable participant count skipped", slog.String("value", value))
			return
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			logging.Warn(ctx, "unparseable participant count skipped", slog.String("value", value))
			return
		}
		acc.cand.MaxParticipants = n
	}
	acc.set[field] = true
}

func (p *responseParser) appendDescription(text string) {
	acc := p.current
	if acc.cand.Description == "" {
		acc.cand.Description = text
	} else {
		acc.cand.Description += " " + text
	}
	acc.set[fieldDescription] = true
}

// flush closes the open accumulator. A candidate whose name repeats an
// earlier one in the same response supplements the earlier record instead of
// appearing twice: fields the earlier candidate never set are copied over.
func (p *responseParser) flush() {
	acc := p.current
	p.current = nil
	if acc == nil {
		return
	}
	if strings.TrimSpace(acc.cand.Name) == "" {
		return
	}

	key := strings.ToLower(strings.TrimSpace(acc.cand.Name))
	if earlier, ok := p.byName[key]; ok {
		supplement(earlier, acc)
		return
	}
	p.byName[key] = acc
	p.ordered = append(p.ordered, acc)
}

func supplement(dst, src *accumulator) {
	for field := range src.set {
		if dst.set[field] {
			continue
		}
		switch field {
		case fieldDate:
			dst.cand.EventDate = src.cand.EventDate
		case fieldStartTime:
			dst.cand.StartTime = src.cand.StartTime
		case fieldEndTime:
			dst.cand.EndTime = src.cand.EndTime
		case fieldLocation:
			dst.cand.LocationName = src.cand.LocationName
			dst.cand.LocationConfirmed = true
			dst.cand.District = src.cand.District
		case fieldAddress:
			dst.cand.Address = src.cand.Address
			dst.cand.LocationConfirmed = true
		case fieldSport:
			dst.cand.SportType = src.cand.SportType
		case fieldCategory:
			dst.cand.Category = src.cand.Category
		case fieldDescription:
			dst.cand.Description = src.cand.Description
		case fieldWebsite:
			dst.cand.Website = src.cand.Website
		case fieldImage:
			dst.cand.ImageURL = src.cand.ImageURL
		case fieldCoordinates:
			dst.cand.Coordinates = src.cand.Coordinates
			dst.cand.LocationConfirmed = true
		case fieldSkill:
			dst.cand.Skill = src.cand.Skill
		case fieldMaxParticipants:
			dst.cand.MaxParticipants = src.cand.MaxParticipants
		}
		dst.set[field] = true
	}
}
