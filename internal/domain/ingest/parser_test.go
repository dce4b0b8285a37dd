package ingest

import (
	"context"
	"testing"
	"time"

	"courtside/internal/domain/catalog"
)

func eventHints() ParseHints {
	return ParseHints{
		Kind:     catalog.KindEvent,
		Sport:    catalog.SportOther,
		Category: catalog.CategoryCompetition,
		Source:   "llm",
	}
}

func TestParseSearchTextNumberedItems(t *testing.T) {
	text := `Here are upcoming sports events in Hong Kong:

1. **Victoria Park Morning Tennis Ladder**
- **Date:** 2026-09-12
- **Time:** 09:00 - 12:00
- **Location:** Victoria Park, Causeway Bay
- **Coordinates:** 22.2820, 114.1890
- **Sport:** tennis
- **Category:** competition
- **Skill Level:** intermediate
- **Description:** Weekly singles ladder.

2. **Beginner Badminton Clinic**
- **Date:** 2026-09-20
- **Time:** 19:00 - 21:00
- **Location:** Po Kong Village Road Park, Diamond Hill
- **Sport:** badminton
- **Category:** lessons
- **Max Participants:** 24 players
`
	got := ParseSearchText(context.Background(), text, eventHints())
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}

	first := got[0]
	if first.Name != "Victoria Park Morning Tennis Ladder" {
		t.Errorf("name = %q", first.Name)
	}
	if first.Ref == "" {
		t.Error("candidate should carry a ref")
	}
	if !first.EventDate.Equal(time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %s", first.EventDate)
	}
	if first.StartTime != "09:00" || first.EndTime != "12:00" {
		t.Errorf("time = %s-%s", first.StartTime, first.EndTime)
	}
	if first.SportType != catalog.SportTennis {
		t.Errorf("sport = %s", first.SportType)
	}
	if first.Skill != catalog.SkillIntermediate {
		t.Errorf("skill = %s", first.Skill)
	}
	if !first.LocationConfirmed {
		t.Error("location line should confirm the location")
	}
	if first.Coordinates == nil || first.Coordinates.Latitude != 22.2820 {
		t.Errorf("coordinates = %+v", first.Coordinates)
	}
	if first.Description != "Weekly singles ladder." {
		t.Errorf("description = %q", first.Description)
	}
	if first.Source != "llm" {
		t.Errorf("source = %q", first.Source)
	}

	second := got[1]
	if second.Name != "Beginner Badminton Clinic" {
		t.Errorf("name = %q", second.Name)
	}
	if second.Category != catalog.CategoryLessons {
		t.Errorf("category = %s", second.Category)
	}
	if second.MaxParticipants != 24 {
		t.Errorf("max participants = %d", second.MaxParticipants)
	}
	if second.Coordinates == nil {
		t.Fatal("expected placeholder coordinates")
	}
	if got := *second.Coordinates; got != catalog.UnconfirmedLocation() {
		// No coordinates line, so the seeded placeholder should remain.
		t.Errorf("coordinates = %+v", got)
	}
}

func TestParseSearchTextBoldAndBulletTitles(t *testing.T) {
	text := `**Harbour Runners Social 10K**
Date: 2026-09-05
Time: 07:30 - 09:00

- Lunchtime Yoga in the Park
Date: 2026-09-03
Time: 12:30 - 13:30
`
	got := ParseSearchText(context.Background(), text, eventHints())
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Name != "Harbour Runners Social 10K" {
		t.Errorf("first name = %q", got[0].Name)
	}
	if got[1].Name != "Lunchtime Yoga in the Park" {
		t.Errorf("second name = %q", got[1].Name)
	}
	if got[1].StartTime != "12:30" || got[1].EndTime != "13:30" {
		t.Errorf("second time = %s-%s", got[1].StartTime, got[1].EndTime)
	}
}

func TestParseSearchTextBareDateAndTimeLines(t *testing.T) {
	text := `1. District Cup Screening
15 September 2026
20:00 - 22:00
Open-air screening at Southorn Playground.
`
	got := ParseSearchText(context.Background(), text, eventHints())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	cand := got[0]
	if !cand.EventDate.Equal(time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %s", cand.EventDate)
	}
	if cand.StartTime != "20:00" || cand.EndTime != "22:00" {
		t.Errorf("time = %s-%s", cand.StartTime, cand.EndTime)
	}
	if cand.Description != "Open-air screening at Southorn Playground." {
		t.Errorf("description = %q", cand.Description)
	}
}

func TestParseSearchTextSingleTimeSynthesizesEnd(t *testing.T) {
	text := `1. Evening Run
- Date: 2026-09-10
- Time: 19:30
`
	got := ParseSearchText(context.Background(), text, eventHints())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].StartTime != "19:30" || got[0].EndTime != "21:30" {
		t.Errorf("time = %s-%s, want 19:30-21:30", got[0].StartTime, got[0].EndTime)
	}
}

func TestParseSearchTextMergesRepeatedNames(t *testing.T) {
	text := `1. Victoria Park Ladder
- Date: 2026-09-12
- Time: 09:00 - 12:00

2. Victoria Park Ladder
- Date: 2026-10-01
- Location: Victoria Park, Causeway Bay
`
	got := ParseSearchText(context.Background(), text, eventHints())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want the repeats merged into 1", len(got))
	}
	cand := got[0]
	if !cand.EventDate.Equal(time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %s, want the first mention to win", cand.EventDate)
	}
	if cand.LocationName != "Victoria Park, Causeway Bay" {
		t.Errorf("location = %q, want it supplemented from the repeat", cand.LocationName)
	}
}

func TestParseSearchTextSkipsMalformedValues(t *testing.T) {
	text := `1. Mystery Event
- Date: sometime soon
- Time: after lunch
- Max Participants: a few
- Coordinates: downtown
`
	got := ParseSearchText(context.Background(), text, eventHints())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	cand := got[0]
	if !cand.EventDate.IsZero() {
		t.Errorf("date = %s, want unset after skip", cand.EventDate)
	}
	if cand.StartTime != "" {
		t.Errorf("start = %q, want unset after skip", cand.StartTime)
	}
	if cand.MaxParticipants != 0 {
		t.Errorf("max participants = %d, want 0", cand.MaxParticipants)
	}
	if cand.LocationConfirmed {
		t.Error("malformed coordinates must not confirm the location")
	}
}

func TestParseSearchTextFacilityDistrictFromAddress(t *testing.T) {
	hints := ParseHints{
		Kind:   catalog.KindFacility,
		Sport:  catalog.SportBasketball,
		Source: "places",
	}
	text := `1. Southorn Playground
- Address: 130 Hennessy Road, Wan Chai
- Description: Street-level courts.
Popular for pickup games after work.
`
	got := ParseSearchText(context.Background(), text, hints)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	cand := got[0]
	if cand.District != catalog.DistrictWanChai {
		t.Errorf("district = %s, want wan_chai from the address", cand.District)
	}
	if cand.SportType != catalog.SportBasketball {
		t.Errorf("sport = %s, want the hint", cand.SportType)
	}
	if cand.Description != "Street-level courts. Popular for pickup games after work." {
		t.Errorf("description = %q, want the lines joined", cand.Description)
	}
}

func TestParseSearchTextIgnoresPreamble(t *testing.T) {
	text := `I found a few options you might like.
Let me know if you need more detail.
`
	got := ParseSearchText(context.Background(), text, eventHints())
	if len(got) != 0 {
		t.Fatalf("got %d candidates, want none from pure chatter", len(got))
	}
}
