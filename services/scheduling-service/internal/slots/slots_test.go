package slots

import (
	"testing"
	"time"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
)

func TestExpandDay_WholeHours(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

	starts := ExpandDay(day, 9*60, 12*60)
	if len(starts) != 3 {
		t.Fatalf("expected 3 slots for 09:00-12:00, got %d", len(starts))
	}
	for i, wantHour := range []int{9, 10, 11} {
		want := day.Add(time.Duration(wantHour) * time.Hour)
		if !starts[i].Equal(want) {
			t.Fatalf("slot %d: expected %s, got %s", i, want.Format(time.RFC3339), starts[i].Format(time.RFC3339))
		}
	}
}

func TestExpandDay_PartialTrailingHour(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// 09:00-12:30: starts strictly before the end are kept, so 12:00 is
	// still generated even though its hour overruns the window.
	starts := ExpandDay(day, 9*60, 12*60+30)
	if len(starts) != 4 {
		t.Fatalf("expected 4 slots for 09:00-12:30, got %d", len(starts))
	}
	if !starts[3].Equal(day.Add(12 * time.Hour)) {
		t.Fatalf("expected last slot 12:00, got %s", starts[3].Format(time.RFC3339))
	}
}

func TestExpandDay_EmptyWindow(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := ExpandDay(day, 10*60, 10*60); got != nil {
		t.Fatalf("expected no slots for an empty window, got %d", len(got))
	}
}

func TestExpand_MatchesWeekday(t *testing.T) {
	templates := []model.ScheduleTemplate{
		{ProviderID: "p1", Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 12 * 60, IsAvailable: true},
		{ProviderID: "p1", Weekday: time.Wednesday, StartMinute: 14 * 60, EndMinute: 16 * 60, IsAvailable: true},
	}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, 6)

	starts := Expand(templates, monday, sunday)
	// Monday 09,10,11 + Wednesday 14,15.
	if len(starts) != 5 {
		t.Fatalf("expected 5 slots over the week, got %d", len(starts))
	}
	if !starts[0].Equal(monday.Add(9 * time.Hour)) {
		t.Fatalf("expected first slot Monday 09:00, got %s", starts[0].Format(time.RFC3339))
	}
	wednesday := monday.AddDate(0, 0, 2)
	if !starts[3].Equal(wednesday.Add(14 * time.Hour)) {
		t.Fatalf("expected fourth slot Wednesday 14:00, got %s", starts[3].Format(time.RFC3339))
	}
}

func TestExpand_SkipsUnavailableTemplates(t *testing.T) {
	templates := []model.ScheduleTemplate{
		{ProviderID: "p1", Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 12 * 60, IsAvailable: false},
	}
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := Expand(templates, monday, monday); len(got) != 0 {
		t.Fatalf("expected no slots from an unavailable template, got %d", len(got))
	}
}

func TestExpand_MultipleWindowsSameDay(t *testing.T) {
	templates := []model.ScheduleTemplate{
		{ProviderID: "p1", Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 11 * 60, IsAvailable: true},
		{ProviderID: "p1", Weekday: time.Monday, StartMinute: 14 * 60, EndMinute: 16 * 60, IsAvailable: true},
	}
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	starts := Expand(templates, monday, monday)
	if len(starts) != 4 {
		t.Fatalf("expected 4 slots across both windows, got %d", len(starts))
	}
}

func TestHorizon(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 42, 0, 0, time.UTC)
	from, to := Horizon(now)
	if !from.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected horizon start tomorrow midnight, got %s", from.Format(time.RFC3339))
	}
	if !to.Equal(from.AddDate(0, 0, HorizonDays)) {
		t.Fatalf("expected horizon end %d days after start, got %s", HorizonDays, to.Format(time.RFC3339))
	}
}

func TestExpand_Idempotent(t *testing.T) {
	templates := []model.ScheduleTemplate{
		{ProviderID: "p1", Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 12 * 60, IsAvailable: true},
	}
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := Expand(templates, monday, monday)
	second := Expand(templates, monday, monday)
	if len(first) != len(second) {
		t.Fatalf("expansion is not deterministic: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("slot %d differs between runs", i)
		}
	}
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("ParseClock failed: %v", err)
	}
	if min != 9*60+30 {
		t.Fatalf("expected 570, got %d", min)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatal("expected error for invalid clock")
	}
	if got := FormatClock(570); got != "09:30" {
		t.Fatalf("FormatClock(570) = %q", got)
	}
}
