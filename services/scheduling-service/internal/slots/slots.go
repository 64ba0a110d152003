package slots

import (
	"fmt"
	"time"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = time.Hour

// HorizonDays is how far ahead of tomorrow the materializer looks.
const HorizonDays = 14

// Horizon returns the materialization range as whole UTC dates:
// tomorrow through tomorrow+HorizonDays, inclusive.
func Horizon(now time.Time) (time.Time, time.Time) {
	from := Midnight(now.UTC()).AddDate(0, 0, 1)
	return from, from.AddDate(0, 0, HorizonDays)
}

// Midnight truncates t to the start of its UTC day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Expand returns the start instants of every one-hour slot the templates
// produce for each date in [from, to] (inclusive whole dates). Templates
// marked unavailable contribute nothing.
func Expand(templates []model.ScheduleTemplate, from, to time.Time) []time.Time {
	var starts []time.Time
	for date := Midnight(from); !date.After(Midnight(to)); date = date.AddDate(0, 0, 1) {
		for _, tpl := range templates {
			if !tpl.IsAvailable || tpl.Weekday != date.Weekday() {
				continue
			}
			starts = append(starts, ExpandDay(date, tpl.StartMinute, tpl.EndMinute)...)
		}
	}
	return starts
}

// ExpandDay steps in whole hours from startMinute while strictly before
// endMinute. A trailing partial hour yields no extra slot, but a start
// that fits before the end is emitted even if its hour overruns it.
func ExpandDay(date time.Time, startMinute, endMinute int) []time.Time {
	date = Midnight(date)
	var starts []time.Time
	for cur := startMinute; cur < endMinute; cur += 60 {
		starts = append(starts, date.Add(time.Duration(cur)*time.Minute))
	}
	return starts
}

// ParseClock parses a "15:04" wall-clock string into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as "15:04".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
