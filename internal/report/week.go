package report

import (
	"fmt"
	"time"
)

// DaySlot is one derived day of the active week. Slots are regenerated
// from the start date and never mutated.
type DaySlot struct {
	Key     Day
	Label   string
	ISODate string
}

// ErrNotMonday is returned when the chosen start date does not fall on
// a Monday.
var ErrNotMonday = fmt.Errorf("start date must be a Monday")

// ParseStartDate parses an ISO start date (YYYY-MM-DD) and verifies it
// falls on a Monday.
func ParseStartDate(value string) (time.Time, error) {
	start, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", value, err)
	}
	if start.Weekday() != time.Monday {
		return time.Time{}, ErrNotMonday
	}
	return start, nil
}

// NewWeek derives the seven day slots for the week beginning at the given
// ISO start date. The start date must fall on a Monday; on rejection no
// slots are produced and the caller's state is left untouched.
func NewWeek(startDate string) ([]DaySlot, error) {
	start, err := ParseStartDate(startDate)
	if err != nil {
		return nil, err
	}

	slots := make([]DaySlot, 0, len(WeekDays))
	for i, day := range WeekDays {
		date := start.AddDate(0, 0, i)
		slots = append(slots, DaySlot{
			Key:     day,
			Label:   fmt.Sprintf("%s - %s", day.Name(), date.Format("1/2/2006")),
			ISODate: date.Format("2006-01-02"),
		})
	}
	return slots, nil
}

// SlotFor returns the slot for the given day key, or false when the key
// is not part of the week.
func SlotFor(week []DaySlot, key Day) (DaySlot, bool) {
	for _, slot := range week {
		if slot.Key == key {
			return slot, true
		}
	}
	return DaySlot{}, false
}
