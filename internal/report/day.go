package report

import (
	"fmt"
	"strings"
	"time"
)

// Day identifies one day of the report week.
type Day string

// Day identifiers in canonical week order.
const (
	DayMonday    Day = "monday"
	DayTuesday   Day = "tuesday"
	DayWednesday Day = "wednesday"
	DayThursday  Day = "thursday"
	DayFriday    Day = "friday"
	DaySaturday  Day = "saturday"
	DaySunday    Day = "sunday"
)

// WeekDays lists the seven day identifiers in canonical Monday-to-Sunday
// order. All ledger iteration and display follows this order regardless of
// insertion order.
var WeekDays = []Day{
	DayMonday,
	DayTuesday,
	DayWednesday,
	DayThursday,
	DayFriday,
	DaySaturday,
	DaySunday,
}

// ParseDay validates a day identifier coming from user input.
func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range WeekDays {
		if d == valid {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day identifier: %q", s)
}

// Name returns the upper-cased day name used in display labels.
func (d Day) Name() string {
	return strings.ToUpper(string(d))
}

// Index returns the position of the day within the canonical week,
// 0 for Monday through 6 for Sunday, or -1 for an invalid day.
func (d Day) Index() int {
	for i, valid := range WeekDays {
		if d == valid {
			return i
		}
	}
	return -1
}

// dayOfWeek maps a calendar weekday to its day identifier.
func dayOfWeek(w time.Weekday) Day {
	switch w {
	case time.Monday:
		return DayMonday
	case time.Tuesday:
		return DayTuesday
	case time.Wednesday:
		return DayWednesday
	case time.Thursday:
		return DayThursday
	case time.Friday:
		return DayFriday
	case time.Saturday:
		return DaySaturday
	default:
		return DaySunday
	}
}
