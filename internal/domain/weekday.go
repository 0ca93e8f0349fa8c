package domain

import "time"

// Weekday uses the schedule's encoding: Monday = 0 through Sunday = 6.
// This differs from time.Weekday (Sunday = 0) on purpose; every piece of
// the delivery-date arithmetic is written against this encoding.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "???"
	}
	return weekdayNames[w]
}

// WeekdayOf converts a calendar date into the Monday-based encoding.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// DeliveryWeekdays are the weekdays a supplier profile carries flags for.
// Sunday is not a configurable delivery day.
var DeliveryWeekdays = [...]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
