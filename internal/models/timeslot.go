package models

import "time"

// SlotType categorises teaching periods.
type SlotType string

const (
	SlotTheory    SlotType = "THEORY"
	SlotPractical SlotType = "PRACTICAL"
	SlotTutorial  SlotType = "TUTORIAL"
)

// TimeSlot is one teaching period in the weekly calendar.
// DayOfWeek uses 1=Monday .. 7=Sunday. Start and End are "HH:MM" wall-clock
// strings; two slots conflict iff they share day, start and end.
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	Start     string    `db:"start_time" json:"start_time"`
	End       string    `db:"end_time" json:"end_time"`
	Type      SlotType  `db:"slot_type" json:"slot_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SameMoment reports whether two slots occupy the same day and time span.
func (t TimeSlot) SameMoment(other TimeSlot) bool {
	return t.DayOfWeek == other.DayOfWeek && t.Start == other.Start && t.End == other.End
}

var dayNames = map[int]string{
	1: "MONDAY",
	2: "TUESDAY",
	3: "WEDNESDAY",
	4: "THURSDAY",
	5: "FRIDAY",
	6: "SATURDAY",
	7: "SUNDAY",
}

// DayName returns the upper-case English weekday name for a 1-based index.
func DayName(day int) string {
	if name, ok := dayNames[day]; ok {
		return name
	}
	return "UNKNOWN"
}
