package models

import (
	"time"

	"github.com/lib/pq"
)

// Faculty represents a teaching staff member.
// BlockedDays is a typed set of day-of-week indices (1=Monday .. 7=Sunday)
// the member cannot teach on; it is validated at load time.
type Faculty struct {
	ID              string         `db:"id" json:"id"`
	EmployeeID      string         `db:"employee_id" json:"employee_id"`
	Name            string         `db:"name" json:"name"`
	Email           string         `db:"email" json:"email"`
	Department      string         `db:"department" json:"department"`
	Expertise       pq.StringArray `db:"expertise" json:"expertise"`
	MaxHoursPerWeek int            `db:"max_hours_per_week" json:"max_hours_per_week"`
	BlockedDays     pq.Int64Array  `db:"blocked_days" json:"blocked_days"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// IsBlockedOn reports whether the member is unavailable on the given day.
func (f Faculty) IsBlockedOn(day int) bool {
	for _, blocked := range f.BlockedDays {
		if int(blocked) == day {
			return true
		}
	}
	return false
}

// CourseFacultyLink records that a faculty member is assigned to teach a
// course for a particular semester and academic year. Only linked members are
// ever considered for a course.
type CourseFacultyLink struct {
	ID           string    `db:"id" json:"id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	FacultyID    string    `db:"faculty_id" json:"faculty_id"`
	Semester     string    `db:"semester" json:"semester"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
