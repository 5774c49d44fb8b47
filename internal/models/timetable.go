package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// GenerationStatus marks whether a stored generation is the active one for
// its (semester, academic_year) key.
type GenerationStatus string

const (
	GenerationActive     GenerationStatus = "ACTIVE"
	GenerationSuperseded GenerationStatus = "SUPERSEDED"
)

// TimetableGeneration is one full solver run's output header. Publishing is a
// staged swap: the new generation's entries are written first, then the active
// pointer for the key moves in the same transaction. At most one generation
// per key is ACTIVE.
type TimetableGeneration struct {
	ID           string           `db:"id" json:"id"`
	Semester     string           `db:"semester" json:"semester"`
	AcademicYear string           `db:"academic_year" json:"academic_year"`
	Status       GenerationStatus `db:"status" json:"status"`
	SolverStatus string           `db:"solver_status" json:"solver_status"`
	EntryCount   int              `db:"entry_count" json:"entry_count"`
	Meta         types.JSONText   `db:"meta" json:"meta,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// TimetableEntry is one scheduled session: a course taught by a faculty
// member in a room during a weekly time slot.
type TimetableEntry struct {
	ID           string    `db:"id" json:"id"`
	GenerationID string    `db:"generation_id" json:"generation_id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	FacultyID    string    `db:"faculty_id" json:"faculty_id"`
	RoomID       string    `db:"room_id" json:"room_id"`
	TimeSlotID   string    `db:"time_slot_id" json:"time_slot_id"`
	Semester     string    `db:"semester" json:"semester"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// TimetableEntryDetail joins an entry with its referenced records for read
// endpoints and exports.
type TimetableEntryDetail struct {
	TimetableEntry
	CourseCode  string `db:"course_code" json:"course_code"`
	CourseName  string `db:"course_name" json:"course_name"`
	FacultyName string `db:"faculty_name" json:"faculty_name"`
	RoomNumber  string `db:"room_number" json:"room_number"`
	DayOfWeek   int    `db:"day_of_week" json:"day_of_week"`
	StartTime   string `db:"start_time" json:"start_time"`
	EndTime     string `db:"end_time" json:"end_time"`
}
