package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ConstraintKind identifies a supported scheduling rule. The set is closed:
// loading a record with an unknown kind is an error, never a silent no-op.
type ConstraintKind string

const (
	// ConstraintFacultyDayOff blocks one faculty member for a whole day.
	// Params: {"faculty_id": "...", "day_of_week": 1-7}
	ConstraintFacultyDayOff ConstraintKind = "FACULTY_DAY_OFF"
	// ConstraintRoomUnavailable blocks one room for a whole day.
	// Params: {"room_id": "...", "day_of_week": 1-7}
	ConstraintRoomUnavailable ConstraintKind = "ROOM_UNAVAILABLE"
	// ConstraintCourseFixedDay restricts a course's sessions to one day.
	// Params: {"course_id": "...", "day_of_week": 1-7}
	ConstraintCourseFixedDay ConstraintKind = "COURSE_FIXED_DAY"
)

// Constraint is a stored scheduling rule. Hard constraints are binding in
// exact mode; soft ones bound a quantity without forbidding it outright.
type Constraint struct {
	ID          string         `db:"id" json:"id"`
	Kind        ConstraintKind `db:"kind" json:"kind"`
	Description string         `db:"description" json:"description"`
	Priority    int            `db:"priority" json:"priority"`
	Hard        bool           `db:"is_hard" json:"is_hard"`
	Params      types.JSONText `db:"params" json:"params"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
