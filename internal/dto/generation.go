package dto

import (
	"github.com/Palash-oss/TIMETABLE/internal/engine"
	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// GenerateTimetableRequest asks for an exact timetable for one semester of
// one or more programs.
type GenerateTimetableRequest struct {
	Semester           string   `json:"semester" validate:"required"`
	AcademicYear       string   `json:"academic_year" validate:"required"`
	ProgramIDs         []string `json:"program_ids" validate:"required,min=1,dive,required"`
	EnforceConstraints *bool    `json:"enforce_constraints"`
}

// Enforce reports whether stored constraints apply; they do unless the
// request opts out explicitly.
func (r GenerateTimetableRequest) Enforce() bool {
	return r.EnforceConstraints == nil || *r.EnforceConstraints
}

// GenerateTimetableResponse is the published result of an exact solve.
type GenerateTimetableResponse struct {
	GenerationID string                  `json:"generation_id"`
	SolverStatus string                  `json:"solver_status"`
	EntryCount   int                     `json:"entry_count"`
	Entries      []models.TimetableEntry `json:"entries"`
	Compliance   engine.ComplianceReport `json:"compliance"`
	ElapsedMS    int64                   `json:"elapsed_ms"`
}

// DraftTimetableRequest asks for a fast advisory schedule. A zero seed lets
// the server pick one; the response echoes the seed used so a draft can be
// reproduced.
type DraftTimetableRequest struct {
	Semester     string   `json:"semester" validate:"required"`
	AcademicYear string   `json:"academic_year" validate:"required"`
	ProgramIDs   []string `json:"program_ids" validate:"required,min=1,dive,required"`
	Seed         int64    `json:"seed"`
}

// DraftTimetableResponse wraps a draft with its caveat.
type DraftTimetableResponse struct {
	Draft   *engine.DraftSchedule `json:"draft"`
	Warning string                `json:"warning"`
}
