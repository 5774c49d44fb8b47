package models

import (
	"time"

	"github.com/lib/pq"
)

// CourseCategory classifies a course for priority ordering and compliance
// reporting.
type CourseCategory string

const (
	CategoryMajor   CourseCategory = "MAJOR"
	CategoryMinor   CourseCategory = "MINOR"
	CategoryAEC     CourseCategory = "AEC"
	CategorySEC     CourseCategory = "SEC"
	CategoryVAC     CourseCategory = "VAC"
	CategoryMDC     CourseCategory = "MDC"
	CategoryProject CourseCategory = "PROJECT"
)

// Course represents a schedulable course within a program semester.
type Course struct {
	ID             string         `db:"id" json:"id"`
	Code           string         `db:"code" json:"code"`
	Name           string         `db:"name" json:"name"`
	ProgramID      string         `db:"program_id" json:"program_id"`
	Semester       int            `db:"semester" json:"semester"`
	Credits        int            `db:"credits" json:"credits"`
	TheoryHours    int            `db:"theory_hours" json:"theory_hours"`
	PracticalHours int            `db:"practical_hours" json:"practical_hours"`
	TutorialHours  int            `db:"tutorial_hours" json:"tutorial_hours"`
	Category       CourseCategory `db:"category" json:"category"`
	SkillBased     bool           `db:"skill_based" json:"skill_based"`
	Prerequisites  pq.StringArray `db:"prerequisites" json:"prerequisites"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// TotalHours sums the course's theory, practical and tutorial hours.
func (c Course) TotalHours() int {
	return c.TheoryHours + c.PracticalHours + c.TutorialHours
}

// RequiresLab reports whether the course needs a lab room in drafts.
func (c Course) RequiresLab() bool {
	return c.PracticalHours > 0
}
