package models

import "time"

// Program represents an academic program (degree) offering courses.
type Program struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Code          string    `db:"code" json:"code"`
	DurationYears int       `db:"duration_years" json:"duration_years"`
	TotalCredits  int       `db:"total_credits" json:"total_credits"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
