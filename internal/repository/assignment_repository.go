package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// AssignmentRepository handles course-faculty assignments and the enrollment
// counts backing room capacity checks.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// CourseFacultyLinks returns the teaching assignments for a semester and
// academic year.
func (r *AssignmentRepository) CourseFacultyLinks(ctx context.Context, semester, academicYear string) ([]models.CourseFacultyLink, error) {
	const query = `SELECT id, course_id, faculty_id, semester, academic_year, created_at
        FROM course_faculty_assignments WHERE semester = $1 AND academic_year = $2`
	var links []models.CourseFacultyLink
	if err := r.db.SelectContext(ctx, &links, query, semester, academicYear); err != nil {
		return nil, fmt.Errorf("list course-faculty assignments: %w", err)
	}
	return links, nil
}

// EnrollmentCounts returns per-course student counts. Courses with no
// enrollment records are absent from the map.
func (r *AssignmentRepository) EnrollmentCounts(ctx context.Context, courseIDs []string) (map[string]int, error) {
	if len(courseIDs) == 0 {
		return map[string]int{}, nil
	}
	query, args, err := sqlx.In(`SELECT course_id, COUNT(*) AS students FROM enrollments WHERE course_id IN (?) GROUP BY course_id`, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("build enrollment query: %w", err)
	}
	query = r.db.Rebind(query)

	rows := []struct {
		CourseID string `db:"course_id"`
		Students int    `db:"students"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.CourseID] = row.Students
	}
	return counts, nil
}
