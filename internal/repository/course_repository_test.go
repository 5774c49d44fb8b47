package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

func courseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "name", "program_id", "semester", "credits",
		"theory_hours", "practical_hours", "tutorial_hours", "category",
		"skill_based", "prerequisites", "created_at", "updated_at",
	}).AddRow("c1", "CS101", "Data Structures", "prog-1", 3, 4,
		45, 0, 0, string(models.CategoryMajor), false, "{}", time.Now(), time.Now())
}

func TestCourseRepositoryListByPrograms(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("FROM courses WHERE program_id IN").
		WithArgs("prog-1", "prog-2").
		WillReturnRows(courseRows())

	courses, err := repo.ListByPrograms(context.Background(), []string{"prog-1", "prog-2"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "CS101", courses[0].Code)
	require.Equal(t, models.CategoryMajor, courses[0].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListByProgramsEmptyInput(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	courses, err := repo.ListByPrograms(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, courses)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryEnrollmentCounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"course_id", "students"}).
		AddRow("c1", 35).
		AddRow("c2", 18)
	mock.ExpectQuery("FROM enrollments WHERE course_id IN").
		WithArgs("c1", "c2").
		WillReturnRows(rows)

	counts, err := repo.EnrollmentCounts(context.Background(), []string{"c1", "c2"})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"c1": 35, "c2": 18}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryCourseFacultyLinks(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_id", "faculty_id", "semester", "academic_year", "created_at"}).
		AddRow("lnk-1", "c1", "f1", "3", "2026-27", time.Now())
	mock.ExpectQuery("FROM course_faculty_assignments WHERE semester").
		WithArgs("3", "2026-27").
		WillReturnRows(rows)

	links, err := repo.CourseFacultyLinks(context.Background(), "3", "2026-27")
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "f1", links[0].FacultyID)
	require.NoError(t, mock.ExpectationsWereMet())
}
