package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func publishFixtures() (*models.TimetableGeneration, []models.TimetableEntry) {
	now := time.Now()
	gen := &models.TimetableGeneration{
		ID:           "gen-2",
		Semester:     "3",
		AcademicYear: "2026-27",
		Status:       models.GenerationActive,
		SolverStatus: "FEASIBLE",
		EntryCount:   1,
		CreatedAt:    now,
	}
	entries := []models.TimetableEntry{{
		ID:           "entry-1",
		GenerationID: "gen-2",
		CourseID:     "c1",
		FacultyID:    "f1",
		RoomID:       "r1",
		TimeSlotID:   "s1",
		Semester:     "3",
		AcademicYear: "2026-27",
		CreatedAt:    now,
	}}
	return gen, entries
}

func TestTimetableRepositoryReplaceGeneration(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)
	gen, entries := publishFixtures()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO timetable_generations").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO timetable_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE timetable_generations SET status").
		WithArgs(string(models.GenerationSuperseded), "3", "2026-27", string(models.GenerationActive), "gen-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceGeneration(context.Background(), gen, entries))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryReplaceGenerationRollsBackOnEntryFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)
	gen, entries := publishFixtures()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO timetable_generations").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO timetable_entries").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.ReplaceGeneration(context.Background(), gen, entries)
	require.Error(t, err)
	require.Contains(t, err.Error(), "insert entry")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryActiveGeneration(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows([]string{"id", "semester", "academic_year", "status", "solver_status", "entry_count", "meta", "created_at"}).
		AddRow("gen-1", "3", "2026-27", string(models.GenerationActive), "FEASIBLE", 12, []byte(`{}`), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, semester, academic_year, status, solver_status, entry_count, meta, created_at")).
		WithArgs("3", "2026-27", string(models.GenerationActive)).
		WillReturnRows(rows)

	gen, err := repo.ActiveGeneration(context.Background(), "3", "2026-27")
	require.NoError(t, err)
	require.Equal(t, "gen-1", gen.ID)
	require.Equal(t, 12, gen.EntryCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListActiveEntries(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "generation_id", "course_id", "faculty_id", "room_id", "time_slot_id", "semester", "academic_year", "created_at",
		"course_code", "course_name", "faculty_name", "room_number", "day_of_week", "start_time", "end_time",
	}).AddRow("entry-1", "gen-1", "c1", "f1", "r1", "s1", "3", "2026-27", time.Now(),
		"CS101", "Data Structures", "Asha Rao", "A-101", 1, "09:00", "10:00")
	mock.ExpectQuery("FROM timetable_entries e").
		WithArgs("3", "2026-27", string(models.GenerationActive)).
		WillReturnRows(rows)

	entries, err := repo.ListActiveEntries(context.Background(), "3", "2026-27")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "CS101", entries[0].CourseCode)
	require.Equal(t, 1, entries[0].DayOfWeek)
	require.NoError(t, mock.ExpectationsWereMet())
}
