package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// TimetableRepository persists generated timetables. Publication is a staged
// swap inside one transaction: the new generation and its entries are written
// first, then the previous ACTIVE generation for the key is demoted. The old
// timetable stays readable until commit, and a failure anywhere rolls the
// whole swap back.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs the repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// ReplaceGeneration publishes a generation atomically for its
// (semester, academic_year) key.
func (r *TimetableRepository) ReplaceGeneration(ctx context.Context, gen *models.TimetableGeneration, entries []models.TimetableEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin publish: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback() //nolint:errcheck
		}
	}()

	const insertGen = `INSERT INTO timetable_generations (id, semester, academic_year, status, solver_status, entry_count, meta, created_at)
        VALUES (:id, :semester, :academic_year, :status, :solver_status, :entry_count, :meta, :created_at)`
	if _, err = tx.NamedExecContext(ctx, insertGen, gen); err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}

	const insertEntry = `INSERT INTO timetable_entries (id, generation_id, course_id, faculty_id, room_id, time_slot_id, semester, academic_year, created_at)
        VALUES (:id, :generation_id, :course_id, :faculty_id, :room_id, :time_slot_id, :semester, :academic_year, :created_at)`
	for i := range entries {
		if _, err = tx.NamedExecContext(ctx, insertEntry, entries[i]); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}

	const demote = `UPDATE timetable_generations SET status = $1 WHERE semester = $2 AND academic_year = $3 AND status = $4 AND id <> $5`
	if _, err = tx.ExecContext(ctx, demote, models.GenerationSuperseded, gen.Semester, gen.AcademicYear, models.GenerationActive, gen.ID); err != nil {
		return fmt.Errorf("demote previous generation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit publish: %w", err)
	}
	return nil
}

// ActiveGeneration returns the current generation for the key, or
// sql.ErrNoRows if none was ever published.
func (r *TimetableRepository) ActiveGeneration(ctx context.Context, semester, academicYear string) (*models.TimetableGeneration, error) {
	const query = `SELECT id, semester, academic_year, status, solver_status, entry_count, meta, created_at
        FROM timetable_generations WHERE semester = $1 AND academic_year = $2 AND status = $3`
	var gen models.TimetableGeneration
	if err := r.db.GetContext(ctx, &gen, query, semester, academicYear, models.GenerationActive); err != nil {
		return nil, err
	}
	return &gen, nil
}

const entryDetailColumns = `e.id, e.generation_id, e.course_id, e.faculty_id, e.room_id, e.time_slot_id, e.semester, e.academic_year, e.created_at,
        c.code AS course_code, c.name AS course_name, f.name AS faculty_name, r.room_number,
        ts.day_of_week, ts.start_time, ts.end_time`

const entryDetailJoins = `FROM timetable_entries e
        JOIN timetable_generations g ON g.id = e.generation_id
        JOIN courses c ON c.id = e.course_id
        JOIN faculty f ON f.id = e.faculty_id
        JOIN rooms r ON r.id = e.room_id
        JOIN time_slots ts ON ts.id = e.time_slot_id`

// ListActiveEntries returns the active timetable for the key, joined with its
// referenced records and ordered for display.
func (r *TimetableRepository) ListActiveEntries(ctx context.Context, semester, academicYear string) ([]models.TimetableEntryDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE g.semester = $1 AND g.academic_year = $2 AND g.status = $3
        ORDER BY ts.day_of_week, ts.start_time, c.code`, entryDetailColumns, entryDetailJoins)
	var entries []models.TimetableEntryDetail
	if err := r.db.SelectContext(ctx, &entries, query, semester, academicYear, models.GenerationActive); err != nil {
		return nil, fmt.Errorf("list active entries: %w", err)
	}
	return entries, nil
}

// ListActiveByFaculty returns one faculty member's slice of the active
// timetable.
func (r *TimetableRepository) ListActiveByFaculty(ctx context.Context, facultyID, semester, academicYear string) ([]models.TimetableEntryDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE g.semester = $1 AND g.academic_year = $2 AND g.status = $3 AND e.faculty_id = $4
        ORDER BY ts.day_of_week, ts.start_time, c.code`, entryDetailColumns, entryDetailJoins)
	var entries []models.TimetableEntryDetail
	if err := r.db.SelectContext(ctx, &entries, query, semester, academicYear, models.GenerationActive, facultyID); err != nil {
		return nil, fmt.Errorf("list faculty entries: %w", err)
	}
	return entries, nil
}
