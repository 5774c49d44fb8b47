package repository

import (
	"context"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// EngineLoader aggregates the per-entity repositories behind the engine's
// storage port, keeping the solver free of database concerns.
type EngineLoader struct {
	courses     *CourseRepository
	faculty     *FacultyRepository
	rooms       *RoomRepository
	slots       *TimeSlotRepository
	constraints *ConstraintRepository
	assignments *AssignmentRepository
}

// NewEngineLoader wires the repositories the engine reads from.
func NewEngineLoader(
	courses *CourseRepository,
	faculty *FacultyRepository,
	rooms *RoomRepository,
	slots *TimeSlotRepository,
	constraints *ConstraintRepository,
	assignments *AssignmentRepository,
) *EngineLoader {
	return &EngineLoader{
		courses:     courses,
		faculty:     faculty,
		rooms:       rooms,
		slots:       slots,
		constraints: constraints,
		assignments: assignments,
	}
}

func (l *EngineLoader) CoursesByPrograms(ctx context.Context, programIDs []string) ([]models.Course, error) {
	return l.courses.ListByPrograms(ctx, programIDs)
}

func (l *EngineLoader) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	return l.faculty.List(ctx)
}

func (l *EngineLoader) AvailableRooms(ctx context.Context) ([]models.Room, error) {
	return l.rooms.ListAvailable(ctx)
}

func (l *EngineLoader) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	return l.slots.List(ctx)
}

func (l *EngineLoader) ListConstraints(ctx context.Context) ([]models.Constraint, error) {
	return l.constraints.List(ctx)
}

func (l *EngineLoader) CourseFacultyLinks(ctx context.Context, semester, academicYear string) ([]models.CourseFacultyLink, error) {
	return l.assignments.CourseFacultyLinks(ctx, semester, academicYear)
}

func (l *EngineLoader) EnrollmentCounts(ctx context.Context, courseIDs []string) (map[string]int, error) {
	return l.assignments.EnrollmentCounts(ctx, courseIDs)
}
