package repository

import (
	"context"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// CatalogStore aggregates the per-entity repositories behind the catalog
// service's read surface.
type CatalogStore struct {
	programs    *ProgramRepository
	courses     *CourseRepository
	faculty     *FacultyRepository
	rooms       *RoomRepository
	slots       *TimeSlotRepository
	constraints *ConstraintRepository
}

// NewCatalogStore wires the catalog repositories.
func NewCatalogStore(
	programs *ProgramRepository,
	courses *CourseRepository,
	faculty *FacultyRepository,
	rooms *RoomRepository,
	slots *TimeSlotRepository,
	constraints *ConstraintRepository,
) *CatalogStore {
	return &CatalogStore{
		programs:    programs,
		courses:     courses,
		faculty:     faculty,
		rooms:       rooms,
		slots:       slots,
		constraints: constraints,
	}
}

func (s *CatalogStore) ListPrograms(ctx context.Context) ([]models.Program, error) {
	return s.programs.List(ctx)
}

func (s *CatalogStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx)
}

func (s *CatalogStore) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	return s.faculty.List(ctx)
}

func (s *CatalogStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.rooms.List(ctx)
}

func (s *CatalogStore) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	return s.slots.List(ctx)
}

func (s *CatalogStore) ListConstraints(ctx context.Context) ([]models.Constraint, error) {
	return s.constraints.List(ctx)
}

func (s *CatalogStore) CreateConstraint(ctx context.Context, constraint *models.Constraint) error {
	return s.constraints.Create(ctx, constraint)
}
