package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/internal/models"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
)

// CatalogStore supplies the scheduling reference data.
type CatalogStore interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListFaculty(ctx context.Context) ([]models.Faculty, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error)
	ListConstraints(ctx context.Context) ([]models.Constraint, error)
	CreateConstraint(ctx context.Context, constraint *models.Constraint) error
}

// knownConstraintKinds mirrors the engine's closed registry for write-time
// validation.
var knownConstraintKinds = map[models.ConstraintKind]bool{
	models.ConstraintFacultyDayOff:   true,
	models.ConstraintRoomUnavailable: true,
	models.ConstraintCourseFixedDay:  true,
}

// CatalogService exposes the reference data the engine schedules over.
type CatalogService struct {
	store    CatalogStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(store CatalogStore, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{store: store, validate: validate, logger: logger}
}

func (s *CatalogService) ListPrograms(ctx context.Context) ([]models.Program, error) {
	programs, err := s.store.ListPrograms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list programs")
	}
	return programs, nil
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

func (s *CatalogService) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	faculty, err := s.store.ListFaculty(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty")
	}
	return faculty, nil
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

func (s *CatalogService) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.store.ListTimeSlots(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	return slots, nil
}

func (s *CatalogService) ListConstraints(ctx context.Context) ([]models.Constraint, error) {
	constraints, err := s.store.ListConstraints(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list constraints")
	}
	return constraints, nil
}

// CreateConstraint stores a new scheduling rule after checking its kind
// against the supported set.
func (s *CatalogService) CreateConstraint(ctx context.Context, constraint *models.Constraint) error {
	if !knownConstraintKinds[constraint.Kind] {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported constraint kind %q", constraint.Kind))
	}
	if len(constraint.Params) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "constraint params are required")
	}
	if err := s.store.CreateConstraint(ctx, constraint); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create constraint")
	}
	return nil
}
