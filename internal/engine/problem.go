package engine

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/internal/models"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
)

// Default tuning values, overridable through Options.
const (
	// DefaultWeeksInTerm converts a course's total hours into weekly
	// sessions: required = total_hours / weeks.
	DefaultWeeksInTerm = 15
	// DefaultFallbackEnrollment is assumed for a course with no enrollment
	// records when checking room capacity.
	DefaultFallbackEnrollment = 30
)

// Spec identifies one generation request.
type Spec struct {
	Semester           string
	AcademicYear       string
	ProgramIDs         []string
	EnforceConstraints bool
}

// Key returns the generation key identifying the schedule's scope.
func (s Spec) Key() string {
	return s.Semester + "/" + s.AcademicYear
}

// Options tunes problem assembly.
type Options struct {
	WeeksInTerm        int
	FallbackEnrollment int
}

func (o Options) withDefaults() Options {
	if o.WeeksInTerm <= 0 {
		o.WeeksInTerm = DefaultWeeksInTerm
	}
	if o.FallbackEnrollment <= 0 {
		o.FallbackEnrollment = DefaultFallbackEnrollment
	}
	return o
}

// Loader is the storage port supplying scheduling inputs. Implementations
// must scope course-faculty links to the requested semester and year.
type Loader interface {
	CoursesByPrograms(ctx context.Context, programIDs []string) ([]models.Course, error)
	ListFaculty(ctx context.Context) ([]models.Faculty, error)
	AvailableRooms(ctx context.Context) ([]models.Room, error)
	ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error)
	ListConstraints(ctx context.Context) ([]models.Constraint, error)
	CourseFacultyLinks(ctx context.Context, semester, academicYear string) ([]models.CourseFacultyLink, error)
	EnrollmentCounts(ctx context.Context, courseIDs []string) (map[string]int, error)
}

// Candidate is one (course, faculty, room, slot) tuple that survived
// prefiltering; exactly one boolean decision variable exists per candidate.
type Candidate struct {
	Course  *models.Course
	Faculty *models.Faculty
	Room    *models.Room
	Slot    *models.TimeSlot
}

// Problem is an immutable snapshot of one generation request's inputs. It is
// assembled once per request and never mutated during a solve.
type Problem struct {
	Spec        Spec
	Options     Options
	Courses     []models.Course
	Faculty     []models.Faculty
	Rooms       []models.Room
	Slots       []models.TimeSlot
	Constraints []models.Constraint

	// Links maps course id to the ids of faculty assigned to teach it.
	Links map[string][]string
	// RequiredSessions maps course id to its weekly session count. Courses
	// with zero total hours are absent: they are never scheduled.
	RequiredSessions map[string]int
	// Candidates are the surviving decision tuples.
	Candidates []Candidate
}

// Assemble gathers and normalizes all scheduling inputs into one problem
// instance, runs the feasibility prefilter and expands candidates over the
// linked faculty. A collaborator read error is fatal; a course without any
// faculty link is excluded silently.
func Assemble(ctx context.Context, loader Loader, spec Spec, opts Options, logger *zap.Logger) (*Problem, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()

	courses, err := loader.CoursesByPrograms(ctx, spec.ProgramIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "failed to load courses")
	}
	faculty, err := loader.ListFaculty(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "failed to load faculty")
	}
	rooms, err := loader.AvailableRooms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "failed to load rooms")
	}
	slots, err := loader.ListTimeSlots(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "failed to load time slots")
	}
	constraints, err := loader.ListConstraints(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "failed to load constraints")
	}
	links, err := loader.CourseFacultyLinks(ctx, spec.Semester, spec.AcademicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "failed to load course-faculty assignments")
	}

	if err := validateFacultyAvailability(faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "invalid faculty availability")
	}
	if spec.EnforceConstraints {
		if err := validateConstraintKinds(constraints); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "invalid constraint record")
		}
	}

	courseIDs := lo.Map(courses, func(c models.Course, _ int) string { return c.ID })
	enrollment, err := loader.EnrollmentCounts(ctx, courseIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "failed to load enrollment counts")
	}

	p := &Problem{
		Spec:             spec,
		Options:          opts,
		Courses:          courses,
		Faculty:          faculty,
		Rooms:            rooms,
		Slots:            slots,
		Constraints:      constraints,
		Links:            map[string][]string{},
		RequiredSessions: map[string]int{},
	}

	for _, link := range links {
		p.Links[link.CourseID] = append(p.Links[link.CourseID], link.FacultyID)
	}

	facultyByID := lo.SliceToMap(faculty, func(f models.Faculty) (string, *models.Faculty) {
		member := f
		return f.ID, &member
	})

	for ci := range courses {
		course := &courses[ci]
		total := course.TotalHours()
		if total == 0 {
			continue
		}
		p.RequiredSessions[course.ID] = total / opts.WeeksInTerm

		linked := p.Links[course.ID]
		if len(linked) == 0 {
			logger.Debug("course has no faculty assignment, excluding from candidate set",
				zap.String("course", course.Code))
			continue
		}

		// Room/slot compatibility is filtered before faculty expansion to
		// bound the tuple space.
		for si := range p.Slots {
			slot := &p.Slots[si]
			for ri := range p.Rooms {
				room := &p.Rooms[ri]
				if !roomSuitable(course, room, slot, enrollment, opts.FallbackEnrollment) {
					continue
				}
				for _, facultyID := range linked {
					member, ok := facultyByID[facultyID]
					if !ok {
						continue
					}
					p.Candidates = append(p.Candidates, Candidate{
						Course:  course,
						Faculty: member,
						Room:    room,
						Slot:    slot,
					})
				}
			}
		}
	}

	logger.Info("problem assembled",
		zap.String("key", spec.Key()),
		zap.Int("courses", len(courses)),
		zap.Int("faculty", len(faculty)),
		zap.Int("rooms", len(rooms)),
		zap.Int("slots", len(slots)),
		zap.Int("candidates", len(p.Candidates)),
	)
	return p, nil
}

// roomSuitable accepts a (course, room, slot) triple when the room holds the
// course's expected enrollment and its type matches the slot type: practical
// slots require a lab, theory slots must not use one.
func roomSuitable(course *models.Course, room *models.Room, slot *models.TimeSlot, enrollment map[string]int, fallback int) bool {
	expected := enrollment[course.ID]
	if expected <= 0 {
		expected = fallback
	}
	if room.Capacity < expected {
		return false
	}
	switch slot.Type {
	case models.SlotPractical:
		return room.Type == models.RoomLab
	case models.SlotTheory:
		return room.Type != models.RoomLab
	default:
		return true
	}
}

func validateFacultyAvailability(faculty []models.Faculty) error {
	for _, member := range faculty {
		for _, day := range member.BlockedDays {
			if day < 1 || day > 7 {
				return fmt.Errorf("faculty %s: blocked day %d out of range 1-7", member.EmployeeID, day)
			}
		}
	}
	return nil
}
