package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/internal/models"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
)

func TestAssembleComputesRequiredSessions(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{
			testCourse("c1", "CS101", 45, 4, models.CategoryMajor),
			testCourse("c2", "CS102", 30, 3, models.CategoryMajor),
		},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots:   []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links:   []models.CourseFacultyLink{testLink("c1", "f1"), testLink("c2", "f1")},
	}

	p, err := Assemble(context.Background(), loader, testSpec(true), Options{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, p.RequiredSessions["c1"])
	assert.Equal(t, 2, p.RequiredSessions["c2"])
}

func TestAssembleExcludesZeroHourCourses(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS199", 0, 2, models.CategoryProject)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots:   []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links:   []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	p, err := Assemble(context.Background(), loader, testSpec(true), Options{}, zap.NewNop())
	require.NoError(t, err)
	assert.NotContains(t, p.RequiredSessions, "c1")
	assert.Empty(t, p.Candidates)
}

func TestAssembleExcludesUnlinkedCourses(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 45, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots:   []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
	}

	p, err := Assemble(context.Background(), loader, testSpec(true), Options{}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, p.Candidates)
	// The course still counts toward required sessions; only its candidates
	// are absent.
	assert.Equal(t, 3, p.RequiredSessions["c1"])
}

func TestAssemblePrefiltersRoomTypeAndCapacity(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 45, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms: []models.Room{
			testRoom("lab", "L-1", 60, models.RoomLab),
			testRoom("small", "A-1", 10, models.RoomClassroom),
			testRoom("hall", "A-2", 60, models.RoomClassroom),
		},
		slots: []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	p, err := Assemble(context.Background(), loader, testSpec(true), Options{}, zap.NewNop())
	require.NoError(t, err)
	// Theory slot rejects the lab; default enrollment of 30 rejects the
	// 10-seat room.
	require.Len(t, p.Candidates, 1)
	assert.Equal(t, "hall", p.Candidates[0].Room.ID)
}

func TestAssembleUsesEnrollmentCounts(t *testing.T) {
	loader := &stubLoader{
		courses:    []models.Course{testCourse("c1", "CS101", 45, 4, models.CategoryMajor)},
		faculty:    []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:      []models.Room{testRoom("small", "A-1", 12, models.RoomClassroom)},
		slots:      []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links:      []models.CourseFacultyLink{testLink("c1", "f1")},
		enrollment: map[string]int{"c1": 10},
	}

	p, err := Assemble(context.Background(), loader, testSpec(true), Options{}, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, p.Candidates, 1)
}

func TestAssembleRejectsUnknownConstraintKind(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 45, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots:   []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links:   []models.CourseFacultyLink{testLink("c1", "f1")},
		constraints: []models.Constraint{{
			ID:     "x1",
			Kind:   models.ConstraintKind("LUNCH_BREAK"),
			Hard:   true,
			Params: jsonParams(`{}`),
		}},
	}

	_, err := Assemble(context.Background(), loader, testSpec(true), Options{}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDataLoad))
	assert.Contains(t, err.Error(), "LUNCH_BREAK")
}

func TestAssembleRejectsOutOfRangeBlockedDay(t *testing.T) {
	member := testFaculty("f1", "Asha Rao", "CS")
	member.BlockedDays = []int64{0}
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 45, 4, models.CategoryMajor)},
		faculty: []models.Faculty{member},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots:   []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links:   []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	_, err := Assemble(context.Background(), loader, testSpec(true), Options{}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDataLoad))
}

func TestAssembleWrapsLoaderFailure(t *testing.T) {
	loader := &stubLoader{coursesErr: errors.New("connection refused")}

	_, err := Assemble(context.Background(), loader, testSpec(true), Options{}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDataLoad))
}
