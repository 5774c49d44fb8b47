package engine

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

func solveProblem(t *testing.T, loader *stubLoader, enforce bool) (*Model, Result) {
	t.Helper()
	p, err := Assemble(context.Background(), loader, testSpec(enforce), Options{}, zap.NewNop())
	require.NoError(t, err)
	m, err := Formulate(p)
	require.NoError(t, err)
	res, err := NewExactSolver(10*time.Second, zap.NewNop()).Solve(context.Background(), m)
	require.NoError(t, err)
	return m, res
}

func selectedCandidates(m *Model, res Result) []Candidate {
	var selected []Candidate
	for i, cand := range m.Problem.Candidates {
		if i < len(res.Assignment) && res.Assignment[i] {
			selected = append(selected, cand)
		}
	}
	return selected
}

func TestSolveSchedulesExactRequiredSessions(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 30, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 1, "10:00", "11:00", models.SlotTheory),
			testSlot("s3", 2, "09:00", "10:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	m, res := solveProblem(t, loader, true)
	require.Equal(t, StatusFeasible, res.Status)
	assert.Len(t, selectedCandidates(m, res), 2, "30 hours over a 15-week term is 2 weekly sessions")
}

func TestSolveReportsInfeasibleWhenSlotsRunOut(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 30, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots:   []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links:   []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	_, res := solveProblem(t, loader, true)
	assert.Equal(t, StatusInfeasible, res.Status)
	assert.Nil(t, res.Assignment)
}

func TestSolveSharedFacultyAcrossDistinctSlots(t *testing.T) {
	// One instructor, two courses, two non-overlapping slots: each course
	// takes its own slot.
	loader := &stubLoader{
		courses: []models.Course{
			testCourse("c1", "CS101", 15, 4, models.CategoryMajor),
			testCourse("c2", "CS102", 15, 4, models.CategoryMajor),
		},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 1, "11:00", "12:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1"), testLink("c2", "f1")},
	}

	m, res := solveProblem(t, loader, true)
	require.Equal(t, StatusFeasible, res.Status)

	selected := selectedCandidates(m, res)
	require.Len(t, selected, 2)
	assert.NotEqual(t, selected[0].Course.ID, selected[1].Course.ID)
	assert.NotEqual(t, selected[0].Slot.Start, selected[1].Slot.Start)
}

func TestSolveEnforcesFacultyExclusivity(t *testing.T) {
	// Two courses, one shared instructor, one moment: coverage and
	// exclusivity cannot both hold.
	loader := &stubLoader{
		courses: []models.Course{
			testCourse("c1", "CS101", 15, 4, models.CategoryMajor),
			testCourse("c2", "CS102", 15, 4, models.CategoryMajor),
		},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms: []models.Room{
			testRoom("r1", "A-101", 60, models.RoomClassroom),
			testRoom("r2", "A-102", 60, models.RoomClassroom),
		},
		slots: []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links: []models.CourseFacultyLink{testLink("c1", "f1"), testLink("c2", "f1")},
	}

	_, res := solveProblem(t, loader, true)
	assert.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveEnforcesRoomExclusivityAcrossDuplicateSlots(t *testing.T) {
	// Duplicate slot rows share wall-clock coordinates, so the one room
	// still cannot host both courses.
	loader := &stubLoader{
		courses: []models.Course{
			testCourse("c1", "CS101", 15, 4, models.CategoryMajor),
			testCourse("c2", "CS102", 15, 4, models.CategoryMajor),
		},
		faculty: []models.Faculty{
			testFaculty("f1", "Asha Rao", "CS"),
			testFaculty("f2", "Vikram Iyer", "CS"),
		},
		rooms: []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s1b", 1, "09:00", "10:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1"), testLink("c2", "f2")},
	}

	_, res := solveProblem(t, loader, true)
	assert.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveHonoursBlockedDays(t *testing.T) {
	member := testFaculty("f1", "Asha Rao", "CS")
	member.BlockedDays = []int64{1}
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 15, 4, models.CategoryMajor)},
		faculty: []models.Faculty{member},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 2, "09:00", "10:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	m, res := solveProblem(t, loader, true)
	require.Equal(t, StatusFeasible, res.Status)
	selected := selectedCandidates(m, res)
	require.Len(t, selected, 1)
	assert.Equal(t, 2, selected[0].Slot.DayOfWeek)
}

func TestSolveCapsSessionsPerCourseDay(t *testing.T) {
	// Three required sessions with slots on a single day exceed the
	// two-per-day cap.
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 45, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 1, "10:00", "11:00", models.SlotTheory),
			testSlot("s3", 1, "11:00", "12:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	_, res := solveProblem(t, loader, true)
	assert.Equal(t, StatusInfeasible, res.Status)
}

func TestFormulateWindowsCoverNonContiguousSlots(t *testing.T) {
	// The three-in-a-row cap slides over the day's slot sequence in start
	// order, whether or not the slots touch wall-clock.
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 30, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 1, "10:30", "11:30", models.SlotTheory),
			testSlot("s3", 1, "13:00", "14:00", models.SlotTheory),
			testSlot("s4", 1, "15:00", "16:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	p, err := Assemble(context.Background(), loader, testSpec(false), Options{}, zap.NewNop())
	require.NoError(t, err)
	m, err := Formulate(p)
	require.NoError(t, err)

	litByStart := map[string]int{}
	for i, cand := range m.Problem.Candidates {
		litByStart[cand.Slot.Start] = m.Lit(i)
	}
	windows := [][]int{
		{litByStart["09:00"], litByStart["10:30"], litByStart["13:00"]},
		{litByStart["10:30"], litByStart["13:00"], litByStart["15:00"]},
	}
	for _, window := range windows {
		assert.True(t, hasAtMostOver(m, window, maxConsecutiveWindow),
			"expected an at-most-%d constraint over %v", maxConsecutiveWindow, window)
	}
}

// hasAtMostOver reports whether the model carries an at-most-n constraint
// over exactly the given positive literals.
func hasAtMostOver(m *Model, lits []int, n int) bool {
	want := append([]int(nil), lits...)
	sort.Ints(want)
	for _, constr := range m.Constraints() {
		if len(constr.Lits) != len(want) || constr.AtLeast != len(want)-n {
			continue
		}
		got := make([]int, 0, len(constr.Lits))
		for _, lit := range constr.Lits {
			if lit >= 0 {
				got = nil
				break
			}
			got = append(got, -lit)
		}
		if got == nil {
			continue
		}
		sort.Ints(got)
		match := true
		for i := range want {
			if got[i] != want[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestSolveCapsFacultyWeeklyLoad(t *testing.T) {
	member := testFaculty("f1", "Asha Rao", "CS")
	member.MaxHoursPerWeek = 1
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 30, 4, models.CategoryMajor)},
		faculty: []models.Faculty{member},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 2, "09:00", "10:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	_, res := solveProblem(t, loader, true)
	assert.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveAppliesFacultyDayOffConstraint(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 15, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 2, "09:00", "10:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
		constraints: []models.Constraint{{
			ID:     "day-off",
			Kind:   models.ConstraintFacultyDayOff,
			Hard:   true,
			Params: jsonParams(`{"faculty_id":"f1","day_of_week":1}`),
		}},
	}

	m, res := solveProblem(t, loader, true)
	require.Equal(t, StatusFeasible, res.Status)
	selected := selectedCandidates(m, res)
	require.Len(t, selected, 1)
	assert.Equal(t, 2, selected[0].Slot.DayOfWeek)
}

func TestSolveSkipsConstraintsWhenNotEnforced(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 15, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots:   []models.TimeSlot{testSlot("s1", 1, "09:00", "10:00", models.SlotTheory)},
		links:   []models.CourseFacultyLink{testLink("c1", "f1")},
		constraints: []models.Constraint{{
			ID:     "day-off",
			Kind:   models.ConstraintFacultyDayOff,
			Hard:   true,
			Params: jsonParams(`{"faculty_id":"f1","day_of_week":1}`),
		}},
	}

	_, res := solveProblem(t, loader, false)
	assert.Equal(t, StatusFeasible, res.Status)
}

func TestSolveAppliesCourseFixedDayConstraint(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 15, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 3, "09:00", "10:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
		constraints: []models.Constraint{{
			ID:     "fixed",
			Kind:   models.ConstraintCourseFixedDay,
			Hard:   true,
			Params: jsonParams(`{"course_id":"c1","day_of_week":3}`),
		}},
	}

	m, res := solveProblem(t, loader, true)
	require.Equal(t, StatusFeasible, res.Status)
	selected := selectedCandidates(m, res)
	require.Len(t, selected, 1)
	assert.Equal(t, 3, selected[0].Slot.DayOfWeek)
}

func TestExtractTagsEntriesWithGeneration(t *testing.T) {
	loader := &stubLoader{
		courses: []models.Course{testCourse("c1", "CS101", 30, 4, models.CategoryMajor)},
		faculty: []models.Faculty{testFaculty("f1", "Asha Rao", "CS")},
		rooms:   []models.Room{testRoom("r1", "A-101", 60, models.RoomClassroom)},
		slots: []models.TimeSlot{
			testSlot("s1", 1, "09:00", "10:00", models.SlotTheory),
			testSlot("s2", 2, "09:00", "10:00", models.SlotTheory),
		},
		links: []models.CourseFacultyLink{testLink("c1", "f1")},
	}

	m, res := solveProblem(t, loader, true)
	require.Equal(t, StatusFeasible, res.Status)

	now := time.Now()
	entries := Extract(m, res.Assignment, "gen-1", now)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "gen-1", entry.GenerationID)
		assert.Equal(t, "c1", entry.CourseID)
		assert.Equal(t, "3", entry.Semester)
		assert.Equal(t, "2026-27", entry.AcademicYear)
		assert.Equal(t, now, entry.CreatedAt)
	}
	assert.NotEqual(t, entries[0].TimeSlotID, entries[1].TimeSlotID)
}
