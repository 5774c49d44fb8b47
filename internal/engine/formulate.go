package engine

import (
	"fmt"
	"sort"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// Per-course daily limits mirrored by both the exact and draft solvers.
const (
	// maxSessionsPerCourseDay caps how many sessions of one course may land
	// on the same day.
	maxSessionsPerCourseDay = 2
	// maxConsecutiveWindow forbids three sessions of one course in a row:
	// every window of three successive slot moments holds at most two.
	maxConsecutiveWindow = 2
)

// Model is the pseudo-boolean encoding of a problem. Candidate i maps to
// literal i+1; the constraint slice is rebuilt from scratch per request.
type Model struct {
	Problem *Problem
	constrs []solver.PBConstr
}

// Lit returns the positive literal for candidate index i.
func (m *Model) Lit(i int) int { return i + 1 }

// Constraints returns the encoded constraint set.
func (m *Model) Constraints() []solver.PBConstr { return m.constrs }

// Formulate encodes the problem's hard constraints over the candidate
// variables. Soft constraint records are ignored here; only the exact solve
// consumes the result.
func Formulate(p *Problem) (*Model, error) {
	m := &Model{Problem: p}

	m.encodeCoverage()
	m.encodeExclusivity()
	m.encodeAvailability()
	m.encodeWeeklyLoad()
	m.encodeDailyCaps()
	if err := m.encodeCustom(); err != nil {
		return nil, err
	}
	return m, nil
}

// encodeCoverage pins each course's selected session count to exactly its
// required weekly sessions. A course whose candidates were all filtered away
// still gets its equality, which renders the formula unsatisfiable.
func (m *Model) encodeCoverage() {
	byCourse := map[string][]int{}
	for i, cand := range m.Problem.Candidates {
		byCourse[cand.Course.ID] = append(byCourse[cand.Course.ID], m.Lit(i))
	}
	courseIDs := lo.Keys(m.Problem.RequiredSessions)
	sort.Strings(courseIDs)
	for _, courseID := range courseIDs {
		required := m.Problem.RequiredSessions[courseID]
		lits := byCourse[courseID]
		// Eq consumes its arguments, so it gets private copies.
		weights := ones(len(lits))
		m.constrs = append(m.constrs, solver.Eq(append([]int(nil), lits...), weights, required)...)
	}
}

// encodeExclusivity keeps every faculty member and every room in at most one
// session per moment. Slots are grouped by wall-clock coordinates, not by id,
// so duplicate slot rows still clash.
func (m *Model) encodeExclusivity() {
	byFaculty := map[string][]int{}
	byRoom := map[string][]int{}
	for i, cand := range m.Problem.Candidates {
		moment := momentKey(cand.Slot)
		byFaculty[cand.Faculty.ID+"|"+moment] = append(byFaculty[cand.Faculty.ID+"|"+moment], m.Lit(i))
		byRoom[cand.Room.ID+"|"+moment] = append(byRoom[cand.Room.ID+"|"+moment], m.Lit(i))
	}
	m.appendAtMostGroups(byFaculty, 1)
	m.appendAtMostGroups(byRoom, 1)
}

// encodeAvailability forces candidates that fall on a faculty member's
// blocked day to false.
func (m *Model) encodeAvailability() {
	for i, cand := range m.Problem.Candidates {
		if cand.Faculty.IsBlockedOn(cand.Slot.DayOfWeek) {
			m.constrs = append(m.constrs, forbid(m.Lit(i)))
		}
	}
}

// encodeWeeklyLoad caps each faculty member's weekly session count at their
// declared maximum hours. Slots are hour-long periods, so sessions stand in
// for hours. A zero maximum means unconstrained.
func (m *Model) encodeWeeklyLoad() {
	byFaculty := map[string][]int{}
	caps := map[string]int{}
	for i, cand := range m.Problem.Candidates {
		if cand.Faculty.MaxHoursPerWeek <= 0 {
			continue
		}
		byFaculty[cand.Faculty.ID] = append(byFaculty[cand.Faculty.ID], m.Lit(i))
		caps[cand.Faculty.ID] = cand.Faculty.MaxHoursPerWeek
	}
	keys := lo.Keys(byFaculty)
	sort.Strings(keys)
	for _, facultyID := range keys {
		lits := byFaculty[facultyID]
		if len(lits) > caps[facultyID] {
			m.constrs = append(m.constrs, solver.AtMost(append([]int(nil), lits...), caps[facultyID]))
		}
	}
}

// encodeDailyCaps bounds each course's sessions per day and forbids three
// consecutive sessions of the same course.
func (m *Model) encodeDailyCaps() {
	type courseDay struct {
		courseID string
		day      int
	}
	groups := map[courseDay][]int{}
	for i, cand := range m.Problem.Candidates {
		key := courseDay{cand.Course.ID, cand.Slot.DayOfWeek}
		groups[key] = append(groups[key], i)
	}
	keys := lo.Keys(groups)
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].courseID != keys[b].courseID {
			return keys[a].courseID < keys[b].courseID
		}
		return keys[a].day < keys[b].day
	})
	for _, key := range keys {
		indexes := groups[key]
		if len(indexes) > maxSessionsPerCourseDay {
			lits := make([]int, len(indexes))
			for j, idx := range indexes {
				lits[j] = m.Lit(idx)
			}
			m.constrs = append(m.constrs, solver.AtMost(lits, maxSessionsPerCourseDay))
		}

		// Windows slide over the day's distinct slot moments in start-time
		// order, whether or not the slots touch; each window's constraint
		// covers every candidate of the course in those three slots.
		type moment struct {
			start string
			lits  []int
		}
		byStart := map[string]*moment{}
		for _, idx := range indexes {
			slot := m.Problem.Candidates[idx].Slot
			mom, ok := byStart[slot.Start]
			if !ok {
				mom = &moment{start: slot.Start}
				byStart[slot.Start] = mom
			}
			mom.lits = append(mom.lits, m.Lit(idx))
		}
		moments := lo.Values(byStart)
		sort.Slice(moments, func(a, b int) bool { return moments[a].start < moments[b].start })
		for w := 0; w+3 <= len(moments); w++ {
			window := moments[w : w+3]
			var lits []int
			for _, mom := range window {
				lits = append(lits, mom.lits...)
			}
			if len(lits) > maxConsecutiveWindow {
				m.constrs = append(m.constrs, solver.AtMost(lits, maxConsecutiveWindow))
			}
		}
	}
}

// encodeCustom dispatches enabled hard constraint records through the kind
// registry. Soft records are skipped; unknown kinds were rejected during
// assembly but are re-checked so a model built from an unvalidated problem
// still fails loudly.
func (m *Model) encodeCustom() error {
	if !m.Problem.Spec.EnforceConstraints {
		return nil
	}
	for _, c := range m.Problem.Constraints {
		if !c.Hard {
			continue
		}
		emit, ok := constraintEmitters[c.Kind]
		if !ok {
			return fmt.Errorf("constraint %s: unknown kind %q", c.ID, c.Kind)
		}
		constrs, err := emit(m, c)
		if err != nil {
			return fmt.Errorf("constraint %s: %w", c.ID, err)
		}
		m.constrs = append(m.constrs, constrs...)
	}
	return nil
}

func (m *Model) appendAtMostGroups(groups map[string][]int, n int) {
	keys := lo.Keys(groups)
	sort.Strings(keys)
	for _, key := range keys {
		lits := groups[key]
		if len(lits) > n {
			m.constrs = append(m.constrs, solver.AtMost(append([]int(nil), lits...), n))
		}
	}
}

// momentKey identifies a slot by its wall-clock coordinates.
func momentKey(slot *models.TimeSlot) string {
	return fmt.Sprintf("%d|%s|%s", slot.DayOfWeek, slot.Start, slot.End)
}

func ones(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
