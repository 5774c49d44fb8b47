package engine

import (
	"encoding/json"
	"fmt"

	"github.com/crillab/gophersat/solver"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// constraintEmitter translates one stored constraint into pseudo-boolean
// clauses over the model's candidate literals.
type constraintEmitter func(m *Model, c models.Constraint) ([]solver.PBConstr, error)

// constraintEmitters is the closed registry of supported constraint kinds.
// A record whose kind is absent here is rejected during assembly rather than
// silently skipped.
var constraintEmitters = map[models.ConstraintKind]constraintEmitter{
	models.ConstraintFacultyDayOff:   emitFacultyDayOff,
	models.ConstraintRoomUnavailable: emitRoomUnavailable,
	models.ConstraintCourseFixedDay:  emitCourseFixedDay,
}

func validateConstraintKinds(constraints []models.Constraint) error {
	for _, c := range constraints {
		if _, ok := constraintEmitters[c.Kind]; !ok {
			return fmt.Errorf("constraint %s: unknown kind %q", c.ID, c.Kind)
		}
	}
	return nil
}

type facultyDayOffParams struct {
	FacultyID string `json:"faculty_id"`
	DayOfWeek int    `json:"day_of_week"`
}

func emitFacultyDayOff(m *Model, c models.Constraint) ([]solver.PBConstr, error) {
	var params facultyDayOffParams
	if err := json.Unmarshal(c.Params, &params); err != nil {
		return nil, fmt.Errorf("decode %s params: %w", c.Kind, err)
	}
	var constrs []solver.PBConstr
	for i, cand := range m.Problem.Candidates {
		if cand.Faculty.ID == params.FacultyID && cand.Slot.DayOfWeek == params.DayOfWeek {
			constrs = append(constrs, forbid(m.Lit(i)))
		}
	}
	return constrs, nil
}

type roomUnavailableParams struct {
	RoomID    string `json:"room_id"`
	DayOfWeek int    `json:"day_of_week"`
}

func emitRoomUnavailable(m *Model, c models.Constraint) ([]solver.PBConstr, error) {
	var params roomUnavailableParams
	if err := json.Unmarshal(c.Params, &params); err != nil {
		return nil, fmt.Errorf("decode %s params: %w", c.Kind, err)
	}
	var constrs []solver.PBConstr
	for i, cand := range m.Problem.Candidates {
		if cand.Room.ID == params.RoomID && cand.Slot.DayOfWeek == params.DayOfWeek {
			constrs = append(constrs, forbid(m.Lit(i)))
		}
	}
	return constrs, nil
}

type courseFixedDayParams struct {
	CourseID  string `json:"course_id"`
	DayOfWeek int    `json:"day_of_week"`
}

func emitCourseFixedDay(m *Model, c models.Constraint) ([]solver.PBConstr, error) {
	var params courseFixedDayParams
	if err := json.Unmarshal(c.Params, &params); err != nil {
		return nil, fmt.Errorf("decode %s params: %w", c.Kind, err)
	}
	var constrs []solver.PBConstr
	for i, cand := range m.Problem.Candidates {
		if cand.Course.ID == params.CourseID && cand.Slot.DayOfWeek != params.DayOfWeek {
			constrs = append(constrs, forbid(m.Lit(i)))
		}
	}
	return constrs, nil
}

// forbid is a unit clause forcing the candidate's literal false.
func forbid(lit int) solver.PBConstr {
	return solver.PropClause(-lit)
}
