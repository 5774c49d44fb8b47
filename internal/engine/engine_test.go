package engine

import (
	"context"

	"github.com/jmoiron/sqlx/types"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// stubLoader serves canned scheduling inputs and optional injected failures.
type stubLoader struct {
	courses     []models.Course
	faculty     []models.Faculty
	rooms       []models.Room
	slots       []models.TimeSlot
	constraints []models.Constraint
	links       []models.CourseFacultyLink
	enrollment  map[string]int

	coursesErr error
}

func (s *stubLoader) CoursesByPrograms(context.Context, []string) ([]models.Course, error) {
	return s.courses, s.coursesErr
}

func (s *stubLoader) ListFaculty(context.Context) ([]models.Faculty, error) {
	return s.faculty, nil
}

func (s *stubLoader) AvailableRooms(context.Context) ([]models.Room, error) {
	return s.rooms, nil
}

func (s *stubLoader) ListTimeSlots(context.Context) ([]models.TimeSlot, error) {
	return s.slots, nil
}

func (s *stubLoader) ListConstraints(context.Context) ([]models.Constraint, error) {
	return s.constraints, nil
}

func (s *stubLoader) CourseFacultyLinks(context.Context, string, string) ([]models.CourseFacultyLink, error) {
	return s.links, nil
}

func (s *stubLoader) EnrollmentCounts(context.Context, []string) (map[string]int, error) {
	return s.enrollment, nil
}

func testCourse(id, code string, hours, credits int, category models.CourseCategory) models.Course {
	return models.Course{
		ID:          id,
		Code:        code,
		Name:        code,
		Semester:    1,
		Credits:     credits,
		TheoryHours: hours,
		Category:    category,
	}
}

func testFaculty(id, name, department string) models.Faculty {
	return models.Faculty{ID: id, EmployeeID: id, Name: name, Department: department, MaxHoursPerWeek: 40}
}

func testRoom(id, number string, capacity int, roomType models.RoomType) models.Room {
	return models.Room{ID: id, Number: number, Capacity: capacity, Type: roomType, Available: true}
}

func testSlot(id string, day int, start, end string, slotType models.SlotType) models.TimeSlot {
	return models.TimeSlot{ID: id, DayOfWeek: day, Start: start, End: end, Type: slotType}
}

func testLink(courseID, facultyID string) models.CourseFacultyLink {
	return models.CourseFacultyLink{CourseID: courseID, FacultyID: facultyID, Semester: "3", AcademicYear: "2026-27"}
}

func testSpec(enforce bool) Spec {
	return Spec{Semester: "3", AcademicYear: "2026-27", ProgramIDs: []string{"prog-1"}, EnforceConstraints: enforce}
}

func jsonParams(raw string) types.JSONText {
	return types.JSONText(raw)
}
