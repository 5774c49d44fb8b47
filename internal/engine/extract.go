package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// Extract materializes the selected candidates as persistable entries, all
// tagged with the generation they belong to.
func Extract(m *Model, assignment []bool, generationID string, now time.Time) []models.TimetableEntry {
	var entries []models.TimetableEntry
	for i, cand := range m.Problem.Candidates {
		if i >= len(assignment) || !assignment[i] {
			continue
		}
		entries = append(entries, models.TimetableEntry{
			ID:           uuid.NewString(),
			GenerationID: generationID,
			CourseID:     cand.Course.ID,
			FacultyID:    cand.Faculty.ID,
			RoomID:       cand.Room.ID,
			TimeSlotID:   cand.Slot.ID,
			Semester:     m.Problem.Spec.Semester,
			AcademicYear: m.Problem.Spec.AcademicYear,
			CreatedAt:    now,
		})
	}
	return entries
}

// ScheduledCourses returns the distinct courses that received at least one
// session in the assignment, in candidate order.
func ScheduledCourses(m *Model, assignment []bool) []models.Course {
	seen := map[string]bool{}
	var courses []models.Course
	for i, cand := range m.Problem.Candidates {
		if i >= len(assignment) || !assignment[i] || seen[cand.Course.ID] {
			continue
		}
		seen[cand.Course.ID] = true
		courses = append(courses, *cand.Course)
	}
	return courses
}
