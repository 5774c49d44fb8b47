package engine

import (
	"fmt"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// Credit band a semester's scheduled courses must land in to be compliant.
const (
	MinSemesterCredits = 18
	MaxSemesterCredits = 22
)

// ComplianceReport summarises how the scheduled course set measures up
// against the curriculum framework: total credits within the semester band,
// category distribution, and presence of multidisciplinary and skill
// components.
type ComplianceReport struct {
	TotalCredits         int                           `json:"total_credits"`
	CreditDistribution   map[models.CourseCategory]int `json:"credit_distribution"`
	CourseCount          int                           `json:"course_count"`
	HasMultidisciplinary bool                          `json:"has_multidisciplinary"`
	HasSkillComponent    bool                          `json:"has_skill_component"`
	Compliant            bool                          `json:"compliant"`
	Recommendations      []string                      `json:"recommendations,omitempty"`
}

// BuildComplianceReport evaluates the distinct scheduled courses. The report
// is advisory: it never blocks publication.
func BuildComplianceReport(courses []models.Course) ComplianceReport {
	report := ComplianceReport{
		CreditDistribution: map[models.CourseCategory]int{},
		CourseCount:        len(courses),
	}
	for _, course := range courses {
		report.TotalCredits += course.Credits
		report.CreditDistribution[course.Category] += course.Credits
		if course.Category == models.CategoryMDC {
			report.HasMultidisciplinary = true
		}
		if course.SkillBased || course.Category == models.CategorySEC || course.Category == models.CategoryVAC {
			report.HasSkillComponent = true
		}
	}

	// The verdict is the credit band alone; the multidisciplinary and skill
	// flags are advisory and only feed the recommendations.
	report.Compliant = report.TotalCredits >= MinSemesterCredits && report.TotalCredits <= MaxSemesterCredits

	if report.TotalCredits < MinSemesterCredits {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("total credits %d below the %d-%d semester band; add courses",
				report.TotalCredits, MinSemesterCredits, MaxSemesterCredits))
	}
	if report.TotalCredits > MaxSemesterCredits {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("total credits %d above the %d-%d semester band; reduce load",
				report.TotalCredits, MinSemesterCredits, MaxSemesterCredits))
	}
	if !report.HasMultidisciplinary {
		report.Recommendations = append(report.Recommendations,
			"no multidisciplinary (MDC) course scheduled; include one to satisfy the framework")
	}
	if !report.HasSkillComponent {
		report.Recommendations = append(report.Recommendations,
			"no skill-based component scheduled; include an SEC, VAC or skill-tagged course")
	}
	return report
}
