package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

func TestComplianceReportCompliantSemester(t *testing.T) {
	report := BuildComplianceReport([]models.Course{
		testCourse("c1", "CS101", 45, 8, models.CategoryMajor),
		testCourse("c2", "CS102", 45, 4, models.CategoryMajor),
		testCourse("c3", "MD101", 30, 3, models.CategoryMDC),
		testCourse("c4", "SK101", 30, 3, models.CategorySEC),
		testCourse("c5", "EN101", 30, 2, models.CategoryAEC),
	})

	assert.Equal(t, 20, report.TotalCredits)
	assert.Equal(t, 5, report.CourseCount)
	assert.True(t, report.HasMultidisciplinary)
	assert.True(t, report.HasSkillComponent)
	assert.True(t, report.Compliant)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, 12, report.CreditDistribution[models.CategoryMajor])
}

func TestComplianceReportVerdictIsBandOnly(t *testing.T) {
	// Missing multidisciplinary and skill components downgrade the flags
	// and add recommendations, never the verdict.
	report := BuildComplianceReport([]models.Course{
		testCourse("c1", "CS101", 45, 10, models.CategoryMajor),
		testCourse("c2", "CS102", 45, 10, models.CategoryMajor),
	})

	assert.Equal(t, 20, report.TotalCredits)
	assert.True(t, report.Compliant)
	assert.False(t, report.HasMultidisciplinary)
	assert.False(t, report.HasSkillComponent)
	assert.Len(t, report.Recommendations, 2)
}

func TestComplianceReportUnderCreditBand(t *testing.T) {
	report := BuildComplianceReport([]models.Course{
		testCourse("c1", "CS101", 45, 4, models.CategoryMajor),
	})

	assert.Equal(t, 4, report.TotalCredits)
	assert.False(t, report.Compliant)
	assert.Len(t, report.Recommendations, 3)
}

func TestComplianceReportOverCreditBand(t *testing.T) {
	report := BuildComplianceReport([]models.Course{
		testCourse("c1", "CS101", 45, 12, models.CategoryMajor),
		testCourse("c2", "MD101", 30, 6, models.CategoryMDC),
		testCourse("c3", "SK101", 30, 6, models.CategorySEC),
	})

	assert.Equal(t, 24, report.TotalCredits)
	assert.False(t, report.Compliant)
	assert.Contains(t, report.Recommendations[0], "above")
}

func TestComplianceReportSkillFlagFromTaggedCourse(t *testing.T) {
	skillTagged := testCourse("c1", "CS150", 45, 20, models.CategoryMajor)
	skillTagged.SkillBased = true
	mdc := testCourse("c2", "MD101", 30, 2, models.CategoryMDC)

	report := BuildComplianceReport([]models.Course{skillTagged, mdc})
	assert.True(t, report.HasSkillComponent)
	assert.True(t, report.Compliant)
}

func TestComplianceReportEmptySchedule(t *testing.T) {
	report := BuildComplianceReport(nil)
	assert.Zero(t, report.TotalCredits)
	assert.False(t, report.Compliant)
	assert.NotEmpty(t, report.Recommendations)
}
