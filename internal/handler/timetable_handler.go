package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Palash-oss/TIMETABLE/internal/models"
	"github.com/Palash-oss/TIMETABLE/internal/service"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
	"github.com/Palash-oss/TIMETABLE/pkg/response"
)

type timetableReader interface {
	ListActive(ctx context.Context, semester, academicYear string) ([]models.TimetableEntryDetail, error)
	ListForFaculty(ctx context.Context, facultyID, semester, academicYear string) ([]models.TimetableEntryDetail, error)
	ActiveGeneration(ctx context.Context, semester, academicYear string) (*models.TimetableGeneration, error)
	ExportCSV(ctx context.Context, semester, academicYear string) ([]byte, error)
	ExportPDF(ctx context.Context, semester, academicYear string) ([]byte, error)
}

// TimetableHandler exposes read and export endpoints for published
// timetables.
type TimetableHandler struct {
	service timetableReader
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

func timetableKey(c *gin.Context) (string, string, bool) {
	semester := c.Query("semester")
	academicYear := c.Query("academicYear")
	if semester == "" || academicYear == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester and academicYear required"))
		return "", "", false
	}
	return semester, academicYear, true
}

// List godoc
// @Summary Active timetable for a semester
// @Tags Timetable
// @Produce json
// @Param semester query string true "Semester"
// @Param academicYear query string true "Academic year"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	semester, academicYear, ok := timetableKey(c)
	if !ok {
		return
	}
	entries, err := h.service.ListActive(c.Request.Context(), semester, academicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"count": len(entries)})
}

// Generation godoc
// @Summary Active generation header for a semester
// @Tags Timetable
// @Produce json
// @Param semester query string true "Semester"
// @Param academicYear query string true "Academic year"
// @Success 200 {object} response.Envelope
// @Router /timetable/generation [get]
func (h *TimetableHandler) Generation(c *gin.Context) {
	semester, academicYear, ok := timetableKey(c)
	if !ok {
		return
	}
	gen, err := h.service.ActiveGeneration(c.Request.Context(), semester, academicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gen)
}

// FacultyTimetable godoc
// @Summary One faculty member's published sessions
// @Tags Timetable
// @Produce json
// @Param id path string true "Faculty ID"
// @Param semester query string true "Semester"
// @Param academicYear query string true "Academic year"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id}/timetable [get]
func (h *TimetableHandler) FacultyTimetable(c *gin.Context) {
	semester, academicYear, ok := timetableKey(c)
	if !ok {
		return
	}
	entries, err := h.service.ListForFaculty(c.Request.Context(), c.Param("id"), semester, academicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"count": len(entries)})
}

// ExportCSV godoc
// @Summary Export the active timetable as CSV
// @Tags Timetable
// @Produce text/csv
// @Param semester query string true "Semester"
// @Param academicYear query string true "Academic year"
// @Success 200 {file} file
// @Router /timetable/export/csv [get]
func (h *TimetableHandler) ExportCSV(c *gin.Context) {
	semester, academicYear, ok := timetableKey(c)
	if !ok {
		return
	}
	payload, err := h.service.ExportCSV(c.Request.Context(), semester, academicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("timetable-%s-%s.csv", semester, academicYear)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

// ExportPDF godoc
// @Summary Export the active timetable as a weekly grid PDF
// @Tags Timetable
// @Produce application/pdf
// @Param semester query string true "Semester"
// @Param academicYear query string true "Academic year"
// @Success 200 {file} file
// @Router /timetable/export/pdf [get]
func (h *TimetableHandler) ExportPDF(c *gin.Context) {
	semester, academicYear, ok := timetableKey(c)
	if !ok {
		return
	}
	payload, err := h.service.ExportPDF(c.Request.Context(), semester, academicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("timetable-%s-%s.pdf", semester, academicYear)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}
