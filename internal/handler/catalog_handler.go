package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Palash-oss/TIMETABLE/internal/models"
	"github.com/Palash-oss/TIMETABLE/internal/service"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
	"github.com/Palash-oss/TIMETABLE/pkg/response"
)

// CatalogHandler exposes the scheduling reference data.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Programs godoc
// @Summary List academic programs
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /programs [get]
func (h *CatalogHandler) Programs(c *gin.Context) {
	programs, err := h.service.ListPrograms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programs)
}

// Courses godoc
// @Summary List courses
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Faculty godoc
// @Summary List faculty members
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *CatalogHandler) Faculty(c *gin.Context) {
	faculty, err := h.service.ListFaculty(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty)
}

// Rooms godoc
// @Summary List rooms
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *CatalogHandler) Rooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms)
}

// TimeSlots godoc
// @Summary List the weekly slot calendar
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /time-slots [get]
func (h *CatalogHandler) TimeSlots(c *gin.Context) {
	slots, err := h.service.ListTimeSlots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots)
}

// Constraints godoc
// @Summary List scheduling constraints
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /constraints [get]
func (h *CatalogHandler) Constraints(c *gin.Context) {
	constraints, err := h.service.ListConstraints(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, constraints)
}

// CreateConstraint godoc
// @Summary Create a scheduling constraint
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body models.Constraint true "Constraint payload"
// @Success 201 {object} response.Envelope
// @Router /constraints [post]
func (h *CatalogHandler) CreateConstraint(c *gin.Context) {
	var constraint models.Constraint
	if err := c.ShouldBindJSON(&constraint); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid constraint payload"))
		return
	}
	if err := h.service.CreateConstraint(c.Request.Context(), &constraint); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, constraint)
}
