package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Palash-oss/TIMETABLE/internal/dto"
	"github.com/Palash-oss/TIMETABLE/internal/service"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
	"github.com/Palash-oss/TIMETABLE/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Draft(ctx context.Context, req dto.DraftTimetableRequest) (*dto.DraftTimetableResponse, error)
}

// GenerationHandler exposes the timetable generation endpoints.
type GenerationHandler struct {
	service timetableGenerator
}

// NewGenerationHandler constructs the handler.
func NewGenerationHandler(svc *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: svc}
}

// Generate godoc
// @Summary Generate and publish an exact timetable
// @Description Runs the constraint solver for the requested semester and atomically replaces the active timetable.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 201 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Draft godoc
// @Summary Build a fast advisory draft timetable
// @Description Produces a seeded heuristic schedule without exclusivity guarantees; nothing is persisted.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.DraftTimetableRequest true "Draft payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/draft [post]
func (h *GenerationHandler) Draft(c *gin.Context) {
	var req dto.DraftTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft payload"))
		return
	}
	resp, err := h.service.Draft(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
