package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Palash-oss/TIMETABLE/internal/service"
	"github.com/Palash-oss/TIMETABLE/pkg/response"
	"github.com/Palash-oss/TIMETABLE/pkg/storage"
)

type timetableArchiver interface {
	Snapshot(ctx context.Context, semester, academicYear string) (*service.ArchiveSnapshot, error)
	Download(token string) ([]byte, string, error)
	List() ([]storage.SnapshotInfo, error)
}

// ArchiveHandler exposes archived timetable snapshots.
type ArchiveHandler struct {
	service timetableArchiver
}

// NewArchiveHandler constructs the handler.
func NewArchiveHandler(svc *service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{service: svc}
}

// Snapshot godoc
// @Summary Archive a CSV snapshot of the active timetable
// @Tags Archive
// @Produce json
// @Param semester query string true "Semester"
// @Param academicYear query string true "Academic year"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/archive [post]
func (h *ArchiveHandler) Snapshot(c *gin.Context) {
	semester, academicYear, ok := timetableKey(c)
	if !ok {
		return
	}
	snapshot, err := h.service.Snapshot(c.Request.Context(), semester, academicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, snapshot)
}

// List godoc
// @Summary List archived timetable snapshots
// @Tags Archive
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/archive [get]
func (h *ArchiveHandler) List(c *gin.Context) {
	infos, err := h.service.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, infos, map[string]interface{}{"count": len(infos)})
}

// Download godoc
// @Summary Download an archived snapshot by signed token
// @Tags Archive
// @Produce text/csv
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Router /timetable/archive/{token} [get]
func (h *ArchiveHandler) Download(c *gin.Context) {
	payload, name, err := h.service.Download(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv", payload)
}
