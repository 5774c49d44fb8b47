package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Palash-oss/TIMETABLE/internal/dto"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
)

type generatorMock struct {
	captured dto.GenerateTimetableRequest
	err      error
}

func (m *generatorMock) Generate(_ context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GenerateTimetableResponse{GenerationID: "gen-1", SolverStatus: "FEASIBLE", EntryCount: 2}, nil
}

func (m *generatorMock) Draft(_ context.Context, req dto.DraftTimetableRequest) (*dto.DraftTimetableResponse, error) {
	return &dto.DraftTimetableResponse{Warning: "advisory"}, nil
}

func generatePayload() []byte {
	payload, _ := json.Marshal(dto.GenerateTimetableRequest{
		Semester:     "3",
		AcademicYear: "2026-27",
		ProgramIDs:   []string{"prog-1"},
	})
	return payload
}

func postContext(t *testing.T, path string, body []byte) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return w, c
}

func TestGenerationHandlerGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &generatorMock{}
	h := &GenerationHandler{service: mockSvc}
	w, c := postContext(t, "/timetable/generate", generatePayload())

	h.Generate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "3", mockSvc.captured.Semester)
	require.Equal(t, []string{"prog-1"}, mockSvc.captured.ProgramIDs)
}

func TestGenerationHandlerGenerateMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &GenerationHandler{service: &generatorMock{}}
	w, c := postContext(t, "/timetable/generate", []byte(`{"semester":`))

	h.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerationHandlerGenerateInfeasible(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &GenerationHandler{service: &generatorMock{err: appErrors.ErrInfeasible}}
	w, c := postContext(t, "/timetable/generate", generatePayload())

	h.Generate(c)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "INFEASIBLE_PROBLEM")
}

func TestGenerationHandlerDraft(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &GenerationHandler{service: &generatorMock{}}
	payload, _ := json.Marshal(dto.DraftTimetableRequest{
		Semester:     "3",
		AcademicYear: "2026-27",
		ProgramIDs:   []string{"prog-1"},
	})
	w, c := postContext(t, "/timetable/draft", payload)

	h.Draft(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "advisory")
}
