package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/internal/models"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
	"github.com/Palash-oss/TIMETABLE/pkg/export"
)

// TimetableReader supplies published timetables.
type TimetableReader interface {
	ActiveGeneration(ctx context.Context, semester, academicYear string) (*models.TimetableGeneration, error)
	ListActiveEntries(ctx context.Context, semester, academicYear string) ([]models.TimetableEntryDetail, error)
	ListActiveByFaculty(ctx context.Context, facultyID, semester, academicYear string) ([]models.TimetableEntryDetail, error)
}

// TimetableService serves the active timetable and its export renditions.
type TimetableService struct {
	reader TimetableReader
	cache  *CacheService
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewTimetableService constructs the service.
func NewTimetableService(reader TimetableReader, cache *CacheService, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		reader: reader,
		cache:  cache,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ListActive returns the active timetable for the key, through the read
// cache when enabled.
func (s *TimetableService) ListActive(ctx context.Context, semester, academicYear string) ([]models.TimetableEntryDetail, error) {
	cacheKey := fmt.Sprintf("timetable:%s:%s:entries", semester, academicYear)
	var cached []models.TimetableEntryDetail
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	entries, err := s.reader.ListActiveEntries(ctx, semester, academicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no published timetable for this semester")
	}

	if err := s.cache.Set(ctx, cacheKey, entries, 0); err != nil {
		s.logger.Warn("timetable cache store failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return entries, nil
}

// ListForFaculty returns one faculty member's slice of the active timetable.
func (s *TimetableService) ListForFaculty(ctx context.Context, facultyID, semester, academicYear string) ([]models.TimetableEntryDetail, error) {
	entries, err := s.reader.ListActiveByFaculty(ctx, facultyID, semester, academicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty timetable")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no published sessions for this faculty member")
	}
	return entries, nil
}

// ActiveGeneration returns the active generation header for the key.
func (s *TimetableService) ActiveGeneration(ctx context.Context, semester, academicYear string) (*models.TimetableGeneration, error) {
	gen, err := s.reader.ActiveGeneration(ctx, semester, academicYear)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no published timetable for this semester")
	}
	return gen, nil
}

// ExportCSV renders the active timetable as CSV.
func (s *TimetableService) ExportCSV(ctx context.Context, semester, academicYear string) ([]byte, error) {
	entries, err := s.ListActive(ctx, semester, academicYear)
	if err != nil {
		return nil, err
	}
	dataset := export.Dataset{Headers: export.TimetableHeaders}
	for _, entry := range entries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":         models.DayName(entry.DayOfWeek),
			"Start":       entry.StartTime,
			"End":         entry.EndTime,
			"Course Code": entry.CourseCode,
			"Course Name": entry.CourseName,
			"Faculty":     entry.FacultyName,
			"Room":        entry.RoomNumber,
		})
	}
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return payload, nil
}

// ExportPDF renders the active timetable as a weekly grid PDF.
func (s *TimetableService) ExportPDF(ctx context.Context, semester, academicYear string) ([]byte, error) {
	entries, err := s.ListActive(ctx, semester, academicYear)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Timetable - Semester %s (%s)", semester, academicYear)
	payload, err := s.pdf.RenderGrid(buildGrid(entries), title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return payload, nil
}

// buildGrid pivots entries into a period-by-day matrix for PDF rendering.
func buildGrid(entries []models.TimetableEntryDetail) export.Grid {
	days := lo.Uniq(lo.Map(entries, func(e models.TimetableEntryDetail, _ int) int { return e.DayOfWeek }))
	sort.Ints(days)
	periods := lo.Uniq(lo.Map(entries, func(e models.TimetableEntryDetail, _ int) string { return e.StartTime }))
	sort.Strings(periods)

	grid := export.Grid{
		Days:    lo.Map(days, func(day int, _ int) string { return models.DayName(day) }),
		Periods: periods,
		Cells:   map[string]map[string]string{},
	}
	for _, entry := range entries {
		period := entry.StartTime
		if grid.Cells[period] == nil {
			grid.Cells[period] = map[string]string{}
		}
		day := models.DayName(entry.DayOfWeek)
		cell := fmt.Sprintf("%s / %s / %s", entry.CourseCode, entry.FacultyName, entry.RoomNumber)
		if existing := grid.Cells[period][day]; existing != "" {
			cell = existing + " | " + cell
		}
		grid.Cells[period][day] = cell
	}
	return grid
}
