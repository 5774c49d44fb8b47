package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/internal/dto"
	"github.com/Palash-oss/TIMETABLE/internal/engine"
	"github.com/Palash-oss/TIMETABLE/internal/models"
	"github.com/Palash-oss/TIMETABLE/pkg/config"
	appErrors "github.com/Palash-oss/TIMETABLE/pkg/errors"
)

// draftWarning accompanies every draft response.
const draftWarning = "draft schedules are advisory: faculty and room exclusivity are not enforced"

// TimetablePublisher persists a solved timetable atomically.
type TimetablePublisher interface {
	ReplaceGeneration(ctx context.Context, gen *models.TimetableGeneration, entries []models.TimetableEntry) error
}

// keyedMutex serializes work per string key. Concurrent generations for
// different keys proceed in parallel; same-key requests queue.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*sync.Mutex{}
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &sync.Mutex{}
		k.locks[key] = entry
	}
	k.mu.Unlock()

	entry.Lock()
	return entry.Unlock
}

// GenerationService runs the full timetable pipeline: assemble, formulate,
// solve, extract, report and publish.
type GenerationService struct {
	loader    engine.Loader
	publisher TimetablePublisher
	cache     *CacheService
	metrics   *MetricsService
	archive   *ArchiveService
	validate  *validator.Validate
	logger    *zap.Logger
	cfg       config.EngineConfig
	exact     *engine.ExactSolver
	locks     keyedMutex
}

// NewGenerationService constructs the service. archive may be nil when
// snapshot archiving is disabled.
func NewGenerationService(
	loader engine.Loader,
	publisher TimetablePublisher,
	cache *CacheService,
	metrics *MetricsService,
	archive *ArchiveService,
	validate *validator.Validate,
	cfg config.EngineConfig,
	logger *zap.Logger,
) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	budget := cfg.SolveBudget
	if budget <= 0 {
		budget = time.Minute
	}
	return &GenerationService{
		loader:    loader,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		archive:   archive,
		validate:  validate,
		logger:    logger,
		cfg:       cfg,
		exact:     engine.NewExactSolver(budget, logger),
	}
}

// Generate runs an exact solve and publishes the result. At most one
// generation runs at a time per (semester, academic_year).
func (s *GenerationService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation request")
	}
	spec := engine.Spec{
		Semester:           req.Semester,
		AcademicYear:       req.AcademicYear,
		ProgramIDs:         req.ProgramIDs,
		EnforceConstraints: req.Enforce(),
	}

	unlock := s.locks.lock(spec.Key())
	defer unlock()

	started := time.Now()
	problem, err := engine.Assemble(ctx, s.loader, spec, s.engineOptions(), s.logger)
	if err != nil {
		return nil, err
	}
	if len(problem.Candidates) == 0 {
		s.observe("exact", "EMPTY", 0, started)
		return nil, appErrors.Clone(appErrors.ErrEmptyCandidates, "")
	}

	model, err := engine.Formulate(problem)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataLoad.Code, appErrors.ErrDataLoad.Status, "failed to encode constraints")
	}

	result, err := s.exact.Solve(ctx, model)
	if err != nil {
		s.observe("exact", string(result.Status), len(problem.Candidates), started)
		return nil, appErrors.Wrap(err, appErrors.ErrSolverTimeout.Code, appErrors.ErrSolverTimeout.Status, appErrors.ErrSolverTimeout.Message)
	}
	switch result.Status {
	case engine.StatusInfeasible:
		s.observe("exact", string(result.Status), len(problem.Candidates), started)
		return nil, appErrors.Clone(appErrors.ErrInfeasible, "")
	case engine.StatusTimeout:
		s.observe("exact", string(result.Status), len(problem.Candidates), started)
		return nil, appErrors.Clone(appErrors.ErrSolverTimeout, "")
	}

	generationID := uuid.NewString()
	now := time.Now()
	entries := engine.Extract(model, result.Assignment, generationID, now)
	report := engine.BuildComplianceReport(engine.ScheduledCourses(model, result.Assignment))

	meta, err := json.Marshal(map[string]interface{}{
		"compliance": report,
		"stats":      result.Stats,
		"elapsed_ms": time.Since(started).Milliseconds(),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode generation metadata")
	}

	gen := &models.TimetableGeneration{
		ID:           generationID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Status:       models.GenerationActive,
		SolverStatus: string(result.Status),
		EntryCount:   len(entries),
		Meta:         meta,
		CreatedAt:    now,
	}
	if err := s.publisher.ReplaceGeneration(ctx, gen, entries); err != nil {
		s.observe("exact", "PUBLISH_FAILED", len(problem.Candidates), started)
		return nil, appErrors.Wrap(err, appErrors.ErrPublish.Code, appErrors.ErrPublish.Status, appErrors.ErrPublish.Message)
	}

	if err := s.cache.Invalidate(ctx, timetableCachePattern(req.Semester, req.AcademicYear)); err != nil {
		s.logger.Warn("timetable cache invalidation failed",
			zap.String("key", spec.Key()), zap.Error(err))
	}
	if s.archive != nil {
		s.archive.Schedule(req.Semester, req.AcademicYear)
	}

	s.observe("exact", string(result.Status), len(problem.Candidates), started)
	s.logger.Info("timetable published",
		zap.String("generation", generationID),
		zap.String("key", spec.Key()),
		zap.Int("entries", len(entries)),
		zap.Bool("compliant", report.Compliant),
	)

	return &dto.GenerateTimetableResponse{
		GenerationID: generationID,
		SolverStatus: string(result.Status),
		EntryCount:   len(entries),
		Entries:      entries,
		Compliance:   report,
		ElapsedMS:    time.Since(started).Milliseconds(),
	}, nil
}

// Draft runs the heuristic solver. Drafts are never persisted and take no
// generation lock.
func (s *GenerationService) Draft(ctx context.Context, req dto.DraftTimetableRequest) (*dto.DraftTimetableResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft request")
	}
	spec := engine.Spec{
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		ProgramIDs:   req.ProgramIDs,
	}

	started := time.Now()
	problem, err := engine.Assemble(ctx, s.loader, spec, s.engineOptions(), s.logger)
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.cfg.DraftSeed
	}
	solver := engine.NewHeuristicSolver(s.draftParams(), seed, s.logger)
	draft := solver.Draft(problem)

	s.observe("draft", "DONE", len(problem.Courses), started)
	return &dto.DraftTimetableResponse{Draft: draft, Warning: draftWarning}, nil
}

func (s *GenerationService) engineOptions() engine.Options {
	return engine.Options{
		WeeksInTerm:        s.cfg.WeeksInTerm,
		FallbackEnrollment: s.cfg.FallbackEnrollment,
	}
}

func (s *GenerationService) draftParams() engine.HeuristicParams {
	params := engine.HeuristicParams{
		MinPeriodsPerDay: s.cfg.DraftMinPeriodsPerDay,
		MaxPeriodsPerDay: s.cfg.DraftMaxPeriodsPerDay,
		MiddayDropChance: s.cfg.DraftMiddayDropChance,
		MaxRepeatsPerDay: engine.DefaultHeuristicParams().MaxRepeatsPerDay,
	}
	if params.MinPeriodsPerDay <= 0 {
		return engine.DefaultHeuristicParams()
	}
	return params
}

func (s *GenerationService) observe(mode, status string, candidates int, started time.Time) {
	s.metrics.ObserveSolve(mode, status, candidates, time.Since(started))
}

func timetableCachePattern(semester, academicYear string) string {
	return fmt.Sprintf("timetable:%s:%s:*", semester, academicYear)
}
