package engine

import (
	"context"
	"time"

	"github.com/crillab/gophersat/solver"
	"go.uber.org/zap"
)

// Status is the outcome of an exact solve.
type Status string

const (
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusTimeout    Status = "TIMEOUT"
)

// SolveStats carries search counters for logging and metadata.
type SolveStats struct {
	Conflicts int           `json:"conflicts"`
	Decisions int           `json:"decisions"`
	Restarts  int           `json:"restarts"`
	Duration  time.Duration `json:"-"`
}

// Result is the outcome of one exact solve. Assignment is indexed by
// candidate position and is nil unless the status is feasible.
type Result struct {
	Status     Status
	Assignment []bool
	Stats      SolveStats
}

// ExactSolver runs the pseudo-boolean search under a wall-clock budget.
type ExactSolver struct {
	budget time.Duration
	logger *zap.Logger
}

func NewExactSolver(budget time.Duration, logger *zap.Logger) *ExactSolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExactSolver{budget: budget, logger: logger}
}

// Solve searches for an assignment satisfying every encoded constraint.
// The underlying search is not interruptible, so on budget expiry or context
// cancellation the worker goroutine is abandoned and its eventual result
// discarded; the engine reports TIMEOUT with no partial assignment.
func (e *ExactSolver) Solve(ctx context.Context, m *Model) (Result, error) {
	problem := solver.ParsePBConstrs(m.Constraints())
	s := solver.New(problem)

	type outcome struct {
		status Status
		model  []bool
		stats  SolveStats
	}
	done := make(chan outcome, 1)
	started := time.Now()
	go func() {
		var out outcome
		switch s.Solve() {
		case solver.Sat:
			out.status = StatusFeasible
			out.model = s.Model()
		default:
			out.status = StatusInfeasible
		}
		out.stats = SolveStats{
			Conflicts: s.Stats.NbConflicts,
			Decisions: s.Stats.NbDecisions,
			Restarts:  s.Stats.NbRestarts,
		}
		done <- out
	}()

	timer := time.NewTimer(e.budget)
	defer timer.Stop()

	select {
	case out := <-done:
		out.stats.Duration = time.Since(started)
		e.logger.Info("exact solve finished",
			zap.String("status", string(out.status)),
			zap.Int("candidates", len(m.Problem.Candidates)),
			zap.Int("conflicts", out.stats.Conflicts),
			zap.Int("decisions", out.stats.Decisions),
			zap.Duration("elapsed", out.stats.Duration),
		)
		assignment := truncate(out.model, len(m.Problem.Candidates))
		return Result{Status: out.status, Assignment: assignment, Stats: out.stats}, nil
	case <-timer.C:
		e.logger.Warn("exact solve exceeded budget",
			zap.Duration("budget", e.budget),
			zap.Int("candidates", len(m.Problem.Candidates)),
		)
		return Result{Status: StatusTimeout, Stats: SolveStats{Duration: time.Since(started)}}, nil
	case <-ctx.Done():
		return Result{Status: StatusTimeout, Stats: SolveStats{Duration: time.Since(started)}}, ctx.Err()
	}
}

// truncate clips the raw model to the candidate count. The solver sizes its
// model by the highest literal it saw, which can exceed the candidate count
// only if it never saw some trailing variable; padding keeps indexing safe.
func truncate(model []bool, n int) []bool {
	if model == nil {
		return nil
	}
	out := make([]bool, n)
	copy(out, model)
	return out
}
