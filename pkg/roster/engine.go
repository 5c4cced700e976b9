package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine is the high-level façade for CP-SAT based rostering. It holds only
// its constraint configuration and logger; solves are stateless and safe to
// run concurrently across independent Engine instances (see SPEC_FULL.md
// section 5 — treat the configuration as read-only while solves are in
// flight if sharing one Engine across goroutines).
type Engine struct {
	constraintConfig *RosterConstraintConfig
	logger           *zap.Logger
	newBackend       func() cpBackend
}

// cpBackend is the combined surface a solve needs: a CPBuilder to emit the
// model and a CPSolver to run it. cpsatAdapter implements both; tests
// substitute a brute-force fake that implements both without touching the
// native library.
type cpBackend interface {
	CPBuilder
	CPSolver
}

// EngineOption configures an Engine at construction time. Options carry no
// domain semantics; they exist purely for ambient wiring (logging today).
type EngineOption func(*Engine)

// WithLogger attaches a structured logger to the engine. A nil logger leaves
// the engine's current logger (zap.NewNop() under NewEngine) in place.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine constructs an Engine. When cfg is nil,
// DefaultRosterConstraintConfig is used. Returns ErrInvalidConfig if cfg
// fails validation, and ErrBackendUnavailable if the CP-SAT backend cannot
// be constructed in this environment.
func NewEngine(cfg *RosterConstraintConfig, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultRosterConstraintConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := probeBackend(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	e := &Engine{
		constraintConfig: cfg,
		logger:           zap.NewNop(),
		newBackend:       func() cpBackend { return newCPSATAdapter() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// probeBackend recovers a panic from Builder construction into an error, so
// NewEngine can report a distinguishable "backend missing" condition rather
// than crash the caller's process (spec section 6).
func probeBackend() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("CP-SAT backend probe failed: %v", r)
		}
	}()
	newCPSATAdapter()
	return nil
}

// Solve solves for guard assignments given a fixed set of guards and demand
// slots. It is a pure function of its inputs: Assignments covers every
// guard id passed in, Coverage covers every slot id passed in.
func (e *Engine) Solve(ctx context.Context, guards []GuardProfile, slots []DemandSlot, timeLimit *time.Duration) (RosterResult, error) {
	runID := uuid.New().String()
	start := time.Now()
	logger := e.logger.With(zap.String("run_id", runID), zap.Int("guards", len(guards)), zap.Int("slots", len(slots)))
	logger.Debug("building roster model")

	adapter := e.newBackend()
	bm := buildModel(adapter, guards, slots, e.constraintConfig)

	sol, err := adapter.Solve(ctx, timeLimit)
	if err != nil {
		logger.Warn("CP-SAT solve failed", zap.Error(err))
		return RosterResult{}, err
	}

	result := assembleResult(sol, bm, guards, slots)
	logger.Info("roster solve complete",
		zap.String("status", result.Status),
		zap.Bool("feasible", result.Feasible),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
