package roster

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FindMinimumStaffing iteratively increases the guard pool, in
// priority-then-id order, until a feasible roster is found. minimum < 1 is
// treated as 1; maximum of nil means "all guards".
func (e *Engine) FindMinimumStaffing(ctx context.Context, guards []GuardProfile, slots []DemandSlot, minimum int, maximum *int, timeLimit *time.Duration) (StaffingResult, error) {
	runID := uuid.New().String()
	logger := e.logger.With(zap.String("run_id", runID))

	ordered := make([]GuardProfile, len(guards))
	copy(ordered, guards)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].GuardID < ordered[j].GuardID
	})

	if minimum < 1 {
		minimum = 1
	}
	maxSize := len(ordered)
	if maximum != nil && *maximum < maxSize {
		maxSize = *maximum
	}

	attempts := make(map[int]RosterResult, maxSize-minimum+1)
	var feasibleResult *RosterResult
	var feasibleSize *int

	for size := minimum; size <= maxSize; size++ {
		start := time.Now()
		subset := ordered[:size]
		result, err := e.Solve(ctx, subset, slots, timeLimit)
		if err != nil {
			return StaffingResult{}, err
		}
		attempts[size] = result
		logger.Info("staffing search attempt",
			zap.Int("size", size),
			zap.Bool("feasible", result.Feasible),
			zap.Duration("elapsed", time.Since(start)),
		)
		if result.Feasible {
			feasibleResult = &result
			s := size
			feasibleSize = &s
			break
		}
	}

	return StaffingResult{
		MinimumGuards: feasibleSize,
		Roster:        feasibleResult,
		Attempts:      attempts,
	}, nil
}
