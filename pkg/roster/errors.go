package roster

import "errors"

// ErrBackendUnavailable is returned by NewEngine when the CP-SAT backend
// cannot be constructed. Callers may fall back to their own behavior.
var ErrBackendUnavailable = errors.New("roster: CP-SAT backend unavailable")

// ErrInvalidConfig is returned (wrapped) by NewEngine and by
// RosterConstraintConfig.Validate when the supplied configuration violates
// its documented invariants (negative weights, a non-positive max
// consecutive days, negative hour thresholds).
var ErrInvalidConfig = errors.New("roster: invalid constraint configuration")

// ErrSolveFailed wraps an unexpected backend error during Model() or
// SolveCpModelWithParameters(), as distinct from an ordinary infeasible/unknown solver
// status, which is never an error (see RosterResult.Feasible).
var ErrSolveFailed = errors.New("roster: solve failed")
