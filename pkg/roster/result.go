package roster

// RoleCoverage reports the required-versus-assigned count for a single role
// within one slot's coverage statistics.
type RoleCoverage struct {
	Required int
	Assigned int
}

// SlotCoverage reports the overall required-versus-assigned count for a
// slot, and, when the slot carries role requirements, the per-role
// breakdown.
type SlotCoverage struct {
	Required int
	Assigned int
	Roles    map[string]RoleCoverage // nil when the slot has no role requirements
}

// Violation is the {value, penalty} pair recorded for a named soft
// violation or, on infeasibility, for the "status" pseudo-violation.
type Violation struct {
	Value   float64
	Penalty float64
}

// RosterResult is the outcome of one solve attempt. Assignments and
// AssignmentRoles always have an entry for every guard passed to Solve, and
// Coverage always has an entry for every slot, whether or not the solve was
// feasible.
type RosterResult struct {
	Feasible          bool
	Assignments       map[string][]string // guard_id -> ordered slot_ids
	ObjectiveValue    *float64
	ViolationSummaries map[string]Violation
	Coverage          map[string]SlotCoverage
	Status            string
	SolverStatistics  *string
	AssignmentRoles   map[string]map[string]*string // guard_id -> slot_id -> role (nil if no role)
}

// StaffingResult is the outcome of an iterative minimum-staffing search.
type StaffingResult struct {
	MinimumGuards *int
	Roster        *RosterResult
	Attempts      map[int]RosterResult // guard-pool size -> attempt result
}
