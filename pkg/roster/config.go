package roster

import "errors"

// HardConstraintSpec toggles which requirements are enforced as hard
// constraints rather than soft, penalized ones.
type HardConstraintSpec struct {
	EnforceCoverage           bool
	EnforceSkillRequirements  bool
	EnforceRoleCoverage       bool
	MaxConsecutiveDays        *int
	MinBreakHours             *float64
	RestWindowHours           *float64
	// EnforceMaxHoursPerWeek, when true, adds a hard weekly-hours cap for
	// every guard whose GuardProfile.MaxHoursPerWeek is set. Resolves the
	// open question in the original formulation of either wiring the field
	// as a hard constraint or dropping it: this module wires it, opt-in.
	EnforceMaxHoursPerWeek bool
}

// SoftConstraintWeights are the non-negative penalty weights applied to
// soft-violation terms in the objective.
type SoftConstraintWeights struct {
	CoverageShortfall       int
	MinBreakViolation       int
	RestWindowViolation     int
	ConsecutiveDayViolation int
	FairnessPenalty         int
}

// RosterConstraintConfig aggregates hard and soft constraint configuration
// for a solve.
type RosterConstraintConfig struct {
	Hard                HardConstraintSpec
	Soft                SoftConstraintWeights
	FairnessTargetHours *float64
}

// DefaultRosterConstraintConfig returns the documented default
// configuration: coverage and skill enforcement on, role coverage and
// weekly-hours enforcement off, no max-consecutive-days/break/rest, and the
// default soft weights (1000, 250, 250, 400, 10).
func DefaultRosterConstraintConfig() *RosterConstraintConfig {
	return &RosterConstraintConfig{
		Hard: HardConstraintSpec{
			EnforceCoverage:          true,
			EnforceSkillRequirements: true,
			EnforceRoleCoverage:      false,
			EnforceMaxHoursPerWeek:   false,
		},
		Soft: SoftConstraintWeights{
			CoverageShortfall:       1000,
			MinBreakViolation:       250,
			RestWindowViolation:     250,
			ConsecutiveDayViolation: 400,
			FairnessPenalty:         10,
		},
	}
}

// Validate checks the configuration against its documented invariants and
// returns every violation found, joined via errors.Join and wrapped in
// ErrInvalidConfig. A nil return means the configuration is safe to build a
// model from.
func (c *RosterConstraintConfig) Validate() error {
	var problems []string

	if c.Soft.CoverageShortfall < 0 {
		problems = append(problems, "soft.coverage_shortfall must be non-negative")
	}
	if c.Soft.MinBreakViolation < 0 {
		problems = append(problems, "soft.min_break_violation must be non-negative")
	}
	if c.Soft.RestWindowViolation < 0 {
		problems = append(problems, "soft.rest_window_violation must be non-negative")
	}
	if c.Soft.ConsecutiveDayViolation < 0 {
		problems = append(problems, "soft.consecutive_day_violation must be non-negative")
	}
	if c.Soft.FairnessPenalty < 0 {
		problems = append(problems, "soft.fairness_penalty must be non-negative")
	}
	if c.Hard.MaxConsecutiveDays != nil && *c.Hard.MaxConsecutiveDays <= 0 {
		problems = append(problems, "hard.max_consecutive_days must be positive when set")
	}
	if c.Hard.MinBreakHours != nil && *c.Hard.MinBreakHours < 0 {
		problems = append(problems, "hard.min_break_hours must be non-negative when set")
	}
	if c.Hard.RestWindowHours != nil && *c.Hard.RestWindowHours < 0 {
		problems = append(problems, "hard.rest_window_hours must be non-negative when set")
	}
	if c.FairnessTargetHours != nil && *c.FairnessTargetHours < 0 {
		problems = append(problems, "fairness_target_hours must be non-negative when set")
	}

	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, 0, len(problems)+1)
	errs = append(errs, ErrInvalidConfig)
	for _, p := range problems {
		errs = append(errs, errors.New(p))
	}
	return errors.Join(errs...)
}
