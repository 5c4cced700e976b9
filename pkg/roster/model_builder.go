package roster

import (
	"math"
	"sort"
	"strconv"

	"github.com/gitrdm/rosterengine/internal/calendarweek"
)

// penaltyTerm is one (weight, variable, name) addend accumulated into the
// objective, matching spec section 4.1's "P = [(weight, expression,
// name), ...]". Every penalty term used by this model builder is backed by
// exactly one slack or metric variable with an implicit coefficient of 1.
type penaltyTerm struct {
	weight   int
	variable Var
	name     string
}

// builtModel is everything the result assembler needs after the model has
// been constructed: the decision matrix, the guard role sets used for role
// attribution, and the penalty terms for the violation summary.
type builtModel struct {
	assign        map[[2]int]BoolVar // [guardIdx, slotIdx] -> x[g,s]
	guardRoleSets []map[string]struct{}
	penalties     []penaltyTerm
}

// buildModel emits decision variables and constraints onto b for the given
// guards, slots and configuration, following spec section 4.1 exactly:
// skill eligibility, coverage, role composition, consecutive-day presence,
// rest windows/min break, fairness, the weekly-hours cap, and the combined
// objective.
func buildModel(b CPBuilder, guards []GuardProfile, slots []DemandSlot, cfg *RosterConstraintConfig) *builtModel {
	bm := &builtModel{
		assign:        make(map[[2]int]BoolVar, len(guards)*len(slots)),
		guardRoleSets: make([]map[string]struct{}, len(guards)),
	}
	for gi, g := range guards {
		bm.guardRoleSets[gi] = g.RoleSet()
	}

	// Decision variables and skill eligibility.
	for gi, g := range guards {
		for si, s := range slots {
			v := b.NewBoolVar()
			bm.assign[[2]int{gi, si}] = v
			// Skill eligibility is hard-only: unlike coverage, rest windows
			// and role composition, there is no soft relaxation for a
			// skill mismatch. Left unresolved by design (see DESIGN.md).
			if cfg.Hard.EnforceSkillRequirements && s.RequiredSkill != "" && !g.HasSkill(s.RequiredSkill) {
				b.AddEquality(b.Sum(T(v)), 0)
			}
		}
	}

	buildCoverage(b, bm, guards, slots, cfg)
	buildConsecutiveDays(b, bm, guards, slots, cfg)
	buildRestAndBreaks(b, bm, guards, slots, cfg)
	guardTotals := buildGuardTotals(b, bm, guards, slots)
	buildFairness(b, bm, guards, guardTotals, slots, cfg)
	buildWeeklyHoursCap(b, bm, guards, slots, cfg)

	if len(bm.penalties) > 0 {
		terms := make([]Term, 0, len(bm.penalties))
		for _, p := range bm.penalties {
			terms = append(terms, TW(p.variable, int64(p.weight)))
		}
		b.Minimize(b.Sum(terms...))
	}

	return bm
}

func buildCoverage(b CPBuilder, bm *builtModel, guards []GuardProfile, slots []DemandSlot, cfg *RosterConstraintConfig) {
	for si, s := range slots {
		assigned := make([]Term, len(guards))
		for gi := range guards {
			assigned[gi] = T(bm.assign[[2]int{gi, si}])
		}
		required := s.RequiredTotal()

		if len(s.RequiredRoles) > 0 && cfg.Hard.EnforceRoleCoverage {
			// Sorted for deterministic constraint emission order.
			roles := make([]string, 0, len(s.RequiredRoles))
			for r := range s.RequiredRoles {
				roles = append(roles, r)
			}
			sort.Strings(roles)
			for _, role := range roles {
				count := s.RequiredRoles[role]
				eligible := make([]Term, 0, len(guards))
				for gi := range guards {
					if _, ok := bm.guardRoleSets[gi][role]; ok {
						eligible = append(eligible, T(bm.assign[[2]int{gi, si}]))
					}
				}
				if len(eligible) > 0 {
					b.AddGreaterOrEqual(b.Sum(eligible...), int64(count))
				} else if count > 0 {
					b.AddInfeasible()
				}
			}
		}

		if cfg.Hard.EnforceCoverage {
			b.AddGreaterOrEqual(b.Sum(assigned...), int64(required))
			continue
		}

		slack := b.NewIntVar(0, int64(required))
		withSlack := append(append([]Term{}, assigned...), T(slack))
		b.AddGreaterOrEqual(b.Sum(withSlack...), int64(required))
		bm.penalties = append(bm.penalties, penaltyTerm{
			weight:   cfg.Soft.CoverageShortfall,
			variable: slack,
			name:     "coverage_shortfall::" + s.SlotID,
		})
	}
}

func buildConsecutiveDays(b CPBuilder, bm *builtModel, guards []GuardProfile, slots []DemandSlot, cfg *RosterConstraintConfig) {
	if cfg.Hard.MaxConsecutiveDays == nil && cfg.Soft.ConsecutiveDayViolation <= 0 {
		return
	}

	slotsByDay := map[int][]int{}
	for si, s := range slots {
		d := s.DayIndex()
		slotsByDay[d] = append(slotsByDay[d], si)
	}
	days := make([]int, 0, len(slotsByDay))
	for d := range slotsByDay {
		days = append(days, d)
	}
	sort.Ints(days)
	if len(days) == 0 {
		return
	}

	for gi, g := range guards {
		presence := make([]BoolVar, len(days))
		for di, day := range days {
			daySlots := slotsByDay[day]
			terms := make([]Term, len(daySlots))
			for i, si := range daySlots {
				terms[i] = T(bm.assign[[2]int{gi, si}])
			}
			p := b.NewBoolVar()
			b.AddGreaterOrEqual(b.Sum(terms...), 1).OnlyEnforceIf(p)
			b.AddLessOrEqual(b.Sum(terms...), 0).OnlyEnforceIf(p.Not())
			presence[di] = p
		}

		if cfg.Hard.MaxConsecutiveDays != nil {
			maxConsec := *cfg.Hard.MaxConsecutiveDays
			for start := 0; start+maxConsec < len(days); start++ {
				window := make([]Term, maxConsec+1)
				for i := 0; i <= maxConsec; i++ {
					window[i] = T(presence[start+i])
				}
				b.AddLessOrEqual(b.Sum(window...), int64(maxConsec))
			}
			continue
		}

		if cfg.Soft.ConsecutiveDayViolation > 0 {
			for start := 0; start < len(days); start++ {
				window := make([]Term, 0, len(days)-start)
				for i := start; i < len(days); i++ {
					window = append(window, T(presence[i]))
				}
				slack := b.NewIntVar(0, int64(len(window)))
				withSlack := append(append([]Term{}, window...), TW(slack, -1))
				// max_consec = 0 in the soft path: any presence in the
				// window beyond its start incurs pressure, relaxed by
				// slack (Σ pres - slack <= 0), mirroring the rest/break
				// soft pattern below. This is a coarse fairness signal,
				// not a precise bound (see SPEC_FULL.md / spec.md
				// section 9).
				b.AddLessOrEqual(b.Sum(withSlack...), 0)
				bm.penalties = append(bm.penalties, penaltyTerm{
					weight:   cfg.Soft.ConsecutiveDayViolation,
					variable: slack,
					name:     "consecutive_day_violation::guard=" + g.GuardID + "::window=" + strconv.Itoa(start),
				})
			}
		}
	}
}

func buildRestAndBreaks(b CPBuilder, bm *builtModel, guards []GuardProfile, slots []DemandSlot, cfg *RosterConstraintConfig) {
	minBreak := cfg.Hard.MinBreakHours
	restWindow := cfg.Hard.RestWindowHours
	if minBreak == nil && restWindow == nil && cfg.Soft.MinBreakViolation <= 0 && cfg.Soft.RestWindowViolation <= 0 {
		return
	}

	for gi, g := range guards {
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				first, second := slots[i], slots[j]
				gapFwd := second.Start.Sub(first.End).Hours()
				gapRev := first.Start.Sub(second.End).Hours()
				assignI := bm.assign[[2]int{gi, i}]
				assignJ := bm.assign[[2]int{gi, j}]

				if minBreak != nil && -*minBreak < gapFwd && gapFwd < *minBreak {
					forbidOrPenalize(b, bm, assignI, assignJ, true, cfg.Soft.MinBreakViolation,
						"min_break_violation::guard="+g.GuardID+"::"+first.SlotID+"->"+second.SlotID)
				}
				if restWindow != nil && 0 <= gapFwd && gapFwd < *restWindow {
					forbidOrPenalize(b, bm, assignI, assignJ, false, cfg.Soft.RestWindowViolation,
						"rest_window_violation::guard="+g.GuardID+"::"+first.SlotID+"->"+second.SlotID)
				}
				if restWindow != nil && 0 <= gapRev && gapRev < *restWindow {
					forbidOrPenalize(b, bm, assignI, assignJ, false, cfg.Soft.RestWindowViolation,
						"rest_window_violation::guard="+g.GuardID+"::"+second.SlotID+"->"+first.SlotID)
				}
			}
		}
	}
}

// forbidOrPenalize posts x[i] + x[j] <= 1 (optionally relaxed to
// x[i]+x[j] <= 1+slack by a boolean slack) for a pair too close in time.
// hardConstraint selects the unrelaxed form: the min-break caller passes
// true, the rest-window caller passes false, so a rest-window pair is only
// penalized by softWeight and gets no constraint at all when softWeight is 0.
func forbidOrPenalize(b CPBuilder, bm *builtModel, a, c BoolVar, hardConstraint bool, softWeight int, name string) {
	if hardConstraint {
		b.AddLessOrEqual(b.Sum(T(a), T(c)), 1)
		return
	}
	if softWeight <= 0 {
		return
	}
	slack := b.NewBoolVar()
	b.AddLessOrEqual(b.Sum(T(a), T(c), TW(slack, -1)), 1)
	bm.penalties = append(bm.penalties, penaltyTerm{weight: softWeight, variable: slack, name: name})
}

func buildGuardTotals(b CPBuilder, bm *builtModel, guards []GuardProfile, slots []DemandSlot) []IntVar {
	totals := make([]IntVar, len(guards))
	for gi := range guards {
		terms := make([]Term, len(slots))
		for si := range slots {
			terms[si] = T(bm.assign[[2]int{gi, si}])
		}
		total := b.NewIntVar(0, int64(len(slots)))
		b.AddEquality(b.Sum(append(terms, TW(total, -1))...), 0)
		totals[gi] = total
	}
	return totals
}

func buildFairness(b CPBuilder, bm *builtModel, guards []GuardProfile, guardTotals []IntVar, slots []DemandSlot, cfg *RosterConstraintConfig) {
	if cfg.Soft.FairnessPenalty <= 0 || len(guardTotals) == 0 {
		return
	}

	maxTotal := b.NewIntVar(0, int64(len(slots)))
	minTotal := b.NewIntVar(0, int64(len(slots)))
	for _, total := range guardTotals {
		b.AddLessOrEqual(b.Sum(T(total), TW(maxTotal, -1)), 0)
		b.AddGreaterOrEqual(b.Sum(T(total), TW(minTotal, -1)), 0)
	}
	span := b.NewIntVar(0, int64(len(slots)))
	b.AddEquality(b.Sum(T(maxTotal), TW(minTotal, -1), TW(span, -1)), 0)
	bm.penalties = append(bm.penalties, penaltyTerm{
		weight:   cfg.Soft.FairnessPenalty,
		variable: span,
		name:     "fairness_span",
	})

	if cfg.FairnessTargetHours == nil || len(slots) == 0 {
		return
	}
	avgHours := 0.0
	for _, s := range slots {
		avgHours += s.DurationHours()
	}
	avgHours /= float64(len(slots))
	if avgHours <= 0 {
		avgHours = 1.0
	}
	expected := int64(math.Round(*cfg.FairnessTargetHours / avgHours))
	if expected < 0 {
		expected = 0
	}

	for gi, total := range guardTotals {
		dev := b.NewIntVar(0, int64(len(slots)))
		b.AddGreaterOrEqual(b.Sum(T(dev), TW(total, -1)), -expected)
		b.AddGreaterOrEqual(b.Sum(T(dev), TW(total, 1)), expected)
		bm.penalties = append(bm.penalties, penaltyTerm{
			weight:   cfg.Soft.FairnessPenalty,
			variable: dev,
			name:     "fairness_target_deviation::guard=" + guards[gi].GuardID,
		})
	}
}

// buildWeeklyHoursCap wires GuardProfile.MaxHoursPerWeek as a hard linear
// constraint when HardConstraintSpec.EnforceMaxHoursPerWeek is set
// (SPEC_FULL.md section 3/9 resolution of the original open question).
func buildWeeklyHoursCap(b CPBuilder, bm *builtModel, guards []GuardProfile, slots []DemandSlot, cfg *RosterConstraintConfig) {
	if !cfg.Hard.EnforceMaxHoursPerWeek {
		return
	}
	slotsByWeek := map[calendarweek.Key][]int{}
	for si, s := range slots {
		wk := calendarweek.Of(s.Start)
		slotsByWeek[wk] = append(slotsByWeek[wk], si)
	}

	for gi, g := range guards {
		if g.MaxHoursPerWeek == nil {
			continue
		}
		capMinutes := int64(*g.MaxHoursPerWeek * 60)
		for _, slotIdxs := range slotsByWeek {
			terms := make([]Term, len(slotIdxs))
			for i, si := range slotIdxs {
				minutes := int64(slots[si].DurationHours() * 60)
				terms[i] = TW(bm.assign[[2]int{gi, si}], minutes)
			}
			b.AddLessOrEqual(b.Sum(terms...), capMinutes)
		}
	}
}
