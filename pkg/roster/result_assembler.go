package roster

import "sort"

// assembleResult decodes a solved model into a RosterResult, performing the
// greedy, order-dependent role-attribution pass described in spec section
// 4.3. The pass is intentionally order-dependent and deterministic given
// stable input order, for reproducibility.
func assembleResult(sol CPSolution, bm *builtModel, guards []GuardProfile, slots []DemandSlot) RosterResult {
	status := sol.Status()
	feasible := status.Feasible()

	assignments := make(map[string][]string, len(guards))
	assignmentRoles := make(map[string]map[string]*string, len(guards))
	for _, g := range guards {
		assignments[g.GuardID] = []string{}
		assignmentRoles[g.GuardID] = map[string]*string{}
	}

	coverage := make(map[string]SlotCoverage, len(slots))
	for _, s := range slots {
		coverage[s.SlotID] = SlotCoverage{Required: s.RequiredTotal(), Roles: roleCoverageSkeleton(s)}
	}

	if feasible {
		assignedBySlot := make(map[int][]int, len(slots))
		for si := range slots {
			for gi := range guards {
				if sol.BooleanValue(bm.assign[[2]int{gi, si}]) {
					g, s := guards[gi], slots[si]
					assignments[g.GuardID] = append(assignments[g.GuardID], s.SlotID)
					assignmentRoles[g.GuardID][s.SlotID] = nil
					assignedBySlot[si] = append(assignedBySlot[si], gi)
				}
			}
		}

		for si, s := range slots {
			guardIdxs := assignedBySlot[si]
			sc := coverage[s.SlotID]
			sc.Assigned = len(guardIdxs)
			coverage[s.SlotID] = sc
			if len(guardIdxs) == 0 {
				continue
			}

			remaining := make(map[string]int, len(s.RequiredRoles))
			roleOrder := make([]string, 0, len(s.RequiredRoles))
			for r, c := range s.RequiredRoles {
				remaining[r] = c
				roleOrder = append(roleOrder, r)
			}
			sort.Strings(roleOrder)

			for _, gi := range guardIdxs {
				g := guards[gi]
				var assignedRole *string
				for _, role := range roleOrder {
					if remaining[role] > 0 {
						if _, ok := bm.guardRoleSets[gi][role]; ok {
							r := role
							assignedRole = &r
							remaining[role]--
							break
						}
					}
				}
				assignmentRoles[g.GuardID][s.SlotID] = assignedRole
				if assignedRole != nil {
					sc := coverage[s.SlotID]
					if sc.Roles != nil {
						if rc, ok := sc.Roles[*assignedRole]; ok {
							rc.Assigned++
							sc.Roles[*assignedRole] = rc
							coverage[s.SlotID] = sc
						}
					}
				}
			}
		}
	}

	violations := map[string]Violation{}
	var objective *float64
	if feasible {
		if len(bm.penalties) > 0 {
			for _, p := range bm.penalties {
				value := variableValue(sol, p.variable)
				if value > 0 {
					violations[p.name] = Violation{Value: value, Penalty: value * float64(p.weight)}
				}
			}
			obj := sol.ObjectiveValue()
			objective = &obj
		} else {
			zero := 0.0
			objective = &zero
		}
	} else {
		violations["status"] = Violation{Value: float64(statusCode(status)), Penalty: 0}
	}

	stats := sol.Stats()
	return RosterResult{
		Feasible:           feasible,
		Assignments:        assignments,
		ObjectiveValue:     objective,
		ViolationSummaries: violations,
		Coverage:           coverage,
		Status:             string(status),
		SolverStatistics:   &stats,
		AssignmentRoles:    assignmentRoles,
	}
}

func roleCoverageSkeleton(s DemandSlot) map[string]RoleCoverage {
	if len(s.RequiredRoles) == 0 {
		return nil
	}
	roles := make(map[string]RoleCoverage, len(s.RequiredRoles))
	for r, c := range s.RequiredRoles {
		roles[r] = RoleCoverage{Required: c, Assigned: 0}
	}
	return roles
}

func variableValue(sol CPSolution, v Var) float64 {
	switch t := v.(type) {
	case BoolVar:
		if sol.BooleanValue(t) {
			return 1
		}
		return 0
	case IntVar:
		return float64(sol.IntegerValue(t))
	default:
		return 0
	}
}

// statusCode maps the stable status taxonomy onto a small numeric code for
// the infeasible-result "status" pseudo-violation, since the spec's value
// field is numeric.
func statusCode(s SolveStatus) int {
	switch s {
	case StatusOptimal:
		return 0
	case StatusFeasible:
		return 1
	case StatusInfeasible:
		return 2
	case StatusModelInvalid:
		return 3
	default:
		return 4
	}
}
