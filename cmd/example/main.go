// Package main demonstrates the rostering engine against a handful of
// representative scenarios.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gitrdm/rosterengine/pkg/roster"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("=== Roster Engine Examples ===")
	fmt.Println()

	basicCoverage()
	skillAndRoleRequirements()
	restWindowAndFairness()
	minimumStaffingSearch()
}

func newExampleEngine(cfg *roster.RosterConstraintConfig) *roster.Engine {
	logger, _ := zap.NewDevelopment()
	engine, err := roster.NewEngine(cfg, roster.WithLogger(logger))
	if err != nil {
		log.Fatalf("failed to construct engine: %v", err)
	}
	return engine
}

// basicCoverage shows the simplest possible solve: one slot, enough guards.
func basicCoverage() {
	fmt.Println("1. Basic Coverage:")

	start := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	guards := []roster.GuardProfile{
		roster.NewGuardProfile("g1", "Alice", nil, nil, nil, 0),
		roster.NewGuardProfile("g2", "Bob", nil, nil, nil, 0),
		roster.NewGuardProfile("g3", "Carol", nil, nil, nil, 0),
	}
	slots := []roster.DemandSlot{
		roster.NewDemandSlot("morning", start, start.Add(8*time.Hour), 2, "", nil),
	}

	engine := newExampleEngine(nil)
	result, err := engine.Solve(context.Background(), guards, slots, nil)
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}
	fmt.Printf("   feasible=%v assignments=%v\n", result.Feasible, result.Assignments)
	fmt.Println()
}

// skillAndRoleRequirements shows hard skill and role-composition constraints.
func skillAndRoleRequirements() {
	fmt.Println("2. Skills and Role Composition:")

	start := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	guards := []roster.GuardProfile{
		roster.NewGuardProfile("g1", "Alice", []string{"firearms"}, []string{"lead"}, nil, 0),
		roster.NewGuardProfile("g2", "Bob", []string{"firearms"}, []string{"armed"}, nil, 0),
		roster.NewGuardProfile("g3", "Carol", nil, nil, nil, 0),
	}
	slots := []roster.DemandSlot{
		roster.NewDemandSlot("checkpoint", start, start.Add(8*time.Hour), 0, "firearms", map[string]int{"lead": 1, "armed": 1}),
	}

	cfg := roster.DefaultRosterConstraintConfig()
	cfg.Hard.EnforceRoleCoverage = true

	engine := newExampleEngine(cfg)
	result, err := engine.Solve(context.Background(), guards, slots, nil)
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}
	fmt.Printf("   feasible=%v roles=%v\n", result.Feasible, result.AssignmentRoles)
	fmt.Println()
}

// restWindowAndFairness shows a penalized rest window plus a fairness target.
func restWindowAndFairness() {
	fmt.Println("3. Rest Windows and Fairness:")

	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	guards := []roster.GuardProfile{
		roster.NewGuardProfile("g1", "Alice", nil, nil, nil, 0),
		roster.NewGuardProfile("g2", "Bob", nil, nil, nil, 0),
	}
	slots := []roster.DemandSlot{
		roster.NewDemandSlot("morning", day.Add(8*time.Hour), day.Add(16*time.Hour), 1, "", nil),
		roster.NewDemandSlot("evening", day.Add(17*time.Hour), day.Add(23*time.Hour), 1, "", nil),
	}

	cfg := roster.DefaultRosterConstraintConfig()
	restWindow := 4.0
	cfg.Hard.RestWindowHours = &restWindow
	targetHours := 8.0
	cfg.FairnessTargetHours = &targetHours

	engine := newExampleEngine(cfg)
	timeLimit := 5 * time.Second
	result, err := engine.Solve(context.Background(), guards, slots, &timeLimit)
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}
	fmt.Printf("   feasible=%v assignments=%v violations=%v\n", result.Feasible, result.Assignments, result.ViolationSummaries)
	fmt.Println()
}

// minimumStaffingSearch shows the iterative minimum-staffing search growing
// the guard pool by priority until a feasible roster appears.
func minimumStaffingSearch() {
	fmt.Println("4. Minimum Staffing Search:")

	start := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	guards := []roster.GuardProfile{
		roster.NewGuardProfile("g1", "Alice", nil, nil, nil, 0),
		roster.NewGuardProfile("g2", "Bob", nil, nil, nil, 1),
		roster.NewGuardProfile("g3", "Carol", nil, nil, nil, 2),
		roster.NewGuardProfile("g4", "Dave", nil, nil, nil, 3),
	}
	slots := []roster.DemandSlot{
		roster.NewDemandSlot("morning", start, start.Add(8*time.Hour), 3, "", nil),
	}

	engine := newExampleEngine(nil)
	result, err := engine.FindMinimumStaffing(context.Background(), guards, slots, 1, nil, nil)
	if err != nil {
		log.Fatalf("staffing search failed: %v", err)
	}
	if result.MinimumGuards != nil {
		fmt.Printf("   minimum guards needed: %d (out of %d attempts)\n", *result.MinimumGuards, len(result.Attempts))
	} else {
		fmt.Println("   no feasible staffing level found")
	}
	fmt.Println()
}
