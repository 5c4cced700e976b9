// Package roster implements the rostering engine core: a constraint
// programming formulation that assigns guards to demand slots subject to
// hard requirements (coverage, skills, role composition, rest) while
// minimizing a weighted sum of soft violations (shortfall, fairness
// dispersion, rest-window relaxation).
//
// The package is split into the same components the CP-SAT model itself is
// built from:
//   - Domain model (domain.go, config.go, result.go): guards, slots,
//     constraint configuration, and result records. All value types,
//     constructed fresh per call.
//   - Model builder (model_builder.go): emits decision variables and
//     constraints onto a CPBuilder.
//   - Solver adapter (solver_adapter.go): wraps the CP-SAT backend behind a
//     narrow interface so the backend is swappable without touching the
//     model builder or result assembler.
//   - Result assembler (result_assembler.go): decodes a solved model into a
//     RosterResult, including the greedy role-attribution pass.
//   - Staffing search (staffing.go): iterates growing guard-pool prefixes to
//     find the smallest feasible roster.
//
// The engine is stateless between solves: one Engine holds only its
// constraint configuration and logger, and is safe for concurrent use across
// independent Solve/FindMinimumStaffing calls as long as that configuration
// is not mutated while calls are in flight.
package roster
