package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
)

// SolveStatus is the stable status taxonomy this engine exposes to callers,
// independent of the backend's own status enum.
type SolveStatus string

const (
	StatusOptimal      SolveStatus = "OPTIMAL"
	StatusFeasible     SolveStatus = "FEASIBLE"
	StatusInfeasible   SolveStatus = "INFEASIBLE"
	StatusModelInvalid SolveStatus = "MODEL_INVALID"
	StatusUnknown      SolveStatus = "UNKNOWN"
)

// Feasible reports whether a status represents a usable solution.
func (s SolveStatus) Feasible() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Var is anything that can appear as a term in a linear expression. It is
// deliberately backend-agnostic — a bare (kind, id) handle — so the model
// builder (C2) never touches a concrete backend type, and a test backend
// can implement CPBuilder without importing cpmodel at all.
type Var interface {
	isVar()
}

// BoolVar is a handle to a 0/1 decision variable. Not() is represented as a
// flag rather than a new variable, matching CP-SAT's own literal encoding.
type BoolVar struct {
	id       int
	negated  bool
}

func (BoolVar) isVar() {}

// Not returns the negation of b.
func (b BoolVar) Not() BoolVar { return BoolVar{id: b.id, negated: !b.negated} }

// IntVar is a handle to a bounded integer decision variable.
type IntVar struct{ id int }

func (IntVar) isVar() {}

// Term is one coeff*var addend of a linear expression.
type Term struct {
	V     Var
	Coeff int64
}

// T is shorthand for constructing a Term with coefficient 1.
func T(v Var) Term { return Term{V: v, Coeff: 1} }

// TW is shorthand for constructing a weighted Term.
func TW(v Var, coeff int64) Term { return Term{V: v, Coeff: coeff} }

// LinExpr is a linear combination of variables. It is plain data: building
// one does not touch the backend.
type LinExpr struct{ Terms []Term }

// ReifiableConstraint is a posted constraint that can optionally be guarded
// by OnlyEnforceIf, matching the reified-implication pattern the model
// builder needs for presence variables and soft slack terms.
type ReifiableConstraint interface {
	OnlyEnforceIf(lits ...BoolVar) ReifiableConstraint
}

// CPBuilder is the narrow surface the model builder (C2) programs against.
// It never imports the backend package directly; everything the model
// builder needs to emit a CP-SAT model is expressed here, so a different
// backend — or a fake, for tests — can be substituted by implementing this
// interface and CPSolver without touching model_builder.go or
// result_assembler.go. This mirrors the teacher package's
// interface-plus-concrete-implementations shape (concrete_solvers.go's
// Solver / BaseSolver / SolverFactory split in the upstream finite-domain
// engine this module was adapted from).
type CPBuilder interface {
	NewBoolVar() BoolVar
	NewIntVar(lb, ub int64) IntVar
	Sum(terms ...Term) LinExpr

	AddGreaterOrEqual(left LinExpr, right int64) ReifiableConstraint
	AddLessOrEqual(left LinExpr, right int64) ReifiableConstraint
	AddEquality(left LinExpr, right int64) ReifiableConstraint
	// AddInfeasible posts a constraint that can never hold, used when a
	// role requirement has no eligible guard at all.
	AddInfeasible()

	Minimize(expr LinExpr)
}

// CPSolution is a read-only view over a solved (or exhausted) model.
type CPSolution interface {
	BooleanValue(v BoolVar) bool
	IntegerValue(v IntVar) int64
	ObjectiveValue() float64
	Status() SolveStatus
	Stats() string
}

// CPSolver invokes the backend to completion or time limit.
type CPSolver interface {
	Solve(ctx context.Context, timeLimit *time.Duration) (CPSolution, error)
}

// cpsatAdapter is the one production CPBuilder/CPSolver implementation,
// backed by OR-Tools CP-SAT. Variable handles (BoolVar/IntVar) it hands out
// carry only an index into boolVars/intVars; the cpmodel.BoolVar/IntVar
// values they resolve to live entirely inside the adapter.
type cpsatAdapter struct {
	model    *cpmodel.Builder
	boolVars []cpmodel.BoolVar
	intVars  []cpmodel.IntVar
}

// newCPSATAdapter constructs a fresh CP-SAT model builder. It is the one
// place NewEngine's "backend unavailable" detection hooks into: a panic
// from the native library during Builder construction is recovered into
// ErrBackendUnavailable by the caller.
func newCPSATAdapter() *cpsatAdapter {
	return &cpsatAdapter{model: cpmodel.NewCpModelBuilder()}
}

func (a *cpsatAdapter) NewBoolVar() BoolVar {
	a.boolVars = append(a.boolVars, a.model.NewBoolVar())
	return BoolVar{id: len(a.boolVars) - 1}
}

func (a *cpsatAdapter) NewIntVar(lb, ub int64) IntVar {
	a.intVars = append(a.intVars, a.model.NewIntVarFromDomain(cpmodel.NewDomain(lb, ub)))
	return IntVar{id: len(a.intVars) - 1}
}

func (a *cpsatAdapter) Sum(terms ...Term) LinExpr {
	return LinExpr{Terms: append([]Term{}, terms...)}
}

func (a *cpsatAdapter) literal(v BoolVar) cpmodel.Literal {
	lit := cpmodel.Literal(a.boolVars[v.id])
	if v.negated {
		return lit.Not()
	}
	return lit
}

func (a *cpsatAdapter) linearArg(v Var) cpmodel.LinearArgument {
	switch t := v.(type) {
	case BoolVar:
		return a.literal(t)
	case IntVar:
		return a.intVars[t.id]
	default:
		panic(fmt.Sprintf("roster: unknown Var type %T", v))
	}
}

func (a *cpsatAdapter) toCPExpr(e LinExpr) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, t := range e.Terms {
		expr = expr.AddTerm(a.linearArg(t.V), t.Coeff)
	}
	return expr
}

type cpsatConstraint struct {
	adapter *cpsatAdapter
	c       cpmodel.Constraint
}

func (rc cpsatConstraint) OnlyEnforceIf(lits ...BoolVar) ReifiableConstraint {
	ls := make([]cpmodel.Literal, len(lits))
	for i, l := range lits {
		ls[i] = rc.adapter.literal(l)
	}
	rc.c.OnlyEnforceIf(ls...)
	return rc
}

func (a *cpsatAdapter) AddGreaterOrEqual(left LinExpr, right int64) ReifiableConstraint {
	return cpsatConstraint{adapter: a, c: a.model.AddGreaterOrEqual(a.toCPExpr(left), cpmodel.NewConstant(right))}
}

func (a *cpsatAdapter) AddLessOrEqual(left LinExpr, right int64) ReifiableConstraint {
	return cpsatConstraint{adapter: a, c: a.model.AddLessOrEqual(a.toCPExpr(left), cpmodel.NewConstant(right))}
}

func (a *cpsatAdapter) AddEquality(left LinExpr, right int64) ReifiableConstraint {
	return cpsatConstraint{adapter: a, c: a.model.AddEquality(a.toCPExpr(left), cpmodel.NewConstant(right))}
}

func (a *cpsatAdapter) AddInfeasible() {
	// An empty sum can never be >= 1: a constraint with no way to satisfy
	// it, forcing the solver to report INFEASIBLE instead of silently
	// dropping an unsatisfiable role requirement.
	a.model.AddGreaterOrEqual(cpmodel.NewConstant(0), cpmodel.NewConstant(1))
}

func (a *cpsatAdapter) Minimize(expr LinExpr) {
	a.model.Minimize(a.toCPExpr(expr))
}

// Solve builds the proto model and invokes the CP-SAT backend, mapping its
// terminal status onto the stable taxonomy this package exposes.
func (a *cpsatAdapter) Solve(ctx context.Context, timeLimit *time.Duration) (CPSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	built, err := a.model.Model()
	if err != nil {
		return nil, fmt.Errorf("%w: building CP model: %w", ErrSolveFailed, err)
	}

	params := &sppb.SatParameters{}
	if timeLimit != nil {
		seconds := timeLimit.Seconds()
		params.MaxTimeInSeconds = &seconds
	}

	response, err := cpmodel.SolveCpModelWithParameters(built, params)
	if err != nil {
		return nil, fmt.Errorf("%w: invoking CP-SAT: %w", ErrSolveFailed, err)
	}

	return &cpsatSolution{adapter: a, response: response}, nil
}

type cpsatSolution struct {
	adapter  *cpsatAdapter
	response *cmpb.CpSolverResponse
}

func (s *cpsatSolution) BooleanValue(v BoolVar) bool {
	val := cpmodel.SolutionBooleanValue(s.response, s.adapter.boolVars[v.id])
	if v.negated {
		return !val
	}
	return val
}

func (s *cpsatSolution) IntegerValue(v IntVar) int64 {
	return cpmodel.SolutionIntegerValue(s.response, s.adapter.intVars[v.id])
}

func (s *cpsatSolution) ObjectiveValue() float64 {
	return s.response.GetObjectiveValue()
}

func (s *cpsatSolution) Status() SolveStatus {
	switch s.response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return StatusModelInvalid
	default:
		return StatusUnknown
	}
}

func (s *cpsatSolution) Stats() string {
	return s.response.String()
}
