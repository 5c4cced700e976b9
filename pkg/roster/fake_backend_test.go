package roster

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// fakeTerm is one coeff*var addend resolved to a global variable id: bool
// vars occupy [0, boolCount), int vars occupy [boolCount, boolCount+N). A
// negative id encodes the negation of bool var (-id-1).
type fakeTerm struct {
	id    int64
	coeff int64
}

func encodeBool(v BoolVar) int64 {
	id := int64(v.id)
	if v.negated {
		return -id - 1
	}
	return id
}

// decodeID recovers (globalID, negated) from a fakeTerm/enforce id. It is
// uniform across bool and int var ids: only bool negation ever produces a
// negative code.
func decodeID(code int64) (id int64, negated bool) {
	if code < 0 {
		return -code - 1, true
	}
	return code, false
}

// fakeConstraint is one posted (in)equality, recorded against global
// variable ids.
type fakeConstraint struct {
	terms    []fakeTerm
	op       string // "ge", "le", "eq"
	rhs      int64
	enforce  []int64
	maxVarID int
}

// bruteForceBackend is a CPBuilder+CPSolver fake that proves every boolean
// and bounded-integer assignment by exhaustive backtracking search,
// pruning a branch as soon as every variable a constraint references is
// bound. It exists so the model builder (C2) and result assembler (C4) can
// be unit tested without the native CP-SAT library, mirroring the teacher
// package's own BacktrackingSolver shape (concrete_solvers.go) — except
// this one actually searches, rather than standing in for demonstration.
type bruteForceBackend struct {
	boolCount   int
	intDomain   []struct{ lb, ub int64 }
	infeasible  bool
	constraints []fakeConstraint
	objective   LinExpr
}

func (f *bruteForceBackend) NewBoolVar() BoolVar {
	v := BoolVar{id: f.boolCount}
	f.boolCount++
	return v
}

func (f *bruteForceBackend) NewIntVar(lb, ub int64) IntVar {
	id := len(f.intDomain)
	f.intDomain = append(f.intDomain, struct{ lb, ub int64 }{lb, ub})
	return IntVar{id: id}
}

func (f *bruteForceBackend) Sum(terms ...Term) LinExpr {
	return LinExpr{Terms: append([]Term{}, terms...)}
}

func (f *bruteForceBackend) toFakeTerms(e LinExpr) []fakeTerm {
	out := make([]fakeTerm, len(e.Terms))
	for i, t := range e.Terms {
		switch v := t.V.(type) {
		case BoolVar:
			out[i] = fakeTerm{id: encodeBool(v), coeff: t.Coeff}
		case IntVar:
			out[i] = fakeTerm{id: int64(f.boolCount + v.id), coeff: t.Coeff}
		}
	}
	return out
}

func (f *bruteForceBackend) maxVarID(terms []fakeTerm, enforce []int64) int {
	max := -1
	for _, t := range terms {
		id, _ := decodeID(t.id)
		if int(id) > max {
			max = int(id)
		}
	}
	for _, e := range enforce {
		id, _ := decodeID(e)
		if int(id) > max {
			max = int(id)
		}
	}
	return max
}

func (f *bruteForceBackend) post(op string, left LinExpr, right int64) ReifiableConstraint {
	terms := f.toFakeTerms(left)
	c := fakeConstraint{terms: terms, op: op, rhs: right}
	c.maxVarID = f.maxVarID(terms, nil)
	f.constraints = append(f.constraints, c)
	return &fakeConstraintRef{backend: f, idx: len(f.constraints) - 1}
}

func (f *bruteForceBackend) AddGreaterOrEqual(left LinExpr, right int64) ReifiableConstraint {
	return f.post("ge", left, right)
}

func (f *bruteForceBackend) AddLessOrEqual(left LinExpr, right int64) ReifiableConstraint {
	return f.post("le", left, right)
}

func (f *bruteForceBackend) AddEquality(left LinExpr, right int64) ReifiableConstraint {
	return f.post("eq", left, right)
}

func (f *bruteForceBackend) AddInfeasible() {
	f.infeasible = true
}

func (f *bruteForceBackend) Minimize(expr LinExpr) {
	f.objective = expr
}

type fakeConstraintRef struct {
	backend *bruteForceBackend
	idx     int
}

func (r *fakeConstraintRef) OnlyEnforceIf(lits ...BoolVar) ReifiableConstraint {
	c := &r.backend.constraints[r.idx]
	for _, l := range lits {
		c.enforce = append(c.enforce, encodeBool(l))
	}
	c.maxVarID = r.backend.maxVarID(c.terms, c.enforce)
	return r
}

func (f *bruteForceBackend) totalVars() int {
	return f.boolCount + len(f.intDomain)
}

func (f *bruteForceBackend) domain(globalID int) (lb, ub int64) {
	if globalID < f.boolCount {
		return 0, 1
	}
	d := f.intDomain[globalID-f.boolCount]
	return d.lb, d.ub
}

func evalTerm(t fakeTerm, assignment []int64) int64 {
	id, negated := decodeID(t.id)
	v := assignment[id]
	if negated {
		v = 1 - v
	}
	return v * t.coeff
}

func evalExpr(terms []fakeTerm, assignment []int64) int64 {
	var sum int64
	for _, t := range terms {
		sum += evalTerm(t, assignment)
	}
	return sum
}

func (f *bruteForceBackend) checkConstraint(c fakeConstraint, assignment []int64) bool {
	for _, e := range c.enforce {
		id, negated := decodeID(e)
		v := assignment[id]
		if negated {
			v = 1 - v
		}
		if v != 1 {
			return true // not enforced, vacuously satisfied
		}
	}
	left := evalExpr(c.terms, assignment)
	switch c.op {
	case "ge":
		return left >= c.rhs
	case "le":
		return left <= c.rhs
	case "eq":
		return left == c.rhs
	default:
		return false
	}
}

// Solve exhaustively searches every variable assignment in domain order,
// pruning a branch as soon as a constraint fully bound by it is violated,
// and keeps the feasible assignment with the lowest objective value.
func (f *bruteForceBackend) Solve(ctx context.Context, timeLimit *time.Duration) (CPSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.infeasible {
		return &fakeSolution{status: StatusInfeasible}, nil
	}

	n := f.totalVars()
	readyAt := make([][]int, n+1)
	for ci, c := range f.constraints {
		at := c.maxVarID
		if at < 0 {
			at = 0
		}
		readyAt[at] = append(readyAt[at], ci)
	}

	assignment := make([]int64, n)
	var best []int64
	var bestObj int64
	found := false

	var rec func(idx int)
	rec = func(idx int) {
		if idx == n {
			obj := evalExpr(f.toFakeTerms(f.objective), assignment)
			if !found || obj < bestObj {
				found = true
				bestObj = obj
				best = append([]int64{}, assignment...)
			}
			return
		}
		lb, ub := f.domain(idx)
		for v := lb; v <= ub; v++ {
			assignment[idx] = v
			ok := true
			for _, ci := range readyAt[idx] {
				if !f.checkConstraint(f.constraints[ci], assignment) {
					ok = false
					break
				}
			}
			if ok {
				rec(idx + 1)
			}
		}
	}
	rec(0)

	if !found {
		return &fakeSolution{status: StatusInfeasible}, nil
	}
	return &fakeSolution{
		status:    StatusOptimal,
		boolCount: f.boolCount,
		values:    best,
		objective: float64(bestObj),
	}, nil
}

type fakeSolution struct {
	status    SolveStatus
	boolCount int
	values    []int64
	objective float64
}

func (s *fakeSolution) BooleanValue(v BoolVar) bool {
	raw := s.values[v.id]
	if v.negated {
		raw = 1 - raw
	}
	return raw == 1
}

func (s *fakeSolution) IntegerValue(v IntVar) int64 {
	return s.values[s.boolCount+v.id]
}

func (s *fakeSolution) ObjectiveValue() float64 { return s.objective }
func (s *fakeSolution) Status() SolveStatus     { return s.status }
func (s *fakeSolution) Stats() string           { return "bruteForceBackend: exhaustive search" }

// newEngineWithBackend builds an Engine around an arbitrary cpBackend
// factory, bypassing the native CP-SAT availability probe. Used only by
// this package's tests.
func newEngineWithBackend(cfg *RosterConstraintConfig, newBackend func() cpBackend) *Engine {
	if cfg == nil {
		cfg = DefaultRosterConstraintConfig()
	}
	return &Engine{constraintConfig: cfg, logger: zap.NewNop(), newBackend: newBackend}
}
