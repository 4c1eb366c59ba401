package sat_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/orsuite/satcore/sat"
)

// literal translates a DIMACS-style integer (positive for a true literal,
// negative for its negation, variables numbered from 1) into a sat.Literal
// over a 0-indexed variable, the same convention the concrete end-to-end
// scenarios below are stated in.
func literal(n int) sat.Literal {
	if n < 0 {
		return sat.NegativeLiteral(-n - 1)
	}
	return sat.PositiveLiteral(n - 1)
}

func newSolverWithVars(t *testing.T, n int) *sat.Solver {
	t.Helper()
	s, err := sat.NewSolver(sat.DefaultParameters)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	for i := 0; i < n; i++ {
		s.AddVariable()
	}
	return s
}

// TestUnitPropagation covers scenario 1: adding (1) and (-1 v 2) must force
// both variables true.
func TestUnitPropagation(t *testing.T) {
	s := newSolverWithVars(t, 2)
	if err := s.AddUnitClause(literal(1)); err != nil {
		t.Fatalf("AddUnitClause(1): %v", err)
	}
	if err := s.AddProblemClause([]sat.Literal{literal(-1), literal(2)}); err != nil {
		t.Fatalf("AddProblemClause(-1 v 2): %v", err)
	}

	if status := s.Solve(); status != sat.StatusModelSat {
		t.Fatalf("Solve() = %v, want %v", status, sat.StatusModelSat)
	}
	if got := s.Assignment(0); got != sat.True {
		t.Errorf("Assignment(x1) = %v, want True", got)
	}
	if got := s.Assignment(1); got != sat.True {
		t.Errorf("Assignment(x2) = %v, want True", got)
	}
}

// TestContradictoryUnits covers scenario 2: (1) and (-1) must be caught as
// an immediate UNSAT at add time, and again at Solve time.
func TestContradictoryUnits(t *testing.T) {
	s := newSolverWithVars(t, 1)
	if err := s.AddUnitClause(literal(1)); err != nil {
		t.Fatalf("AddUnitClause(1): %v", err)
	}
	if err := s.AddUnitClause(literal(-1)); err != sat.ErrUnsat {
		t.Fatalf("AddUnitClause(-1) = %v, want %v", err, sat.ErrUnsat)
	}
	if status := s.Solve(); status != sat.StatusModelUnsat {
		t.Fatalf("Solve() = %v, want %v", status, sat.StatusModelUnsat)
	}
}

// TestPigeonhole3In2 covers scenario 3: three pigeons, two holes, UNSAT;
// with proofs enabled, the unsat core must be a non-empty list of indices
// into the nine input clauses.
func TestPigeonhole3In2(t *testing.T) {
	params := sat.DefaultParameters
	params.UnsatProof = true
	s, err := sat.NewSolver(params)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}

	// x[i][j] for i in {0,1,2}, j in {0,1}, variable id = 2*i+j.
	varOf := func(i, j int) int { return 2*i + j }
	for i := 0; i < 6; i++ {
		s.AddVariable()
	}

	nConstraints := 0
	for i := 0; i < 3; i++ {
		lits := []sat.Literal{sat.PositiveLiteral(varOf(i, 0)), sat.PositiveLiteral(varOf(i, 1))}
		if err := s.AddProblemClause(lits); err != nil && err != sat.ErrUnsat {
			t.Fatalf("AddProblemClause: %v", err)
		}
		nConstraints++
	}
	for j := 0; j < 2; j++ {
		for i := 0; i < 3; i++ {
			for ip := i + 1; ip < 3; ip++ {
				lits := []sat.Literal{
					sat.NegativeLiteral(varOf(i, j)),
					sat.NegativeLiteral(varOf(ip, j)),
				}
				if err := s.AddProblemClause(lits); err != nil && err != sat.ErrUnsat {
					t.Fatalf("AddProblemClause: %v", err)
				}
				nConstraints++
			}
		}
	}
	if nConstraints != 9 {
		t.Fatalf("constructed %d constraints, want 9", nConstraints)
	}

	if status := s.Solve(); status != sat.StatusModelUnsat {
		t.Fatalf("Solve() = %v, want %v", status, sat.StatusModelUnsat)
	}

	core := s.ComputeUnsatCore()
	if len(core) == 0 {
		t.Fatalf("ComputeUnsatCore() returned an empty core")
	}
	for _, idx := range core {
		if idx < 0 || idx >= nConstraints {
			t.Errorf("core index %d out of range [0,%d)", idx, nConstraints)
		}
	}
}

// TestAssumptionCore covers scenario 4's clause set: (1 v 2), (-1 v 3),
// (-3). Root-level unit propagation alone (the unit clause (-3) forcing x3
// false, which in turn forces x1 false through the second clause) already
// fixes x1 to false before any assumption is ever pushed, so assuming x1
// true is incompatible with the problem on its own, independent of x2:
// GetLastIncompatibleDecisions() reports just the literal that was already
// false, and the same result is reproducible by assuming x1 alone.
func TestAssumptionCore(t *testing.T) {
	s := newSolverWithVars(t, 3)
	mustAdd := func(lits ...sat.Literal) {
		t.Helper()
		if err := s.AddProblemClause(lits); err != nil {
			t.Fatalf("AddProblemClause(%v): %v", lits, err)
		}
	}
	mustAdd(literal(1), literal(2))
	mustAdd(literal(-1), literal(3))
	mustAdd(literal(-3))

	status := s.ResetAndSolveWithGivenAssumptions([]sat.Literal{literal(1), literal(-2)})
	if status != sat.StatusAssumptionsUnsat {
		t.Fatalf("Solve(assumptions=[1,-2]) = %v, want %v", status, sat.StatusAssumptionsUnsat)
	}

	got := s.GetLastIncompatibleDecisions()
	want := []sat.Literal{literal(1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetLastIncompatibleDecisions() mismatch (-want +got):\n%s", diff)
	}

	// Assuming x1 alone reproduces the same failure: it is the problem's
	// own root propagation, not the presence of -2, that rules it out.
	status = s.ResetAndSolveWithGivenAssumptions([]sat.Literal{literal(1)})
	if status != sat.StatusAssumptionsUnsat {
		t.Fatalf("Solve(assumptions=[1]) = %v, want %v", status, sat.StatusAssumptionsUnsat)
	}
	if diff := cmp.Diff(want, s.GetLastIncompatibleDecisions()); diff != "" {
		t.Errorf("GetLastIncompatibleDecisions() mismatch (-want +got):\n%s", diff)
	}
}

// TestAssumptionCoreJointlyNecessary covers the general shape of scenario
// 4: an assumption set where the conflict only arises from the combination
// of two assumptions, and dropping either one alone leaves the problem
// satisfiable. Assuming x1 true lets both ternary clauses quietly rewatch
// onto their third literal with no propagation; only once x2 is also
// assumed false does x3 get forced true by the first clause while the
// second simultaneously demands x3 false, producing a genuine conflict.
func TestAssumptionCoreJointlyNecessary(t *testing.T) {
	s := newSolverWithVars(t, 3)
	mustAdd := func(lits ...sat.Literal) {
		t.Helper()
		if err := s.AddProblemClause(lits); err != nil {
			t.Fatalf("AddProblemClause(%v): %v", lits, err)
		}
	}
	mustAdd(literal(-1), literal(2), literal(3))
	mustAdd(literal(-1), literal(2), literal(-3))

	status := s.ResetAndSolveWithGivenAssumptions([]sat.Literal{literal(1), literal(-2)})
	if status != sat.StatusAssumptionsUnsat {
		t.Fatalf("Solve(assumptions=[1,-2]) = %v, want %v", status, sat.StatusAssumptionsUnsat)
	}

	got := s.GetLastIncompatibleDecisions()
	want := []sat.Literal{literal(1), literal(-2)}
	sortLits := func(ls []sat.Literal) {
		sort.Slice(ls, func(i, j int) bool { return ls[i] < ls[j] })
	}
	sortLits(got)
	sortLits(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetLastIncompatibleDecisions() mismatch (-want +got):\n%s", diff)
	}

	// Without the second assumption, [1] alone is satisfiable.
	status = s.ResetAndSolveWithGivenAssumptions([]sat.Literal{literal(1)})
	if status != sat.StatusModelSat {
		t.Fatalf("Solve(assumptions=[1]) = %v, want %v", status, sat.StatusModelSat)
	}
}

// TestPBReducesToClause covers scenario 5: 1*x1+1*x2+1*x3 <= 2 degenerates
// to the clause (-x1 v -x2 v -x3) at canonicalization time, and forces x3
// false once x1 and x2 are both true.
func TestPBReducesToClause(t *testing.T) {
	s := newSolverWithVars(t, 3)
	terms := []sat.Term{
		{Literal: literal(1), Coefficient: 1},
		{Literal: literal(2), Coefficient: 1},
		{Literal: literal(3), Coefficient: 1},
	}
	if err := s.AddLinearConstraint(terms, 2); err != nil {
		t.Fatalf("AddLinearConstraint: %v", err)
	}
	if err := s.AddUnitClause(literal(1)); err != nil {
		t.Fatalf("AddUnitClause(1): %v", err)
	}
	if err := s.AddUnitClause(literal(2)); err != nil {
		t.Fatalf("AddUnitClause(2): %v", err)
	}

	if status := s.Solve(); status != sat.StatusModelSat {
		t.Fatalf("Solve() = %v, want %v", status, sat.StatusModelSat)
	}
	if got := s.Assignment(2); got != sat.False {
		t.Errorf("Assignment(x3) = %v, want False", got)
	}
}

// TestPBPropagationWithCoefficients covers scenario 6:
// 3*x1+2*x2+2*x3 <= 4, deciding x1=true must force both x2 and x3 false.
func TestPBPropagationWithCoefficients(t *testing.T) {
	s := newSolverWithVars(t, 3)
	terms := []sat.Term{
		{Literal: literal(1), Coefficient: 3},
		{Literal: literal(2), Coefficient: 2},
		{Literal: literal(3), Coefficient: 2},
	}
	if err := s.AddLinearConstraint(terms, 4); err != nil {
		t.Fatalf("AddLinearConstraint: %v", err)
	}

	if ok := s.EnqueueDecisionIfNotConflicting(literal(1)); !ok {
		t.Fatalf("EnqueueDecisionIfNotConflicting(x1) reported a conflict, want none")
	}

	if got := s.Assignment(1); got != sat.False {
		t.Errorf("Assignment(x2) = %v, want False", got)
	}
	if got := s.Assignment(2); got != sat.False {
		t.Errorf("Assignment(x3) = %v, want False", got)
	}
}
