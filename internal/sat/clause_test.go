package sat

import "testing"

func newTestSolver(t *testing.T, nVars int) *Solver {
	t.Helper()
	s, err := NewSolver(DefaultParameters)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	for i := 0; i < nVars; i++ {
		s.AddVariable()
	}
	return s
}

func TestCanonicalizeClauseLiterals_DropsDuplicatesAndFalseRootLiterals(t *testing.T) {
	s := newTestSolver(t, 3)
	s.trail.Enqueue(NegativeLiteral(2), reasonSource{kind: sourceRootUnit})

	lits := []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(0), PositiveLiteral(2)}
	size, alwaysTrue := canonicalizeClauseLiterals(s, lits)
	if alwaysTrue {
		t.Fatalf("canonicalizeClauseLiterals reported alwaysTrue, want false")
	}
	if size != 2 {
		t.Fatalf("size = %d, want 2 (duplicate x0 and false x2 dropped)", size)
	}
	seen := map[Literal]bool{}
	for _, l := range lits[:size] {
		seen[l] = true
	}
	if !seen[PositiveLiteral(0)] || !seen[PositiveLiteral(1)] {
		t.Errorf("surviving literals = %v, want {x0, x1}", lits[:size])
	}
}

func TestCanonicalizeClauseLiterals_OppositeLiteralsAreAlwaysTrue(t *testing.T) {
	s := newTestSolver(t, 2)
	lits := []Literal{PositiveLiteral(0), NegativeLiteral(0)}
	_, alwaysTrue := canonicalizeClauseLiterals(s, lits)
	if !alwaysTrue {
		t.Errorf("canonicalizeClauseLiterals(x0, -x0) alwaysTrue = false, want true")
	}
}

func TestClause_ExplainAssign_ExcludesPropagatedLiteral(t *testing.T) {
	c := &Clause{literals: []Literal{PositiveLiteral(0), NegativeLiteral(1), NegativeLiteral(2)}}
	var out []Literal
	c.ExplainAssign(&out)
	want := []Literal{PositiveLiteral(1), PositiveLiteral(2)}
	if len(out) != len(want) || out[0] != want[0] || out[1] != want[1] {
		t.Errorf("ExplainAssign = %v, want %v", out, want)
	}
}

func TestClause_ExplainFailure_NegatesEveryLiteral(t *testing.T) {
	c := &Clause{literals: []Literal{PositiveLiteral(0), NegativeLiteral(1)}}
	var out []Literal
	c.ExplainFailure(&out)
	want := []Literal{NegativeLiteral(0), PositiveLiteral(1)}
	if len(out) != len(want) || out[0] != want[0] || out[1] != want[1] {
		t.Errorf("ExplainFailure = %v, want %v", out, want)
	}
}

// TestClause_WatchInvariant_AfterPropagate verifies the watch
// invariant: once a clause survives a watch-literal falsification, its two
// watched literals sit at positions 0 and 1 and, if neither is true, no
// other literal is true either.
func TestClause_WatchInvariant_AfterPropagate(t *testing.T) {
	s := newTestSolver(t, 4)
	lits := []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2), PositiveLiteral(3)}
	if err := s.AddProblemClause(lits); err != nil {
		t.Fatalf("AddProblemClause: %v", err)
	}
	c := s.constraints[0]

	s.assume(NegativeLiteral(0))
	if conflict, ok := s.propagate(); ok {
		t.Fatalf("unexpected conflict %+v", conflict)
	}
	s.assume(NegativeLiteral(1))
	if conflict, ok := s.propagate(); ok {
		t.Fatalf("unexpected conflict %+v", conflict)
	}

	lit0, lit1 := c.literals[0], c.literals[1]
	if s.trail.LitValue(lit0) == False && s.trail.LitValue(lit1) == False {
		t.Fatalf("both watched literals false after propagation survived")
	}
	for _, l := range c.literals[2:] {
		if s.trail.LitValue(l) == True {
			t.Errorf("unwatched literal %v is true while watch invariant should have propagated it to position 0/1", l)
		}
	}
}
