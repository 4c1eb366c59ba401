package sat

import "testing"

func TestBinaryImplicationGraph_AddClause_RecordsBothImplications(t *testing.T) {
	g := newBinaryImplicationGraph()
	for i := 0; i < 2; i++ {
		g.addVariable()
	}
	g.AddClause(PositiveLiteral(0), PositiveLiteral(1))

	if got := g.Implied(NegativeLiteral(0)); len(got) != 1 || got[0] != PositiveLiteral(1) {
		t.Errorf("Implied(-x0) = %v, want [x1]", got)
	}
	if got := g.Implied(NegativeLiteral(1)); len(got) != 1 || got[0] != PositiveLiteral(0) {
		t.Errorf("Implied(-x1) = %v, want [x0]", got)
	}
}

func TestBinaryImplicationGraph_Propagate_EnqueuesImpliedLiteral(t *testing.T) {
	s := newTestSolver(t, 2)
	s.binary.AddClause(PositiveLiteral(0), PositiveLiteral(1))

	s.assume(NegativeLiteral(0))
	conflict, ok := s.binary.Propagate(s, NegativeLiteral(0))
	if ok {
		t.Fatalf("unexpected conflict %+v", conflict)
	}
	if got := s.trail.LitValue(PositiveLiteral(1)); got != True {
		t.Errorf("LitValue(x1) = %v, want True after (-x0 -> x1)", got)
	}
	if s.trail.source[1].kind != sourceBinary {
		t.Errorf("source kind = %v, want sourceBinary", s.trail.source[1].kind)
	}
}

func TestBinaryImplicationGraph_Propagate_DetectsConflict(t *testing.T) {
	s := newTestSolver(t, 2)
	// (x0 v x1) and (x0 v -x1): with x0 false, the first forces x1 true and
	// the second forces x1 false, in the same propagation step.
	s.binary.AddClause(PositiveLiteral(0), PositiveLiteral(1))
	s.binary.AddClause(PositiveLiteral(0), NegativeLiteral(1))

	s.assume(NegativeLiteral(0))
	conflict, ok := s.binary.Propagate(s, NegativeLiteral(0))
	if !ok || conflict.kind != conflictBinary {
		t.Errorf("Propagate(-x0) = (%+v, %v), want a conflictBinary conflict", conflict, ok)
	}
}

func TestBinaryReaches_FindsMultiHopPath(t *testing.T) {
	s := newTestSolver(t, 3)
	// x0 -> x1 -> x2, as (-x0 v x1) and (-x1 v x2).
	s.binary.AddClause(NegativeLiteral(0), PositiveLiteral(1))
	s.binary.AddClause(NegativeLiteral(1), PositiveLiteral(2))

	learnt := []Literal{PositiveLiteral(2)}
	if !s.binaryReaches(PositiveLiteral(0), learnt) {
		t.Errorf("binaryReaches(x0, [x2]) = false, want true via the x0->x1->x2 chain")
	}
}
