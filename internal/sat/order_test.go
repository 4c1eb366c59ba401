package sat

import "testing"

func newTestVarOrder(n int) (*VarOrder, *Solver) {
	p := DefaultParameters
	vo := NewVarOrder(p)
	for i := 0; i < n; i++ {
		vo.AddVar(0, True)
	}
	s := &Solver{trail: NewTrail()}
	for i := 0; i < n; i++ {
		s.trail.AddVariable()
	}
	return vo, s
}

func TestVarOrder_NextDecision_HighestScoreFirst(t *testing.T) {
	vo, s := newTestVarOrder(3)
	vo.BumpScore(2)
	vo.BumpScore(2)
	vo.BumpScore(1)

	l, ok := vo.NextDecision(s)
	if !ok {
		t.Fatalf("NextDecision() returned ok=false on an empty trail")
	}
	if l.VarID() != 2 {
		t.Errorf("NextDecision() picked variable %d, want 2 (highest bumped score)", l.VarID())
	}
}

func TestVarOrder_NextDecision_SkipsAssignedVariables(t *testing.T) {
	vo, s := newTestVarOrder(2)
	vo.BumpScore(0)
	s.trail.Enqueue(PositiveLiteral(0), reasonSource{kind: sourceRootUnit})

	l, ok := vo.NextDecision(s)
	if !ok {
		t.Fatalf("NextDecision() = ok=false, want variable 1 to be offered")
	}
	if l.VarID() != 1 {
		t.Errorf("NextDecision() = var %d, want 1 (var 0 is already assigned)", l.VarID())
	}
}

func TestVarOrder_Reinsert_PhaseSaving_RemembersLastValue(t *testing.T) {
	p := DefaultParameters
	p.UsePhaseSaving = true
	vo := NewVarOrder(p)
	vo.AddVar(0, True)

	vo.Reinsert(0, False)
	if got := vo.literalFor(0); got != NegativeLiteral(0) {
		t.Errorf("literalFor(0) after Reinsert(0, False) = %v, want -x0", got)
	}
}

func TestVarOrder_PreferredOrder_InOrderTiesBreakByDeclarationOrder(t *testing.T) {
	p := DefaultParameters
	p.PreferredVariableOrder = OrderInOrder
	vo := NewVarOrder(p)
	for i := 0; i < 3; i++ {
		vo.AddVar(0, True) // identical scores: ties broken by declaration order
	}
	s := &Solver{trail: NewTrail()}
	for i := 0; i < 3; i++ {
		s.trail.AddVariable()
	}

	l, ok := vo.NextDecision(s)
	if !ok || l.VarID() != 0 {
		t.Errorf("NextDecision() = (%v, %v), want (x0, true) with equal scores in declaration order", l, ok)
	}
}
