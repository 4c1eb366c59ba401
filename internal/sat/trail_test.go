package sat

import "testing"

func TestTrail_EnqueueDequeue_RestoresUnassignedState(t *testing.T) {
	tr := NewTrail()
	tr.AddVariable()
	tr.AddVariable()

	tr.NewDecisionLevel()
	tr.Enqueue(PositiveLiteral(0), reasonSource{kind: sourceDecision})

	if !tr.IsAssigned(0) {
		t.Fatalf("IsAssigned(0) = false after Enqueue")
	}
	if got := tr.LitValue(PositiveLiteral(0)); got != True {
		t.Errorf("LitValue(x0) = %v, want True", got)
	}
	if got := tr.LitValue(NegativeLiteral(0)); got != False {
		t.Errorf("LitValue(-x0) = %v, want False", got)
	}
	if got := tr.VarLevel(0); got != 1 {
		t.Errorf("VarLevel(0) = %d, want 1", got)
	}

	tr.Dequeue()
	if tr.IsAssigned(0) {
		t.Fatalf("IsAssigned(0) = true after Dequeue")
	}
	if got := tr.LitValue(PositiveLiteral(0)); got != Unknown {
		t.Errorf("LitValue(x0) = %v, want Unknown", got)
	}
	if got := tr.VarLevel(0); got != -1 {
		t.Errorf("VarLevel(0) = %d, want -1", got)
	}
}

func TestTrail_DecisionLevels_TrackTrailLimits(t *testing.T) {
	tr := NewTrail()
	for i := 0; i < 3; i++ {
		tr.AddVariable()
	}

	if tr.DecisionLevel() != 0 {
		t.Fatalf("DecisionLevel() = %d, want 0", tr.DecisionLevel())
	}

	tr.Enqueue(PositiveLiteral(0), reasonSource{kind: sourceRootUnit})

	tr.NewDecisionLevel()
	tr.Enqueue(PositiveLiteral(1), reasonSource{kind: sourceDecision})
	if got := tr.LevelStart(1); got != 1 {
		t.Errorf("LevelStart(1) = %d, want 1", got)
	}

	tr.NewDecisionLevel()
	tr.Enqueue(PositiveLiteral(2), reasonSource{kind: sourceDecision})
	if got := tr.VarLevel(2); got != 2 {
		t.Errorf("VarLevel(2) = %d, want 2", got)
	}

	tr.Dequeue()
	tr.CloseDecisionLevel()
	if tr.DecisionLevel() != 1 {
		t.Fatalf("DecisionLevel() = %d, want 1 after closing one level", tr.DecisionLevel())
	}
}

func TestTrail_SameReasonAs_RecursesExactlyOnce(t *testing.T) {
	tr := NewTrail()
	for i := 0; i < 2; i++ {
		tr.AddVariable()
	}
	tr.Enqueue(PositiveLiteral(0), reasonSource{kind: sourceBinary, cause: NegativeLiteral(1)})
	tr.Enqueue(PositiveLiteral(1), reasonSource{kind: sourceRootUnit})
	tr.MarkSameReasonAs(1, 0)

	got := tr.Reason(1)
	if len(got) != 1 || got[0] != NegativeLiteral(1) {
		t.Errorf("Reason(1) = %v, want [-x1]", got)
	}
}

func TestTrail_SameReasonAs_ChainOfTwo_Panics(t *testing.T) {
	tr := NewTrail()
	for i := 0; i < 3; i++ {
		tr.AddVariable()
	}
	tr.Enqueue(PositiveLiteral(0), reasonSource{kind: sourceRootUnit})
	tr.Enqueue(PositiveLiteral(1), reasonSource{kind: sourceRootUnit})
	tr.Enqueue(PositiveLiteral(2), reasonSource{kind: sourceRootUnit})
	tr.MarkSameReasonAs(1, 0)
	tr.MarkSameReasonAs(2, 1)

	defer func() {
		if recover() == nil {
			t.Errorf("Reason(2) through a two-hop same-reason-as chain: want panic, got none")
		}
	}()
	tr.Reason(2)
}
