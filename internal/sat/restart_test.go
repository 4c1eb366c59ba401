package sat

import "testing"

func TestLuby_MatchesKnownPrefix(t *testing.T) {
	want := []int64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	for i, w := range want {
		if got := luby(int64(i)); got != w {
			t.Errorf("luby(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestEMA_FirstAddSeedsValue(t *testing.T) {
	ema := NewEMA(0.5)
	ema.Add(10)
	if got := ema.Val(); got != 10 {
		t.Errorf("Val() after first Add = %v, want 10", got)
	}
	ema.Add(0)
	if got := ema.Val(); got != 5 {
		t.Errorf("Val() after second Add = %v, want 5", got)
	}
}

func TestRestartManager_ShouldRestart_RespectsLubyScheduledPeriod(t *testing.T) {
	p := DefaultParameters
	p.RestartPeriod = 10
	p.UseLBD = false
	rm := newRestartManager(p)

	for i := int64(0); i < 9; i++ {
		rm.OnConflict(3)
	}
	if rm.ShouldRestart() {
		t.Fatalf("ShouldRestart() = true before reaching the period, want false")
	}
	rm.OnConflict(3)
	if !rm.ShouldRestart() {
		t.Errorf("ShouldRestart() = false at the period, want true")
	}
}

func TestRestartManager_NextRestart_AdvancesLubyAndResetsCounter(t *testing.T) {
	rm := newRestartManager(DefaultParameters)
	rm.OnConflict(3)
	rm.NextRestart()
	if rm.lubyIndex != 1 {
		t.Errorf("lubyIndex = %d, want 1", rm.lubyIndex)
	}
	if rm.conflictsInRun != 0 {
		t.Errorf("conflictsInRun = %d, want 0", rm.conflictsInRun)
	}
}

func TestReduceDB_KeepsLockedAndProtectedClauses(t *testing.T) {
	s := newTestSolver(t, 2)
	p := s.params
	p.UseLBD = true
	p.ClauseCleanupRatio = 1 // try to remove everything not exempted
	s.params = p
	rm := newRestartManager(p)

	locked := &Clause{literals: []Literal{PositiveLiteral(0), PositiveLiteral(1)}, lbd: 5}
	s.trail.Enqueue(PositiveLiteral(0), reasonSource{kind: sourceClause, clause: locked})

	protected := &Clause{literals: []Literal{NegativeLiteral(0), PositiveLiteral(1)}, lbd: 5}
	protected.setProtected()

	reclaimable := &Clause{literals: []Literal{PositiveLiteral(1), NegativeLiteral(0)}, lbd: 9}

	s.learnts = []*Clause{locked, protected, reclaimable}
	rm.ReduceDB(s)

	remaining := map[*Clause]bool{}
	for _, c := range s.learnts {
		remaining[c] = true
	}
	if !remaining[locked] {
		t.Errorf("ReduceDB removed a locked clause")
	}
	if !remaining[protected] {
		t.Errorf("ReduceDB removed a protected clause")
	}
	if remaining[reclaimable] {
		t.Errorf("ReduceDB kept a clause that should have been reclaimed")
	}
}
