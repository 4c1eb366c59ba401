package sat

import "sort"

// EMA is an exponential moving average used to track conflict statistics;
// it backs the Glucose-style fast/slow LBD tracking used to decide when a
// restart is actually warranted rather than merely due.
type EMA struct {
	decay float64
	value float64
	init  bool
}

func NewEMA(decay float64) EMA {
	return EMA{decay: decay}
}

func (ema *EMA) Add(x float64) {
	if !ema.init {
		ema.init = true
		ema.value = x
		return
	}
	ema.value = ema.decay*ema.value + x*(1-ema.decay)
}

func (ema *EMA) Val() float64 { return ema.value }

// restartManager drives the Luby-sequence restart schedule, the
// Glucose-style decay ramp, and LBD- or activity-based clause/PB database
// cleanup. Component C9.
type restartManager struct {
	params Parameters

	lubyIndex      int64
	conflictsInRun int64

	conflictsSinceDecayBump int64

	lbdFast EMA
	lbdSlow EMA
}

func newRestartManager(p Parameters) *restartManager {
	return &restartManager{
		params:    p,
		lubyIndex: 0,
		lbdFast:   NewEMA(1 - 1.0/50),
		lbdSlow:   NewEMA(1 - 1.0/5000),
	}
}

// luby returns the i-th term (0-indexed) of the Luby sequence
// 1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,..., used to space out restarts.
func luby(i int64) int64 {
	size, seq := int64(1), int64(0)
	for size < i+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != i {
		size = (size - 1) / 2
		seq--
		i = i % size
	}
	return int64(1) << uint(seq)
}

// OnConflict updates restart bookkeeping for a freshly learned constraint
// of the given LBD (0 for conflicts that degenerate to no useful LBD,
// e.g. a PB conflict before it is known whether it degenerates to a
// clause).
func (rm *restartManager) OnConflict(lbd int) {
	rm.conflictsInRun++
	rm.conflictsSinceDecayBump++
	if lbd > 0 {
		rm.lbdFast.Add(float64(lbd))
		rm.lbdSlow.Add(float64(lbd))
	}
}

// ShouldRestart reports whether the search should restart now. With
// UseLBD set, a Luby-scheduled restart is additionally gated on recent
// conflicts looking worse than the long-run average (the Glucose "block
// restart" heuristic): if the search has been doing better than usual
// lately, the restart is skipped so as not to throw away that progress.
func (rm *restartManager) ShouldRestart() bool {
	if rm.params.RestartPeriod == 0 {
		return false
	}
	limit := rm.params.RestartPeriod * luby(rm.lubyIndex)
	if rm.conflictsInRun < limit {
		return false
	}
	if rm.params.UseLBD && rm.lbdSlow.init && rm.lbdFast.Val() < rm.lbdSlow.Val() {
		return false
	}
	return true
}

// NextRestart advances the Luby sequence and resets the per-run counter.
func (rm *restartManager) NextRestart() {
	rm.lubyIndex++
	rm.conflictsInRun = 0
}

// MaybeBumpDecay implements the Glucose "decay bumping" schedule: every
// GlucoseDecayIncrementPeriod conflicts, the variable activity decay is
// nudged toward GlucoseMaxDecay by GlucoseDecayIncrement, making VSIDS
// favor very recent activity less as the search matures.
func (rm *restartManager) MaybeBumpDecay(s *Solver) {
	if !rm.params.UseGlucoseBumpAgainStrategy {
		return
	}
	if rm.conflictsSinceDecayBump < int64(rm.params.GlucoseDecayIncrementPeriod) {
		return
	}
	rm.conflictsSinceDecayBump = 0
	d := s.varOrder.scoreDecay + rm.params.GlucoseDecayIncrement
	if d > rm.params.GlucoseMaxDecay {
		d = rm.params.GlucoseMaxDecay
	}
	s.varOrder.scoreDecay = d
}

// ReduceDB discards the worst ClauseCleanupRatio fraction of learnt
// clauses, skipping any that are locked (currently serving as a
// propagation reason) or explicitly protected. "Worst" is judged by LBD
// (lower is better) when UseLBD is set, with ties broken by higher
// activity, and by activity alone otherwise.
func (rm *restartManager) ReduceDB(s *Solver) {
	if len(s.learnts) == 0 {
		return
	}
	sort.Slice(s.learnts, func(i, j int) bool {
		a, b := s.learnts[i], s.learnts[j]
		if rm.params.UseLBD && a.lbd != b.lbd {
			return a.lbd < b.lbd
		}
		return a.activity > b.activity
	})

	removeFrom := len(s.learnts) - int(float64(len(s.learnts))*rm.params.ClauseCleanupRatio)
	j := 0
	for i, c := range s.learnts {
		if i < removeFrom || c.isProtected() || c.locked(s) {
			s.learnts[j] = c
			j++
		} else {
			c.Delete(s)
		}
	}
	s.learnts = s.learnts[:j]
}

// ReducePBDB is ReduceDB's counterpart for learnt PB constraints, judged
// purely by activity since LBD is not tracked for PB rows.
func (rm *restartManager) ReducePBDB(s *Solver) {
	if len(s.learntPBs) == 0 {
		return
	}
	sort.Slice(s.learntPBs, func(i, j int) bool { return s.learntPBs[i].activity > s.learntPBs[j].activity })

	removeFrom := len(s.learntPBs) - int(float64(len(s.learntPBs))*rm.params.ClauseCleanupRatio)
	j := 0
	for i, c := range s.learntPBs {
		locked := false
		for _, t := range c.terms {
			if s.trail.source[t.Literal.VarID()].kind == sourcePB && s.trail.source[t.Literal.VarID()].pb == c {
				locked = true
				break
			}
		}
		if i < removeFrom || c.status&clauseProtected != 0 || locked {
			s.learntPBs[j] = c
			j++
		} else {
			c.status |= clauseDeleted
			if s.proof != nil && c.proofNode != noProofHandle {
				s.proof.decRef(c.proofNode)
			}
		}
	}
	s.learntPBs = s.learntPBs[:j]
}
