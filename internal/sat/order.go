package sat

import (
	"math/rand"

	"github.com/rhartert/yagh"
)

// VarOrder maintains the VSIDS-style order in which unassigned variables
// are offered to the decision procedure. Component C8, adapted from the
// teacher's single-mode heap into one that also supports
// Parameters.PreferredVariableOrder, InitialPolarity, RandomBranchesRatio
// and RandomPolarityRatio.
type VarOrder struct {
	order *yagh.IntMap[float64]

	scores     []float64
	scoreInc   float64
	scoreDecay float64

	phases      []LBool
	phaseSaving bool

	randomBranchRatio   float64
	randomPolarityRatio float64
	rng                 *rand.Rand

	tiebreakSign float64 // +1 declaration order, -1 reverse, 0 random
}

// NewVarOrder returns a new initialized VarOrder configured from p.
func NewVarOrder(p Parameters) *VarOrder {
	vo := &VarOrder{
		order:               yagh.New[float64](0),
		scoreInc:            1,
		scoreDecay:          p.VariableActivityDecay,
		phaseSaving:         p.UsePhaseSaving,
		randomBranchRatio:   p.RandomBranchesRatio,
		randomPolarityRatio: p.RandomPolarityRatio,
		rng:                 rand.New(rand.NewSource(p.RandomSeed)),
	}
	switch p.PreferredVariableOrder {
	case OrderReverse:
		vo.tiebreakSign = -1
	case OrderRandom:
		vo.tiebreakSign = 0
	default:
		vo.tiebreakSign = 1
	}
	return vo
}

// AddVar adds a new variable with the given initial score and phase.
func (vo *VarOrder) AddVar(initScore float64, initPhase LBool) {
	varID := len(vo.phases)

	vo.scores = append(vo.scores, initScore)
	vo.phases = append(vo.phases, initPhase)

	vo.order.GrowBy(1)
	vo.order.Put(varID, -initScore+vo.tiebreak(varID))
}

func (vo *VarOrder) tiebreak(varID int) float64 {
	switch vo.tiebreakSign {
	case 1:
		return float64(varID) * 1e-9
	case -1:
		return -float64(varID) * 1e-9
	default:
		return vo.rng.Float64() * 1e-9
	}
}

// Reinsert adds variable v back to the set of decision candidates. Called
// by the solver whenever v is unassigned during backtracking, with val the
// value it held.
func (vo *VarOrder) Reinsert(v int, val LBool) {
	if vo.phaseSaving {
		vo.phases[v] = val
	}
	vo.order.Put(v, -vo.scores[v]+vo.tiebreak(v))
}

// DecayScores slightly decreases the relative weight of past activity
// bumps by growing the increment instead of shrinking every score.
func (vo *VarOrder) DecayScores() {
	vo.scoreInc /= vo.scoreDecay
	if vo.scoreInc > 1e100 {
		vo.rescaleScoresAndIncrement()
	}
}

// BumpScore increases v's activity score, rescaling every score if it
// would otherwise overflow the working range.
func (vo *VarOrder) BumpScore(v int) {
	newScore := vo.scores[v] + vo.scoreInc
	vo.scores[v] = newScore
	if vo.order.Contains(v) {
		vo.order.Put(v, -newScore+vo.tiebreak(v))
	}
	if newScore > 1e100 {
		vo.rescaleScoresAndIncrement()
	}
}

// NextDecision returns the next literal the search should branch on,
// honoring the random-branch and random-polarity ratios.
func (vo *VarOrder) NextDecision(s *Solver) (Literal, bool) {
	if vo.randomBranchRatio > 0 && vo.rng.Float64() < vo.randomBranchRatio {
		if l, ok := vo.randomUnassigned(s); ok {
			return l, true
		}
	}

	for {
		next, ok := vo.order.Pop()
		if !ok {
			return 0, false
		}
		if s.trail.IsAssigned(next.Elem) {
			continue
		}
		return vo.literalFor(next.Elem), true
	}
}

func (vo *VarOrder) literalFor(v int) Literal {
	positive := vo.phases[v] != False
	if vo.randomPolarityRatio > 0 && vo.rng.Float64() < vo.randomPolarityRatio {
		positive = vo.rng.Intn(2) == 0
	}
	if positive {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}

func (vo *VarOrder) randomUnassigned(s *Solver) (Literal, bool) {
	n := s.trail.NumVariables()
	if n == 0 {
		return 0, false
	}
	start := vo.rng.Intn(n)
	for i := 0; i < n; i++ {
		v := (start + i) % n
		if !s.trail.IsAssigned(v) {
			return vo.literalFor(v), true
		}
	}
	return 0, false
}

func (vo *VarOrder) rescaleScoresAndIncrement() {
	vo.scoreInc *= 1e-100
	for v, sc := range vo.scores {
		newScore := sc * 1e-100
		vo.scores[v] = newScore
		if vo.order.Contains(v) {
			vo.order.Put(v, -newScore+vo.tiebreak(v))
		}
	}
}
