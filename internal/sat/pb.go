package sat

import "sort"

// pbTerm is one term of a canonicalized PB constraint: a literal with a
// strictly positive coefficient.
type pbTerm struct {
	Literal     Literal
	Coefficient int64
}

// pbConstraint is a canonicalized pseudo-Boolean constraint Σ cᵢ·ℓᵢ ≤ rhs,
// cᵢ > 0, literals unique and not negated duplicates, sorted by
// non-increasing coefficient. Component C6.
type pbConstraint struct {
	terms    []pbTerm
	rhs      int64
	maxValue int64

	// slack is rhs minus the sum of coefficients of currently-true terms,
	// maintained incrementally by pbEngine as the trail changes.
	slack int64

	activity  float64
	status    clauseStatus
	proofNode proofHandle
}

func (c *pbConstraint) isDeleted() bool { return c.status&clauseDeleted != 0 }
func (c *pbConstraint) isLearnt() bool  { return c.status&clauseLearnt != 0 }

// rawTerm is a term with a possibly-negative coefficient, as it appears
// before canonicalization (user input) or during PB-resolution when two
// rows are combined.
type rawTerm struct {
	Literal     Literal
	Coefficient int64
}

// canonicalizeRaw implements spec §4.4's canonicalization: it normalizes
// negative coefficients onto the opposite literal, merges duplicate
// literals, cancels opposite-literal pairs, drops terms already fixed at
// the root level, saturates coefficients above rhs, and sorts by
// non-increasing coefficient. It is used both for the initial
// AddLinearConstraint call and, during PB-resolution, to combine a
// conflict row with a (possibly scaled) reason row — the same merge rules
// apply in both cases, and applying it to an already-canonical constraint
// is a no-op, which is exactly the idempotence property spec §8 requires.
func canonicalizeRaw(s *Solver, terms []rawTerm, rhs int64) (out []pbTerm, outRHS int64, unsat bool) {
	merged := map[Literal]int64{}
	for _, t := range terms {
		if t.Coefficient == 0 {
			continue
		}
		if t.Coefficient > 0 {
			merged[t.Literal] += t.Coefficient
		} else {
			merged[t.Literal.Opposite()] += -t.Coefficient
			rhs -= t.Coefficient
		}
	}

	// Cancel opposite-literal pairs: c1*l + c2*¬l == (c1-c2)*l + c2 when
	// c1 >= c2 (symmetric otherwise).
	for lit, c1 := range merged {
		opp := lit.Opposite()
		c2, ok := merged[opp]
		if !ok || lit < opp {
			// Only process each pair once, from the larger literal index.
			continue
		}
		delete(merged, opp)
		delete(merged, lit)
		switch {
		case c1 > c2:
			merged[lit] = c1 - c2
			rhs -= c2
		case c2 > c1:
			merged[opp] = c2 - c1
			rhs -= c1
		default:
			rhs -= c1
		}
	}

	// Drop terms already fixed at the root level, absorbing their
	// contribution into rhs.
	for lit, coef := range merged {
		if s.trail.VarLevel(lit.VarID()) != 0 {
			continue
		}
		switch s.trail.LitValue(lit) {
		case True:
			rhs -= coef
			delete(merged, lit)
		case False:
			delete(merged, lit)
		}
	}

	if rhs < 0 {
		return nil, rhs, true
	}

	out = make([]pbTerm, 0, len(merged))
	for lit, coef := range merged {
		if coef > rhs {
			coef = rhs // saturate, spec §7
		}
		if coef <= 0 {
			continue
		}
		out = append(out, pbTerm{Literal: lit, Coefficient: coef})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coefficient != out[j].Coefficient {
			return out[i].Coefficient > out[j].Coefficient
		}
		return out[i].Literal < out[j].Literal
	})

	return out, rhs, false
}

// maxValueOf returns the sum of a canonical term list's coefficients.
func maxValueOf(terms []pbTerm) int64 {
	var sum int64
	for _, t := range terms {
		sum += t.Coefficient
	}
	return sum
}

// minCoefficient returns the smallest coefficient among terms, assumed
// sorted non-increasing (so it is the last one).
func minCoefficient(terms []pbTerm) int64 {
	if len(terms) == 0 {
		return 0
	}
	return terms[len(terms)-1].Coefficient
}

// degenerateClause returns the clause ⋁¬ℓᵢ that a cardinality-like PB
// constraint degenerates to, per spec §4.4: "If max_value − c₀ ≤ rhs the
// constraint degenerates to a single clause". c₀ is the smallest
// coefficient: excluding the smallest-coefficient term yields the largest
// possible "all true but one" sum, so if even that respects rhs then the
// only way to violate the constraint is for every term to be true at once.
func degenerateClause(terms []pbTerm) []Literal {
	out := make([]Literal, len(terms))
	for i, t := range terms {
		out[i] = t.Literal.Opposite()
	}
	return out
}

// pbWatcher links a literal back to the constraints for which it is a
// term, and the coefficient/index of that term.
type pbWatcher struct {
	c       *pbConstraint
	coef    int64
	termIdx int
}

// pbEngine is the propagation engine shared by all PB constraints: slack is
// maintained incrementally, keyed off per-literal watch lists exactly like
// the clause watcher (C4), generalized to weighted terms.
type pbEngine struct {
	watchers    [][]pbWatcher
	constraints []*pbConstraint
}

func newPBEngine() *pbEngine {
	return &pbEngine{}
}

func (e *pbEngine) addVariable() {
	e.watchers = append(e.watchers, nil, nil)
}

// Attach registers c's terms in the watch structure and computes its
// initial slack from the current (root-level) assignment.
func (e *pbEngine) Attach(s *Solver, c *pbConstraint) {
	c.slack = c.rhs
	for i, t := range c.terms {
		e.watchers[t.Literal.Index()] = append(e.watchers[t.Literal.Index()], pbWatcher{c: c, coef: t.Coefficient, termIdx: i})
		if s.trail.IsTrue(t.Literal) {
			c.slack -= t.Coefficient
		}
	}
	e.constraints = append(e.constraints, c)
}

// OnAssignTrue is invoked for every literal that becomes true (regardless
// of which propagator caused it) so that every PB constraint mentioning it
// can update its slack incrementally.
func (e *pbEngine) OnAssignTrue(s *Solver, l Literal) (searchConflict, bool) {
	for _, w := range e.watchers[l.Index()] {
		c := w.c
		if c.isDeleted() {
			continue
		}
		c.slack -= w.coef
		if c.slack < 0 {
			return searchConflict{kind: conflictPB, pb: c}, true
		}
		if conflict, ok := c.propagateForced(s); ok {
			return conflict, true
		}
	}
	return searchConflict{}, false
}

// OnUnassign undoes the slack bookkeeping for a literal that is being
// removed from the trail during backjump.
func (e *pbEngine) OnUnassign(l Literal) {
	for _, w := range e.watchers[l.Index()] {
		if w.c.isDeleted() {
			continue
		}
		w.c.slack += w.coef
	}
}

// propagateForced scans terms in descending coefficient order and forces
// the negation of every unassigned literal whose coefficient exceeds the
// current slack, stopping as soon as a term's coefficient no longer
// exceeds it (spec §4.4).
func (c *pbConstraint) propagateForced(s *Solver) (searchConflict, bool) {
	for i, t := range c.terms {
		if t.Coefficient <= c.slack {
			break
		}
		switch s.trail.LitValue(t.Literal) {
		case True:
			// Already true: its coefficient is already subtracted in
			// c.slack, so there is nothing to force.
			continue
		case False:
			continue
		default:
			if !s.enqueue(t.Literal.Opposite(), reasonSource{kind: sourcePB, pb: c, pbTermIdx: i}) {
				return searchConflict{kind: conflictPB, pb: c}, true
			}
		}
	}
	return searchConflict{}, false
}

// ReasonForTerm materializes the reason for the forced literal ¬terms[idx]:
// the currently-true literals whose removal would still leave the slack
// unable to cover terms[idx]'s coefficient, minimized greedily by dropping
// the smallest-coefficient true literals first (spec §4.4).
func (c *pbConstraint) ReasonForTerm(t *Trail, idx int, buf []Literal) []Literal {
	type trueTerm struct {
		lit  Literal
		coef int64
	}
	var trueTerms []trueTerm
	var total int64
	for j, term := range c.terms {
		if j == idx {
			continue
		}
		if t.IsTrue(term.Literal) {
			trueTerms = append(trueTerms, trueTerm{term.Literal, term.Coefficient})
			total += term.Coefficient
		}
	}
	sort.Slice(trueTerms, func(i, j int) bool { return trueTerms[i].coef < trueTerms[j].coef })

	coefIdx := c.terms[idx].Coefficient
	keep := make([]bool, len(trueTerms))
	remaining := total
	for i := range keep {
		keep[i] = true
	}
	for i, tt := range trueTerms {
		if c.rhs-(remaining-tt.coef) < coefIdx {
			remaining -= tt.coef
			keep[i] = false
		}
	}

	out := buf[:0]
	for i, tt := range trueTerms {
		if keep[i] {
			out = append(out, tt.lit)
		}
	}
	return out
}
