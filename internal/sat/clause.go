package sat

import "strings"

type clauseStatus uint8

const (
	clauseDeleted   clauseStatus = 0b001
	clauseLearnt    clauseStatus = 0b010
	clauseProtected clauseStatus = 0b100
)

// Clause is an n-ary, immutable-after-attach vector of literals with two
// designated watched positions (always literals[0] and literals[1]).
type Clause struct {
	literals []Literal
	activity float64
	lbd      int

	// prevPos resumes the search for a new literal to watch from the
	// position at which the last one was found, instead of always
	// restarting from index 2.
	prevPos int

	status clauseStatus

	// proofNode is the handle of this clause's node in the proof graph, or
	// noProofHandle if proofs are disabled.
	proofNode proofHandle
}

func (c *Clause) isDeleted() bool   { return c.status&clauseDeleted != 0 }
func (c *Clause) IsLearnt() bool    { return c.status&clauseLearnt != 0 }
func (c *Clause) isProtected() bool { return c.status&clauseProtected != 0 }
func (c *Clause) setProtected()     { c.status |= clauseProtected }
func (c *Clause) setUnprotected()   { c.status &^= clauseProtected }

// Literals returns the clause's current literals. The returned slice must
// not be mutated by the caller.
func (c *Clause) Literals() []Literal { return c.literals }

// LBD returns the clause's literal block distance.
func (c *Clause) LBD() int { return c.lbd }

// Activity returns the clause's current activity score.
func (c *Clause) Activity() float64 { return c.activity }

// newClause builds and attaches a clause from literals already known to
// survive simplification (size >= 2 in both cases; for problem clauses
// also no duplicate/opposite literals and no literal with a fixed
// root-level value). The watch invariant is established
// here: for learnt clauses, the second watched literal is the one with the
// highest decision level so that the clause propagates or conflicts as
// soon as it is attached.
func newClause(s *Solver, literals []Literal, learnt bool) *Clause {
	c := &Clause{
		literals: append([]Literal(nil), literals...),
		prevPos:  2,
		proofNode: noProofHandle,
	}
	if learnt {
		c.status |= clauseLearnt

		maxLevel, wl := -1, 1
		for i, l := range c.literals {
			if lvl := s.trail.LitLevel(l); lvl > maxLevel {
				maxLevel, wl = lvl, i
			}
		}
		c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
	}

	s.watches.Watch(c, c.literals[0].Opposite(), c.literals[1])
	s.watches.Watch(c, c.literals[1].Opposite(), c.literals[0])

	return c
}

// canonicalizeClauseLiterals removes duplicate literals, detects
// always-true clauses (opposite literals both present, or a literal
// already true), and drops literals already false at the root level. It
// returns the new size and whether the clause is always true; a clause
// found to be trivially true returns alwaysTrue=true.
func canonicalizeClauseLiterals(s *Solver, literals []Literal) (size int, alwaysTrue bool) {
	size = len(literals)
	seen := make(map[Literal]struct{}, size)

	for i := size - 1; i >= 0; i-- {
		if _, ok := seen[literals[i].Opposite()]; ok {
			return size, true
		}
		if _, ok := seen[literals[i]]; ok {
			size--
			literals[i], literals[size] = literals[size], literals[i]
			continue
		}
		seen[literals[i]] = struct{}{}

		switch s.trail.LitValue(literals[i]) {
		case True:
			return size, true
		case False:
			size--
			literals[i], literals[size] = literals[size], literals[i]
		}
	}
	return size, false
}

func (c *Clause) locked(s *Solver) bool {
	return s.trail.source[c.literals[0].VarID()].kind == sourceClause &&
		s.trail.source[c.literals[0].VarID()].clause == c
}

// Delete detaches the clause from the watch lists and releases its proof
// node, if any. The literal slice is dropped so the backing array can be
// collected even if the Clause struct itself is still reachable from a
// stale reference.
func (c *Clause) Delete(s *Solver) {
	c.status |= clauseDeleted
	s.watches.Unwatch(c, c.literals[0].Opposite())
	s.watches.Unwatch(c, c.literals[1].Opposite())
	if s.proof != nil && c.proofNode != noProofHandle {
		s.proof.decRef(c.proofNode)
	}
	c.literals = nil
}

// Simplify removes literals that are false at the root level and reports
// whether the clause is now satisfied at the root level (in which case the
// caller should delete it).
func (c *Clause) Simplify(s *Solver) bool {
	k := 0
	for _, l := range c.literals {
		switch s.trail.LitValue(l) {
		case True:
			return true
		case False:
			// drop
		default:
			c.literals[k] = l
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// Propagate is invoked by the watch list when l has just become true, so
// that the watched literal l.Opposite() has just become false. It implements the
// scan described in spec §4.2: find a new non-false literal to watch, or
// report the clause as conflicting by returning false.
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], opp
	}

	if s.trail.LitValue(c.literals[0]) == True {
		s.watches.Watch(c, l, c.literals[0])
		return true
	}

	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i := c.prevPos; i < len(c.literals); i++ {
		if s.trail.LitValue(c.literals[i]) != False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], l.Opposite()
			s.watches.Watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}
	for i := 2; i < c.prevPos; i++ {
		if s.trail.LitValue(c.literals[i]) != False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], l.Opposite()
			s.watches.Watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	// Every other literal is false: literals[0] must be true.
	s.watches.Watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], reasonSource{kind: sourceClause, clause: c})
}

// ExplainFailure replaces *out's contents with the negation of every literal of a
// clause currently falsified in full (used when the clause itself is the
// conflict).
func (c *Clause) ExplainFailure(out *[]Literal) {
	exp := (*out)[:0]
	for _, l := range c.literals {
		exp = append(exp, l.Opposite())
	}
	*out = exp
}

// ExplainAssign replaces *out's contents with the negation of every literal but the
// first (the propagated one), i.e. the set of currently-true literals that
// justify literals[0].
func (c *Clause) ExplainAssign(out *[]Literal) {
	exp := (*out)[:0]
	for _, l := range c.literals[1:] {
		exp = append(exp, l.Opposite())
	}
	*out = exp
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
