package sat

// binaryImplicationGraph is a dedicated propagator for 2-literal clauses,
// stored as an adjacency list of implications rather than through the
// general watcher mechanism. Component C5.
//
// A binary clause (a ∨ b) is equivalent to the two implications ¬a⇒b and
// ¬b⇒a; both are recorded so that propagation never needs to look at the
// clause's literals, only at which side became true.
type binaryImplicationGraph struct {
	implications [][]Literal // indexed by Literal.Index() of the *triggering* literal
}

func newBinaryImplicationGraph() *binaryImplicationGraph {
	return &binaryImplicationGraph{}
}

func (g *binaryImplicationGraph) addVariable() {
	g.implications = append(g.implications, nil, nil)
}

// AddClause registers the binary clause (a ∨ b).
func (g *binaryImplicationGraph) AddClause(a, b Literal) {
	g.implications[a.Opposite().Index()] = append(g.implications[a.Opposite().Index()], b)
	g.implications[b.Opposite().Index()] = append(g.implications[b.Opposite().Index()], a)
}

// Implied returns the literals directly implied by trueLiteral being true.
// Used by clause-learning minimization (reachability) rather than by
// propagation.
func (g *binaryImplicationGraph) Implied(trueLiteral Literal) []Literal {
	return g.implications[trueLiteral.Index()]
}

// Propagate is invoked when trueLiteral has just become true. It enqueues
// every literal directly implied by it, and reports the first conflict
// found, if any, as the pair of (false) clause literals.
func (g *binaryImplicationGraph) Propagate(s *Solver, trueLiteral Literal) (conflict searchConflict, ok bool) {
	for _, l := range g.implications[trueLiteral.Index()] {
		switch s.trail.LitValue(l) {
		case True:
			continue
		case False:
			return searchConflict{
				kind: conflictBinary,
				binA: trueLiteral.Opposite(),
				binB: l,
			}, true
		default:
			s.enqueue(l, reasonSource{kind: sourceBinary, cause: trueLiteral})
		}
	}
	return searchConflict{}, false
}
