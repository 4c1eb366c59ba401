package sat

// sourceKind tags how a variable came to be assigned, one of the eight
// kinds enumerated in the data model: decision, root-level unit, binary
// propagation, clause propagation, PB propagation, symmetry propagation,
// same-reason-as, or a materialized cache entry.
type sourceKind uint8

const (
	sourceDecision sourceKind = iota
	sourceRootUnit
	sourceBinary
	sourceClause
	sourcePB
	sourceSymmetry
	sourceSameAs
	sourceCached
)

// reasonSource records enough information to reconstruct, on demand, the
// literals whose conjunction forced a variable's assignment. Only the
// fields relevant to its kind are meaningful.
type reasonSource struct {
	kind sourceKind

	// sourceBinary: the literal that was true and triggered the implication.
	cause Literal

	// sourceClause: the clause that propagated; by construction the
	// propagated literal is always clause.literals[0].
	clause *Clause

	// sourcePB: the constraint that propagated and the index of the
	// propagated term within it.
	pb        *pbConstraint
	pbTermIdx int

	// sourceSymmetry: the permutation used and the trail index of the
	// literal it was derived from.
	permIndex     int
	srcTrailIndex int

	// sourceSameAs: the variable whose reason this one shares.
	sameAsVar int
}

// Trail is the append-only record of literal assignments described in
// spec §4.1: constant-time truth queries, per-assignment metadata, and
// on-demand reason reconstruction.
type Trail struct {
	lits    []Literal
	level   []int          // per variable; -1 if unassigned
	posOf   []int          // per variable; trail index, -1 if unassigned
	assigns []LBool        // per literal index
	source  []reasonSource // per variable
	cached  [][]Literal    // per variable; non-nil once CacheReason was called

	trailLim []int // trail index at which each decision level started

	reasonScratch []Literal // reused buffer returned by Reason
}

// NewTrail returns an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// AddVariable grows the trail's metadata for one freshly declared variable.
func (t *Trail) AddVariable() {
	t.level = append(t.level, -1)
	t.posOf = append(t.posOf, -1)
	t.source = append(t.source, reasonSource{})
	t.cached = append(t.cached, nil)
	t.assigns = append(t.assigns, Unknown, Unknown)
}

// NumVariables returns the number of variables declared so far.
func (t *Trail) NumVariables() int {
	return len(t.level)
}

// DecisionLevel returns the current decision level. Level 0 holds
// permanent, root-level assignments.
func (t *Trail) DecisionLevel() int {
	return len(t.trailLim)
}

// NewDecisionLevel opens a new decision level starting at the trail's
// current size. Subsequent Enqueue calls are annotated with this level
// until the next NewDecisionLevel or backtrack.
func (t *Trail) NewDecisionLevel() {
	t.trailLim = append(t.trailLim, len(t.lits))
}

// LevelStart returns the trail index at which the given decision level
// began.
func (t *Trail) LevelStart(level int) int {
	if level == 0 {
		return 0
	}
	return t.trailLim[level-1]
}

// Len returns the number of literals currently on the trail.
func (t *Trail) Len() int {
	return len(t.lits)
}

// At returns the literal at the given trail index.
func (t *Trail) At(i int) Literal {
	return t.lits[i]
}

// Last returns the most recently enqueued literal.
func (t *Trail) Last() Literal {
	return t.lits[len(t.lits)-1]
}

// IsAssigned returns true iff variable v currently has a value.
func (t *Trail) IsAssigned(v int) bool {
	return t.posOf[v] >= 0
}

// LitValue returns the current truth value of l.
func (t *Trail) LitValue(l Literal) LBool {
	return t.assigns[l.Index()]
}

// IsTrue returns true iff l is currently assigned true.
func (t *Trail) IsTrue(l Literal) bool {
	return t.assigns[l.Index()] == True
}

// IsFalse returns true iff l is currently assigned false.
func (t *Trail) IsFalse(l Literal) bool {
	return t.assigns[l.Index()] == False
}

// VarLevel returns the decision level at which v was assigned, or -1 if it
// is unassigned.
func (t *Trail) VarLevel(v int) int {
	return t.level[v]
}

// LitLevel returns the decision level at which l's variable was assigned.
func (t *Trail) LitLevel(l Literal) int {
	return t.level[l.VarID()]
}

// TrailIndex returns the trail position of v's assignment, or -1 if it is
// unassigned.
func (t *Trail) TrailIndex(v int) int {
	return t.posOf[v]
}

// Enqueue records that l has just become true. The caller guarantees that
// l is currently unassigned and that src is consistent with the trail's
// state at this call.
func (t *Trail) Enqueue(l Literal, src reasonSource) {
	v := l.VarID()
	t.assigns[l.Index()] = True
	t.assigns[l.Opposite().Index()] = False
	t.level[v] = t.DecisionLevel()
	t.posOf[v] = len(t.lits)
	t.source[v] = src
	t.cached[v] = nil
	t.lits = append(t.lits, l)
}

// Dequeue removes the most recently assigned literal and clears its
// metadata. It is used only while backjumping.
func (t *Trail) Dequeue() Literal {
	l := t.lits[len(t.lits)-1]
	v := l.VarID()

	t.assigns[l.Index()] = Unknown
	t.assigns[l.Opposite().Index()] = Unknown
	t.level[v] = -1
	t.posOf[v] = -1
	t.source[v] = reasonSource{}
	t.cached[v] = nil
	t.lits = t.lits[:len(t.lits)-1]

	return l
}

// CloseDecisionLevel pops the most recently opened decision level boundary.
// It must be called once per NewDecisionLevel as the trail is unwound past
// it.
func (t *Trail) CloseDecisionLevel() {
	t.trailLim = t.trailLim[:len(t.trailLim)-1]
}

// CacheReason materializes a reason vector owned by the trail. Subsequent
// calls to Reason(v) return this slice directly until v is untrailed.
func (t *Trail) CacheReason(v int, literals []Literal) {
	cached := make([]Literal, len(literals))
	copy(cached, literals)
	t.cached[v] = cached
	t.source[v] = reasonSource{kind: sourceCached}
}

// Reason returns the literals whose conjunction justifies v's current
// assignment. For decision and root-unit sources it is empty. The returned
// slice is only valid until the next trail mutation unless it was produced
// via CacheReason.
func (t *Trail) Reason(v int) []Literal {
	return t.reason(v, 0)
}

// reason implements Reason with a recursion guard for the "same reason as"
// indirection, which is allowed to recurse exactly once.
func (t *Trail) reason(v int, depth int) []Literal {
	src := t.source[v]
	switch src.kind {
	case sourceDecision, sourceRootUnit:
		return nil
	case sourceBinary:
		t.reasonScratch = append(t.reasonScratch[:0], src.cause)
		return t.reasonScratch
	case sourceClause:
		src.clause.ExplainAssign(&t.reasonScratch)
		return t.reasonScratch
	case sourcePB:
		t.reasonScratch = src.pb.ReasonForTerm(t, src.pbTermIdx, t.reasonScratch[:0])
		return t.reasonScratch
	case sourceSymmetry:
		t.reasonScratch = append(t.reasonScratch[:0], t.lits[src.srcTrailIndex])
		return t.reasonScratch
	case sourceSameAs:
		if depth > 0 {
			panic("sat: same-reason-as chain longer than one hop")
		}
		return t.reason(src.sameAsVar, depth+1)
	case sourceCached:
		return t.cached[v]
	default:
		panic("sat: unknown reason source kind")
	}
}

// MarkSameReasonAs rewrites v's source so that its reason is shared with
// ref's. No propagator in this package calls it; the symmetry propagator
// is not implemented.
func (t *Trail) MarkSameReasonAs(v int, ref int) {
	t.source[v] = reasonSource{kind: sourceSameAs, sameAsVar: ref}
}
