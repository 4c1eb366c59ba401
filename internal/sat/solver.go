package sat

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/orsuite/satcore/internal/searchlog"
)

// Status, the result type of Solve, is defined in status.go.

// Solver ties together the trail (C2), clause watchers (C4), binary
// implication graph (C5), PB engine (C6), conflict analyzer (C7),
// decision heuristic (C8), and restart/database manager (C9) into the
// search driver described by spec §4.8. Component C10.
type Solver struct {
	trail   *Trail
	watches *watchList
	binary  *binaryImplicationGraph
	pb      *pbEngine
	proof   *proofGraph

	varOrder *VarOrder
	restarts *restartManager

	params Parameters

	propQueue *Queue[Literal]

	constraints   []*Clause
	learnts       []*Clause
	pbConstraints []*pbConstraint
	learntPBs     []*pbConstraint

	// originalConstraintCount assigns a single monotonic index shared by
	// clauses and PB constraints alike, so that ComputeUnsatCore's leaf
	// indices unambiguously identify one originally-added constraint
	// regardless of its kind.
	originalConstraintCount int

	clauseInc float64

	posOcc, negOcc []int64 // per variable, literal occurrence counts seen so far

	polaritiesApplied bool

	unsat bool

	numAssumptions              int
	lastIncompatibleAssumptions []Literal

	// unsatRoot is the proof handle of the empty clause derived by the most
	// recent StatusModelUnsat result, or noProofHandle if proofs are
	// disabled or no such result has occurred yet.
	unsatRoot proofHandle

	// Scratch buffers shared across conflict analysis calls.
	seen            ResetSet
	reasonBuf       []Literal
	learntScratch   []Literal
	minimizeStack   []Literal
	minimizeVisited ResetSet
	reachStack      []Literal
	reachVisited    ResetSet
	lbdSeen         []uint32
	lbdStamp        uint32
	proofParents    []proofHandle

	// Statistics.
	TotalConflicts       int64
	TotalRestarts        int64
	TotalIterations      int64
	TotalPropagations    int64
	TotalLearnedLiterals int64
	startTime            time.Time

	interrupt atomic.Bool

	Models [][]bool

	log *searchlog.Logger
}

// NewSolver returns an empty solver configured with p.
func NewSolver(p Parameters) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "sat: invalid parameters")
	}
	s := &Solver{
		trail:     NewTrail(),
		watches:   newWatchList(),
		binary:    newBinaryImplicationGraph(),
		pb:        newPBEngine(),
		params:    p,
		propQueue: NewQueue[Literal](128),
		clauseInc: 1,
		varOrder:  NewVarOrder(p),
		log:       searchlog.New(p.LogSearchProgress),
		unsatRoot: noProofHandle,
	}
	s.restarts = newRestartManager(p)
	if p.UnsatProof {
		s.proof = newProofGraph()
	}
	return s, nil
}

// SetParameters replaces the solver's live parameters. It may be called
// between solves (not while a search is in progress).
func (s *Solver) SetParameters(p Parameters) error {
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "sat: invalid parameters")
	}
	s.params = p
	s.restarts.params = p
	s.varOrder.scoreDecay = p.VariableActivityDecay
	s.varOrder.phaseSaving = p.UsePhaseSaving
	s.varOrder.randomBranchRatio = p.RandomBranchesRatio
	s.varOrder.randomPolarityRatio = p.RandomPolarityRatio
	s.log = searchlog.New(p.LogSearchProgress)
	if p.UnsatProof && s.proof == nil {
		s.proof = newProofGraph()
	}
	return nil
}

// Interrupt requests that any in-progress Solve return at the next safe
// point, with StatusLimitReached. Safe to call from another goroutine.
func (s *Solver) Interrupt() {
	s.interrupt.Store(true)
}

// NumVariables returns the number of declared variables.
func (s *Solver) NumVariables() int { return s.trail.NumVariables() }

// AddVariable declares one fresh variable and returns its id.
func (s *Solver) AddVariable() int {
	id := s.trail.NumVariables()
	s.trail.AddVariable()
	s.watches.addVariable()
	s.binary.addVariable()
	s.pb.addVariable()
	s.seen.Expand()
	s.minimizeVisited.Expand()
	s.reachVisited.Expand()
	s.posOcc = append(s.posOcc, 0)
	s.negOcc = append(s.negOcc, 0)

	phase := True
	switch s.params.InitialPolarity {
	case PolarityFalse:
		phase = False
	case PolarityRandom:
		phase = Lift(s.varOrder.rng.Intn(2) == 0)
	}
	s.varOrder.AddVar(0, phase)
	return id
}

// SetNumVariables grows the solver to have exactly n variables.
func (s *Solver) SetNumVariables(n int) {
	for s.trail.NumVariables() < n {
		s.AddVariable()
	}
}

// SetAssignmentPreference overrides the saved phase used for v's next
// decision, without affecting VSIDS activity.
func (s *Solver) SetAssignmentPreference(v int, preferTrue bool) {
	s.varOrder.phases[v] = Lift(preferTrue)
}

// applyInitialPolarities sets the saved phase of every variable not yet
// assigned from its literal occurrence counts, for the two
// InitialPolarity modes that need them (PolarityTrue/False/Random are
// already seeded at AddVariable time). It runs once, lazily, on the first
// Solve call: occurrence counts are only final once every problem clause
// and constraint has been added, which AddVariable cannot know in
// advance.
func (s *Solver) applyInitialPolarities() {
	if s.polaritiesApplied {
		return
	}
	s.polaritiesApplied = true
	weighted := s.params.InitialPolarity == PolarityWeightedSign
	reverse := s.params.InitialPolarity == PolarityReverseWeightedSign
	if !weighted && !reverse {
		return
	}
	for v := 0; v < s.trail.NumVariables(); v++ {
		if s.trail.IsAssigned(v) {
			continue
		}
		positive := s.posOcc[v] >= s.negOcc[v]
		if reverse {
			positive = !positive
		}
		s.varOrder.phases[v] = Lift(positive)
	}
}

func (s *Solver) countOccurrences(literals []Literal) {
	for _, l := range literals {
		if l.IsPositive() {
			s.posOcc[l.VarID()]++
		} else {
			s.negOcc[l.VarID()]++
		}
	}
}

// ErrUnsat is returned by the Add* constructors when the constraint being
// added makes the problem immediately, unconditionally unsatisfiable (an
// empty clause, or a PB constraint with negative slack at the root level).
// It is the Go-idiomatic counterpart to the "returns false" UNSAT-at-add-time
// signal: existing constraints are still installed as far as they can be,
// and Solve will report StatusModelUnsat, but the caller learns about it
// immediately rather than only at the next Solve call.
var ErrUnsat = errors.New("sat: problem is unsatisfiable")

// AddUnitClause asserts l permanently.
func (s *Solver) AddUnitClause(l Literal) error {
	return s.AddProblemClause([]Literal{l})
}

// AddBinaryClause adds (a ∨ b), routed through the dedicated binary
// implication graph (C5) rather than the general watcher mechanism. When
// Parameters.TreatBinaryClausesSeparately is off, the clause goes through
// AddProblemClause instead. The same happens when Parameters.UnsatProof
// is set, since the implication graph does not carry a proof node per
// edge; this keeps every tracked clause's provenance uniform at the cost
// of losing the dedicated binary propagator's speed for proof-producing
// runs.
func (s *Solver) AddBinaryClause(a, b Literal) error {
	if s.trail.DecisionLevel() != 0 {
		return errors.New("sat: AddBinaryClause called above the root decision level")
	}
	if s.proof != nil || !s.params.TreatBinaryClausesSeparately {
		return s.AddProblemClause([]Literal{a, b})
	}
	s.countOccurrences([]Literal{a, b})
	lits := []Literal{a, b}
	size, alwaysTrue := canonicalizeClauseLiterals(s, lits)
	if alwaysTrue {
		return nil
	}
	lits = lits[:size]
	switch size {
	case 0:
		s.unsat = true
		return ErrUnsat
	case 1:
		if !s.enqueue(lits[0], reasonSource{kind: sourceRootUnit}) {
			s.unsat = true
			return ErrUnsat
		}
	default:
		s.binary.AddClause(lits[0], lits[1])
	}
	return nil
}

// AddTernaryClause adds (a ∨ b ∨ c) as a regular watched clause.
func (s *Solver) AddTernaryClause(a, b, c Literal) error {
	return s.AddProblemClause([]Literal{a, b, c})
}

// AddProblemClause adds an n-ary clause, valid only at the root decision
// level.
func (s *Solver) AddProblemClause(literals []Literal) error {
	if s.trail.DecisionLevel() != 0 {
		return errors.New("sat: AddProblemClause called above the root decision level")
	}
	s.countOccurrences(literals)

	lits := append([]Literal(nil), literals...)
	size, alwaysTrue := canonicalizeClauseLiterals(s, lits)
	if alwaysTrue {
		return nil
	}
	lits = lits[:size]

	switch size {
	case 0:
		s.unsat = true
		return ErrUnsat
	case 1:
		if !s.enqueue(lits[0], reasonSource{kind: sourceRootUnit}) {
			s.unsat = true
			return ErrUnsat
		}
	default:
		c := newClause(s, lits, false)
		if s.proof != nil {
			c.proofNode = s.proof.AddLeaf(s.originalConstraintCount)
		}
		s.originalConstraintCount++
		s.constraints = append(s.constraints, c)
	}
	return nil
}

// AddLinearConstraint adds the pseudo-Boolean constraint Σ terms ≤ rhs,
// canonicalizing it per spec §4.4 and degenerating it to a clause or
// discarding it as trivially true when applicable.
func (s *Solver) AddLinearConstraint(terms []Term, rhs int64) error {
	if s.trail.DecisionLevel() != 0 {
		return errors.New("sat: AddLinearConstraint called above the root decision level")
	}
	raw := make([]rawTerm, len(terms))
	for i, t := range terms {
		raw[i] = rawTerm{Literal: t.Literal, Coefficient: t.Coefficient}
	}
	canon, outRHS, unsat := canonicalizeRaw(s, raw, rhs)
	if unsat {
		s.unsat = true
		return ErrUnsat
	}
	if len(canon) == 0 {
		return nil
	}
	maxVal := maxValueOf(canon)
	if outRHS >= maxVal {
		return nil
	}
	if maxVal-minCoefficient(canon) <= outRHS {
		return s.AddProblemClause(degenerateClause(canon))
	}

	c := &pbConstraint{terms: canon, rhs: outRHS, maxValue: maxVal, proofNode: noProofHandle}
	if s.proof != nil {
		c.proofNode = s.proof.AddLeaf(s.originalConstraintCount)
	}
	s.originalConstraintCount++
	s.pbConstraints = append(s.pbConstraints, c)
	s.pb.Attach(s, c)
	if c.slack < 0 {
		s.unsat = true
		return ErrUnsat
	}
	return nil
}

// enqueue records l as true with the given justification, returning false
// if l was already assigned to the opposite value.
func (s *Solver) enqueue(l Literal, src reasonSource) bool {
	switch s.trail.LitValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		s.trail.Enqueue(l, src)
		s.propQueue.Push(l)
		return true
	}
}

// propagate drains the propagation queue, notifying the binary graph, the
// PB engine, and the clause watchers for every literal that becomes true,
// and returns the first conflict encountered.
func (s *Solver) propagate() (searchConflict, bool) {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()
		s.TotalPropagations++

		if conflict, ok := s.binary.Propagate(s, l); ok {
			s.propQueue.Clear()
			return conflict, true
		}
		if conflict, ok := s.pb.OnAssignTrue(s, l); ok {
			s.propQueue.Clear()
			return conflict, true
		}
		if c := s.watches.Propagate(s, l); c != nil {
			s.propQueue.Clear()
			return searchConflict{kind: conflictClause, clause: c}, true
		}
	}
	return searchConflict{}, false
}

func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		s.clauseInc *= 1e-100
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
	}
}

func (s *Solver) bumpVarActivity(v int) {
	s.varOrder.BumpScore(v)
}

func (s *Solver) decayActivities() {
	s.clauseInc /= s.params.ClauseActivityDecay
	s.varOrder.DecayScores()
}

// assume opens a new decision level and enqueues l as a decision.
func (s *Solver) assume(l Literal) bool {
	s.trail.NewDecisionLevel()
	return s.enqueue(l, reasonSource{kind: sourceDecision})
}

func (s *Solver) undoOne() {
	l := s.trail.Dequeue()
	v := l.VarID()
	s.varOrder.Reinsert(v, Lift(l.IsPositive()))
	s.pb.OnUnassign(l)
}

// Backtrack unwinds the trail to the given decision level. Pending
// propagations are discarded only when at least one level is undone, so
// root-level units still waiting in the queue survive a Backtrack(0) made
// at level 0.
func (s *Solver) Backtrack(level int) {
	for s.trail.DecisionLevel() > level {
		start := s.trail.LevelStart(s.trail.DecisionLevel())
		for s.trail.Len() > start {
			s.undoOne()
		}
		s.trail.CloseDecisionLevel()
		s.propQueue.Clear()
	}
}

// analyzeConflict dispatches to the clause/binary or PB analyzer and
// normalizes the result: a PB conflict that does not degenerate to a
// clause yields a non-nil learntPB instead. backtrack is -1 if the
// conflict is unconditionally unsatisfiable (no assumptions can save it).
func (s *Solver) analyzeConflict(conflict searchConflict) (learnt []Literal, learntPB *pbConstraint, backtrack int, lbd int) {
	s.proofParents = s.proofParents[:0]
	if conflict.kind == conflictPB {
		cls, pb, bt := s.analyzePB(conflict)
		if bt < 0 {
			return nil, nil, -1, 0
		}
		return cls, pb, bt, 0
	}
	cls, bt, l := s.analyze(conflict)
	return cls, nil, bt, l
}

func (s *Solver) recordClause(lits []Literal, lbd int) *Clause {
	if len(lits) == 1 {
		// A unit learnt clause is asserted at level 0 (its backjump
		// level) as a permanent root-level fact; it is not stored.
		s.TotalLearnedLiterals++
		s.enqueue(lits[0], reasonSource{kind: sourceRootUnit})
		return nil
	}
	c := newClause(s, lits, true)
	c.lbd = lbd
	if s.proof != nil {
		c.proofNode = s.proof.AddResolution(s.proofParents)
	}
	s.learnts = append(s.learnts, c)
	s.TotalLearnedLiterals += int64(len(lits))
	s.enqueue(lits[0], reasonSource{kind: sourceClause, clause: c})
	return c
}

func (s *Solver) recordPB(pb *pbConstraint) {
	pb.status |= clauseLearnt
	if s.proof != nil {
		pb.proofNode = s.proof.AddResolution(s.proofParents)
	}
	s.learntPBs = append(s.learntPBs, pb)
	s.TotalLearnedLiterals += int64(len(pb.terms))
	s.pb.Attach(s, pb)
	pb.propagateForced(s)
}

// collectIncompatibleAssumptions extracts, from a learnt clause whose
// derivation depended on assumption decisions, the subset of assumptions
// actually involved: learnt holds the negation of every currently-true
// literal it depends on, so an assumption decision appearing there
// negates back to the assumption literal itself.
func (s *Solver) collectIncompatibleAssumptions(learnt []Literal) []Literal {
	out := s.lastIncompatibleAssumptions[:0]
	for _, l := range learnt {
		v := l.VarID()
		lvl := s.trail.VarLevel(v)
		if lvl >= 1 && lvl <= s.numAssumptions && s.trail.source[v].kind == sourceDecision {
			out = append(out, l.Opposite())
		}
	}
	s.lastIncompatibleAssumptions = out
	return out
}

// GetLastIncompatibleDecisions returns the assumption literals implicated
// by the most recent StatusAssumptionsUnsat result.
func (s *Solver) GetLastIncompatibleDecisions() []Literal {
	return s.lastIncompatibleAssumptions
}

// ComputeUnsatCore returns the original clause/constraint indices the last
// StatusModelUnsat result was derived from. It requires Parameters.UnsatProof
// and returns nil otherwise. Root-level (level 0) assignments are not
// traced: unit clauses, original or learned, get no proof node, and
// conflict analysis skips level-0 literals, so the core can leave out the
// unit clauses and the constraints that fixed literals at the root level.
// The returned set is therefore not always unsatisfiable on its own.
func (s *Solver) ComputeUnsatCore() []int {
	if s.proof == nil || s.unsatRoot == noProofHandle {
		return nil
	}
	return s.proof.ComputeUnsatCore(s.unsatRoot)
}

// Assignment returns the current value of variable v.
func (s *Solver) Assignment(v int) LBool {
	return s.trail.LitValue(PositiveLiteral(v))
}

func (s *Solver) saveModel() {
	model := make([]bool, s.trail.NumVariables())
	for v := range model {
		model[v] = s.trail.IsTrue(PositiveLiteral(v))
	}
	s.Models = append(s.Models, model)
}

func (s *Solver) shouldStop() bool {
	if s.interrupt.Load() {
		return true
	}
	if s.params.MaxNumberOfConflicts > 0 && s.TotalConflicts >= s.params.MaxNumberOfConflicts {
		return true
	}
	if s.params.MaxTimeInSeconds > 0 && time.Since(s.startTime).Seconds() >= s.params.MaxTimeInSeconds {
		return true
	}
	if s.params.MaxMemoryInMB > 0 {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		if mem.Alloc/(1<<20) >= uint64(s.params.MaxMemoryInMB) {
			return true
		}
	}
	return false
}

// EnqueueDecisionIfNotConflicting opens a new decision level with l, and
// propagates. It returns true iff no conflict resulted: false if l was
// already false at the current level (the decision is left unmade) or if
// propagating l produced a conflict; it does not itself resolve conflicts
// arising from propagation.
func (s *Solver) EnqueueDecisionIfNotConflicting(l Literal) bool {
	if s.trail.LitValue(l) == False {
		return false
	}
	s.assume(l)
	_, conflicted := s.propagate()
	return !conflicted
}

// EnqueueDecisionAndBackjumpOnConflict pushes l as a decision, propagates,
// and if that conflicts, analyzes and backjumps exactly as the main search
// loop would, returning the resulting status.
func (s *Solver) EnqueueDecisionAndBackjumpOnConflict(l Literal) Status {
	s.assume(l)
	conflict, ok := s.propagate()
	if !ok {
		return StatusUnknown
	}
	return s.resolveConflict(conflict)
}

// resolveConflict runs one round of analyze+backjump+record for conflict,
// returning StatusModelUnsat if it proves the root unsatisfiable,
// StatusAssumptionsUnsat if it proves the current assumptions
// inconsistent, and StatusUnknown otherwise.
func (s *Solver) resolveConflict(conflict searchConflict) Status {
	s.TotalConflicts++

	if s.trail.DecisionLevel() == s.numAssumptions && conflict.kind != conflictPB {
		var out []Literal
		conflict.explainFailure(&out)
		allRoot := true
		for _, l := range out {
			if s.trail.VarLevel(l.VarID()) > s.numAssumptions {
				allRoot = false
				break
			}
		}
		if allRoot && s.trail.DecisionLevel() == 0 {
			s.unsat = true
			if s.proof != nil {
				// The falsified literals were fixed by prior root-level
				// unit propagation rather than by a decision; tracing that
				// whole chain back through the proof DAG is not attempted
				// here, so the core recorded for this case is approximate:
				// it cites only the constraint found conflicting, not the
				// chain of unit clauses that forced its literals.
				var parent proofHandle
				switch conflict.kind {
				case conflictClause:
					parent = conflict.clause.proofNode
				case conflictPB:
					parent = conflict.pb.proofNode
				default:
					parent = noProofHandle
				}
				s.unsatRoot = s.proof.AddResolution([]proofHandle{parent})
			}
			return StatusModelUnsat
		}
	}

	learnt, learntPB, backtrack, lbd := s.analyzeConflict(conflict)
	if backtrack < 0 {
		s.unsat = true
		s.Backtrack(0)
		if s.proof != nil {
			s.unsatRoot = s.proof.AddResolution(s.proofParents)
		}
		return StatusModelUnsat
	}

	if backtrack < s.numAssumptions {
		core := learnt
		if core == nil {
			core = degenerateClause(learntPB.terms)
		}
		s.collectIncompatibleAssumptions(core)
		s.Backtrack(0)
		return StatusAssumptionsUnsat
	}

	s.Backtrack(backtrack)
	if learnt != nil {
		s.recordClause(learnt, lbd)
	} else {
		s.recordPB(learntPB)
	}
	s.decayActivities()
	s.restarts.MaybeBumpDecay(s)
	s.restarts.OnConflict(lbd)

	return StatusUnknown
}

// search runs the main CDCL loop until a model is found, UNSAT is proven,
// a resource limit is hit, or an assumption conflict is found.
func (s *Solver) search() Status {
	for {
		if s.shouldStop() {
			return StatusLimitReached
		}
		s.TotalIterations++
		if s.TotalIterations%5000 == 0 {
			s.log.Progress(s.TotalIterations, s.TotalConflicts, s.TotalRestarts, len(s.learnts), len(s.learntPBs))
		}

		conflict, ok := s.propagate()
		if ok {
			status := s.resolveConflict(conflict)
			if status != StatusUnknown {
				return status
			}
			continue
		}

		if s.trail.DecisionLevel() == 0 {
			s.simplify()
		}

		if len(s.learnts) > 0 && s.TotalConflicts > 0 &&
			float64(len(s.learnts)) >= float64(s.params.ClauseCleanupIncrement)*float64(s.trail.NumVariables()+1) {
			s.restarts.ReduceDB(s)
			s.restarts.ReducePBDB(s)
		}

		if s.restarts.ShouldRestart() {
			s.restarts.NextRestart()
			s.TotalRestarts++
			s.Backtrack(s.numAssumptions)
			continue
		}

		if s.trail.Len() == s.trail.NumVariables() {
			s.saveModel()
			return StatusModelSat
		}

		next, ok := s.varOrder.NextDecision(s)
		if !ok {
			s.saveModel()
			return StatusModelSat
		}
		s.assume(next)
	}
}

// simplify drops root-level-satisfied clauses and constraints. Only valid
// at decision level 0.
func (s *Solver) simplify() {
	if s.unsat {
		return
	}
	j := 0
	for _, c := range s.constraints {
		if c.Simplify(s) {
			c.Delete(s)
		} else {
			s.constraints[j] = c
			j++
		}
	}
	s.constraints = s.constraints[:j]

	j = 0
	for _, c := range s.learnts {
		if !c.isProtected() && !c.locked(s) && c.Simplify(s) {
			c.Delete(s)
		} else {
			s.learnts[j] = c
			j++
		}
	}
	s.learnts = s.learnts[:j]
}

// Solve runs the solver from scratch with no assumptions.
func (s *Solver) Solve() Status {
	return s.solveWithAssumptions(nil)
}

// ResetAndSolveWithGivenAssumptions backtracks to the root and solves
// again with the given assumption literals held fixed for this call.
func (s *Solver) ResetAndSolveWithGivenAssumptions(assumptions []Literal) Status {
	s.Backtrack(0)
	return s.solveWithAssumptions(assumptions)
}

// SetAssumptionLevel is a hint that assumptions up to this many decisions
// are considered "fixed" for the purposes of restart backjumping; it must
// only be called at decision level 0.
func (s *Solver) SetAssumptionLevel(n int) error {
	if s.trail.DecisionLevel() != 0 {
		return errors.New("sat: SetAssumptionLevel called above the root decision level")
	}
	s.numAssumptions = n
	return nil
}

func (s *Solver) solveWithAssumptions(assumptions []Literal) Status {
	if s.unsat {
		return StatusModelUnsat
	}
	s.startTime = time.Now()
	s.log.Start()
	s.interrupt.Store(false)
	s.applyInitialPolarities()

	if conflict, ok := s.propagate(); ok {
		if status := s.resolveConflict(conflict); status != StatusUnknown {
			s.log.Result(status.String())
			return status
		}
	}

	s.numAssumptions = 0
	for _, a := range assumptions {
		if !s.assume(a) {
			s.lastIncompatibleAssumptions = append(s.lastIncompatibleAssumptions[:0], a)
			s.Backtrack(0)
			s.log.Result(StatusAssumptionsUnsat.String())
			return StatusAssumptionsUnsat
		}
		s.numAssumptions++
		conflict, ok := s.propagate()
		if !ok {
			continue
		}
		status := s.resolveConflict(conflict)
		if status == StatusUnknown {
			continue
		}
		s.log.Result(status.String())
		return status
	}

	status := s.search()
	s.log.Result(status.String())
	return status
}
