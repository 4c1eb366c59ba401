package sat

// analyze implements 1-UIP conflict analysis (spec §4.5) for a
// conflictClause or conflictBinary conflict: it walks the trail backward,
// resolving away every literal at the current decision level but one, and
// returns the learned clause (asserting literal first), the backjump
// level, and the clause's LBD.
func (s *Solver) analyze(conflict searchConflict) (learnt []Literal, backtrackLevel int, lbd int) {
	s.seen.Clear()
	curLevel := s.trail.DecisionLevel()

	learnt = append(s.learntScratch[:0], 0) // placeholder for the asserting literal

	reason := s.reasonBuf[:0]
	conflict.explainFailure(&reason)
	if conflict.kind == conflictClause {
		s.bumpClauseActivity(conflict.clause)
		if s.proof != nil {
			s.proofParents = append(s.proofParents, conflict.clause.proofNode)
		}
	}

	counter := 0
	trailIdx := s.trail.Len() - 1
	var p Literal

	for {
		for _, q := range reason {
			v := q.VarID()
			if s.seen.Contains(v) || s.trail.VarLevel(v) == 0 {
				continue
			}
			s.seen.Add(v)
			s.bumpVarActivity(v)
			if s.trail.VarLevel(v) == curLevel {
				counter++
			} else {
				learnt = append(learnt, q.Opposite())
			}
		}

		for {
			p = s.trail.At(trailIdx)
			trailIdx--
			if s.seen.Contains(p.VarID()) {
				break
			}
		}
		counter--
		if counter == 0 {
			break
		}

		v := p.VarID()
		if src := s.trail.source[v]; src.kind == sourceClause {
			s.bumpClauseActivity(src.clause)
			if s.proof != nil {
				s.proofParents = append(s.proofParents, src.clause.proofNode)
			}
		}
		reason = s.trail.Reason(v)
	}

	learnt[0] = p.Opposite()

	backtrackLevel = 0
	if len(learnt) > 1 {
		maxLvl, maxIdx := -1, 1
		for i := 1; i < len(learnt); i++ {
			if lvl := s.trail.LitLevel(learnt[i]); lvl > maxLvl {
				maxLvl, maxIdx = lvl, i
			}
		}
		learnt[1], learnt[maxIdx] = learnt[maxIdx], learnt[1]
		backtrackLevel = maxLvl
	}

	learnt = s.minimize(learnt)
	lbd = s.computeLBD(learnt)
	s.learntScratch = learnt
	return learnt, backtrackLevel, lbd
}

// minimize drops learnt literals subsumed by the rest of the clause, per
// Parameters.MinimizationAlgorithm and, on top of that,
// Parameters.BinaryMinimizationAlgorithm.
func (s *Solver) minimize(learnt []Literal) []Literal {
	if s.params.MinimizationAlgorithm == MinimizeNone {
		return learnt
	}

	out := learnt[:1]
	for _, l := range learnt[1:] {
		if !s.litRedundant(l) {
			out = append(out, l)
		}
	}

	switch s.params.BinaryMinimizationAlgorithm {
	case BinaryMinimizeReachability, BinaryMinimizeExperimental:
		out = s.minimizeByReachability(out)
	case BinaryMinimizeFirst:
		out = s.minimizeByFirstBinary(out)
	}
	return out
}

// minimizeByFirstBinary drops a learnt literal a when some other literal
// already in the clause is a direct (one-edge) binary implication of a,
// without following the transitive closure minimizeByReachability does.
// Cheaper per literal, catches fewer redundancies.
func (s *Solver) minimizeByFirstBinary(learnt []Literal) []Literal {
	out := learnt[:1]
	for _, a := range learnt[1:] {
		redundant := false
		for _, l := range s.binary.Implied(a) {
			if l != a {
				for _, other := range learnt {
					if other != a && other == l {
						redundant = true
						break
					}
				}
			}
			if redundant {
				break
			}
		}
		if !redundant {
			out = append(out, a)
		}
	}
	return out
}

// litRedundant reports whether l, a non-asserting learnt literal, is
// implied by literals already accounted for (marked in s.seen) and so can
// be dropped from the learned clause. Simple minimization checks only l's
// immediate reason; recursive minimization follows the reason chain with
// an explicit stack (the chains this walks can be long enough that
// unbounded Go-stack recursion is worth avoiding).
func (s *Solver) litRedundant(l Literal) bool {
	v := l.VarID()
	src := s.trail.source[v]
	if src.kind == sourceDecision || src.kind == sourceRootUnit {
		return false
	}

	reason := s.trail.Reason(v)
	if s.params.MinimizationAlgorithm == MinimizeSimple {
		for _, r := range reason {
			rv := r.VarID()
			if s.trail.VarLevel(rv) != 0 && !s.seen.Contains(rv) {
				return false
			}
		}
		return true
	}

	stack := append(s.minimizeStack[:0], reason...)
	s.minimizeVisited.Clear()
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rv := r.VarID()
		if s.trail.VarLevel(rv) == 0 || s.seen.Contains(rv) {
			continue
		}
		if s.trail.source[rv].kind == sourceDecision {
			s.minimizeStack = stack
			return false
		}
		if s.minimizeVisited.Contains(rv) {
			continue
		}
		s.minimizeVisited.Add(rv)
		stack = append(stack, s.trail.Reason(rv)...)
	}
	s.minimizeStack = stack
	return true
}

// minimizeByReachability drops literal a from learnt if some other literal
// of learnt is reachable from a through the binary implication graph,
// i.e. a is subsumed by a path of binary clauses already implied by the
// rest of the clause (spec §4.3's reachability-based minimization, applied
// here as a clause-learning step rather than during propagation).
func (s *Solver) minimizeByReachability(learnt []Literal) []Literal {
	out := learnt[:1]
	for _, a := range learnt[1:] {
		if s.binaryReaches(a, learnt) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *Solver) binaryReaches(a Literal, learnt []Literal) bool {
	s.reachVisited.Clear()
	stack := append(s.reachStack[:0], s.binary.Implied(a)...)
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := l.VarID()
		if s.reachVisited.Contains(v) {
			continue
		}
		s.reachVisited.Add(v)
		for _, other := range learnt {
			if other != a && other == l {
				s.reachStack = stack
				return true
			}
		}
		stack = append(stack, s.binary.Implied(l)...)
	}
	s.reachStack = stack
	return false
}

// computeLBD counts the number of distinct decision levels represented
// among lits, the "literal block distance" used by clause-database
// cleanup (C9) and, when UseLBD is set, by the restart manager's
// block-restart check. Level 0 never counts; assumption levels count only
// when CountAssumptionLevelsInLBD is set.
func (s *Solver) computeLBD(lits []Literal) int {
	if cap(s.lbdSeen) < len(s.trail.trailLim)+1 {
		s.lbdSeen = make([]uint32, len(s.trail.trailLim)+1)
	}
	s.lbdStamp++
	count := 0
	for _, l := range lits {
		lvl := s.trail.LitLevel(l)
		if lvl > 0 && lvl <= s.numAssumptions && !s.params.CountAssumptionLevelsInLBD {
			continue
		}
		if lvl == 0 || lvl >= len(s.lbdSeen) {
			if lvl > 0 {
				count++
			}
			continue
		}
		if s.lbdSeen[lvl] != s.lbdStamp {
			s.lbdSeen[lvl] = s.lbdStamp
			count++
		}
	}
	return count
}

// analyzePB implements the cancellation-based conflict analysis of spec
// §4.4 for a falsified PB constraint: conflict rows are combined with the
// reason row of the variable being resolved away (scaled by the smallest
// integer multiple that cancels it) until only one current-level term
// remains. The result degenerates to a learned clause when every
// remaining coefficient is 1 and the rhs is one less than the number of
// terms (spec's "hand it to the clause learner" case).
func (s *Solver) analyzePB(conflict searchConflict) (learntClause []Literal, learntPB *pbConstraint, backtrackLevel int) {
	row := make([]rawTerm, len(conflict.pb.terms))
	for i, t := range conflict.pb.terms {
		row[i] = rawTerm{Literal: t.Literal, Coefficient: t.Coefficient}
	}
	rhs := conflict.pb.rhs
	curLevel := s.trail.DecisionLevel()
	if s.proof != nil {
		s.proofParents = append(s.proofParents, conflict.pb.proofNode)
	}

	countAtLevel := func(terms []rawTerm) int {
		n := 0
		for _, t := range terms {
			if s.trail.IsTrue(t.Literal) && s.trail.LitLevel(t.Literal) == curLevel {
				n++
			}
		}
		return n
	}

	trailIdx := s.trail.Len() - 1
	for countAtLevel(row) > 1 {
		var v int
		var rowCoef int64
		found := false
		for trailIdx >= 0 && !found {
			l := s.trail.At(trailIdx)
			trailIdx--
			for _, t := range row {
				if t.Literal == l && t.Coefficient > 0 {
					v, rowCoef, found = l.VarID(), t.Coefficient, true
					break
				}
			}
		}
		if !found {
			break
		}

		reasonRow, reasonRHS := s.reasonAsPBRow(v)
		var reasonCoef int64
		for _, t := range reasonRow {
			if t.Literal.VarID() == v {
				reasonCoef = t.Coefficient
				break
			}
		}
		if reasonCoef == 0 {
			continue
		}
		if s.params.MinimizeReductionDuringPBResolution {
			reasonRow = cappedTerms(reasonRow, reasonCoef)
		}
		m := (rowCoef + reasonCoef - 1) / reasonCoef

		scaled := make([]rawTerm, 0, len(row)+len(reasonRow))
		scaled = append(scaled, row...)
		for _, t := range reasonRow {
			scaled = append(scaled, rawTerm{Literal: t.Literal, Coefficient: t.Coefficient * m})
		}

		terms, outRHS, unsat := canonicalizeRaw(s, scaled, rhs+reasonRHS*m)
		if unsat {
			return nil, nil, -1
		}
		row = make([]rawTerm, len(terms))
		for i, t := range terms {
			row[i] = rawTerm{Literal: t.Literal, Coefficient: t.Coefficient}
		}
		rhs = outRHS
	}

	terms, outRHS, unsat := canonicalizeRaw(s, row, rhs)
	if unsat {
		return nil, nil, -1
	}

	if len(terms) > 0 && terms[0].Coefficient == 1 && outRHS == int64(len(terms)-1) {
		cls := degenerateClause(terms)
		uipIdx := 0
		for i, t := range terms {
			if s.trail.IsTrue(t.Literal) && s.trail.LitLevel(t.Literal) == curLevel {
				uipIdx = i
				break
			}
		}
		cls[0], cls[uipIdx] = cls[uipIdx], cls[0]
		for _, l := range cls[1:] {
			if lvl := s.trail.LitLevel(l); lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}
		return cls, nil, backtrackLevel
	}

	for _, t := range terms {
		if s.trail.IsTrue(t.Literal) {
			if lvl := s.trail.LitLevel(t.Literal); lvl > backtrackLevel && lvl < curLevel {
				backtrackLevel = lvl
			}
		}
	}
	learntPB = &pbConstraint{
		terms:     terms,
		rhs:       outRHS,
		maxValue:  maxValueOf(terms),
		status:    clauseLearnt,
		proofNode: noProofHandle,
	}
	return nil, learntPB, backtrackLevel
}

// reasonAsPBRow views the reason for v's current assignment as a PB row Σ
// cᵢℓᵢ ≤ rhs that v's own literal sits inside with a known coefficient, so
// that analyzePB can combine it with a conflict row. A genuine PB
// propagation is used as-is (it already is such a row); a clause or binary
// reason r1∧...∧rk⇒ℓ becomes the equivalent unit-coefficient row Σ1·rⱼ +
// 1·¬ℓ ≤ k.
func (s *Solver) reasonAsPBRow(v int) ([]pbTerm, int64) {
	src := s.trail.source[v]
	if s.proof != nil {
		switch src.kind {
		case sourcePB:
			s.proofParents = append(s.proofParents, src.pb.proofNode)
		case sourceClause:
			s.proofParents = append(s.proofParents, src.clause.proofNode)
		}
	}
	if src.kind == sourcePB {
		return src.pb.terms, src.pb.rhs
	}
	lits := s.trail.Reason(v)
	vLit := s.trail.At(s.trail.TrailIndex(v))
	terms := make([]pbTerm, 0, len(lits)+1)
	for _, r := range lits {
		terms = append(terms, pbTerm{Literal: r, Coefficient: 1})
	}
	terms = append(terms, pbTerm{Literal: vLit.Opposite(), Coefficient: 1})
	return terms, int64(len(lits))
}

// cappedTerms returns a copy of terms with every coefficient reduced to at
// most max. Lowering a coefficient while keeping rhs unchanged only
// weakens the row (Σc'ᵢxᵢ ≤ Σcᵢxᵢ whenever 0 ≤ c'ᵢ ≤ cᵢ), so this is
// always sound; it trades strength for smaller coefficients, matching the
// intent of MinimizeReductionDuringPBResolution's "reduce before adding"
// strategy.
func cappedTerms(terms []pbTerm, max int64) []pbTerm {
	out := make([]pbTerm, len(terms))
	for i, t := range terms {
		if t.Coefficient > max {
			t.Coefficient = max
		}
		out[i] = t
	}
	return out
}
