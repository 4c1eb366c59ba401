package sat

// conflictKind tags which propagator raised the current conflict.
type conflictKind uint8

const (
	conflictNone conflictKind = iota
	conflictClause
	conflictBinary
	conflictPB
)

// searchConflict is the tagged union of the three ways a conflict can be
// raised: an n-ary clause, a binary implication, or a falsified PB
// constraint. Clause and binary conflicts are analyzed with the same
// 1-UIP procedure (via explainFailure below); PB conflicts use the
// cancellation-based procedure in analyzePB.
type searchConflict struct {
	kind conflictKind

	clause *Clause

	binA, binB Literal

	pb *pbConstraint
}

func (c searchConflict) isConflict() bool { return c.kind != conflictNone }

// explainFailure replaces *out's contents with the true literals whose conjunction is
// falsified by this clause-like conflict (not valid for conflictPB, which
// is analyzed separately).
func (c searchConflict) explainFailure(out *[]Literal) {
	switch c.kind {
	case conflictClause:
		c.clause.ExplainFailure(out)
	case conflictBinary:
		*out = append((*out)[:0], c.binA.Opposite(), c.binB.Opposite())
	default:
		panic("sat: explainFailure called on a non-clause-like conflict")
	}
}
