package sat

import "fmt"

// Literal represents a signed occurrence of a boolean variable. Literals are
// densely indexed as 2*varID+sign so that they can key watch lists and
// assignment arrays directly.
type Literal int32

// PositiveLiteral returns the literal representing variable v taken
// positively.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the literal representing the negation of
// variable v.
func NegativeLiteral(v int) Literal {
	return Literal(v*2 + 1)
}

// VarID returns the ID of the literal's underlying variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive returns true iff l represents its variable's value directly
// (i.e. it is not a negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l in O(1).
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// Index returns the dense index used to key watch lists and assignment
// arrays. It is the literal's own underlying representation, exposed so that
// callers needn't depend on that representation directly.
func (l Literal) Index() int {
	return int(l)
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("-%d", l.VarID())
}

// Term is a pseudo-Boolean term: a literal together with a positive integer
// coefficient.
type Term struct {
	Literal     Literal
	Coefficient int64
}
