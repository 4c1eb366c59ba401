package parsers

import (
	"fmt"

	"github.com/orsuite/satcore/internal/opb"
	"github.com/orsuite/satcore/sat"
)

// LoadOPB parses the pseudo-Boolean competition format file at filename
// and loads its constraints into solver. Variables are declared lazily,
// in the order they are first referenced, unless the file's
// "* #variable= N #constraint= M" header line states the count up front.
func LoadOPB(filename string, gzipped bool, solver *sat.Solver) error {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	b := &opbBuilder{solver: solver, varOf: map[int]int{}}
	return opb.ReadBuilder(r, b)
}

// opbBuilder adapts a sat.Solver to opb.Builder, translating OPB's 1-indexed
// "xN"/"~xN" literals into sat.Literal values over lazily-allocated solver
// variables, and OPB's three comparison operators into the solver's
// canonical "<=" form.
type opbBuilder struct {
	solver *sat.Solver
	varOf  map[int]int
}

func (b *opbBuilder) Problem(nVars, nConstraints int) error {
	for i := 1; i <= nVars; i++ {
		b.varOf[i] = b.solver.AddVariable()
	}
	return nil
}

func (b *opbBuilder) Comment(_ string) error {
	return nil
}

func (b *opbBuilder) variable(n int) int {
	if v, ok := b.varOf[n]; ok {
		return v
	}
	v := b.solver.AddVariable()
	b.varOf[n] = v
	return v
}

func (b *opbBuilder) Constraint(terms []opb.Term, op opb.Op, rhs int64) error {
	satTerms := make([]sat.Term, len(terms))
	for i, t := range terms {
		v := b.variable(t.Variable)
		lit := sat.PositiveLiteral(v)
		if t.Negated {
			lit = sat.NegativeLiteral(v)
		}
		satTerms[i] = sat.Term{Literal: lit, Coefficient: t.Coefficient}
	}

	switch op {
	case opb.OpLE:
		return b.solver.AddLinearConstraint(satTerms, rhs)
	case opb.OpGE:
		return b.solver.AddLinearConstraint(negateTerms(satTerms), -rhs)
	case opb.OpEQ:
		if err := b.solver.AddLinearConstraint(satTerms, rhs); err != nil {
			return err
		}
		return b.solver.AddLinearConstraint(negateTerms(satTerms), -rhs)
	default:
		return fmt.Errorf("opb: unknown comparison operator %v", op)
	}
}

// negateTerms flips the sign of every coefficient, turning "Σcᵢxᵢ >= rhs"
// into the equivalent "<=" form "Σ(-cᵢ)xᵢ <= -rhs" that AddLinearConstraint
// expects; canonicalizeRaw (internal/sat/pb.go) normalizes the resulting
// negative coefficients onto the opposite literal.
func negateTerms(terms []sat.Term) []sat.Term {
	out := make([]sat.Term, len(terms))
	for i, t := range terms {
		out[i] = sat.Term{Literal: t.Literal, Coefficient: -t.Coefficient}
	}
	return out
}
