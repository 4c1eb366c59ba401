package parsers

import (
	"fmt"

	"github.com/rhartert/dimacs"

	"github.com/orsuite/satcore/sat"
)

// LoadDIMACS parses the DIMACS CNF file at filename and loads its formula
// into solver, declaring one solver variable per DIMACS variable.
func LoadDIMACS(filename string, gzipped bool, solver *sat.Solver) error {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	b := &cnfBuilder{solver: solver}
	return dimacs.ReadBuilder(r, b)
}

// cnfBuilder adapts a sat.Solver to dimacs.Builder.
type cnfBuilder struct {
	solver *sat.Solver
}

func (b *cnfBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instance of type %q are not supported", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *cnfBuilder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddProblemClause(clause)
}

func (b *cnfBuilder) Comment(_ string) error {
	return nil
}

// ReadModels returns the list of models (if any) contained in a DIMACS
// model file (one satisfying assignment per line, DIMACS literal syntax
// terminated by a trailing 0).
func ReadModels(filename string) ([][]bool, error) {
	r, err := openReader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
