// Package opb reads the pseudo-Boolean competition's OPB format, the
// input original_source's sat_solver.cc consumes directly via
// AddLinearConstraint. It mirrors the shape of the external
// github.com/rhartert/dimacs package's Builder-driven reader so that
// parsers/opb.go can wrap it exactly the way parsers/cnf.go wraps dimacs:
// a small Builder interface fed line by line, no gzip handling baked in.
package opb

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Op is a linear constraint's comparison operator.
type Op uint8

const (
	OpLE Op = iota // <=
	OpGE           // >=
	OpEQ           // =
)

// Term is one coefficient/variable pair of a linear constraint, as they
// appear in OPB source (1-indexed variable numbers, sign carried
// separately via Negated rather than folded into Coefficient).
type Term struct {
	Coefficient int64
	Variable    int // 1-indexed, as written in the file
	Negated     bool
}

// Builder receives the parsed problem line, each constraint, and each
// comment in file order. The objective line ("min: ...;"), if present, is
// not reported: this solver answers feasibility queries, not optimization
// ones, so an objective function has nothing to attach to.
type Builder interface {
	Problem(nVars, nConstraints int) error
	Constraint(terms []Term, op Op, rhs int64) error
	Comment(text string) error
}

// ReadBuilder parses OPB source from r, calling b's methods in file order.
func ReadBuilder(r io.Reader, b Builder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "*") {
			if err := handleComment(b, line); err != nil {
				return err
			}
			continue
		}
		if strings.HasPrefix(line, "min:") || strings.HasPrefix(line, "max:") {
			continue // objective function: not meaningful for a feasibility solver
		}
		if err := parseConstraintLine(b, line); err != nil {
			return fmt.Errorf("opb: %w", err)
		}
	}
	return scanner.Err()
}

// handleComment reports ordinary comments to the builder, except for the
// competition format's metadata comment line
// "* #variable= N #constraint= M", which is instead surfaced as Problem.
func handleComment(b Builder, line string) error {
	fields := strings.Fields(line)
	nVars, nCons := -1, -1
	for i, f := range fields {
		switch f {
		case "#variable=":
			if i+1 < len(fields) {
				nVars, _ = strconv.Atoi(fields[i+1])
			}
		case "#constraint=":
			if i+1 < len(fields) {
				nCons, _ = strconv.Atoi(fields[i+1])
			}
		}
	}
	if nVars >= 0 && nCons >= 0 {
		return b.Problem(nVars, nCons)
	}
	return b.Comment(strings.TrimPrefix(line, "*"))
}

// parseConstraintLine parses "<coeff> <lit> ... >= <rhs> ;" (or "<=", "=").
func parseConstraintLine(b Builder, line string) error {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	fields := strings.Fields(line)

	opIdx, op := -1, OpLE
	for i, f := range fields {
		switch f {
		case ">=":
			opIdx, op = i, OpGE
		case "<=":
			opIdx, op = i, OpLE
		case "=":
			opIdx, op = i, OpEQ
		}
		if opIdx >= 0 {
			break
		}
	}
	if opIdx < 0 || opIdx+1 >= len(fields) {
		return fmt.Errorf("missing comparison operator in %q", line)
	}

	rhs, err := strconv.ParseInt(fields[opIdx+1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid right-hand side in %q: %w", line, err)
	}

	terms, err := parseTerms(fields[:opIdx])
	if err != nil {
		return err
	}
	return b.Constraint(terms, op, rhs)
}

// parseTerms parses a sequence of "<coeff> <lit>" pairs, where <lit> is
// "xN" or "~xN" (the OPB negation prefix).
func parseTerms(fields []string) ([]Term, error) {
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("malformed term list %q", strings.Join(fields, " "))
	}
	terms := make([]Term, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		coef, err := strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coefficient %q: %w", fields[i], err)
		}
		lit := fields[i+1]
		negated := strings.HasPrefix(lit, "~")
		lit = strings.TrimPrefix(lit, "~")
		if !strings.HasPrefix(lit, "x") {
			return nil, fmt.Errorf("invalid variable literal %q", fields[i+1])
		}
		v, err := strconv.Atoi(strings.TrimPrefix(lit, "x"))
		if err != nil {
			return nil, fmt.Errorf("invalid variable literal %q: %w", fields[i+1], err)
		}
		terms = append(terms, Term{Coefficient: coef, Variable: v, Negated: negated})
	}
	return terms, nil
}
