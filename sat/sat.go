// Package sat is the public facade over internal/sat: a CDCL SAT and
// pseudo-Boolean constraint solver. internal/sat holds the engine; this
// package re-exports exactly the types and constructors a caller needs,
// mirroring a common internal/public split for Go solver libraries.
package sat

import isat "github.com/orsuite/satcore/internal/sat"

// Literal is a signed occurrence of a boolean variable.
type Literal = isat.Literal

// PositiveLiteral returns the literal representing variable v taken
// positively.
func PositiveLiteral(v int) Literal { return isat.PositiveLiteral(v) }

// NegativeLiteral returns the literal representing the negation of
// variable v.
func NegativeLiteral(v int) Literal { return isat.NegativeLiteral(v) }

// LBool is a lifted boolean: true, false, or unknown.
type LBool = isat.LBool

const (
	Unknown = isat.Unknown
	True    = isat.True
	False   = isat.False
)

// Lift returns the LBool corresponding to b.
func Lift(b bool) LBool { return isat.Lift(b) }

// Term is a pseudo-Boolean term: a literal together with a positive
// integer coefficient.
type Term = isat.Term

// Status is the outcome of a call to Solve.
type Status = isat.Status

const (
	StatusUnknown          = isat.StatusUnknown
	StatusModelSat         = isat.StatusModelSat
	StatusModelUnsat       = isat.StatusModelUnsat
	StatusAssumptionsUnsat = isat.StatusAssumptionsUnsat
	StatusLimitReached     = isat.StatusLimitReached
)

// Parameters holds every solver tunable.
type Parameters = isat.Parameters

// DefaultParameters is a reasonable parameter set to start from.
var DefaultParameters = isat.DefaultParameters

// Enumerations selectable through Parameters.
type (
	InitialPolarity             = isat.InitialPolarity
	PreferredVariableOrder      = isat.PreferredVariableOrder
	MinimizationAlgorithm       = isat.MinimizationAlgorithm
	BinaryMinimizationAlgorithm = isat.BinaryMinimizationAlgorithm
)

const (
	PolarityTrue                = isat.PolarityTrue
	PolarityFalse               = isat.PolarityFalse
	PolarityRandom              = isat.PolarityRandom
	PolarityWeightedSign        = isat.PolarityWeightedSign
	PolarityReverseWeightedSign = isat.PolarityReverseWeightedSign

	OrderInOrder = isat.OrderInOrder
	OrderReverse = isat.OrderReverse
	OrderRandom  = isat.OrderRandom

	MinimizeNone         = isat.MinimizeNone
	MinimizeSimple       = isat.MinimizeSimple
	MinimizeRecursive    = isat.MinimizeRecursive
	MinimizeExperimental = isat.MinimizeExperimental

	BinaryMinimizeNone         = isat.BinaryMinimizeNone
	BinaryMinimizeReachability = isat.BinaryMinimizeReachability
	BinaryMinimizeFirst        = isat.BinaryMinimizeFirst
	BinaryMinimizeExperimental = isat.BinaryMinimizeExperimental
)

// ErrUnsat is returned by a Solver's Add* methods when the constraint just
// added makes the problem unconditionally unsatisfiable.
var ErrUnsat = isat.ErrUnsat

// Solver is a CDCL SAT and pseudo-Boolean solver instance.
type Solver = isat.Solver

// NewSolver returns an empty solver configured with p.
func NewSolver(p Parameters) (*Solver, error) { return isat.NewSolver(p) }

// NewDefaultSolver returns an empty solver configured with
// DefaultParameters.
func NewDefaultSolver() *Solver {
	s, err := isat.NewSolver(DefaultParameters)
	if err != nil {
		// NewSolver only fails on parameters that do not validate, so a
		// failure here means the default set itself is broken, a
		// programming error rather than caller input.
		panic(err)
	}
	return s
}
