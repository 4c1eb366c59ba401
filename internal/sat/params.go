package sat

import "github.com/pkg/errors"

// InitialPolarity selects how a variable's first preferred phase is chosen,
// before phase saving (if enabled) overrides it with the variable's last
// assigned value.
type InitialPolarity uint8

const (
	PolarityTrue InitialPolarity = iota
	PolarityFalse
	PolarityRandom
	PolarityWeightedSign
	PolarityReverseWeightedSign
)

// PreferredVariableOrder selects the order in which newly declared variables
// are handed to the decision heuristic's tie-breaker.
type PreferredVariableOrder uint8

const (
	OrderInOrder PreferredVariableOrder = iota
	OrderReverse
	OrderRandom
)

// MinimizationAlgorithm selects the learned-clause minimization strategy
// applied after 1-UIP derivation.
type MinimizationAlgorithm uint8

const (
	MinimizeNone MinimizationAlgorithm = iota
	MinimizeSimple
	MinimizeRecursive
	MinimizeExperimental
)

// BinaryMinimizationAlgorithm selects how the binary implication graph is
// used to further shrink a learned clause.
type BinaryMinimizationAlgorithm uint8

const (
	BinaryMinimizeNone BinaryMinimizationAlgorithm = iota
	BinaryMinimizeReachability
	BinaryMinimizeFirst
	BinaryMinimizeExperimental
)

// Parameters holds every tunable exposed by SetParameters. The
// zero value is not meaningful; use DefaultParameters as a base and override
// individual fields.
type Parameters struct {
	VariableActivityDecay float64
	ClauseActivityDecay   float64

	InitialPolarity        InitialPolarity
	UsePhaseSaving         bool
	PreferredVariableOrder PreferredVariableOrder
	RandomBranchesRatio    float64
	RandomPolarityRatio    float64
	RandomSeed             int64

	RestartPeriod int64

	MinimizationAlgorithm       MinimizationAlgorithm
	BinaryMinimizationAlgorithm BinaryMinimizationAlgorithm
	TreatBinaryClausesSeparately bool

	UsePBResolution                    bool
	MinimizeReductionDuringPBResolution bool

	UseLBD                      bool
	UseGlucoseBumpAgainStrategy bool
	GlucoseDecayIncrement       float64
	GlucoseDecayIncrementPeriod int64
	GlucoseMaxDecay             float64

	ClauseCleanupRatio     float64
	ClauseCleanupIncrement int64

	MaxNumberOfConflicts int64 // <0 means unbounded
	MaxTimeInSeconds     float64
	MaxMemoryInMB        int64

	UnsatProof                 bool
	CountAssumptionLevelsInLBD bool
	LogSearchProgress          bool
}

// DefaultParameters is a conservative baseline, extended with
// defaults for every field SetParameters exposes. Values for the
// CDCL-specific ratios follow common MiniSat/Glucose defaults.
var DefaultParameters = Parameters{
	VariableActivityDecay: 0.95,
	ClauseActivityDecay:   0.999,

	InitialPolarity:        PolarityFalse,
	UsePhaseSaving:         true,
	PreferredVariableOrder: OrderInOrder,
	RandomBranchesRatio:    0,
	RandomPolarityRatio:    0,
	RandomSeed:             1,

	RestartPeriod: 100,

	MinimizationAlgorithm:               MinimizeRecursive,
	BinaryMinimizationAlgorithm:         BinaryMinimizeReachability,
	TreatBinaryClausesSeparately:        true,

	UsePBResolution:                     true,
	MinimizeReductionDuringPBResolution: true,

	UseLBD:                      true,
	UseGlucoseBumpAgainStrategy: false,
	GlucoseDecayIncrement:       0.01,
	GlucoseDecayIncrementPeriod: 5000,
	GlucoseMaxDecay:             0.95,

	ClauseCleanupRatio:     0.5,
	ClauseCleanupIncrement: 300,

	MaxNumberOfConflicts: -1,
	MaxTimeInSeconds:     -1,
	MaxMemoryInMB:        -1,

	UnsatProof:                 false,
	CountAssumptionLevelsInLBD: false,
	LogSearchProgress:          false,
}

// Validate checks that every enumerated and ranged field holds a legal
// value. It is the only place user-supplied configuration is rejected with
// an error rather than a panic: bad parameters are caller input, not an
// internal contract violation.
func (p Parameters) Validate() error {
	if p.VariableActivityDecay <= 0 || p.VariableActivityDecay >= 1 {
		return errors.Errorf("VariableActivityDecay must be in (0,1), got %v", p.VariableActivityDecay)
	}
	if p.ClauseActivityDecay <= 0 || p.ClauseActivityDecay >= 1 {
		return errors.Errorf("ClauseActivityDecay must be in (0,1), got %v", p.ClauseActivityDecay)
	}
	if p.InitialPolarity > PolarityReverseWeightedSign {
		return errors.Errorf("invalid InitialPolarity: %v", p.InitialPolarity)
	}
	if p.PreferredVariableOrder > OrderRandom {
		return errors.Errorf("invalid PreferredVariableOrder: %v", p.PreferredVariableOrder)
	}
	if p.RandomBranchesRatio < 0 || p.RandomBranchesRatio > 1 {
		return errors.Errorf("RandomBranchesRatio must be in [0,1], got %v", p.RandomBranchesRatio)
	}
	if p.RandomPolarityRatio < 0 || p.RandomPolarityRatio > 1 {
		return errors.Errorf("RandomPolarityRatio must be in [0,1], got %v", p.RandomPolarityRatio)
	}
	if p.MinimizationAlgorithm > MinimizeExperimental {
		return errors.Errorf("invalid MinimizationAlgorithm: %v", p.MinimizationAlgorithm)
	}
	if p.BinaryMinimizationAlgorithm > BinaryMinimizeExperimental {
		return errors.Errorf("invalid BinaryMinimizationAlgorithm: %v", p.BinaryMinimizationAlgorithm)
	}
	if p.ClauseCleanupRatio < 0 || p.ClauseCleanupRatio > 1 {
		return errors.Errorf("ClauseCleanupRatio must be in [0,1], got %v", p.ClauseCleanupRatio)
	}
	return nil
}
