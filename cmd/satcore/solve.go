package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/orsuite/satcore/parsers"
	"github.com/orsuite/satcore/sat"
)

var (
	flagOPB         bool
	flagAssume      string
	flagMaxConflict int64
	flagMaxTime     float64
	flagUnsatProof  bool
	flagLogProgress bool
	flagSeed        int64
)

// newSolveCmd returns the "solve" subcommand: load an instance file, run
// the solver, and print a DIMACS-style run report.
func newSolveCmd() *cobra.Command {
	solveCmd := &cobra.Command{
		Use:   "solve <instance-file>",
		Short: "Solve a DIMACS CNF or OPB instance",
		Long: `solve reads a DIMACS CNF or pseudo-Boolean (OPB) instance file,
runs the solver to completion (or to one of the configured limits), and
prints a run report. Instance format is inferred from the file extension
(".opb" selects pseudo-Boolean, anything else is treated as DIMACS CNF)
unless --opb is given explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	solveCmd.Flags().BoolVar(&flagOPB, "opb", false, "force pseudo-Boolean (OPB) input format")
	solveCmd.Flags().StringVar(&flagAssume, "assume", "", "comma-separated list of assumption literals in DIMACS syntax, e.g. \"3,-5,7\"")
	solveCmd.Flags().Int64Var(&flagMaxConflict, "max-conflicts", -1, "stop after this many conflicts (<0 means unbounded)")
	solveCmd.Flags().Float64Var(&flagMaxTime, "max-time", -1, "stop after this many seconds (<0 means unbounded)")
	solveCmd.Flags().BoolVar(&flagUnsatProof, "unsat-proof", false, "track resolution proof for ComputeUnsatCore")
	solveCmd.Flags().BoolVar(&flagLogProgress, "log-progress", false, "log search progress as it runs")
	solveCmd.Flags().Int64Var(&flagSeed, "seed", sat.DefaultParameters.RandomSeed, "random seed")

	return solveCmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	stopProfiling, err := startProfiling()
	if err != nil {
		return err
	}
	defer stopProfiling()

	instanceFile := args[0]

	params := sat.DefaultParameters
	params.MaxNumberOfConflicts = flagMaxConflict
	params.MaxTimeInSeconds = flagMaxTime
	params.UnsatProof = flagUnsatProof
	params.LogSearchProgress = flagLogProgress
	params.RandomSeed = flagSeed

	s, err := sat.NewSolver(params)
	if err != nil {
		return errors.Wrap(err, "invalid parameters")
	}

	opb := flagOPB || strings.EqualFold(filepath.Ext(instanceFile), ".opb")
	if opb {
		if err := parsers.LoadOPB(instanceFile, false, s); err != nil {
			return errors.Wrap(err, "could not load OPB instance")
		}
	} else {
		if err := parsers.LoadDIMACS(instanceFile, false, s); err != nil {
			return errors.Wrap(err, "could not load DIMACS instance")
		}
	}

	assumptions, err := parseAssumptions(flagAssume)
	if err != nil {
		return errors.Wrap(err, "invalid --assume")
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())

	start := time.Now()
	status := s.ResetAndSolveWithGivenAssumptions(assumptions)
	elapsed := time.Since(start)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d\n", s.TotalConflicts)
	fmt.Printf("c restarts:   %d\n", s.TotalRestarts)
	fmt.Printf("c propagations: %d\n", s.TotalPropagations)
	fmt.Printf("c learned literals: %d\n", s.TotalLearnedLiterals)
	fmt.Printf("c status:     %s\n", status)

	switch status {
	case sat.StatusAssumptionsUnsat:
		fmt.Printf("c incompatible assumptions: %v\n", s.GetLastIncompatibleDecisions())
	case sat.StatusModelUnsat:
		if core := s.ComputeUnsatCore(); core != nil {
			fmt.Printf("c unsat core: %v\n", core)
		}
	}

	return nil
}

// parseAssumptions parses a comma-separated list of DIMACS-style literals
// (positive for a true assumption, negative for false) into sat.Literal
// values over 0-indexed variables.
func parseAssumptions(raw string) ([]sat.Literal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	fields := strings.Split(raw, ",")
	lits := make([]sat.Literal, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		n, err := strconv.Atoi(f)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid literal %q", f)
		}
		if n < 0 {
			lits = append(lits, sat.NegativeLiteral(-n-1))
		} else {
			lits = append(lits, sat.PositiveLiteral(n-1))
		}
	}
	return lits, nil
}

// startProfiling starts CPU profiling if --cpuprof was given and returns a
// cleanup function that stops CPU profiling and writes the memory profile
// (if --memprof was given).
func startProfiling() (func(), error) {
	var cpuFile *os.File
	if flagCPUProfile != "" {
		f, err := os.Create(flagCPUProfile)
		if err != nil {
			return nil, errors.Wrap(err, "could not create cpuprof file")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "could not start CPU profile")
		}
		cpuFile = f
	}

	return func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}
		if flagMemProfile != "" {
			f, err := os.Create(flagMemProfile)
			if err != nil {
				log.Errorf("could not create memprof file: %s", err)
				return
			}
			defer f.Close()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Errorf("could not write memory profile: %s", err)
			}
		}
	}, nil
}
