// Command satcore is a CDCL SAT and pseudo-Boolean constraint solver,
// driven from DIMACS CNF or OPB instance files.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagCPUProfile string
	flagMemProfile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "satcore",
		Short: "satcore",
		Long:  `satcore is a CDCL SAT and pseudo-Boolean constraint solver.`,
	}

	rootCmd.PersistentFlags().StringVar(&flagCPUProfile, "cpuprof", "", "save pprof CPU profile to the given file")
	rootCmd.PersistentFlags().StringVar(&flagMemProfile, "memprof", "", "save pprof memory profile to the given file")

	rootCmd.AddCommand(newSolveCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
