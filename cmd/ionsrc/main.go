package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ionsrc",
		Short: "Ionizing-source fields for radiative-transfer runs",
		Long: `ionsrc converts N-body halo catalogs into the discretized
ionizing-photon source fields a radiative-transfer solver consumes,
and maintains the auxiliary per-step state (clumping correction,
resume selection) the solver needs.`,
	}

	rootCmd.PersistentFlags().String("config", "params.yml", "YAML parameter file of the run")
	rootCmd.PersistentFlags().Int("rank", 0, "process rank; only rank 0 reports")

	rootCmd.AddCommand(
		newSourcesCmd(),
		newClumpingCmd(),
		newResumePlanCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ionsrc version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ionsrc %s\n", version)
		},
	}
}
