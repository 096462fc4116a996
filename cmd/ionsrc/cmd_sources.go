package main

import (
	"fmt"
	"os"

	"github.com/reion-tools/ionsrc/internal/ionsrc"
	"github.com/spf13/cobra"
)

func newSourcesCmd() *cobra.Command {
	var (
		z         float64
		saveMstar string
	)
	cmd := &cobra.Command{
		Use:   "sources <catalog-file>",
		Short: "Build the normalized source field from one halo catalog",
		Long: `Reads a halo catalog (.hdf5, .dat or .txt), applies the configured
stellar-mass and escape-fraction model, bins the stellar mass onto the
simulation grid and normalizes the per-cell photon rate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			par, rep, err := loadRun(cmd)
			if err != nil {
				return err
			}
			srcs, err := ionsrc.IonizingFlux(args[0], z, par, par.Cosmo(), rep, saveMstar)
			if err != nil {
				return err
			}
			fmt.Printf("%d occupied cells\n", len(srcs))
			return nil
		},
	}
	cmd.Flags().Float64Var(&z, "z", 0, "redshift of the catalog")
	cmd.Flags().StringVar(&saveMstar, "save-mstar", "", "folder to save the binned stellar masses to (HDF5)")
	_ = cmd.MarkFlagRequired("z")
	return cmd
}

// loadRun builds the shared run context from the persistent flags.
func loadRun(cmd *cobra.Command) (*ionsrc.Params, *ionsrc.Reporter, error) {
	cfg, _ := cmd.Flags().GetString("config")
	rank, _ := cmd.Flags().GetInt("rank")
	par, err := ionsrc.LoadParams(cfg)
	if err != nil {
		return nil, nil, err
	}
	return par, ionsrc.NewReporter(rank, os.Stdout), nil
}
