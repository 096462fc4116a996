package main

import (
	"github.com/reion-tools/ionsrc/internal/ionsrc"
	"github.com/spf13/cobra"
)

func newClumpingCmd() *cobra.Command {
	var z float64
	cmd := &cobra.Command{
		Use:   "clumping <density-cube>",
		Short: "Apply the sub-grid clumping correction to a density cube",
		Long: `Reads a density-contrast cube (resolved against the configured
density path prefix), converts it to proper number density at the
given redshift and scales it by the clumping factor interpolated from
the configured coefficient table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			par, rep, err := loadRun(cmd)
			if err != nil {
				return err
			}
			sim := ionsrc.NewSim(par, rep)
			if err := sim.ReadDensity(args[0], z); err != nil {
				return err
			}
			sim.State.Zred = z
			_, err = sim.ApplyClumping()
			return err
		},
	}
	cmd.Flags().Float64Var(&z, "z", 0, "redshift of the density cube")
	_ = cmd.MarkFlagRequired("z")
	return cmd
}
