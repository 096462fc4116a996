package main

import (
	"fmt"

	"github.com/reion-tools/ionsrc/internal/ionsrc"
	"github.com/spf13/cobra"
)

func newResumePlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume-plan",
		Short: "Show what a resumed run would restart from",
		Long: `Scans the configured results directory for prior outputs, picks the
restart redshift (the lowest one reached) and reports which density
and source redshift knots a resumed run would re-derive from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			par, rep, err := loadRun(cmd)
			if err != nil {
				return err
			}
			sim := ionsrc.NewSim(par, rep)
			if err := sim.InitRedshift(true); err != nil {
				return err
			}
			ext, err := ionsrc.ExtensionInFolder(par.Paths.ResultsBase)
			if err != nil {
				return err
			}
			fmt.Printf("restart z        : %.3f\n", sim.State.Zred)
			fmt.Printf("density knot     : %.3f\n", sim.PrevZDens)
			fmt.Printf("source knot      : %.3f\n", sim.PrevZSrc)
			fmt.Printf("state encoding   : %s\n", ext)
			fmt.Printf("state files      : xfrac_%.3f%s, IonRates_%.3f%s\n",
				sim.State.Zred, ext, sim.State.Zred, ext)
			return nil
		},
	}
}
