package ionsrc

import (
	"fmt"
	"strings"
)

// Sim owns the mutable simulation state and the immutable run context
// (parameters, cosmology, reporter). The raytracing engine itself is
// an external collaborator: it receives the source field and mutates
// State between steps, nothing here does.
// RayTracer is the boundary to the external evolution engine: it
// consumes the source field produced here and mutates the state over
// one timestep.
type RayTracer interface {
	Evolve(state *SimulationState, sources []Source, dt Real) error
}

type Sim struct {
	Par   *Params
	Cosmo Cosmo
	Rep   *Reporter

	State SimulationState

	// Redshift knot tables of the density and source catalogs, and
	// the prior knots selected when resuming (-1 on a fresh start).
	ZredDensity []Real
	ZredSources []Real
	PrevZDens   Real
	PrevZSrc    Real
}

func NewSim(par *Params, rep *Reporter) *Sim {
	return &Sim{Par: par, Cosmo: par.Cosmo(), Rep: rep}
}

// InitRedshift sets the starting redshift and cosmic time: the
// configured initial redshift on a fresh start, or the lowest redshift
// any prior output reached when resuming, bracketed independently
// against the density and source redshift tables to pick the knots to
// re-derive from.
func (s *Sim) InitRedshift(resume bool) error {
	var err error
	s.ZredDensity, err = readFloats(s.Par.Paths.DensityBase + "redshift_density.txt")
	if err != nil {
		return err
	}
	s.ZredSources, err = readFloats(s.Par.Paths.SourcesBase + "redshift_sources.txt")
	if err != nil {
		return err
	}

	if resume {
		zs, err := OutputRedshifts(s.Par.Paths.ResultsBase)
		if err != nil {
			return err
		}
		if len(zs) == 0 {
			return fmt.Errorf("%s: no prior outputs to resume from: %w", s.Par.Paths.ResultsBase, ErrMissingResumeState)
		}
		s.State.Zred = zs[0] // ascending, so the minimum
		if _, s.PrevZDens, err = FindBins(s.State.Zred, s.ZredDensity); err != nil {
			return err
		}
		if _, s.PrevZSrc, err = FindBins(s.State.Zred, s.ZredSources); err != nil {
			return err
		}
	} else {
		s.PrevZDens = -1
		s.PrevZSrc = -1
		s.State.Zred = s.Par.Grid.ZRed0
	}

	s.State.Time = s.Cosmo.Age(s.State.Zred)
	return nil
}

// InitMaterial fills the material fields of the grid. On a fresh start
// every field is constant from the Material configuration. When
// resuming, the density cube densityFile (resolved against the density
// path prefix) is re-read at the previously selected knot and the
// ionized fraction and photoionization rate come from the prior
// outputs; temperature is not persisted yet, so it restarts at the
// configured default.
func (s *Sim) InitMaterial(resume bool, densityFile string) error {
	n := s.Par.Grid.N
	cells := n * n * n

	if resume {
		if err := s.ReadDensity(densityFile, s.PrevZDens); err != nil {
			return err
		}
		xh, phi, err := ReadResumeFields(s.Par.Paths.ResultsBase, s.State.Zred)
		if err != nil {
			return err
		}
		s.State.XH = xh
		s.State.PhiIon = phi
		s.State.Temp = constantField(cells, s.Par.Material.Temp0)
		return nil
	}

	s.State.NDens = constantField(cells, s.Par.Material.AvgDens)
	s.State.XH = constantField(cells, s.Par.Material.XH0)
	s.State.Temp = constantField(cells, s.Par.Material.Temp0)
	s.State.PhiIon = make([]Real, cells)
	return nil
}

// InitSources validates the configured stellar-to-halo model and
// reports the choice once per run.
func (s *Sim) InitSources() error {
	switch strings.ToLower(s.Par.Sources.FstarKind) {
	case "fgamma", "f_gamma", "mass_independent":
		s.Rep.Logf("Using UV model with fgamma_lm = %.1f and fgamma_hm = %.1f",
			s.Par.Sources.FgammaLM, s.Par.Sources.FgammaHM)
	case "dpl", "mass_dependent":
		s.Rep.Logf("Using %s to model the stellar-to-halo relation, and the parameter set = %+v.",
			s.Par.Sources.FstarKind, s.Par.StellarParams())
	default:
		return fmt.Errorf("fstar_kind %q: %w", s.Par.Sources.FstarKind, ErrUnimplementedModel)
	}
	return nil
}

// SourceField runs the per-step source pipeline for one catalog file
// (resolved against the sources path prefix) at redshift z.
func (s *Sim) SourceField(file string, z Real, saveMstarDir string) ([]Source, error) {
	return IonizingFlux(s.Par.Paths.SourcesBase+file, z, s.Par, s.Cosmo, s.Rep, saveMstarDir)
}

// ApplyClumping corrects the state's density field for sub-grid
// clumping at the current redshift.
func (s *Sim) ApplyClumping() ([]Real, error) {
	table, err := LoadClumpingTable(s.Par.Clumping.ParFile)
	if err != nil {
		return nil, err
	}
	return ApplyClumping(s.State.NDens, table, s.State.Zred, s.Rep)
}

func constantField(n int, v Real) []Real {
	out := make([]Real, n)
	for i := range out {
		out[i] = v
	}
	return out
}
