package ionsrc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params mirrors the YAML parameter file of a run. It is loaded once,
// validated, and shared read-only by every catalog file processed.
type Params struct {
	Cosmology CosmologyParams `yaml:"cosmology"`
	Grid      GridParams      `yaml:"grid"`
	Material  MaterialParams  `yaml:"material"`
	Sources   SourceParams    `yaml:"sources"`
	Clumping  ClumpingParams  `yaml:"clumping"`
	Paths     PathParams      `yaml:"paths"`
}

type CosmologyParams struct {
	H   Real `yaml:"h"`
	Om0 Real `yaml:"Om0"`
	Ob0 Real `yaml:"Ob0"`
}

type GridParams struct {
	// BoxSize is the comoving side of the volume in Mpc/h.
	BoxSize Real `yaml:"boxsize"`
	N       int  `yaml:"N"`
	ZRed0   Real `yaml:"zred_0"`
}

type MaterialParams struct {
	XH0       Real `yaml:"xh0"`
	Temp0     Real `yaml:"temp0"`
	AvgDens   Real `yaml:"avg_dens"`
	MeanMolec Real `yaml:"mean_molecular"`
}

// SourceParams selects and parameterizes the stellar-to-halo relation.
// The double-power-law block is only consulted for kind dpl, except
// Nion which the flux normalization always uses.
type SourceParams struct {
	FstarKind string `yaml:"fstar_kind"`

	FgammaHM Real `yaml:"fgamma_hm"`
	FgammaLM Real `yaml:"fgamma_lm"`

	Nion  Real `yaml:"Nion"`
	F0    Real `yaml:"f0"`
	Mt    Real `yaml:"Mt"`
	Mp    Real `yaml:"Mp"`
	G1    Real `yaml:"g1"`
	G2    Real `yaml:"g2"`
	G3    Real `yaml:"g3"`
	G4    Real `yaml:"g4"`
	F0Esc Real `yaml:"f0_esc"`
	MpEsc Real `yaml:"Mp_esc"`
	AlEsc Real `yaml:"al_esc"`

	AccretionModel string `yaml:"accretion_model"`
	AlphaH         Real   `yaml:"alpha_h"`
}

type ClumpingParams struct {
	// ParFile is the per-redshift a,b,c coefficient table.
	ParFile string `yaml:"parfile"`
}

type PathParams struct {
	DensityBase string `yaml:"density_basename"`
	SourcesBase string `yaml:"sources_basename"`
	ResultsBase string `yaml:"results_basename"`
}

// LoadParams reads a YAML parameter file, applies defaults and
// validates the fields every run needs.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// Defaults / validation
	if p.Grid.N <= 0 {
		p.Grid.N = DefaultN
	}
	if p.Material.XH0 <= 0 {
		p.Material.XH0 = DefaultXH0
	}
	if p.Material.Temp0 <= 0 {
		p.Material.Temp0 = DefaultTemp0
	}
	if p.Material.MeanMolec <= 0 {
		p.Material.MeanMolec = DefaultMeanMolec
	}
	if p.Sources.AlphaH <= 0 {
		p.Sources.AlphaH = DefaultAlphaH
	}
	if p.Cosmology.H <= 0 || p.Cosmology.H >= 2 {
		return nil, fmt.Errorf("%s: reduced Hubble parameter h must be in (0,2), got %g", path, p.Cosmology.H)
	}
	if p.Cosmology.Om0 <= 0 || p.Cosmology.Ob0 <= 0 {
		return nil, fmt.Errorf("%s: Om0 and Ob0 must be > 0, got Om0=%g Ob0=%g", path, p.Cosmology.Om0, p.Cosmology.Ob0)
	}
	if p.Grid.BoxSize <= 0 {
		return nil, fmt.Errorf("%s: boxsize must be > 0, got %g", path, p.Grid.BoxSize)
	}
	DebugLog("Loaded params from %s: box=%g Mpc/h, N=%d, fstar_kind=%s", path, p.Grid.BoxSize, p.Grid.N, p.Sources.FstarKind)
	return &p, nil
}

// Cosmo builds the cosmology context from the parameter file.
func (p *Params) Cosmo() Cosmo {
	return Cosmo{LittleH: p.Cosmology.H, Om0: p.Cosmology.Om0, Ob0: p.Cosmology.Ob0}
}

// StellarParams extracts the double-power-law parameter set.
func (p *Params) StellarParams() StellarParams {
	s := p.Sources
	return StellarParams{
		Nion: s.Nion,
		F0:   s.F0, Mt: s.Mt, Mp: s.Mp,
		G1: s.G1, G2: s.G2, G3: s.G3, G4: s.G4,
		F0Esc: s.F0Esc, MpEsc: s.MpEsc, AlEsc: s.AlEsc,
	}
}
