package ionsrc

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IonizingFlux turns one halo catalog file into the sparse source
// field the raytracer consumes: grid cell, aggregated stellar mass and
// photon rate normalized to SStarRef. If saveMstarDir is non-empty the
// binned stellar masses are also written out as HDF5.
//
// The source lifetime is ts = 1/(alpha_h (1+z) H(z)); the per-cell
// rate is msun2g Nion Mstar / (m_p ts SStarRef). An empty catalog
// yields an empty, well-formed field.
func IonizingFlux(path string, z Real, par *Params, cosmo Cosmo, rep *Reporter, saveMstarDir string) ([]Source, error) {
	cat, err := ReadHalos(path, par.Grid.BoxSize, cosmo.LittleH)
	if err != nil {
		return nil, err
	}

	fstar, fesc, err := StellarFractions(par.Sources.FstarKind, par.StellarParams(), cosmo, cat.Mass)
	if err != nil {
		return nil, err
	}
	mstar := make([]Real, cat.Len())
	for i := range mstar {
		e := Real(1) // mass-independent kinds leave fesc to the caller
		if fesc != nil {
			e = fesc[i]
		}
		mstar[i] = e * fstar[i] * cat.Mass[i]
	}

	grid := Halo2Grid{BoxLen: par.Grid.BoxSize / cosmo.LittleH, N: par.Grid.N}
	binned, err := grid.BinValues(cat.Pos, mstar)
	if err != nil {
		return nil, err
	}

	if saveMstarDir != "" {
		fname, err := SaveMstarSources(saveMstarDir, z, cosmo.LittleH, binned)
		if err != nil {
			return nil, err
		}
		DebugLog("Saved binned stellar masses to %s", fname)
	}

	ts := 1.0 / (par.Sources.AlphaH * (1.0 + z) * cosmo.H(z))

	out := make([]Source, len(binned))
	flux := make([]Real, len(binned))
	gmass := make([]Real, len(binned))
	for i, b := range binned {
		nf := Msun2g * par.Sources.Nion * b.Value / (ProtonM * ts * SStarRef)
		out[i] = Source{Cell: b.Cell, Mstar: b.Value, NormFlux: nf}
		flux[i] = nf
		gmass[i] = b.Value
	}

	rep.Logf("\n---- Reading source file with total of %d ionizing source:\n%s", len(out), path)
	if len(out) > 0 {
		rep.Logf(" Total Flux : %e [1/s]", floats.Sum(flux)*SStarRef)
		rep.Logf(" Source lifetime : %f Myr", ts/(1e6*Year))
		rep.Logf(" min, max stellar (grid) mass : %.3e  %.3e [Msun] and min, mean, max number of ionising sources : %.3e  %.3e  %.3e [1/s]",
			floats.Min(gmass), floats.Max(gmass),
			floats.Min(flux)*SStarRef, stat.Mean(flux, nil)*SStarRef, floats.Max(flux)*SStarRef)
	}
	return out, nil
}
