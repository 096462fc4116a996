package ionsrc

type Real = float64

// HaloCatalog holds one catalog file worth of halos, normalized to
// comoving Mpc and solar masses regardless of the on-disk format.
type HaloCatalog struct {
	Pos  [][3]Real // comoving Mpc
	Mass []Real    // Msun
}

// Len returns the number of halos in the catalog.
func (c *HaloCatalog) Len() int { return len(c.Mass) }

// GridSource is one occupied cell of the sparse source field: the cell
// index along each axis and the value (stellar mass, flux) summed over
// every halo that landed in the cell.
type GridSource struct {
	Cell  [3]int
	Value Real
}

// Source is a finished entry of the source field handed to the
// raytracer: grid cell, aggregated stellar mass and the photon rate
// normalized to SStarRef.
type Source struct {
	Cell     [3]int
	Mstar    Real // Msun
	NormFlux Real // dimensionless, units of SStarRef photons/s
}

// SimulationState is the mutable per-step state owned by Sim. The
// dense cubes are flat slices of length N^3 in Fortran (x fastest)
// order, matching the prior-run output cubes they are resumed from.
type SimulationState struct {
	NDens  []Real // proper number density, 1/cm^3
	XH     []Real // ionized fraction
	Temp   []Real // K
	PhiIon []Real // photoionization rate, 1/s

	Zred Real
	Time Real // cosmic time, s
}
