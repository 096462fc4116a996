package ionsrc

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Cosmo is the flat-LCDM background every component receives as an
// explicit immutable context. H0 is derived from the reduced Hubble
// parameter LittleH; OmegaL is fixed by flatness.
type Cosmo struct {
	LittleH Real // H0 / (100 km/s/Mpc)
	Om0     Real
	Ob0     Real
}

// H0 returns the Hubble constant in 1/s.
func (c Cosmo) H0() Real {
	return c.LittleH * 100.0 / KmPerMpc
}

// Efunc is the dimensionless expansion rate E(z) = H(z)/H0.
func (c Cosmo) Efunc(z Real) Real {
	ol := 1.0 - c.Om0
	zp1 := 1.0 + z
	return math.Sqrt(c.Om0*zp1*zp1*zp1 + ol)
}

// H returns the Hubble parameter at redshift z in 1/s.
func (c Cosmo) H(z Real) Real { return c.H0() * c.Efunc(z) }

// Age returns the cosmic time at redshift z in seconds,
// t(z) = int_0^a da' / (a' H(a')) with a = 1/(1+z).
func (c Cosmo) Age(z Real) Real {
	a := 1.0 / (1.0 + z)
	f := func(ap float64) float64 {
		if ap <= 0 {
			return 0
		}
		return 1.0 / (ap * c.H(1.0/ap-1.0))
	}
	return quad.Fixed(f, 0, a, 200, nil, 0)
}

// CriticalDensity0 returns the present-day critical density in g/cm^3.
func (c Cosmo) CriticalDensity0() Real {
	h0 := c.H0()
	return 3.0 * h0 * h0 / (8.0 * math.Pi * GNewton)
}

// BaryonFraction is Ob0/Om0, the mass-independent stellar fraction of
// the fgamma source model.
func (c Cosmo) BaryonFraction() Real { return c.Ob0 / c.Om0 }
