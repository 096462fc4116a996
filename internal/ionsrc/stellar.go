package ionsrc

import (
	"fmt"
	"math"
	"strings"
)

// StellarParams is the double-power-law parameter set of the
// stellar-to-halo relation: the fstar curve (F0, Mt, g1, g2 with a
// secondary regime at Mp governed by g3, g4) and the escape-fraction
// curve (F0Esc, MpEsc, AlEsc). Nion rides along because the flux
// normalization needs it for every model kind.
type StellarParams struct {
	Nion Real
	F0   Real
	Mt   Real
	Mp   Real
	G1   Real
	G2   Real
	G3   Real
	G4   Real

	F0Esc Real
	MpEsc Real
	AlEsc Real
}

// dpl is a monotone double power law normalized at the turnover mass
// mt: f(mt) = f0, with asymptotic log-slopes g1 as m -> 0 and g2 as
// m -> inf.
func dpl(m, f0, mt, g1, g2 Real) Real {
	r := m / mt
	return 2.0 * f0 / (math.Pow(r, -g1) + math.Pow(r, -g2))
}

// Fstar evaluates the stellar fraction for one halo mass (Msun). The
// four-slope form blends the primary turnover at Mt with a secondary
// regime at Mp.
func (p StellarParams) Fstar(m Real) Real {
	return dpl(m, p.F0, p.Mt, p.G1, p.G2) * dpl(m, 1.0, p.Mp, p.G3, p.G4)
}

// Fesc evaluates the escape fraction for one halo mass, a single power
// law anchored at MpEsc and capped at 1.
func (p StellarParams) Fesc(m Real) Real {
	f := p.F0Esc * math.Pow(m/p.MpEsc, p.AlEsc)
	if f > 1 {
		return 1
	}
	return f
}

// StellarFractions maps halo masses to (fstar, fesc) arrays under the
// configured model kind.
//
// The mass-independent kinds return fesc == nil: historically that
// branch never produced an escape fraction and the caller supplies its
// own (the flux pipeline treats nil as unity). The dpl kinds fill
// both. Any other kind is an error rather than a silent fall-through
// with an undefined fesc.
func StellarFractions(kind string, p StellarParams, cosmo Cosmo, mass []Real) (fstar, fesc []Real, err error) {
	switch strings.ToLower(kind) {
	case "fgamma", "f_gamma", "mass_independent":
		fb := cosmo.BaryonFraction()
		fstar = make([]Real, len(mass))
		for i := range fstar {
			fstar[i] = fb
		}
		return fstar, nil, nil
	case "dpl", "mass_dependent":
		fstar = make([]Real, len(mass))
		fesc = make([]Real, len(mass))
		for i, m := range mass {
			fstar[i] = p.Fstar(m)
			fesc[i] = p.Fesc(m)
		}
		return fstar, fesc, nil
	default:
		return nil, nil, fmt.Errorf("fstar_kind %q: %w", kind, ErrUnimplementedModel)
	}
}
