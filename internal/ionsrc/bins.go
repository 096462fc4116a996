package ionsrc

import "fmt"

// FindBins returns the tightest pair of knots bracketing z, in the
// table's own order: for an ascending table lo <= z <= hi, for a
// descending table lo >= z >= hi. Redshift tables appear both ways on
// disk (redshift decreases with time but files may list either
// direction), so the ordering is taken from the table itself. A query
// strictly outside the knot range is an error, never an extrapolation.
func FindBins(z Real, knots []Real) (lo, hi Real, err error) {
	if len(knots) < 2 {
		return 0, 0, fmt.Errorf("bin table needs at least 2 knots, got %d: %w", len(knots), ErrOutOfRange)
	}
	descending := knots[0] > knots[len(knots)-1]
	for i := 0; i+1 < len(knots); i++ {
		a, b := knots[i], knots[i+1]
		if descending {
			if a >= z && z >= b {
				return a, b, nil
			}
		} else {
			if a <= z && z <= b {
				return a, b, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("z=%.3f outside knot range [%.3f, %.3f]: %w",
		z, knots[0], knots[len(knots)-1], ErrOutOfRange)
}

// BinWeights returns the linear weights for a pair returned by
// FindBins. Both weights lie in [0,1] and sum to 1. The pairing in
// WeightedRow (wl with the lo row) matches the historical tables this
// pipeline was fit against and must not be swapped.
func BinWeights(z, lo, hi Real) (wl, wh Real) {
	wl = (z - lo) / (hi - lo)
	wh = (hi - z) / (hi - lo)
	return wl, wh
}

// WeightedRow combines two per-knot parameter rows with the FindBins
// weights: wl*row(lo) + wh*row(hi).
func WeightedRow(z, lo, hi Real, rowLo, rowHi []Real) []Real {
	wl, wh := BinWeights(z, lo, hi)
	out := make([]Real, len(rowLo))
	for i := range rowLo {
		out[i] = wl*rowLo[i] + wh*rowHi[i]
	}
	return out
}
