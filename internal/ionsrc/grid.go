package ionsrc

import (
	"fmt"
	"math"
)

// Halo2Grid bins continuous halo positions onto the coarse N^3 mesh
// covering a cubic volume of side BoxLen (comoving Mpc, same units as
// the positions handed to it).
type Halo2Grid struct {
	BoxLen Real
	N      int
}

// CellWidth returns the physical size of one cell.
func (g Halo2Grid) CellWidth() Real { return g.BoxLen / Real(g.N) }

// CellOf maps a position to its cell index along each axis:
// floor(pos/cw), wrapped periodically into [0, N).
func (g Halo2Grid) CellOf(p [3]Real) [3]int {
	cw := g.CellWidth()
	var c [3]int
	for i := 0; i < 3; i++ {
		k := int(math.Floor(p[i] / cw))
		k %= g.N
		if k < 0 {
			k += g.N
		}
		c[i] = k
	}
	return c
}

// BinValues aggregates val over the cells the positions fall in. Halos
// sharing a cell are summed, never overwritten; the total over the
// returned sparse list equals the total of val (mass conservation).
// Output order is first-occupied-cell order, one entry per distinct
// occupied cell.
func (g Halo2Grid) BinValues(pos [][3]Real, val []Real) ([]GridSource, error) {
	if len(pos) != len(val) {
		return nil, fmt.Errorf("positions (%d) and values (%d) differ in length: %w",
			len(pos), len(val), ErrMalformedCatalog)
	}
	DebugLogOnce("Cell width: %.5f Mpc (N=%d)", g.CellWidth(), g.N)
	out := make([]GridSource, 0, len(pos))
	idx := make(map[[3]int]int, len(pos))
	for i := range pos {
		c := g.CellOf(pos[i])
		if j, ok := idx[c]; ok {
			out[j].Value += val[i]
			continue
		}
		idx[c] = len(out)
		out = append(out, GridSource{Cell: c, Value: val[i]})
	}
	return out, nil
}
