package ionsrc

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ClumpingTable holds the per-redshift fit coefficients of the
// sub-grid clumping model, one (a, b, c) row per redshift knot in the
// order the file lists them.
type ClumpingTable struct {
	Z []Real
	A []Real
	B []Real
	C []Real
}

// LoadClumpingTable reads the coefficient table: CSV with a header row
// and columns [z, a, b, c], redshift as the index column.
func LoadClumpingTable(path string) (*ClumpingTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("%s: need a header and at least 2 redshift rows, got %d rows", path, len(rows))
	}

	t := &ClumpingTable{}
	for ln, row := range rows[1:] { // skip header
		if len(row) != 4 {
			return nil, fmt.Errorf("%s:%d: want columns [z,a,b,c], got %d", path, ln+2, len(row))
		}
		var vals [4]Real
		for i, s := range row {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: column %d: %w", path, ln+2, i, err)
			}
			vals[i] = v
		}
		t.Z = append(t.Z, vals[0])
		t.A = append(t.A, vals[1])
		t.B = append(t.B, vals[2])
		t.C = append(t.C, vals[3])
	}
	return t, nil
}

func (t *ClumpingTable) row(z Real) []Real {
	for i := range t.Z {
		if t.Z[i] == z {
			return []Real{t.A[i], t.B[i], t.C[i]}
		}
	}
	return nil
}

// Coeffs interpolates the (a, b, c) row at redshift z between the two
// bracketing knots.
func (t *ClumpingTable) Coeffs(z Real) (a, b, c Real, err error) {
	lo, hi, err := FindBins(z, t.Z)
	if err != nil {
		return 0, 0, 0, err
	}
	row := WeightedRow(z, lo, hi, t.row(lo), t.row(hi))
	return row[0], row[1], row[2], nil
}

// ApplyClumping computes the clumping correction at redshift z and
// scales ndens by it in place, returning the correction field. With
// x = ln(1 + n/mean(n)) the correction is 10^(a x^2 + b x^2 + c); the
// x^2 term really does appear twice, once with each coefficient, to
// reproduce the fits the coefficient tables were produced with.
func ApplyClumping(ndens []Real, t *ClumpingTable, z Real, rep *Reporter) ([]Real, error) {
	a, b, c, err := t.Coeffs(z)
	if err != nil {
		return nil, err
	}
	mean := stat.Mean(ndens, nil)
	clump := make([]Real, len(ndens))
	for i, n := range ndens {
		x := math.Log(1.0 + n/mean)
		clump[i] = math.Pow(10, a*x*x+b*x*x+c)
		ndens[i] *= clump[i]
	}

	rep.Logf("\n---- Created Clumping Factor :")
	if len(clump) > 0 {
		rep.Logf(" min, mean and max clumping : %.3e  %.3e  %.3e",
			floats.Min(clump), stat.Mean(clump, nil), floats.Max(clump))
		rep.Logf(" min, mean and max density : %.3e  %.3e  %.3e",
			floats.Min(ndens), stat.Mean(ndens, nil), floats.Max(ndens))
	}
	return clump, nil
}
