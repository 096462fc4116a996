package ionsrc

import (
	"math/rand"
	"testing"
)

func TestCellOf(t *testing.T) {
	g := Halo2Grid{BoxLen: 10, N: 4}
	for _, tc := range []struct {
		pos  [3]Real
		want [3]int
	}{
		{[3]Real{0, 0, 0}, [3]int{0, 0, 0}},
		{[3]Real{2.4, 2.5, 4.9}, [3]int{0, 1, 1}},
		{[3]Real{9.99, 5.0, 7.5}, [3]int{3, 2, 3}},
		{[3]Real{10.0, -0.1, 12.6}, [3]int{0, 3, 1}}, // periodic wrap
	} {
		if got := g.CellOf(tc.pos); got != tc.want {
			t.Fatalf("CellOf(%v) = %v, want %v", tc.pos, got, tc.want)
		}
	}
}

func TestBinValuesMassConservation(t *testing.T) {
	g := Halo2Grid{BoxLen: 64, N: 8}
	rng := rand.New(rand.NewSource(42))
	n := 5000
	pos := make([][3]Real, n)
	val := make([]Real, n)
	total := Real(0)
	for i := range pos {
		for j := 0; j < 3; j++ {
			pos[i][j] = rng.Float64() * g.BoxLen
		}
		val[i] = rng.Float64() * 1e10
		total += val[i]
	}
	srcs, err := g.BinValues(pos, val)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(srcs) > g.N*g.N*g.N {
		t.Fatalf("more occupied cells (%d) than cells (%d)", len(srcs), g.N*g.N*g.N)
	}
	sum := Real(0)
	seen := map[[3]int]bool{}
	for _, s := range srcs {
		if seen[s.Cell] {
			t.Fatalf("cell %v appears twice", s.Cell)
		}
		seen[s.Cell] = true
		sum += s.Value
	}
	if !nearly(sum/total, 1, 1e-10) {
		t.Fatalf("mass not conserved: binned %v vs input %v", sum, total)
	}
}

func TestBinValuesAggregatesAndOrders(t *testing.T) {
	g := Halo2Grid{BoxLen: 10, N: 4}
	pos := [][3]Real{
		{1, 1, 1}, // cell (0,0,0)
		{6, 6, 6}, // cell (2,2,2)
		{1.2, 0.3, 2.1}, // cell (0,0,0) again
	}
	val := []Real{1, 2, 4}
	srcs, err := g.BinValues(pos, val)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(srcs) != 2 {
		t.Fatalf("want 2 occupied cells, got %d", len(srcs))
	}
	// first-occupied-cell order, summed not overwritten
	if srcs[0].Cell != [3]int{0, 0, 0} || !nearly(srcs[0].Value, 5, 1e-12) {
		t.Fatalf("cell 0 wrong: %+v", srcs[0])
	}
	if srcs[1].Cell != [3]int{2, 2, 2} || !nearly(srcs[1].Value, 2, 1e-12) {
		t.Fatalf("cell 1 wrong: %+v", srcs[1])
	}
}

func TestBinValuesLengthMismatch(t *testing.T) {
	g := Halo2Grid{BoxLen: 10, N: 4}
	if _, err := g.BinValues(make([][3]Real, 2), make([]Real, 3)); err == nil {
		t.Fatal("want error on mismatched lengths")
	}
}
