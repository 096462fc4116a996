package ionsrc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("%v", err)
	}
	return path
}

func TestWrapText(t *testing.T) {
	const box = 10.0
	// above the box both rules fire in turn: box+d flips to -d, then
	// lifts to box-d
	for _, d := range []Real{0.5, 3, 9.9} {
		if got := wrapText(box+d, box); !nearly(got, box-d, 1e-12) {
			t.Fatalf("wrap(%v) = %v, want %v", box+d, got, box-d)
		}
		if got := wrapText(-d, box); !nearly(got, box+(-d), 1e-12) {
			t.Fatalf("wrap(%v) = %v, want %v", -d, got, box-d)
		}
	}
	if got := wrapText(4.2, box); got != 4.2 {
		t.Fatalf("in-range coordinate must pass through, got %v", got)
	}
}

func TestReadHalosText(t *testing.T) {
	dir := t.TempDir()
	// box 10 Mpc/h, h=0.7: positions are shifted by half a box, wrapped,
	// then divided by h; masses divided by h.
	path := writeFile(t, dir, "halos.txt",
		"# mass x y z\n"+
			"1.0e10  1.0  -2.0  4.9\n"+
			"2.0e10  0.0   0.0  0.0\n")
	cat, err := ReadHalos(path, 10, 0.7)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("want 2 halos, got %d", cat.Len())
	}
	if !nearly(cat.Mass[0], 1e10/0.7, 1) || !nearly(cat.Mass[1], 2e10/0.7, 1) {
		t.Fatalf("masses wrong: %v", cat.Mass)
	}
	want := [3]Real{6.0 / 0.7, 3.0 / 0.7, 9.9 / 0.7}
	for j := 0; j < 3; j++ {
		if !nearly(cat.Pos[0][j], want[j], 1e-9) {
			t.Fatalf("pos[0] = %v, want %v", cat.Pos[0], want)
		}
	}
}

func TestReadHalosTextWrap(t *testing.T) {
	dir := t.TempDir()
	// x = 5.5 shifts to 10.5, above the box: the reflective flip gives
	// -0.5 and the below-zero rule lifts that to 9.5. y = 8.0 shifts to
	// 13.0 and lands on 7.0 the same way.
	path := writeFile(t, dir, "halos.txt", "1e10 5.5 8.0 0\n")
	cat, err := ReadHalos(path, 10, 1.0)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if !nearly(cat.Pos[0][0], 9.5, 1e-12) {
		t.Fatalf("wrapped x = %v, want 9.5", cat.Pos[0][0])
	}
	if !nearly(cat.Pos[0][1], 7.0, 1e-12) {
		t.Fatalf("wrapped y = %v, want 7.0", cat.Pos[0][1])
	}
}

func TestReadHalosFormatEquivalence(t *testing.T) {
	dir := t.TempDir()
	const (
		boxLen = 10.0 // Mpc/h
		h      = 0.7
		ngrid  = 100
	)
	// the same two halos through the text and binary encodings
	massHinv := []float32{1e10, 5e9}          // Msun/h
	cells := [][3]float32{{30, 40, 50}, {12, 0, 99}} // fine-mesh cells

	txt := writeFile(t, dir, "halos.txt",
		"1e10 -2.0 -1.0 0.0\n"+
			"5e9 -3.8 -5.0 4.9\n")
	dat := filepath.Join(dir, "halos.dat")
	if err := writeHalosCubeP3M(dat, ngrid, cells, massHinv); err != nil {
		t.Fatalf("%v", err)
	}

	catTxt, err := ReadHalos(txt, boxLen, h)
	if err != nil {
		t.Fatalf("txt: %v", err)
	}
	catDat, err := ReadHalos(dat, boxLen, h)
	if err != nil {
		t.Fatalf("dat: %v", err)
	}
	if catTxt.Len() != catDat.Len() {
		t.Fatalf("lengths differ: %d vs %d", catTxt.Len(), catDat.Len())
	}
	for i := 0; i < catTxt.Len(); i++ {
		if !nearly(catTxt.Mass[i], catDat.Mass[i], catTxt.Mass[i]*1e-6) {
			t.Fatalf("halo %d mass: txt %v vs dat %v", i, catTxt.Mass[i], catDat.Mass[i])
		}
		for j := 0; j < 3; j++ {
			if !nearly(catTxt.Pos[i][j], catDat.Pos[i][j], 1e-5) {
				t.Fatalf("halo %d pos: txt %v vs dat %v", i, catTxt.Pos[i], catDat.Pos[i])
			}
		}
	}
}

func TestReadHalosUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "halos.csv", "1e10,1,1,1\n")
	if _, err := ReadHalos(path, 10, 0.7); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}

func TestReadHalosMalformed(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"short.txt": "1e10 1.0 2.0\n",
		"word.txt":  "1e10 one 2.0 3.0\n",
		"nan.txt":   "NaN 1.0 2.0 3.0\n",
	} {
		path := writeFile(t, dir, name, data)
		if _, err := ReadHalos(path, 10, 0.7); !errors.Is(err, ErrMalformedCatalog) {
			t.Fatalf("%s: want ErrMalformedCatalog, got %v", name, err)
		}
	}
}
