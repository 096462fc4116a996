package ionsrc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// catalogFormat is the tagged variant over the supported on-disk halo
// catalog encodings. New formats are added here and in ReadHalos, not
// by extension checks scattered across call sites.
type catalogFormat int

const (
	formatHDF5 catalogFormat = iota // CubeP3M converted to HDF5
	formatCubeP3M                   // CubeP3M structured binary
	formatText                      // PKDGrav converted to text
)

func catalogFormatOf(path string) (catalogFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hdf5":
		return formatHDF5, nil
	case ".dat":
		return formatCubeP3M, nil
	case ".txt":
		return formatText, nil
	default:
		return 0, fmt.Errorf("%s: extension %q: %w", path, filepath.Ext(path), ErrUnsupportedFormat)
	}
}

// ReadHalos loads one catalog file into comoving Mpc and Msun,
// whatever the encoding. boxLen is the box side in Mpc/h; runH is the
// run's configured reduced Hubble parameter.
//
// The h used for unit normalization differs by branch and the
// asymmetry is historical contract, not an accident to clean up: the
// HDF5 branch divides by the h embedded in the file's own metadata,
// the binary and text branches by runH.
func ReadHalos(path string, boxLen, runH Real) (*HaloCatalog, error) {
	format, err := catalogFormatOf(path)
	if err != nil {
		return nil, err
	}
	var cat *HaloCatalog
	switch format {
	case formatHDF5:
		cat, err = readHalosHDF5(path)
	case formatCubeP3M:
		cat, err = readHalosCubeP3M(path, boxLen, runH)
	case formatText:
		cat, err = readHalosText(path, boxLen, runH)
	}
	if err != nil {
		return nil, err
	}
	if err := cat.validate(path); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *HaloCatalog) validate(path string) error {
	if len(c.Pos) != len(c.Mass) {
		return fmt.Errorf("%s: %d positions vs %d masses: %w", path, len(c.Pos), len(c.Mass), ErrMalformedCatalog)
	}
	for i := range c.Mass {
		if !isFinite(c.Mass[i]) || !isFinite(c.Pos[i][0]) || !isFinite(c.Pos[i][1]) || !isFinite(c.Pos[i][2]) {
			return fmt.Errorf("%s: non-finite value in halo %d: %w", path, i, ErrMalformedCatalog)
		}
	}
	return nil
}

// wrapText applies the text format's boundary convention after the
// half-box shift. It is reflective rather than modular, and the two
// rules apply in sequence: boxsize+delta flips to -delta, which the
// second rule then lifts to boxsize-delta. This mirrors the converter
// that produced these files and only holds for positions within one
// box length of range.
func wrapText(x, boxsize Real) Real {
	if x > boxsize {
		x = boxsize - x
	}
	if x < 0 {
		x = boxsize + x
	}
	return x
}

// readHalosText parses the whitespace-delimited PKDGrav conversion:
// column 0 mass (Msun/h), columns 1..3 position (Mpc/h, box-centered).
func readHalosText(path string, boxLen, runH Real) (*HaloCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat HaloCatalog
	for ln, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("%s:%d: want 4 columns [mass x y z], got %d: %w",
				path, ln+1, len(fields), ErrMalformedCatalog)
		}
		var row [4]Real
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: column %d: %w", path, ln+1, i, ErrMalformedCatalog)
			}
			row[i] = v
		}
		var p [3]Real
		for i := 0; i < 3; i++ {
			p[i] = wrapText(row[i+1]+boxLen/2, boxLen) / runH
		}
		cat.Mass = append(cat.Mass, row[0]/runH)
		cat.Pos = append(cat.Pos, p)
	}
	return &cat, nil
}
