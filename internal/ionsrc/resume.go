package ionsrc

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Prior-run output files carry their redshift in the name, e.g.
// xfrac_8.000.dat or IonRates_9.500.npy.
var outputRe = regexp.MustCompile(`^(xfrac|IonRates)_(\d+\.\d+)\.(dat|npy)$`)

// OutputRedshifts scans a results directory for prior-run ionization
// outputs and returns the distinct redshift tags found, ascending.
func OutputRedshifts(dir string) ([]Real, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	seen := map[Real]bool{}
	for _, e := range entries {
		m := outputRe.FindStringSubmatch(e.Name())
		if m == nil || m[1] != "xfrac" {
			continue
		}
		z, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		seen[z] = true
	}
	zs := make([]Real, 0, len(seen))
	for z := range seen {
		zs = append(zs, z)
	}
	sort.Float64s(zs)
	return zs, nil
}

// ExtensionInFolder reports which prior-state encoding the results
// directory holds, ".dat" or ".npy". Neither present means there is
// nothing to resume from.
func ExtensionInFolder(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		if m := outputRe.FindStringSubmatch(name); m != nil {
			return "." + m[3], nil
		}
	}
	return "", fmt.Errorf("%s: no xfrac/IonRates outputs (.dat or .npy): %w", dir, ErrMissingResumeState)
}

// ReadResumeFields reconstructs the ionized fraction and the
// photoionization rate at redshift z from whichever encoding the
// results directory holds. The binary cubes store xfrac at 64 bits
// and IonRates at 32, matching what the prior run wrote.
func ReadResumeFields(dir string, z Real) (xh, phiIon []Real, err error) {
	ext, err := ExtensionInFolder(dir)
	if err != nil {
		return nil, nil, err
	}
	xfile := filepath.Join(dir, fmt.Sprintf("xfrac_%.3f%s", z, ext))
	pfile := filepath.Join(dir, fmt.Sprintf("IonRates_%.3f%s", z, ext))

	switch ext {
	case ".dat":
		xh, _, err = ReadCbin(xfile, 64)
		if err != nil {
			return nil, nil, err
		}
		phiIon, _, err = ReadCbin(pfile, 32)
		if err != nil {
			return nil, nil, err
		}
	case ".npy":
		xh, err = ReadNpyCube(xfile)
		if err != nil {
			return nil, nil, err
		}
		phiIon, err = ReadNpyCube(pfile)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(xh) != len(phiIon) {
		return nil, nil, fmt.Errorf("%s: xfrac has %d cells, IonRates %d", dir, len(xh), len(phiIon))
	}
	return xh, phiIon, nil
}
