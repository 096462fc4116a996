package ionsrc

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// readFloats reads a whitespace-separated list of numbers, one or more
// per line. Used for the redshift table files next to the density and
// source catalogs.
func readFloats(path string) ([]Real, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(string(data))
	out := make([]Real, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad value %q: %w", path, f, err)
		}
		out[i] = v
	}
	return out, nil
}
