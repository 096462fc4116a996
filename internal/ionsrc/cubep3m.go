package ionsrc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// readHalosCubeP3M reads the converted CubeP3M structured binary
// catalog. Layout (little-endian):
//
//	int32   nhalo
//	int32   ngrid      fine-mesh cells per side the positions refer to
//	nhalo x { float32 x, y, z   position, fine-mesh cells
//	          float32 mass      Msun/h }
//
// Positions are rescaled with the configured box length (Mpc/h), so
// the reader must be told the box the run uses; masses and positions
// are then divided by the run's h, not a file-embedded one.
func readHalosCubeP3M(path string, boxLen, runH Real) (*HaloCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var nhalo, ngrid int32
	if err := binary.Read(r, binary.LittleEndian, &nhalo); err != nil {
		return nil, fmt.Errorf("%s: header: %w", path, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &ngrid); err != nil {
		return nil, fmt.Errorf("%s: header: %w", path, err)
	}
	if nhalo < 0 || ngrid <= 0 {
		return nil, fmt.Errorf("%s: header nhalo=%d ngrid=%d: %w", path, nhalo, ngrid, ErrMalformedCatalog)
	}

	rec := make([]float32, 4*int(nhalo))
	if err := binary.Read(r, binary.LittleEndian, rec); err != nil {
		return nil, fmt.Errorf("%s: truncated after header (nhalo=%d): %w", path, nhalo, err)
	}

	cellMpcH := boxLen / Real(ngrid)
	cat := &HaloCatalog{
		Pos:  make([][3]Real, nhalo),
		Mass: make([]Real, nhalo),
	}
	for i := 0; i < int(nhalo); i++ {
		for j := 0; j < 3; j++ {
			cat.Pos[i][j] = Real(rec[4*i+j]) * cellMpcH / runH // Mpc
		}
		cat.Mass[i] = Real(rec[4*i+3]) / runH // Msun
	}
	return cat, nil
}

// writeHalosCubeP3M is the inverse of readHalosCubeP3M, used to build
// fixtures and conversion tooling. Positions come in fine-mesh cells,
// masses in Msun/h.
func writeHalosCubeP3M(path string, ngrid int, pos [][3]float32, mass []float32) error {
	if len(pos) != len(mass) {
		return fmt.Errorf("%s: %d positions vs %d masses: %w", path, len(pos), len(mass), ErrMalformedCatalog)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, int32(len(mass))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(ngrid)); err != nil {
		return err
	}
	for i := range mass {
		rec := [4]float32{pos[i][0], pos[i][1], pos[i][2], mass[i]}
		if err := binary.Write(w, binary.LittleEndian, rec[:]); err != nil {
			return err
		}
	}
	return w.Flush()
}
