package ionsrc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/sbinet/npyio"
)

// ReadCbin reads a C2Ray-style binary cube: three little-endian int32
// mesh dimensions, then the cells as float32 (bits=32) or float64
// (bits=64) in Fortran order. The flat slice keeps that order.
func ReadCbin(path string, bits int) ([]Real, [3]int, error) {
	var dims [3]int
	f, err := os.Open(path)
	if err != nil {
		return nil, dims, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var hdr [3]int32
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, dims, fmt.Errorf("%s: header: %w", path, err)
	}
	n := 1
	for i := 0; i < 3; i++ {
		if hdr[i] <= 0 {
			return nil, dims, fmt.Errorf("%s: bad mesh dimension %d in header %v", path, hdr[i], hdr)
		}
		dims[i] = int(hdr[i])
		n *= dims[i]
	}

	out := make([]Real, n)
	switch bits {
	case 32:
		buf := make([]float32, n)
		if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
			return nil, dims, fmt.Errorf("%s: truncated cube (mesh %v): %w", path, dims, err)
		}
		for i, v := range buf {
			out[i] = Real(v)
		}
	case 64:
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, dims, fmt.Errorf("%s: truncated cube (mesh %v): %w", path, dims, err)
		}
	default:
		return nil, dims, fmt.Errorf("%s: cbin bits must be 32 or 64, got %d", path, bits)
	}
	return out, dims, nil
}

// WriteCbin is the inverse of ReadCbin, used by fixtures and by runs
// that persist their state in the binary encoding.
func WriteCbin(path string, dims [3]int, bits int, data []Real) error {
	if dims[0]*dims[1]*dims[2] != len(data) {
		return fmt.Errorf("%s: mesh %v does not match %d cells", path, dims, len(data))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	hdr := [3]int32{int32(dims[0]), int32(dims[1]), int32(dims[2])}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	switch bits {
	case 32:
		buf := make([]float32, len(data))
		for i, v := range data {
			buf[i] = float32(v)
		}
		if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
			return err
		}
	case 64:
		if err := binary.Write(w, binary.LittleEndian, data); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s: cbin bits must be 32 or 64, got %d", path, bits)
	}
	return w.Flush()
}

// ReadNpyCube reads a .npy array file and returns its cells flattened,
// with the total cell count taken from the stored shape.
func ReadNpyCube(path string) ([]Real, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	n := 1
	for _, d := range r.Header.Descr.Shape {
		n *= d
	}
	var data []float64
	if err := r.Read(&data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(data) != n {
		return nil, fmt.Errorf("%s: shape %v promises %d cells, read %d", path, r.Header.Descr.Shape, n, len(data))
	}
	return data, nil
}
