package ionsrc

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/hdf5"
)

// readHalosHDF5 reads the HDF5 conversion of a CubeP3M catalog:
// datasets "mass" (Msun/h) and "pos" (Mpc/h, shape n x 3), with the
// file's own reduced Hubble parameter as attribute "h" on the mass
// dataset. Unlike the other branches, normalization uses that
// embedded h, not the run's.
func readHalosHDF5(path string) (*HaloCatalog, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	mset, err := f.OpenDataset("mass")
	if err != nil {
		return nil, fmt.Errorf("%s: dataset mass: %w", path, err)
	}
	defer mset.Close()

	dims, _, err := mset.Space().SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	n := int(dims[0])

	mass := make([]float64, n)
	if err := mset.Read(&mass); err != nil {
		return nil, fmt.Errorf("%s: dataset mass: %w", path, err)
	}

	attr, err := mset.OpenAttribute("h")
	if err != nil {
		return nil, fmt.Errorf("%s: attribute h: %w", path, err)
	}
	var h float64
	if err := attr.Read(&h, hdf5.T_NATIVE_DOUBLE); err != nil {
		attr.Close()
		return nil, fmt.Errorf("%s: attribute h: %w", path, err)
	}
	attr.Close()
	if h <= 0 {
		return nil, fmt.Errorf("%s: embedded h=%g: %w", path, h, ErrMalformedCatalog)
	}

	pset, err := f.OpenDataset("pos")
	if err != nil {
		return nil, fmt.Errorf("%s: dataset pos: %w", path, err)
	}
	defer pset.Close()

	flat := make([]float64, 3*n)
	if err := pset.Read(&flat); err != nil {
		return nil, fmt.Errorf("%s: dataset pos: %w", path, err)
	}

	cat := &HaloCatalog{
		Pos:  make([][3]Real, n),
		Mass: make([]Real, n),
	}
	for i := 0; i < n; i++ {
		cat.Mass[i] = mass[i] / h // Msun
		for j := 0; j < 3; j++ {
			cat.Pos[i][j] = flat[3*i+j] / h // Mpc
		}
	}
	return cat, nil
}

// SaveMstarSources writes the binned stellar masses to
// {dir}/{z:.3f}-Mstar_sources.hdf5: datasets "sources_positions"
// (grid cells, n x 3 int32) and "sources_mass" (Msun), with run
// metadata (z, h, numhalo, units) attached to the mass dataset. The
// folder is created if absent.
func SaveMstarSources(dir string, z, h Real, sources []GridSource) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	fname := filepath.Join(dir, fmt.Sprintf("%.3f-Mstar_sources.hdf5", z))

	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fname, err)
	}
	defer f.Close()

	n := len(sources)
	cells := make([]int32, 3*n)
	mass := make([]float64, n)
	for i, s := range sources {
		for j := 0; j < 3; j++ {
			cells[3*i+j] = int32(s.Cell[j])
		}
		mass[i] = s.Value
	}

	pspace, err := hdf5.CreateSimpleDataspace([]uint{uint(n), 3}, nil)
	if err != nil {
		return "", err
	}
	pset, err := f.CreateDataset("sources_positions", hdf5.T_NATIVE_INT32, pspace)
	if err != nil {
		return "", fmt.Errorf("%s: sources_positions: %w", fname, err)
	}
	defer pset.Close()
	if n > 0 {
		if err := pset.Write(&cells); err != nil {
			return "", fmt.Errorf("%s: sources_positions: %w", fname, err)
		}
	}

	mspace, err := hdf5.CreateSimpleDataspace([]uint{uint(n)}, nil)
	if err != nil {
		return "", err
	}
	mset, err := f.CreateDataset("sources_mass", hdf5.T_NATIVE_DOUBLE, mspace)
	if err != nil {
		return "", fmt.Errorf("%s: sources_mass: %w", fname, err)
	}
	defer mset.Close()
	if n > 0 {
		if err := mset.Write(&mass); err != nil {
			return "", fmt.Errorf("%s: sources_mass: %w", fname, err)
		}
	}

	if err := writeScalarAttr(mset, "z", float64(z)); err != nil {
		return "", fmt.Errorf("%s: %w", fname, err)
	}
	if err := writeScalarAttr(mset, "h", float64(h)); err != nil {
		return "", fmt.Errorf("%s: %w", fname, err)
	}
	if err := writeIntAttr(mset, "numhalo", int64(n)); err != nil {
		return "", fmt.Errorf("%s: %w", fname, err)
	}
	if err := writeStringAttr(mset, "units", "cMpc Msun"); err != nil {
		return "", fmt.Errorf("%s: %w", fname, err)
	}
	return fname, nil
}

func writeScalarAttr(d *hdf5.Dataset, name string, v float64) error {
	space, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	attr, err := d.CreateAttribute(name, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		return err
	}
	defer attr.Close()
	return attr.Write(&v, hdf5.T_NATIVE_DOUBLE)
}

func writeIntAttr(d *hdf5.Dataset, name string, v int64) error {
	space, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	attr, err := d.CreateAttribute(name, hdf5.T_NATIVE_INT64, space)
	if err != nil {
		return err
	}
	defer attr.Close()
	return attr.Write(&v, hdf5.T_NATIVE_INT64)
}

func writeStringAttr(d *hdf5.Dataset, name, v string) error {
	space, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	attr, err := d.CreateAttribute(name, hdf5.T_GO_STRING, space)
	if err != nil {
		return err
	}
	defer attr.Close()
	return attr.Write(&v, hdf5.T_GO_STRING)
}
