package ionsrc

import (
	"bytes"
	"strings"
	"testing"
)

func testParams() *Params {
	return &Params{
		Cosmology: CosmologyParams{H: 0.7, Om0: 0.30, Ob0: 0.048},
		Grid:      GridParams{BoxSize: 10, N: 4, ZRed0: 21},
		Material:  MaterialParams{XH0: 1.2e-3, Temp0: 1e4, AvgDens: 1e-4, MeanMolec: 1},
		Sources: SourceParams{
			FstarKind: "fgamma",
			Nion:      2000,
			AlphaH:    0.79,
		},
	}
}

func TestIonizingFluxEndToEnd(t *testing.T) {
	dir := t.TempDir()
	// two halos in the same cell: box 10 Mpc/h, N=4, h=0.7,
	// fstar = Ob0/Om0 = 0.16
	path := writeFile(t, dir, "halos.txt",
		"1e10 1 1 1\n"+
			"2e10 1 1 1\n")
	par := testParams()
	cosmo := par.Cosmo()
	var buf bytes.Buffer
	rep := NewReporter(0, &buf)

	srcs, err := IonizingFlux(path, 8.0, par, cosmo, rep, "")
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(srcs) != 1 {
		t.Fatalf("want exactly 1 occupied cell, got %d", len(srcs))
	}
	wantMstar := 3e10 * 0.16 / 0.7
	if !nearly(srcs[0].Mstar, wantMstar, wantMstar*1e-12) {
		t.Fatalf("aggregated Mstar = %v, want %v", srcs[0].Mstar, wantMstar)
	}
	ts := 1.0 / (par.Sources.AlphaH * 9.0 * cosmo.H(8.0))
	wantFlux := Msun2g * par.Sources.Nion * wantMstar / (ProtonM * ts * SStarRef)
	if !nearly(srcs[0].NormFlux, wantFlux, wantFlux*1e-12) {
		t.Fatalf("NormFlux = %v, want %v", srcs[0].NormFlux, wantFlux)
	}
	if srcs[0].NormFlux <= 0 {
		t.Fatalf("flux must be positive, got %v", srcs[0].NormFlux)
	}
	if !strings.Contains(buf.String(), "Total Flux") {
		t.Fatalf("rank-0 reporter produced no summary:\n%s", buf.String())
	}
}

func TestIonizingFluxEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "halos.txt", "# empty\n")
	par := testParams()

	srcs, err := IonizingFlux(path, 8.0, par, par.Cosmo(), nil, "")
	if err != nil {
		t.Fatalf("empty catalog must not fail: %v", err)
	}
	if len(srcs) != 0 {
		t.Fatalf("want empty source field, got %d entries", len(srcs))
	}
}

func TestIonizingFluxSilentOffRank0(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "halos.txt", "1e10 1 1 1\n")
	par := testParams()
	var buf bytes.Buffer
	rep := NewReporter(3, &buf)

	if _, err := IonizingFlux(path, 8.0, par, par.Cosmo(), rep, ""); err != nil {
		t.Fatalf("%v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("non-zero rank must not report, got:\n%s", buf.String())
	}
}
