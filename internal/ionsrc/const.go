package ionsrc

// Physical constants in cgs, matching the values the prior-run outputs
// were produced with (do not "refresh" them to CODATA).
const (
	Msun2g   = 1.98892e33  // g
	ProtonM  = 1.672661e-24 // g
	MpcCm    = 3.086e24    // cm
	Year     = 3.1556952e7 // s
	GNewton  = 6.674e-8    // cm^3 g^-1 s^-2
	KmPerMpc = 3.08567758e19

	// SStarRef is the reference ionizing luminosity all per-cell
	// fluxes are normalized to.
	SStarRef = 1e48 // photons/s
)

// Configuration defaults applied by LoadParams.
const (
	DefaultN         = 256
	DefaultXH0       = 1.2e-3
	DefaultTemp0     = 1e4 // K
	DefaultMeanMolec = 1.0
	DefaultAlphaH    = 0.79
)
