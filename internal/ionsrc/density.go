package ionsrc

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NDensFromContrast converts a density-contrast cube delta to the
// proper baryon number density in 1/cm^3 at redshift z:
// rho_crit0 Ob0 (1+delta) / (mu m_p) * (1+z)^3.
func NDensFromContrast(delta []Real, cosmo Cosmo, mu, z Real) []Real {
	zp1 := 1.0 + z
	scale := cosmo.CriticalDensity0() * cosmo.Ob0 / (mu * ProtonM) * zp1 * zp1 * zp1
	out := make([]Real, len(delta))
	for i, d := range delta {
		out[i] = scale * (1.0 + d)
	}
	return out
}

// ReadDensity reads the coarse density-contrast cube fbase (resolved
// against the configured density path prefix), converts it to proper
// number density at redshift z and installs it as the state's density
// field.
func (s *Sim) ReadDensity(fbase string, z Real) error {
	file := s.Par.Paths.DensityBase + fbase
	delta, _, err := ReadCbin(file, 32)
	if err != nil {
		return err
	}
	s.State.NDens = NDensFromContrast(delta, s.Cosmo, s.Par.Material.MeanMolec, z)

	s.Rep.Logf("\n---- Reading density file:\n  %s", file)
	if len(s.State.NDens) > 0 {
		s.Rep.Logf(" min, mean and max density : %.3e  %.3e  %.3e [1/cm3]",
			floats.Min(s.State.NDens), stat.Mean(s.State.NDens, nil), floats.Max(s.State.NDens))
	}
	return nil
}
