// Package analysis extracts frequency-domain features from simulated
// trajectories.
//
//   - [PowerSpectrum]: amplitude spectrum of a uniformly sampled signal
//   - [Spectrum.DominantPeriod]: strongest oscillation period, in hours
//
// # Dosing Periodicity
//
// Under a periodic dose pattern the concentration settles into a
// sawtooth, and its spectrum peaks at the dosing interval:
//
//	spectrum := analysis.PowerSpectrum(conc, dt)
//	period := spectrum.DominantPeriod()
package analysis
