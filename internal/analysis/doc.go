// Package analysis inspects the time series of a fired shot.
//
//   - [CircuitPortrait] and [MechanicalPortrait]: phase plane trajectories
//   - [CurrentSpectrum]: power spectrum of the discharge current
//   - [ZeroCrossings]: interpolated sign changes of a series
//
// A discharge that rings shows up as current reversals:
//
//	reversals := analysis.ZeroCrossings(res.Time, res.Current)
//	f, _ := analysis.CurrentSpectrum(res).Dominant()
package analysis
