// Package shot runs a single launcher firing and reduces it to the
// quantities a designer cares about: the muzzle exit sample and the
// conversion efficiency from stored electrical energy to gas kinetic
// energy.
//
// A Simulator normalizes the physical inputs, integrates the
// dimensionless equations from physics.Launcher on the requested time
// grid and converts the trajectory back to SI series. ExtractExit finds
// the first sample past the muzzle; the true crossing lies between that
// sample and the previous one, so the reported exit lags by at most one
// time step. InterpolateExit removes that lag by linear interpolation.
package shot
