// Package sweep fires a series of shots that differ in one physical input
// and collects the muzzle exit and efficiency of each.
//
// Points are evaluated concurrently but always reported in the order of
// the swept values. A point that fails is either recorded with its error
// (Mark, the default) or stops the whole sweep (Abort); the same policy
// applies to every Field.
package sweep
