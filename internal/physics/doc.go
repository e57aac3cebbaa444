// Package physics describes the electromagnetic launcher: its physical
// inputs, the normalization that turns them into a scale-free system and
// the dimensionless equations of motion.
//
// A shot is a capacitor bank C charged to U₀ discharging through the loop
// inductance L₀ plus the barrel section behind the armature. The
// armature pushes the propellant gas slug released from the valve. In
// normalized variables (time τ = ω₀·t) the state is
//
//	[v, x, U, I] = [velocity, position, voltage, current]
//
// and evolves as
//
//	dv/dτ = Q·I²
//	dx/dτ = v
//	dU/dτ = -I
//	dI/dτ = (U - v·I) / (1 + x)
//
// starting from [0, 0, 1, 0]. The growing denominator is the inductance
// added by the armature travelling down the barrel.
//
// The flow conserves
//
//	E = U²/2 + (1+x)·I²/2 + v²/(4Q)
//
// (capacitor, inductive and gas kinetic energy in units of C·U₀²), which
// [Launcher] exposes through [dynamo.Hamiltonian].
package physics
