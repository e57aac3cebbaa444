package physics

// Physical constants, at the precision the launcher model is calibrated
// with.
const (
	// GasConstant is the molar gas constant R, J/(mol·K).
	GasConstant = 8.31
	// AtomicMassUnit is one atomic mass unit, kg.
	AtomicMassUnit = 1.7e-27
	// Avogadro is the Avogadro number, 1/mol.
	Avogadro = 6.02e23
	// MolarMassScale converts a molar mass in g/mol to kg/mol.
	MolarMassScale = 1e-3
	// InductancePerLengthCoeff is μ₀/2π, H/m.
	InductancePerLengthCoeff = 2e-7
)
