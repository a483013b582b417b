package projection

// DefaultAssumptions collects every policy constant and fallback the engine
// uses, so tests can substitute an alternate policy without touching the
// inference logic.
type DefaultAssumptions struct {
	// Fallbacks applied when a metric is absent or unparsable
	RevenueMonthly float64
	GrowthMonthly  float64
	ARPUMonthly    float64
	CAC            float64

	// Fixed policy constants, never inferred from input
	GrossMargin       float64
	ChurnMonthly      float64
	FixedMonthlyCosts float64

	// CAC derivation when MAU and revenue are both known
	CACFloor        float64
	CACARPUMultiple float64

	// Scenario branching
	ConservativeMultiple float64
	ConservativeFloor    float64
	OptimisticMultiple   float64

	// Horizons
	Months         int
	FiveYearMonths int
}

// StandardAssumptions is the production policy.
func StandardAssumptions() DefaultAssumptions {
	return DefaultAssumptions{
		RevenueMonthly:       100000.0,
		GrowthMonthly:        0.10,
		ARPUMonthly:          250.0,
		CAC:                  150.0,
		GrossMargin:          0.25,
		ChurnMonthly:         0.05,
		FixedMonthlyCosts:    800000.0,
		CACFloor:             50.0,
		CACARPUMultiple:      3.0,
		ConservativeMultiple: 0.5,
		ConservativeFloor:    -0.02,
		OptimisticMultiple:   1.5,
		Months:               24,
		FiveYearMonths:       60,
	}
}
