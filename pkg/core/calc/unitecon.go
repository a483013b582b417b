package calc

// minChurn is the floor applied to monthly churn before it is used as a
// divisor. Zero-churn inputs are clamped rather than rejected, which
// silently changes the economics for churn-free businesses; that is policy,
// not a defect.
const minChurn = 0.001

// UnitEconomics is the LTV/CAC result for a single set of assumptions.
type UnitEconomics struct {
	LTV         float64  `json:"ltv"`
	CAC         float64  `json:"cac"`
	LTVCACRatio *float64 `json:"ltv_cac_ratio"`
}

// CACLTV computes customer lifetime value and the LTV:CAC ratio:
//
//	LTV = (arpuMonthly * grossMargin) / churnMonthly
//
// LTVCACRatio is nil exactly when cac == 0.
func CACLTV(cac, arpuMonthly, grossMargin, churnMonthly float64) UnitEconomics {
	if churnMonthly <= 0 {
		churnMonthly = minChurn
	}

	ltv := (arpuMonthly * grossMargin) / churnMonthly

	result := UnitEconomics{LTV: ltv, CAC: cac}
	if cac != 0 {
		ratio := ltv / cac
		result.LTVCACRatio = &ratio
	}
	return result
}
