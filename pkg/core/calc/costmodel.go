package calc

// CostModel holds the parallel monthly series of an operating projection.
// All slices share the same length.
type CostModel struct {
	Revenue       []float64 `json:"revenue_series"`
	GrossProfit   []float64 `json:"gross_profit_series"`
	VariableCosts []float64 `json:"variable_costs"`
	TotalCosts    []float64 `json:"total_costs"`
	NetCashflow   []float64 `json:"net_cashflow"`
}

// BuildCostModel derives the full cost structure from a revenue growth series.
//
//	grossProfit[i]   = revenue[i] * grossMargin
//	variableCosts[i] = revenue[i] * (1 - grossMargin)
//	totalCosts[i]    = fixedMonthly + variableCosts[i]
//	netCashflow[i]   = grossProfit[i] - fixedMonthly
//
// Net cashflow is contribution margin minus fixed overhead, not full P&L:
// variable costs are already netted out via the gross-margin split, so
// totalCosts is reported for display only and deliberately does not feed
// into netCashflow.
func BuildCostModel(startRevenue, growth float64, months int, grossMargin, fixedMonthly float64) CostModel {
	revenue := GrowthSeries(startRevenue, growth, months)

	grossProfit := make([]float64, len(revenue))
	variableCosts := make([]float64, len(revenue))
	totalCosts := make([]float64, len(revenue))
	netCashflow := make([]float64, len(revenue))

	for i, r := range revenue {
		grossProfit[i] = r * grossMargin
		variableCosts[i] = r * (1 - grossMargin)
		totalCosts[i] = fixedMonthly + variableCosts[i]
		netCashflow[i] = grossProfit[i] - fixedMonthly
	}

	return CostModel{
		Revenue:       revenue,
		GrossProfit:   grossProfit,
		VariableCosts: variableCosts,
		TotalCosts:    totalCosts,
		NetCashflow:   netCashflow,
	}
}

// BreakevenMonth scans a cumulative cash-flow sequence and returns the
// 1-indexed position of the first element >= 0, or nil if the horizon never
// reaches breakeven. First match wins; no interpolation between months.
func BreakevenMonth(cumulativeNet []float64) *int {
	for i, v := range cumulativeNet {
		if v >= 0 {
			month := i + 1
			return &month
		}
	}
	return nil
}
