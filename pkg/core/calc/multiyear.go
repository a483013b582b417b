package calc

// MultiYearTable is a long-horizon revenue-only model: the monthly compound
// growth series plus annual totals for each contiguous 12-month block.
type MultiYearTable struct {
	Monthly []float64 `json:"monthly"`
	Annual  []float64 `json:"annual"`
}

// MultiYearRevenueTable builds a months-long monthly revenue model (60 for
// the standard 5-year view) and rolls each 12-month block into an annual
// total. Margin and cost fields are intentionally ignored: this is the
// top-line growth narrative, distinct from the operating projection.
func MultiYearRevenueTable(startMonthly, growth float64, months int) MultiYearTable {
	monthly := GrowthSeries(startMonthly, growth, months)

	years := len(monthly) / 12
	annual := make([]float64, 0, years)
	for y := 0; y < years; y++ {
		annual = append(annual, MonthlyToAnnual(monthly[y*12:(y+1)*12]))
	}

	return MultiYearTable{Monthly: monthly, Annual: annual}
}
