package projection

import "venture_valuator/pkg/core/calc"

// Scenario names. Growth ordering between them is not guaranteed: with a
// negative base growth the optimistic multiplier produces a lower rate than
// base. That is a consequence of the multiplier policy, not a bug.
const (
	ScenarioConservative = "conservative"
	ScenarioBase         = "base"
	ScenarioOptimistic   = "optimistic"
)

// ModelInputs is the canonical set of numeric drivers, fully resolved from
// the metrics bag plus fallbacks. Immutable per run.
type ModelInputs struct {
	RevenueMonthly    float64 `json:"revenue_monthly"`
	GrowthMonthly     float64 `json:"growth_monthly"`
	MAU               *int    `json:"mau"`
	GrossMargin       float64 `json:"gross_margin"`
	CAC               float64 `json:"cac"`
	ChurnMonthly      float64 `json:"churn_monthly"`
	FixedMonthlyCosts float64 `json:"fixed_monthly_costs"`
	ARPUMonthly       float64 `json:"arpu_monthly"`
}

// YearlyNet holds annualized net cashflow. Year2 is nil when the horizon is
// shorter than 24 months.
type YearlyNet struct {
	Year1 float64  `json:"year1"`
	Year2 *float64 `json:"year2"`
}

// Scenario is one full projection branch. All series share the run's
// month horizon.
type Scenario struct {
	GrowthMonthly         float64            `json:"growth_monthly"`
	RevenueSeries         []float64          `json:"revenue_series"`
	GrossProfitSeries     []float64          `json:"gross_profit_series"`
	VariableCosts         []float64          `json:"variable_costs"`
	TotalCosts            []float64          `json:"total_costs"`
	NetCashflow           []float64          `json:"net_cashflow"`
	CumulativeNetCashflow []float64          `json:"cumulative_net_cashflow"`
	BreakevenMonth        *int               `json:"breakeven_month"`
	YearlyNet             YearlyNet          `json:"yearly_net"`
	CACLTV                calc.UnitEconomics `json:"cac_ltv"`
}

// Summary is the headline figures consumed by memo and deck assembly.
type Summary struct {
	RevenueMonthlyStart float64 `json:"revenue_monthly_start"`
	ARPUMonthly         float64 `json:"arpu_monthly"`
	CAC                 float64 `json:"cac"`
	GrossMargin         float64 `json:"gross_margin"`
}

// FiveYearProjection is the 60-month revenue-only view, always computed at
// the single base growth rate, independent of scenario branching.
type FiveYearProjection struct {
	AnnualRevenue  []float64 `json:"annual_revenue"`
	MonthlyRevenue []float64 `json:"monthly_revenue"`
}

// Result is the complete output of one engine run. Every code path yields a
// structurally complete Result; there is no fatal error class inside the
// engine itself.
type Result struct {
	Inputs             ModelInputs         `json:"inputs"`
	Months             int                 `json:"months"`
	Scenarios          map[string]Scenario `json:"scenarios"`
	Summary            Summary             `json:"summary"`
	FiveYearProjection FiveYearProjection  `json:"five_year_projection"`

	// Best-effort narrative sidecar. A failed explanation never aborts the
	// numeric pipeline; the error is reported here instead.
	LLMExplanation      string `json:"llm_explanation,omitempty"`
	LLMExplanationError string `json:"llm_explanation_error,omitempty"`
}
