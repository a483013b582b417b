package projection

import (
	"context"
	"encoding/json"
	"fmt"

	"venture_valuator/pkg/core/calc"
)

// Explainer produces an optional plain-language narrative for a finished
// model. It is best-effort: failures are reported in the result sidecar and
// never abort the numeric pipeline.
type Explainer interface {
	Explain(ctx context.Context, prompt string) (string, error)
}

// Agent is the financial projection engine. Stateless and re-entrant: each
// Run operates solely on its inputs and allocates its own output, so
// concurrent callers need no coordination.
type Agent struct {
	defaults  DefaultAssumptions
	explainer Explainer
}

// NewAgent creates an engine with the standard assumption policy.
func NewAgent() *Agent {
	return &Agent{defaults: StandardAssumptions()}
}

// NewAgentWithDefaults creates an engine with a custom policy.
func NewAgentWithDefaults(d DefaultAssumptions) *Agent {
	return &Agent{defaults: d}
}

// SetExplainer attaches the optional narrative collaborator.
func (a *Agent) SetExplainer(e Explainer) {
	a.explainer = e
}

// Defaults returns the active assumption policy.
func (a *Agent) Defaults() DefaultAssumptions {
	return a.defaults
}

// Run builds the full multi-scenario model from a metrics bag and optional
// overrides. The metrics bag may be nil or empty; overrides win over every
// inferred value. The boolean override key "explain" requests the narrative
// sidecar.
func (a *Agent) Run(ctx context.Context, metrics map[string]any, overrides map[string]any) Result {
	inputs := InferInputs(metrics, a.defaults)
	inputs = MergeOverrides(inputs, overrides)

	months := a.defaults.Months
	baseGrowth := inputs.GrowthMonthly

	scenarioGrowth := map[string]float64{
		ScenarioConservative: max(a.defaults.ConservativeFloor, baseGrowth*a.defaults.ConservativeMultiple),
		ScenarioBase:         baseGrowth,
		ScenarioOptimistic:   baseGrowth * a.defaults.OptimisticMultiple,
	}

	result := Result{
		Inputs:    inputs,
		Months:    months,
		Scenarios: make(map[string]Scenario, len(scenarioGrowth)),
		Summary: Summary{
			RevenueMonthlyStart: inputs.RevenueMonthly,
			ARPUMonthly:         inputs.ARPUMonthly,
			CAC:                 inputs.CAC,
			GrossMargin:         inputs.GrossMargin,
		},
	}

	for name, growth := range scenarioGrowth {
		result.Scenarios[name] = a.buildScenario(inputs, growth, months)
	}

	fiveYear := calc.MultiYearRevenueTable(inputs.RevenueMonthly, inputs.GrowthMonthly, a.defaults.FiveYearMonths)
	result.FiveYearProjection = FiveYearProjection{
		AnnualRevenue:  fiveYear.Annual,
		MonthlyRevenue: fiveYear.Monthly,
	}

	if wantExplanation(overrides) && a.explainer != nil {
		a.explain(ctx, &result)
	}

	return result
}

// buildScenario runs the cost model at one growth rate and derives the
// cumulative, breakeven, annualized and unit-economics views. Scenarios are
// independent; no cross-scenario state.
func (a *Agent) buildScenario(inputs ModelInputs, growth float64, months int) Scenario {
	model := calc.BuildCostModel(inputs.RevenueMonthly, growth, months, inputs.GrossMargin, inputs.FixedMonthlyCosts)
	cumulative := calc.Cumulative(model.NetCashflow)

	yearly := YearlyNet{Year1: calc.MonthlyToAnnual(sliceHead(model.NetCashflow, 12))}
	if months >= 24 {
		year2 := calc.MonthlyToAnnual(model.NetCashflow[12:24])
		yearly.Year2 = &year2
	}

	return Scenario{
		GrowthMonthly:         growth,
		RevenueSeries:         model.Revenue,
		GrossProfitSeries:     model.GrossProfit,
		VariableCosts:         model.VariableCosts,
		TotalCosts:            model.TotalCosts,
		NetCashflow:           model.NetCashflow,
		CumulativeNetCashflow: cumulative,
		BreakevenMonth:        calc.BreakevenMonth(cumulative),
		YearlyNet:             yearly,
		CACLTV:                calc.CACLTV(inputs.CAC, inputs.ARPUMonthly, inputs.GrossMargin, inputs.ChurnMonthly),
	}
}

func (a *Agent) explain(ctx context.Context, result *Result) {
	inputsJSON, err := json.MarshalIndent(result.Inputs, "", "  ")
	if err != nil {
		result.LLMExplanationError = err.Error()
		return
	}

	names := make([]string, 0, len(result.Scenarios))
	for name := range result.Scenarios {
		names = append(names, name)
	}

	prompt := fmt.Sprintf(
		"Explain these financial projections succinctly.\n\nINPUTS:\n%s\n\nSCENARIOS:\n%v",
		inputsJSON, names,
	)

	text, err := a.explainer.Explain(ctx, prompt)
	if err != nil {
		result.LLMExplanationError = err.Error()
		return
	}
	result.LLMExplanation = text
}

func wantExplanation(overrides map[string]any) bool {
	v, ok := overrides["explain"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func sliceHead(values []float64, n int) []float64 {
	if len(values) < n {
		return values
	}
	return values[:n]
}
