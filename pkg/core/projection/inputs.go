package projection

import (
	"strconv"
	"strings"
)

// metricAliases maps the loose, key-variant spellings produced by upstream
// extraction onto canonical metric keys. The table is ordered and applied
// once before inference, keeping key canonicalization testable in isolation
// from the arithmetic. Matching is case-insensitive.
var metricAliases = []struct {
	canonical string
	aliases   []string
}{
	{"revenue_last_month", []string{
		"revenue_last_month", "last month revenue", "last_month_revenue",
		"revenue (last month)", "monthly revenue", "revenue_monthly",
	}},
	{"mau", []string{
		"mau", "monthly active users", "monthly_active_users", "active users",
	}},
	{"mom_growth", []string{
		"mom_growth", "month-over-month growth", "mom growth", "monthly growth",
		"growth_monthly",
	}},
}

// CanonicalizeMetrics returns a copy of the metrics bag with canonical keys
// filled in from their first present alias. Existing keys are never removed
// or overwritten.
func CanonicalizeMetrics(metrics map[string]any) map[string]any {
	out := make(map[string]any, len(metrics))
	lowered := make(map[string]any, len(metrics))
	for k, v := range metrics {
		out[k] = v
		lowered[strings.ToLower(strings.TrimSpace(k))] = v
	}

	for _, m := range metricAliases {
		if _, exists := out[m.canonical]; exists {
			continue
		}
		for _, alias := range m.aliases {
			if v, ok := lowered[alias]; ok {
				out[m.canonical] = v
				break
			}
		}
	}
	return out
}

// InferInputs derives a complete ModelInputs from a loosely-typed metrics
// bag. Every parse failure degrades to a fallback from d; no field absence
// is fatal and no error is ever returned.
func InferInputs(metrics map[string]any, d DefaultAssumptions) ModelInputs {
	bag := CanonicalizeMetrics(metrics)

	revenue := d.RevenueMonthly
	if raw, ok := bag["revenue_last_month"]; ok {
		if parsed, ok := ParseMoney(stringify(raw)); ok && parsed > 0 {
			revenue = parsed
		}
	}

	growth := d.GrowthMonthly
	if raw, ok := bag["mom_growth"]; ok {
		if parsed, ok := ParsePercent(raw); ok {
			growth = parsed
		}
	}

	var mau *int
	if raw, ok := bag["mau"]; ok {
		if s, isStr := raw.(string); isStr {
			if n, ok := ParseCount(s); ok {
				mau = &n
			}
		}
	}

	inputs := ModelInputs{
		RevenueMonthly:    revenue,
		GrowthMonthly:     growth,
		MAU:               mau,
		GrossMargin:       d.GrossMargin,
		ChurnMonthly:      d.ChurnMonthly,
		FixedMonthlyCosts: d.FixedMonthlyCosts,
		CAC:               d.CAC,
		ARPUMonthly:       d.ARPUMonthly,
	}

	if mau != nil && *mau > 0 && revenue > 0 {
		arpu := revenue / float64(max(1, *mau))
		inputs.ARPUMonthly = arpu
		inputs.CAC = max(d.CACFloor, d.CACARPUMultiple*arpu)
	}

	return inputs
}

// MergeOverrides applies caller-supplied overrides onto inferred inputs.
// Overrides win unconditionally and are not validated: they represent
// deliberate user correction, contradictory or not. Unknown keys are
// ignored. The merge is total and side-effect-free.
func MergeOverrides(inputs ModelInputs, overrides map[string]any) ModelInputs {
	for key, raw := range overrides {
		switch key {
		case "revenue_monthly":
			if v, ok := toFloat(raw); ok {
				inputs.RevenueMonthly = v
			}
		case "growth_monthly":
			if v, ok := toFloat(raw); ok {
				inputs.GrowthMonthly = v
			}
		case "mau":
			if v, ok := toFloat(raw); ok {
				n := int(v)
				inputs.MAU = &n
			}
		case "gross_margin":
			if v, ok := toFloat(raw); ok {
				inputs.GrossMargin = v
			}
		case "cac":
			if v, ok := toFloat(raw); ok {
				inputs.CAC = v
			}
		case "churn_monthly":
			if v, ok := toFloat(raw); ok {
				inputs.ChurnMonthly = v
			}
		case "fixed_monthly_costs":
			if v, ok := toFloat(raw); ok {
				inputs.FixedMonthlyCosts = v
			}
		case "arpu_monthly":
			if v, ok := toFloat(raw); ok {
				inputs.ARPUMonthly = v
			}
		}
	}
	return inputs
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
