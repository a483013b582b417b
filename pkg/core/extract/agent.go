package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"venture_valuator/pkg/core/utils"
)

// AIProvider is the text-generation collaborator for the extraction stage.
type AIProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// Extraction is the structured view of a pitch deck. Scalar fields hold ""
// when absent, Competition holds [], NotableMetrics holds {}. MissingInfo
// lists the required keys the model left empty.
type Extraction struct {
	Problem        string         `json:"problem"`
	Solution       string         `json:"solution"`
	TargetCustomer string         `json:"target_customer"`
	BusinessModel  string         `json:"business_model"`
	Pricing        string         `json:"pricing"`
	GTMStrategy    string         `json:"gtm_strategy"`
	CostStructure  string         `json:"cost_structure"`
	Competition    []string       `json:"competition"`
	NotableMetrics map[string]any `json:"notable_metrics"`
	Assumptions    string         `json:"assumptions"`
	MissingInfo    []string       `json:"missing_info"`
	RawLLM         string         `json:"raw_llm,omitempty"`
}

var requiredKeys = []string{
	"problem", "solution", "target_customer",
	"business_model", "pricing", "gtm_strategy",
	"cost_structure", "competition", "notable_metrics", "assumptions",
}

// metricAliasCopies canonicalizes the loosely-named numeric metrics the
// model tends to produce. Canonical keys are only added, never overwritten.
var metricAliasCopies = []struct {
	sources []string
	dest    string
}{
	{[]string{"Last month revenue", "last_month_revenue", "revenue_last_month", "revenue (last month)"}, "revenue_last_month"},
	{[]string{"Monthly active users", "MAU", "mau"}, "mau"},
	{[]string{"Month-over-month growth", "MoM growth", "mom_growth"}, "mom_growth"},
	{[]string{"Net Promoter Score (NPS)", "NPS", "nps"}, "nps"},
	{[]string{"Repeat customers", "repeat_rate", "repeat"}, "repeat_rate"},
	{[]string{"Orders last quarter", "orders_last_quarter"}, "orders_last_quarter"},
	{[]string{"Number of hubs", "hubs", "number_of_hubs"}, "number_of_hubs"},
	{[]string{"COGS", "cogs", "cogs_percent"}, "cogs_percent"},
	{[]string{"avg_delivery_time", "average_delivery_time", "delivery_time_avg"}, "avg_delivery_time"},
	{[]string{"marketing_cost_monthly", "marketing_monthly"}, "marketing_cost_monthly"},
	{[]string{"tech_cost_monthly", "tech_monthly"}, "tech_cost_monthly"},
	{[]string{"gross_margin", "average_gross_margin"}, "gross_margin"},
}

const maxInputChars = 20000

// Agent turns raw deck text into an Extraction via one structured LLM call.
// A parse failure returns the fallback skeleton with RawLLM set, never an
// error the pipeline has to branch on.
type Agent struct {
	provider AIProvider
	prompt   string
}

func NewAgent(provider AIProvider, promptTemplate string) *Agent {
	return &Agent{provider: provider, prompt: promptTemplate}
}

// ExtractFromText runs the extraction call and normalizes the response. The
// input is truncated to keep the prompt inside model context limits.
func (a *Agent) ExtractFromText(ctx context.Context, text string) (Extraction, error) {
	runes := []rune(text)
	if len(runes) > maxInputChars {
		text = string(runes[:maxInputChars])
	}

	prompt := strings.ReplaceAll(a.prompt, "{raw_text}", text)
	fmt.Println("[EXTRACT] Calling LLM...")

	resp, err := a.provider.Generate(ctx, "You are an expert startup analyst.", prompt)
	if err != nil {
		return fallbackExtraction(""), fmt.Errorf("EXTRACTION_LLM_ERROR: %v", err)
	}

	var raw map[string]any
	if _, err := utils.SmartParse(resp, &raw); err != nil {
		fmt.Println("[EXTRACT] Failed to parse JSON. Returning fallback template.")
		return fallbackExtraction(resp), nil
	}

	result := normalize(raw)
	fmt.Println("[EXTRACT] Extraction complete.")
	return result, nil
}

// normalize repairs the loose typing LLMs produce: competition as a bare
// string, notable_metrics as a list of "Key: Value" strings or small dicts,
// missing required keys.
func normalize(raw map[string]any) Extraction {
	e := Extraction{
		Problem:        stringField(raw, "problem"),
		Solution:       stringField(raw, "solution"),
		TargetCustomer: stringField(raw, "target_customer"),
		BusinessModel:  stringField(raw, "business_model"),
		Pricing:        stringField(raw, "pricing"),
		GTMStrategy:    stringField(raw, "gtm_strategy"),
		CostStructure:  stringField(raw, "cost_structure"),
		Assumptions:    stringField(raw, "assumptions"),
		Competition:    normalizeCompetition(raw["competition"]),
		NotableMetrics: normalizeMetrics(raw["notable_metrics"]),
	}

	for _, alias := range metricAliasCopies {
		copyIfExists(e.NotableMetrics, alias.sources, alias.dest)
	}

	// Sub-dicts flatten to JSON strings so every metric value stays simple;
	// downstream parsers work on strings and numbers only
	for k, v := range e.NotableMetrics {
		if m, ok := v.(map[string]any); ok {
			if b, err := json.Marshal(m); err == nil {
				e.NotableMetrics[k] = string(b)
			} else {
				e.NotableMetrics[k] = fmt.Sprintf("%v", m)
			}
		}
	}

	e.MissingInfo = missingInfo(e)
	return e
}

func normalizeCompetition(v any) []string {
	switch c := v.(type) {
	case nil:
		return []string{}
	case string:
		if c == "" {
			return []string{}
		}
		return []string{c}
	case []any:
		out := make([]string, 0, len(c))
		for _, item := range c {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func normalizeMetrics(v any) map[string]any {
	switch m := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return m
	case string:
		var parsed map[string]any
		if err := json.Unmarshal([]byte(m), &parsed); err == nil {
			return parsed
		}
		return map[string]any{}
	case []any:
		cleaned := map[string]any{}
		for _, item := range m {
			switch entry := item.(type) {
			case string:
				if key, val, ok := strings.Cut(entry, ":"); ok {
					cleaned[strings.TrimSpace(key)] = strings.TrimSpace(val)
				}
			case map[string]any:
				for kk, vv := range entry {
					cleaned[strings.TrimSpace(kk)] = vv
				}
			}
		}
		return cleaned
	}
	return map[string]any{}
}

func copyIfExists(nm map[string]any, sources []string, dest string) {
	if existing, ok := nm[dest]; ok && existing != "" && existing != nil {
		return
	}
	for _, k := range sources {
		if v, ok := nm[k]; ok {
			nm[dest] = v
			return
		}
	}
}

func missingInfo(e Extraction) []string {
	missing := []string{}
	for _, key := range requiredKeys {
		switch key {
		case "competition":
			if len(e.Competition) == 0 {
				missing = append(missing, key)
			}
		case "notable_metrics":
			if len(e.NotableMetrics) == 0 {
				missing = append(missing, key)
			}
		default:
			if stringByKey(e, key) == "" {
				missing = append(missing, key)
			}
		}
	}
	return missing
}

func stringByKey(e Extraction, key string) string {
	switch key {
	case "problem":
		return e.Problem
	case "solution":
		return e.Solution
	case "target_customer":
		return e.TargetCustomer
	case "business_model":
		return e.BusinessModel
	case "pricing":
		return e.Pricing
	case "gtm_strategy":
		return e.GTMStrategy
	case "cost_structure":
		return e.CostStructure
	case "assumptions":
		return e.Assumptions
	}
	return ""
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

func fallbackExtraction(rawLLM string) Extraction {
	return Extraction{
		Competition:    []string{},
		NotableMetrics: map[string]any{},
		MissingInfo:    []string{},
		RawLLM:         rawLLM,
	}
}
