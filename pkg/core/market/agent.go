package market

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"venture_valuator/pkg/core/utils"
)

// AIProvider is the text-generation collaborator for the research stage.
type AIProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// SearchFunc returns raw search result text for a query. Failures are
// folded into the research prompt as error notes, never fatal.
type SearchFunc func(ctx context.Context, query string) (string, error)

// Agent produces a structured market research report from extraction output:
// TAM/SAM/SOM, growth, competitive landscape, industry benchmarks,
// opportunities and risks. The report keeps the LLM's loose typing; only
// structural validity is enforced.
type Agent struct {
	provider  AIProvider
	search    SearchFunc
	useSearch bool
}

func NewAgent(provider AIProvider) *Agent {
	return &Agent{provider: provider}
}

// EnableWebSearch attaches a search collaborator for prompt enrichment.
func (a *Agent) EnableWebSearch(search SearchFunc) {
	a.search = search
	a.useSearch = search != nil
}

// Run executes the research cycle. On parse failure the returned map is
// error-shaped ("error", "raw_response" keys) rather than nil; downstream
// consumers treat it as an opaque research blob either way.
func (a *Agent) Run(ctx context.Context, extracted map[string]any) (map[string]any, error) {
	webResults := ""
	if a.useSearch {
		webResults = a.gatherWebResults(ctx, extracted)
	}

	prompt := buildPrompt(extracted, webResults)
	fmt.Println("[MARKET] Running market research...")

	resp, err := a.provider.Generate(ctx, "You are a world-class startup market analyst.", prompt)
	if err != nil {
		return nil, fmt.Errorf("MARKET_LLM_ERROR: %v", err)
	}

	var report map[string]any
	if _, err := utils.SmartParse(resp, &report); err != nil {
		fmt.Println("[MARKET] Failed to parse research JSON.")
		return map[string]any{
			"error":        "Failed to parse JSON",
			"exception":    err.Error(),
			"raw_response": resp,
		}, nil
	}

	return report, nil
}

func (a *Agent) gatherWebResults(ctx context.Context, extracted map[string]any) string {
	industry := firstString(extracted, "industry", "Industry", "market_category")
	location := firstString(extracted, "location", "Location")

	queries := []string{
		fmt.Sprintf("%s market size %s", industry, location),
		fmt.Sprintf("%s competitors India", industry),
		fmt.Sprintf("%s growth rate report", industry),
		fmt.Sprintf("%s trends 2025", industry),
	}

	var combined []string
	for _, q := range queries {
		out, err := a.search(ctx, q)
		if err != nil {
			combined = append(combined, fmt.Sprintf("Query: %s\nError: %v", q, err))
			continue
		}
		combined = append(combined, fmt.Sprintf("Query: %s\nResult:\n%s", q, out))
	}
	return strings.Join(combined, "\n")
}

func buildPrompt(extracted map[string]any, webResults string) string {
	extractedJSON, err := json.MarshalIndent(extracted, "", "  ")
	if err != nil {
		extractedJSON = []byte("{}")
	}

	return fmt.Sprintf(`Your task: Produce a STRUCTURED, FACT-BASED market research summary
for the startup described below.

========================
STARTUP INFO (JSON)
========================
%s

========================
WEB RESEARCH (optional)
========================
%s

========================
REQUIRED OUTPUT (JSON FORMAT ONLY)
========================
Respond ONLY with valid JSON containing the keys below:

{
  "market_category": "",
  "tam": "",
  "sam": "",
  "som": "",
  "market_growth_rate": "",
  "key_trends": [],
  "customer_segments": [],
  "competitive_landscape": {
      "direct_competitors": [],
      "indirect_competitors": [],
      "competitive_advantages": [],
      "competitive_risks": []
  },
  "regional_factors": "",
  "industry_benchmarks": {
      "average_gross_margin": "",
      "typical_cac_range": "",
      "ltv_range": "",
      "unit_economics_notes": ""
  },
  "opportunities": [],
  "risks": [],
  "summary_insights": ""
}

========================
GUIDELINES
========================
- Pull factual market patterns from your training.
- If numbers vary, give typical industry ranges.
- Do NOT hallucinate precise financial numbers unless the industry has known estimates.
- Keep the JSON valid.`, extractedJSON, webResults)
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
