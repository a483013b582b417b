package memo

import (
	"fmt"
	"strings"

	"venture_valuator/pkg/core/extract"
	"venture_valuator/pkg/core/projection"
	"venture_valuator/pkg/core/utils"
)

const maxBullets = 6
const wrapWidth = 90

// Overall is the headline verdict of the rule-based evaluation.
type Overall struct {
	Score      float64 `json:"score"`
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
}

// Evaluation is the complete rule-based assessment.
type Evaluation struct {
	Overall   Overall  `json:"overall"`
	Strengths []string `json:"strengths"`
	Risks     []string `json:"risks"`
}

// Sections is the structured memo body.
type Sections struct {
	Overview  Overview `json:"overview"`
	Market    Market   `json:"market"`
	Financial []string `json:"financial"`
	Narrative string   `json:"narrative,omitempty"`
}

type Overview struct {
	Name          string   `json:"name"`
	OneLiner      string   `json:"one_liner"`
	Problem       []string `json:"problem"`
	Solution      []string `json:"solution"`
	BusinessModel string   `json:"business_model"`
}

type Market struct {
	MarketCategory string   `json:"market_category"`
	TAM            string   `json:"tam"`
	GrowthRate     string   `json:"growth_rate"`
	KeyTrends      []string `json:"key_trends"`
}

// Memo is the assembled investor memo: a render-ready text body plus the
// structured form downstream consumers (deck, store) work from.
type Memo struct {
	Title      string     `json:"title"`
	Sections   Sections   `json:"sections"`
	Evaluation Evaluation `json:"evaluation"`
	MemoText   string     `json:"memo_text"`
}

// Agent assembles the memo deterministically from the three upstream
// outputs. No LLM calls: the memo is a faithful restatement of what the
// pipeline already produced, scored by simple stable rules.
type Agent struct{}

func NewAgent() *Agent {
	return &Agent{}
}

// Evaluate scores the startup with rule-based nudges on a neutral baseline.
// Stability matters more than sophistication here: the same inputs must
// always yield the same verdict.
func (a *Agent) Evaluate(extracted extract.Extraction, market map[string]any, financial projection.Result) Evaluation {
	score := 6.5
	verdict := "Neutral"
	confidence := 0.55

	if extracted.Solution != "" {
		score += 0.5
	}
	if s, ok := market["tam"].(string); ok && s != "" {
		score += 0.5
	}
	if financial.Summary.RevenueMonthlyStart > 0 {
		score += 0.5
	}

	score = min(10, max(0, score))

	if score >= 7 {
		verdict = "Invest"
		confidence = 0.8
	} else if score <= 5 {
		verdict = "Avoid"
		confidence = 0.4
	}

	return Evaluation{
		Overall:   Overall{Score: score, Verdict: verdict, Confidence: confidence},
		Strengths: []string{"Good fundamentals."},
		Risks:     []string{"Limited data; further validation required."},
	}
}

// Run assembles the full memo.
func (a *Agent) Run(extracted extract.Extraction, market map[string]any, financial projection.Result) Memo {
	name := firstNonEmpty(
		metricString(extracted.NotableMetrics, "name"),
		metricString(extracted.NotableMetrics, "company_name"),
		"Startup",
	)

	oneLinerSource := extracted.Solution
	if oneLinerSource == "" {
		oneLinerSource = extracted.Problem
	}

	overview := Overview{
		Name:          name,
		OneLiner:      compact(oneLinerSource, 200),
		Problem:       extractBullets(extracted.Problem),
		Solution:      extractBullets(extracted.Solution),
		BusinessModel: compact(extracted.BusinessModel, 300),
	}

	marketSection := Market{
		MarketCategory: stringValue(market, "market_category"),
		TAM:            stringValue(market, "tam"),
		GrowthRate:     stringValue(market, "market_growth_rate"),
		KeyTrends:      listValue(market, "key_trends"),
	}

	financialBullets := []string{}
	if financial.Summary.RevenueMonthlyStart > 0 {
		financialBullets = append(financialBullets, fmt.Sprintf("Monthly revenue: %.0f", financial.Summary.RevenueMonthlyStart))
	}
	if financial.Summary.GrossMargin > 0 {
		financialBullets = append(financialBullets, fmt.Sprintf("Gross margin: %.1f%%", financial.Summary.GrossMargin*100))
	}
	if base, ok := financial.Scenarios[projection.ScenarioBase]; ok {
		if base.BreakevenMonth != nil {
			financialBullets = append(financialBullets, fmt.Sprintf("Breakeven at month %d (base case)", *base.BreakevenMonth))
		} else {
			financialBullets = append(financialBullets, fmt.Sprintf("No breakeven within %d months (base case)", financial.Months))
		}
	}

	// Model narrative is optional and often wrapped in markdown noise.
	narrative := ""
	if financial.LLMExplanation != "" {
		narrative = compact(utils.CleanMarkdown(financial.LLMExplanation), 1000)
	}

	evaluation := a.Evaluate(extracted, market, financial)
	title := "Investor Memo - " + name

	return Memo{
		Title: title,
		Sections: Sections{
			Overview:  overview,
			Market:    marketSection,
			Financial: financialBullets,
			Narrative: narrative,
		},
		Evaluation: evaluation,
		MemoText:   renderText(title, overview, marketSection, financialBullets, narrative, evaluation),
	}
}

func renderText(title string, overview Overview, market Market, financialBullets []string, narrative string, evaluation Evaluation) string {
	var lines []string
	lines = append(lines, title)
	lines = append(lines, strings.Repeat("=", len([]rune(title))))

	if overview.OneLiner != "" {
		lines = append(lines, "\nOne-liner:", overview.OneLiner)
	}

	lines = append(lines, "\nCompany Overview:")
	if len(overview.Problem) > 0 {
		lines = append(lines, "- Problem:")
		for _, b := range overview.Problem {
			lines = append(lines, "  • "+b)
		}
	}
	if len(overview.Solution) > 0 {
		lines = append(lines, "- Solution:")
		for _, b := range overview.Solution {
			lines = append(lines, "  • "+b)
		}
	}
	if overview.BusinessModel != "" {
		lines = append(lines, "- Business model: "+overview.BusinessModel)
	}

	lines = append(lines, "\nMarket Summary:")
	if market.MarketCategory != "" {
		lines = append(lines, "- Category: "+market.MarketCategory)
	}
	if market.TAM != "" {
		lines = append(lines, "- TAM: "+market.TAM)
	}
	if market.GrowthRate != "" {
		lines = append(lines, "- Growth: "+market.GrowthRate)
	}
	if len(market.KeyTrends) > 0 {
		lines = append(lines, "- Trends:")
		for _, t := range market.KeyTrends {
			lines = append(lines, "  • "+t)
		}
	}

	lines = append(lines, "\nFinancial Highlights:")
	for _, f := range financialBullets {
		lines = append(lines, "  • "+f)
	}

	if narrative != "" {
		lines = append(lines, "\nModel Narrative:", narrative)
	}

	o := evaluation.Overall
	lines = append(lines, "\nEvaluation Summary:")
	lines = append(lines, fmt.Sprintf("- Score: %.2f/10", o.Score))
	lines = append(lines, fmt.Sprintf("- Verdict: %s (confidence %.2f)", o.Verdict, o.Confidence))

	lines = append(lines, "- Strengths:")
	for _, s := range evaluation.Strengths {
		lines = append(lines, "  • "+s)
	}
	lines = append(lines, "- Risks:")
	for _, r := range evaluation.Risks {
		lines = append(lines, "  • "+r)
	}

	var wrapped []string
	for _, line := range lines {
		wrapped = append(wrapped, wrapLine(line, wrapWidth)...)
	}
	return strings.Join(wrapped, "\n")
}

// wrapLine breaks a long line on word boundaries at width runes. Continuation
// lines hang two spaces past the original indent so bullets stay readable.
func wrapLine(line string, width int) []string {
	if len([]rune(line)) <= width {
		return []string{line}
	}

	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]
	cont := indent + "  "

	var out []string
	cur := indent
	prefix := indent
	for _, word := range strings.Fields(trimmed) {
		candidate := cur
		if cur != prefix {
			candidate += " "
		}
		candidate += word
		if len([]rune(candidate)) > width && cur != prefix {
			out = append(out, cur)
			cur = cont + word
			prefix = cont
			continue
		}
		cur = candidate
	}
	return append(out, cur)
}

// extractBullets splits prose into up to maxBullets sentence fragments.
func extractBullets(data string) []string {
	if data == "" {
		return []string{}
	}
	parts := strings.Split(data, ".")
	bullets := []string{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		bullets = append(bullets, p)
		if len(bullets) == maxBullets {
			break
		}
	}
	return bullets
}

// compact collapses whitespace and truncates to n characters.
func compact(s string, n int) string {
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func stringValue(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func listValue(m map[string]any, key string) []string {
	out := []string{}
	items, ok := m[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
		if len(out) == maxBullets {
			break
		}
	}
	return out
}

func metricString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
