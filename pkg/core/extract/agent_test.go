package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockProvider struct {
	response string
	err      error
	lastUser string
}

func (m *mockProvider) Generate(ctx context.Context, system, user string) (string, error) {
	m.lastUser = user
	return m.response, m.err
}

const testPrompt = "Analyze this deck and return JSON.\n---\n{raw_text}"

func TestExtractFromTextHappyPath(t *testing.T) {
	mock := &mockProvider{response: "```json\n" + `{
		"problem": "pharmacies overpay wholesalers",
		"solution": "b2b marketplace",
		"target_customer": "independent pharmacies",
		"business_model": "take rate",
		"pricing": "3% per order",
		"gtm_strategy": "field sales",
		"cost_structure": "warehousing and logistics",
		"competition": ["PharmEasy"],
		"notable_metrics": {"Last month revenue": "₹5,00,000", "MAU": "2,000+"},
		"assumptions": "urban density"
	}` + "\n```"}

	agent := NewAgent(mock, testPrompt)
	result, err := agent.ExtractFromText(context.Background(), "deck text here")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Problem != "pharmacies overpay wholesalers" {
		t.Errorf("Wrong problem field: %q", result.Problem)
	}
	if len(result.Competition) != 1 || result.Competition[0] != "PharmEasy" {
		t.Errorf("Wrong competition: %v", result.Competition)
	}
	// Canonical aliases get added alongside the originals
	if result.NotableMetrics["revenue_last_month"] != "₹5,00,000" {
		t.Errorf("Missing canonical revenue key: %v", result.NotableMetrics)
	}
	if result.NotableMetrics["mau"] != "2,000+" {
		t.Errorf("Missing canonical mau key: %v", result.NotableMetrics)
	}
	if result.NotableMetrics["Last month revenue"] != "₹5,00,000" {
		t.Error("Original metric keys must survive canonicalization")
	}
	if len(result.MissingInfo) != 0 {
		t.Errorf("Complete extraction should have no missing info: %v", result.MissingInfo)
	}
}

func TestExtractNormalizesLooseTypes(t *testing.T) {
	mock := &mockProvider{response: `{
		"problem": "p", "solution": "s", "target_customer": "t",
		"business_model": "b", "pricing": "pr", "gtm_strategy": "g",
		"cost_structure": "c",
		"competition": "SinglePlayer Inc",
		"notable_metrics": ["MAU: 1200", "NPS: 62"],
		"assumptions": "a"
	}`}

	agent := NewAgent(mock, testPrompt)
	result, err := agent.ExtractFromText(context.Background(), "text")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(result.Competition) != 1 || result.Competition[0] != "SinglePlayer Inc" {
		t.Errorf("Bare string competition must become a one-element list: %v", result.Competition)
	}
	if result.NotableMetrics["MAU"] != "1200" {
		t.Errorf("List metrics must fold into key/value pairs: %v", result.NotableMetrics)
	}
	if result.NotableMetrics["mau"] != "1200" {
		t.Errorf("Canonical mau must be derived: %v", result.NotableMetrics)
	}
}

func TestExtractFallbackOnGarbage(t *testing.T) {
	mock := &mockProvider{response: "I'm sorry, I can't find a JSON in that"}
	agent := NewAgent(mock, testPrompt)

	result, err := agent.ExtractFromText(context.Background(), "text")
	if err != nil {
		t.Fatalf("Parse failure must not surface as error: %v", err)
	}
	if result.RawLLM == "" {
		t.Error("Fallback must preserve the raw response for debugging")
	}
	if result.Competition == nil || result.NotableMetrics == nil {
		t.Error("Fallback must have non-nil collections")
	}
}

func TestExtractProviderError(t *testing.T) {
	mock := &mockProvider{err: errors.New("rate limited")}
	agent := NewAgent(mock, testPrompt)

	result, err := agent.ExtractFromText(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "EXTRACTION_LLM_ERROR") {
		t.Errorf("Expected tagged provider error, got %v", err)
	}
	if result.NotableMetrics == nil {
		t.Error("Even on provider error the skeleton must be usable")
	}
}

func TestExtractTruncatesInput(t *testing.T) {
	mock := &mockProvider{response: `{}`}
	agent := NewAgent(mock, testPrompt)

	huge := strings.Repeat("x", 50000)
	agent.ExtractFromText(context.Background(), huge)

	if len(mock.lastUser) > maxInputChars+len(testPrompt) {
		t.Errorf("Prompt not truncated: %d chars", len(mock.lastUser))
	}
}

func TestMissingInfoTracksEmptyKeys(t *testing.T) {
	mock := &mockProvider{response: `{"problem": "p", "competition": [], "notable_metrics": {}}`}
	agent := NewAgent(mock, testPrompt)

	result, _ := agent.ExtractFromText(context.Background(), "text")

	found := map[string]bool{}
	for _, k := range result.MissingInfo {
		found[k] = true
	}
	if found["problem"] {
		t.Error("problem was provided, must not be listed missing")
	}
	for _, want := range []string{"solution", "competition", "notable_metrics", "assumptions"} {
		if !found[want] {
			t.Errorf("Expected %s in missing info: %v", want, result.MissingInfo)
		}
	}
}
