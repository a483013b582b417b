package market

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

func TestRunParsesReport(t *testing.T) {
	mock := &mockProvider{response: "```json\n" + `{
		"market_category": "B2B pharma distribution",
		"tam": "$4.5B",
		"key_trends": ["consolidation"],
		"summary_insights": "fragmented market"
	}` + "\n```"}

	agent := NewAgent(mock)
	report, err := agent.Run(context.Background(), map[string]any{"problem": "p"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report["market_category"] != "B2B pharma distribution" {
		t.Errorf("Wrong category: %v", report["market_category"])
	}
	if _, hasErr := report["error"]; hasErr {
		t.Error("Valid report must not be error-shaped")
	}
	if !strings.Contains(mock.lastUser, `"problem": "p"`) {
		t.Error("Extraction JSON must be embedded in the prompt")
	}
}

func TestRunErrorShapedOnGarbage(t *testing.T) {
	mock := &mockProvider{response: "no json at all"}
	agent := NewAgent(mock)

	report, err := agent.Run(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("Parse failure must not surface as error: %v", err)
	}
	if report["error"] != "Failed to parse JSON" {
		t.Errorf("Expected error-shaped map, got %v", report)
	}
	if report["raw_response"] != "no json at all" {
		t.Error("Raw response must be preserved for debugging")
	}
}

func TestRunProviderError(t *testing.T) {
	mock := &mockProvider{err: errors.New("quota exceeded")}
	agent := NewAgent(mock)

	_, err := agent.Run(context.Background(), map[string]any{})
	if err == nil || !strings.Contains(err.Error(), "MARKET_LLM_ERROR") {
		t.Errorf("Expected tagged provider error, got %v", err)
	}
}

func TestRunWebSearchEnrichment(t *testing.T) {
	mock := &mockProvider{response: `{"market_category": "x"}`}
	agent := NewAgent(mock)

	var queries []string
	agent.EnableWebSearch(func(ctx context.Context, query string) (string, error) {
		queries = append(queries, query)
		if strings.Contains(query, "competitors") {
			return "", errors.New("blocked")
		}
		return "snippet for " + query, nil
	})

	_, err := agent.Run(context.Background(), map[string]any{"industry": "pharma"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(queries) != 4 {
		t.Fatalf("Expected 4 enrichment queries, got %d", len(queries))
	}
	if !strings.Contains(mock.lastUser, "snippet for pharma market size") {
		t.Error("Search results must flow into the prompt")
	}
	// A failed query becomes an error note, not a dropped section
	if !strings.Contains(mock.lastUser, "Error: blocked") {
		t.Error("Search failures must be folded into the prompt")
	}
}
