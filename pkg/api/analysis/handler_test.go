package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"venture_valuator/pkg/core/deck"
	"venture_valuator/pkg/core/extract"
	"venture_valuator/pkg/core/memo"
	"venture_valuator/pkg/core/pipeline"
	"venture_valuator/pkg/core/projection"
)

// Stage stubs for exercising the handler against a real orchestrator.

type stubExtractor struct{}

func (stubExtractor) ExtractFromText(ctx context.Context, text string) (extract.Extraction, error) {
	return extract.Extraction{NotableMetrics: map[string]any{}}, nil
}

type stubMarket struct{}

func (stubMarket) Run(ctx context.Context, extracted map[string]any) (map[string]any, error) {
	return map[string]any{}, nil
}

type stubDeck struct{}

func (stubDeck) Run(ctx context.Context, extracted, market, financial, memoData any) (deck.Output, error) {
	return deck.Output{}, nil
}

func newTestOrchestrator() *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(nil, stubExtractor{}, stubMarket{},
		projection.NewAgent(), memo.NewAgent(), stubDeck{}, nil, nil)
}

func runAnalysis(t *testing.T, body string) pipeline.Result {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run", strings.NewReader(body))
	rec := httptest.NewRecorder()
	HandleRunAnalysis(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	return result
}

func TestHandleProjection(t *testing.T) {
	InitHandler(nil, projection.NewAgent())

	body := `{"metrics": {"revenue_last_month": "100000", "growth_rate_monthly": "10%"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleProjection(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result projection.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(result.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(result.Scenarios))
	}
	if result.Inputs.RevenueMonthly != 100000 {
		t.Errorf("expected starting revenue 100000, got %v", result.Inputs.RevenueMonthly)
	}
}

func TestHandleProjectionBadBody(t *testing.T) {
	InitHandler(nil, projection.NewAgent())

	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	HandleProjection(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleRunAnalysisFromText(t *testing.T) {
	InitHandler(newTestOrchestrator(), projection.NewAgent())

	result := runAnalysis(t, `{"text": "some deck text"}`)
	if len(result.Financial.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(result.Financial.Scenarios))
	}
}

func TestHandleRunAnalysisOverridesDoNotLeak(t *testing.T) {
	InitHandler(newTestOrchestrator(), projection.NewAgent())

	first := runAnalysis(t, fmt.Sprintf(
		`{"text": "deck", "overrides": {"revenue_monthly": %d}}`, 555555))
	if first.Financial.Inputs.RevenueMonthly != 555555 {
		t.Fatalf("override ignored for its own request: %f", first.Financial.Inputs.RevenueMonthly)
	}

	// A follow-up request without overrides must land on the engine fallback.
	second := runAnalysis(t, `{"text": "deck"}`)
	if second.Financial.Inputs.RevenueMonthly != 100000 {
		t.Errorf("override carried into a later request: %f", second.Financial.Inputs.RevenueMonthly)
	}
}

func TestHandleRunAnalysisMissingPDF(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run",
		strings.NewReader(`{"pdf_path": "/nonexistent/deck.pdf"}`))
	rec := httptest.NewRecorder()

	HandleRunAnalysis(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing PDF, got %d", rec.Code)
	}
}
