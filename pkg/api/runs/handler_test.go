package runs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"venture_valuator/pkg/core/store"
)

func TestHandleRunsListAndGet(t *testing.T) {
	dir := t.TempDir()
	repo := store.NewRunsRepo(nil, dir)
	InitHandler(repo, store.NewMemoryBank(nil, dir+"/memory_bank.json"))

	record, err := repo.Save(context.Background(), map[string]any{"startup_name": "MedSupply"})
	if err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	HandleRuns(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var listResp struct {
		Count int               `json:"count"`
		Runs  []store.RunRecord `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("invalid list JSON: %v", err)
	}
	if listResp.Count != 1 || listResp.Runs[0].ID != record.ID {
		t.Errorf("unexpected list response: %+v", listResp)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/runs?id="+record.ID, nil)
	rec = httptest.NewRecorder()
	HandleRuns(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for get, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/runs?id=no-such-run", nil)
	rec = httptest.NewRecorder()
	HandleRuns(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown run, got %d", rec.Code)
	}
}

func TestHandleMemoryBank(t *testing.T) {
	dir := t.TempDir()
	bank := store.NewMemoryBank(nil, dir+"/memory_bank.json")
	InitHandler(store.NewRunsRepo(nil, dir), bank)

	if err := bank.Append(context.Background(), store.BankEntry{Name: "MedSupply", Verdict: "Invest", Score: 8}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs/memory-bank", nil)
	rec := httptest.NewRecorder()
	HandleMemoryBank(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count   int               `json:"count"`
		Entries []store.BankEntry `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Count != 1 || resp.Entries[0].Verdict != "Invest" {
		t.Errorf("unexpected memory bank response: %+v", resp)
	}
}
