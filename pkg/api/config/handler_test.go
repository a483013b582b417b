package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"venture_valuator/pkg/core/agent"
)

func TestHandleConfigAndSwitch(t *testing.T) {
	h := NewHandler(agent.NewManager(agent.Config{ActiveProvider: "gemini"}))

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	h.HandleConfig(rec, req)

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.ActiveProvider != "gemini" || len(resp.Available) != 5 {
		t.Errorf("unexpected config: %+v", resp)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/config/switch",
		strings.NewReader(`{"provider": "deepseek"}`))
	rec = httptest.NewRecorder()
	h.HandleSwitch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("switch failed: %d %s", rec.Code, rec.Body.String())
	}
	if h.AgentMgr.GetActiveProvider() != "deepseek" {
		t.Errorf("provider not switched: %s", h.AgentMgr.GetActiveProvider())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/config/switch",
		strings.NewReader(`{"provider": "no-such"}`))
	rec = httptest.NewRecorder()
	h.HandleSwitch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown provider, got %d", rec.Code)
	}
}
