package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"venture_valuator/pkg/core/pipeline"
	"venture_valuator/pkg/core/projection"
)

var orchestrator *pipeline.Orchestrator
var engine *projection.Agent

// InitHandler wires the shared pipeline and engine instances.
func InitHandler(o *pipeline.Orchestrator, e *projection.Agent) {
	orchestrator = o
	engine = e
}

type AnalysisRequest struct {
	PDFPath   string         `json:"pdf_path"`
	Text      string         `json:"text"`
	Overrides map[string]any `json:"overrides"`
}

type ProjectionRequest struct {
	Metrics   map[string]any `json:"metrics"`
	Overrides map[string]any `json:"overrides"`
}

// HandleRunAnalysis runs the full pipeline for an uploaded or referenced PDF.
func HandleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PDFPath == "" && req.Text == "" {
		http.Error(w, "pdf_path or text is required", http.StatusBadRequest)
		return
	}
	if req.PDFPath != "" {
		if _, err := os.Stat(req.PDFPath); err != nil {
			http.Error(w, fmt.Sprintf("PDF not found: %s", req.PDFPath), http.StatusNotFound)
			return
		}
	}

	fmt.Printf("[ANALYSIS] Request: pdf=%q text_len=%d\n", req.PDFPath, len(req.Text))
	start := time.Now()

	var result pipeline.Result
	var err error
	if req.PDFPath != "" {
		result, err = orchestrator.RunFullAnalysis(r.Context(), req.PDFPath, req.Overrides)
	} else {
		result, err = orchestrator.RunFromText(r.Context(), req.Text, req.Overrides)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[ANALYSIS] Completed in %s\n", time.Since(start).Round(time.Millisecond))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleProjection exposes the deterministic engine directly: metrics in,
// full multi-scenario model out. No PDF, no LLM stages.
func HandleProjection(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := engine.Run(r.Context(), req.Metrics, req.Overrides)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
