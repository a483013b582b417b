package runs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"venture_valuator/pkg/core/store"
)

var runsRepo *store.RunsRepo
var memoryBank *store.MemoryBank

func InitHandler(repo *store.RunsRepo, bank *store.MemoryBank) {
	runsRepo = repo
	memoryBank = bank
}

// HandleRuns serves past analysis runs: the full list, or a single run
// when ?id= is given.
func HandleRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		record, err := runsRepo.Get(r.Context(), id)
		if err != nil {
			http.Error(w, fmt.Sprintf("Run not found: %s", id), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(record)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := runsRepo.List(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list runs: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count": len(records),
		"runs":  records,
	})
}

// HandleMemoryBank serves the cross-run summary log, oldest first.
func HandleMemoryBank(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := memoryBank.All(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read memory bank: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}
