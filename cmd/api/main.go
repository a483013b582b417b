package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"venture_valuator/pkg/api/analysis"
	"venture_valuator/pkg/api/config"
	"venture_valuator/pkg/api/runs"
	"venture_valuator/pkg/core/agent"
	"venture_valuator/pkg/core/deck"
	"venture_valuator/pkg/core/extract"
	"venture_valuator/pkg/core/market"
	"venture_valuator/pkg/core/memo"
	"venture_valuator/pkg/core/pdfio"
	"venture_valuator/pkg/core/pipeline"
	"venture_valuator/pkg/core/projection"
	"venture_valuator/pkg/core/prompt"
	"venture_valuator/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var agentMgr *agent.Manager

// ManagedAIProvider adapts the agent manager to the per-agent Generate
// interface, routing each call through the provider configured for that
// agent type.
type ManagedAIProvider struct {
	mgr       *agent.Manager
	agentType string
}

func (p *ManagedAIProvider) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	return p.mgr.ExecutePrompt(ctx, p.agentType, userPrompt, systemPrompt, map[string]interface{}{})
}

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr = agent.NewManager(agentCfg)

	// Database is optional: repos fall back to file storage without it
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[WARNING] Database unavailable, using file storage: %v\n", err)
	}
	runsRepo := store.NewRunsRepo(store.GetPool(), "")
	memoryBank := store.NewMemoryBank(store.GetPool(), "")

	// Assemble the pipeline
	extractAgent := extract.NewAgent(&ManagedAIProvider{agentMgr, "extraction"}, prompt.ExtractionPromptOrDefault())
	marketAgent := market.NewAgent(&ManagedAIProvider{agentMgr, "market"})
	if os.Getenv("ENABLE_WEB_SEARCH") == "true" {
		marketAgent.EnableWebSearch(market.NewDuckDuckGoSearch(nil))
		fmt.Println("[MARKET] Web search enabled")
	}
	engine := projection.NewAgent()
	engine.SetExplainer(&projection.GeminiExplainer{})
	deckAgent := deck.NewAgent(&ManagedAIProvider{agentMgr, "deck"}, nil)

	orchestrator := pipeline.NewOrchestrator(
		pdfio.NewReader(),
		extractAgent,
		marketAgent,
		engine,
		memo.NewAgent(),
		deckAgent,
		runsRepo,
		memoryBank,
	)

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Analysis endpoints
	analysis.InitHandler(orchestrator, engine)
	http.HandleFunc("/api/analysis/run", analysis.HandleRunAnalysis)
	http.HandleFunc("/api/projection", analysis.HandleProjection)

	// Run history endpoints
	runs.InitHandler(runsRepo, memoryBank)
	http.HandleFunc("/api/runs", runs.HandleRuns)
	http.HandleFunc("/api/runs/memory-bank", runs.HandleMemoryBank)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/analysis/run")
	fmt.Println("  - POST /api/projection")
	fmt.Println("  - GET  /api/runs")
	fmt.Println("  - GET  /api/runs/memory-bank")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
