package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

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

// ManagedAIProvider routes agent calls through the configured provider fleet.
type ManagedAIProvider struct {
	mgr       *agent.Manager
	agentType string
}

func (p *ManagedAIProvider) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	return p.mgr.ExecutePrompt(ctx, p.agentType, userPrompt, systemPrompt, map[string]interface{}{})
}

func main() {
	webSearch := flag.Bool("web-search", false, "enrich market research with live web snippets")
	explain := flag.Bool("explain", false, "attach an LLM narrative to the financial model")
	outJSON := flag.String("out", "", "write the full result JSON to this path")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: pipeline [flags] <pitch_deck.pdf>")
	}
	pdfPath := flag.Arg(0)

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	if err := prompt.LoadFromDirectory("resources"); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts\n", prompt.Get().Count())
	}

	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	mgr := agent.NewManager(agentCfg)

	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[WARNING] Database unavailable, using file storage: %v\n", err)
	}

	fmt.Println("🚀 Venture Valuator Pipeline Starting...")

	marketAgent := market.NewAgent(&ManagedAIProvider{mgr, "market"})
	if *webSearch {
		marketAgent.EnableWebSearch(market.NewDuckDuckGoSearch(nil))
	}

	engine := projection.NewAgent()
	engine.SetExplainer(&projection.GeminiExplainer{})

	orchestrator := pipeline.NewOrchestrator(
		pdfio.NewReader(),
		extract.NewAgent(&ManagedAIProvider{mgr, "extraction"}, prompt.ExtractionPromptOrDefault()),
		marketAgent,
		engine,
		memo.NewAgent(),
		deck.NewAgent(&ManagedAIProvider{mgr, "deck"}, nil),
		store.NewRunsRepo(store.GetPool(), ""),
		store.NewMemoryBank(store.GetPool(), ""),
	)
	var overrides map[string]any
	if *explain {
		overrides = map[string]any{"explain": true}
	}

	result, err := orchestrator.RunFullAnalysis(context.Background(), pdfPath, overrides)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	fmt.Println("\n################################################################################")
	fmt.Println("                            INVESTMENT MEMO")
	fmt.Println("################################################################################")
	fmt.Println(result.Memo.MemoText)

	if result.DeckPath != "" {
		fmt.Printf("\n[DECK] Pitch deck written to %s\n", result.DeckPath)
	}
	if result.RunID != "" {
		fmt.Printf("[RUN] Saved as %s\n", result.RunID)
	}

	if *outJSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		if err := os.WriteFile(*outJSON, data, 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", *outJSON, err)
		}
		fmt.Printf("[OUT] Full result written to %s\n", *outJSON)
	}

	fmt.Println("\n[Done] Analysis Complete.")
}
