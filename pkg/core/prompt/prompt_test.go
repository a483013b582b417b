package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePrompt(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestLoadFromDirectory(t *testing.T) {
	Get().Clear()
	defer Get().Clear()

	base := t.TempDir()
	writePrompt(t, base, "prompts/extraction/pitch_deck.json", `{
		"system_prompt": "You are an expert startup analyst.",
		"user_prompt_template": "Analyze this deck:\n{raw_text}"
	}`)
	writePrompt(t, base, "prompts/market/research.json", `{
		"id": "market.research",
		"category": "market",
		"system_prompt": "You are a market analyst."
	}`)

	if err := LoadFromDirectory(base); err != nil {
		t.Fatalf("LoadFromDirectory failed: %v", err)
	}
	if Get().Count() != 2 {
		t.Fatalf("Expected 2 prompts, got %d", Get().Count())
	}

	// ID and stage derived from the file path
	pt, err := Get().GetPrompt("extraction.pitch_deck")
	if err != nil {
		t.Fatalf("Derived ID not registered: %v", err)
	}
	if pt.Category != StageExtraction {
		t.Errorf("Expected derived category %q, got %q", StageExtraction, pt.Category)
	}
	if !strings.Contains(pt.UserPromptTmpl, "{raw_text}") {
		t.Error("User template lost its placeholder")
	}

	sys, err := Get().GetSystemPrompt("market.research")
	if err != nil || sys != "You are a market analyst." {
		t.Errorf("Wrong system prompt: %q, err=%v", sys, err)
	}

	if got := len(Get().StagePrompts(StageMarket)); got != 1 {
		t.Errorf("Expected 1 market prompt, got %d", got)
	}
}

func TestLoadFromDirectoryMissing(t *testing.T) {
	Get().Clear()
	defer Get().Clear()

	if err := LoadFromDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing prompts directory")
	}
}

func TestExtractionPromptOrDefault(t *testing.T) {
	Get().Clear()
	defer Get().Clear()

	// Empty registry falls back to the built-in template
	if got := ExtractionPromptOrDefault(); got != DefaultExtractionTemplate {
		t.Error("Expected built-in template with empty registry")
	}

	// A registered prompt wins over the built-in
	err := Get().Register(&Template{
		ID:             PromptIDs.ExtractionPitchDeck,
		Category:       StageExtraction,
		UserPromptTmpl: "custom: {raw_text}",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if got := ExtractionPromptOrDefault(); got != "custom: {raw_text}" {
		t.Errorf("Expected registered template, got %q", got)
	}
}

func TestRegisterRequiresID(t *testing.T) {
	if err := Get().Register(&Template{Category: StageDeck}); err == nil {
		t.Error("Expected error for empty prompt ID")
	}
}
