// Package prompt is the prompt library for the pitch-deck analysis pipeline.
// Each LLM stage (extraction, market, deck, explanation) reads its prompt
// from a JSON file under resources/prompts/<stage>/, so prompt tuning never
// requires a rebuild. Call sites keep a hardcoded fallback for when the
// resources directory is absent.
package prompt

// Pipeline stages with a registered prompt. Used as the category segment of
// prompt IDs ("extraction.pitch_deck") and as the directory name on disk.
const (
	StageExtraction  = "extraction"
	StageMarket      = "market"
	StageDeck        = "deck"
	StageExplanation = "explanation"
)

// Template is one stage prompt as stored on disk. UserPromptTmpl carries
// literal placeholders like {raw_text} that the owning agent substitutes;
// stages driven purely by a system prompt leave it empty.
type Template struct {
	ID             string `json:"id"`                   // "<stage>.<name>", e.g. "market.research"
	Name           string `json:"name"`                 // Human-readable name
	Category       string `json:"category"`             // Pipeline stage, see Stage* constants
	Description    string `json:"description"`          // What the stage uses this prompt for
	SystemPrompt   string `json:"system_prompt"`        // Role framing for the model
	UserPromptTmpl string `json:"user_prompt_template"` // Stage input with literal placeholders
	Version        string `json:"version"`              // Bumped on prompt tuning
}

// KnownStage reports whether category names one of the pipeline stages.
// Unknown stages still register (forward compatibility), the loader just
// logs them.
func KnownStage(category string) bool {
	switch category {
	case StageExtraction, StageMarket, StageDeck, StageExplanation:
		return true
	}
	return false
}
