package prompt

// Convenience functions for common prompt operations

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	// Pipeline stages
	ExtractionPitchDeck  string
	MarketResearch       string
	DeckSlides           string
	ExplanationFinancial string
}{
	ExtractionPitchDeck:  "extraction.pitch_deck",
	MarketResearch:       "market.research",
	DeckSlides:           "deck.slides",
	ExplanationFinancial: "explanation.financial",
}

// GetExtractionPrompt returns the pitch deck extraction user template.
func GetExtractionPrompt() (string, error) {
	pt, err := Get().GetPrompt(PromptIDs.ExtractionPitchDeck)
	if err != nil {
		return "", err
	}
	return pt.UserPromptTmpl, nil
}

// GetMarketPrompt returns the market research system prompt.
func GetMarketPrompt() (string, error) {
	return Get().GetSystemPrompt(PromptIDs.MarketResearch)
}

// GetDeckPrompt returns the slide drafting system prompt.
func GetDeckPrompt() (string, error) {
	return Get().GetSystemPrompt(PromptIDs.DeckSlides)
}

// ExtractionPromptOrDefault resolves the registered extraction template,
// falling back to the built-in default when the registry has no copy. Agents
// stay usable without a resources directory on disk.
func ExtractionPromptOrDefault() string {
	if p, err := GetExtractionPrompt(); err == nil && p != "" {
		return p
	}
	return DefaultExtractionTemplate
}

// DefaultExtractionTemplate is the built-in pitch deck extraction prompt.
// The {raw_text} placeholder is substituted by the extraction agent.
const DefaultExtractionTemplate = `You are an expert startup analyst. Given the extracted raw text from a pitch deck or startup description below,
produce a JSON object with the following exact keys (use these exact key names):

- problem
- solution
- target_customer
- business_model
- pricing
- gtm_strategy
- cost_structure
- competition
- notable_metrics
- assumptions

Return ONLY valid JSON.
If you cannot find a value, set it to "" or [].

NOTE: In notable_metrics try to extract any numeric metrics if present (examples: Last month revenue, MAU, MoM growth, NPS, repeat rate, orders last quarter, number of hubs, COGS %, marketing_cost_monthly, tech_cost_monthly, avg_delivery_time). Put them inside the notable_metrics dict with reasonable keys.

Raw text to analyze:
---
{raw_text}`
