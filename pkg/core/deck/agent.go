package deck

import (
	"context"
	"encoding/json"
	"fmt"

	"venture_valuator/pkg/core/utils"
)

// AIProvider is the text-generation collaborator for slide drafting.
type AIProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// Slide is one titled slide with its bullet list.
type Slide struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// SlideDeck is the 12-slide YC-style structure the model fills in.
type SlideDeck struct {
	Slides []Slide `json:"slides"`
}

// Output bundles the structured slides with the rendered PDF location.
type Output struct {
	Deck    SlideDeck `json:"slides_json"`
	PDFPath string    `json:"pdf_path"`
}

// slideTitles is the fixed 12-slide outline; the model only fills bullets.
var slideTitles = []string{
	"Problem",
	"Target User",
	"Current Behavior",
	"Solution",
	"Why Now",
	"Market Size",
	"Competition",
	"Unique Advantage",
	"Business Model",
	"Traction",
	"Financial Projection Summary",
	"The Ask (Fundraising)",
}

// Agent drafts the deck content with one LLM call and renders it to PDF.
type Agent struct {
	provider AIProvider
	writer   *PDFWriter
}

func NewAgent(provider AIProvider, writer *PDFWriter) *Agent {
	if writer == nil {
		writer = NewPDFWriter("outputs/decks")
	}
	return &Agent{provider: provider, writer: writer}
}

// Run drafts and renders the deck from the four pipeline outputs. The
// bundle values are passed as opaque JSON blobs; the prompt forbids the
// model from inventing figures beyond them.
func (a *Agent) Run(ctx context.Context, extracted, market, financial, memo any) (Output, error) {
	prompt := buildPrompt(extracted, market, financial, memo)
	fmt.Println("[DECK] Drafting slides...")

	resp, err := a.provider.Generate(ctx, "You are a world-class YC-style investor and pitch deck designer.", prompt)
	if err != nil {
		return Output{}, fmt.Errorf("DECK_LLM_ERROR: %v", err)
	}

	var deck SlideDeck
	if _, err := utils.SmartParse(resp, &deck); err != nil {
		return Output{}, fmt.Errorf("DECK_PARSE_ERROR: could not parse slides from response: %v", err)
	}
	if len(deck.Slides) == 0 {
		return Output{}, fmt.Errorf("DECK_EMPTY: model returned no slides")
	}

	pdfPath, err := a.writer.Write(deck)
	if err != nil {
		return Output{}, fmt.Errorf("DECK_RENDER_ERROR: %v", err)
	}

	fmt.Printf("[DECK] Rendered %d slides to %s\n", len(deck.Slides), pdfPath)
	return Output{Deck: deck, PDFPath: pdfPath}, nil
}

func buildPrompt(extracted, market, financial, memo any) string {
	outline, _ := json.MarshalIndent(promptOutline(), "", "  ")

	return fmt.Sprintf(`Using the structured data below, create a **12-slide YC-style pitch deck**.
Do NOT invent financials or metrics. Use only what's provided.

FORMAT: Return ONLY JSON:
%s

========================
STARTUP DATA
========================
%s

========================
MARKET
========================
%s

========================
FINANCIALS
========================
%s

========================
MEMO
========================
%s`, outline, marshalBlob(extracted), marshalBlob(market), marshalBlob(financial), marshalBlob(memo))
}

func promptOutline() SlideDeck {
	slides := make([]Slide, len(slideTitles))
	for i, title := range slideTitles {
		slides[i] = Slide{Title: title, Bullets: []string{}}
	}
	return SlideDeck{Slides: slides}
}

func marshalBlob(v any) string {
	if v == nil {
		return "{}"
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
