package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"venture_valuator/pkg/core/deck"
	"venture_valuator/pkg/core/extract"
	"venture_valuator/pkg/core/memo"
	"venture_valuator/pkg/core/projection"
	"venture_valuator/pkg/core/store"
)

// PDFReader turns a deck file into raw text, "" when nothing is extractable.
type PDFReader interface {
	ReadText(path string) string
}

// Extractor produces the structured deck view. Implementations degrade to a
// fallback skeleton rather than failing the stage.
type Extractor interface {
	ExtractFromText(ctx context.Context, text string) (extract.Extraction, error)
}

// MarketResearcher produces the market report blob (possibly error-shaped).
type MarketResearcher interface {
	Run(ctx context.Context, extracted map[string]any) (map[string]any, error)
}

// FinancialModeler is the deterministic projection engine.
type FinancialModeler interface {
	Run(ctx context.Context, metrics map[string]any, overrides map[string]any) projection.Result
}

// MemoWriter assembles the investor memo.
type MemoWriter interface {
	Run(extracted extract.Extraction, market map[string]any, financial projection.Result) memo.Memo
}

// DeckBuilder drafts and renders the output pitch deck.
type DeckBuilder interface {
	Run(ctx context.Context, extracted, market, financial, memoData any) (deck.Output, error)
}

// RunStore persists complete run payloads.
type RunStore interface {
	Save(ctx context.Context, data any) (store.RunRecord, error)
}

// BankStore accumulates compact cross-run summaries.
type BankStore interface {
	Append(ctx context.Context, entry store.BankEntry) error
}

// Result is the combined output of one full analysis.
type Result struct {
	RunID     string             `json:"run_id,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	PDFPath   string             `json:"pdf_path"`
	Extracted extract.Extraction `json:"extracted"`
	Market    map[string]any     `json:"market"`
	Financial projection.Result  `json:"financial_model"`
	Memo      memo.Memo          `json:"memo"`
	DeckPath  string             `json:"deck"`
	Deck      deck.Output        `json:"deck_raw"`
}

// Orchestrator manages the end-to-end flow:
// PDF -> Extraction -> Market Research -> Financial Model -> Memo -> Deck -> Storage.
// Stages degrade independently: a failed LLM stage logs a warning and the
// pipeline continues with whatever that stage could salvage. Only the
// deterministic financial engine is guaranteed complete.
type Orchestrator struct {
	reader     PDFReader
	extractor  Extractor
	market     MarketResearcher
	financial  FinancialModeler
	memoWriter MemoWriter
	deck       DeckBuilder
	runs       RunStore
	bank       BankStore
}

// NewOrchestrator wires the five stages with persistence. runs and bank may
// be nil to skip storage (e.g. one-off CLI runs).
func NewOrchestrator(reader PDFReader, extractor Extractor, market MarketResearcher, financial FinancialModeler, memoWriter MemoWriter, deckBuilder DeckBuilder, runs RunStore, bank BankStore) *Orchestrator {
	return &Orchestrator{
		reader:     reader,
		extractor:  extractor,
		market:     market,
		financial:  financial,
		memoWriter: memoWriter,
		deck:       deckBuilder,
		runs:       runs,
		bank:       bank,
	}
}

// RunFullAnalysis executes the complete pipeline for one pitch deck PDF.
// overrides are financial corrections for this run only (e.g. revenue_monthly,
// "explain": true); they never persist on the orchestrator, so concurrent
// runs stay independent.
func (o *Orchestrator) RunFullAnalysis(ctx context.Context, pdfPath string, overrides map[string]any) (Result, error) {
	fmt.Println("\n[PIPELINE] Starting analysis pipeline...")

	// 1. PDF text
	fmt.Println("[PIPELINE] Stage 1/5: Reading PDF...")
	rawText := o.reader.ReadText(pdfPath)
	if rawText == "" {
		fmt.Println("[PIPELINE] Warning: no text extracted, downstream stages run on empty input")
	}

	return o.runStages(ctx, pdfPath, rawText, overrides)
}

// RunFromText executes the pipeline on already-extracted deck text, skipping
// the PDF stage. Used when the caller has the text but no file.
func (o *Orchestrator) RunFromText(ctx context.Context, rawText string, overrides map[string]any) (Result, error) {
	fmt.Println("\n[PIPELINE] Starting analysis pipeline (text input)...")
	fmt.Println("[PIPELINE] Stage 1/5: Skipped (raw text supplied)")
	return o.runStages(ctx, "", rawText, overrides)
}

func (o *Orchestrator) runStages(ctx context.Context, pdfPath, rawText string, overrides map[string]any) (Result, error) {
	start := time.Now()

	result := Result{
		Timestamp: time.Now().UTC(),
		PDFPath:   pdfPath,
	}

	// 2. Extraction
	fmt.Println("[PIPELINE] Stage 2/5: Extracting pitch data...")
	extracted, err := o.extractor.ExtractFromText(ctx, rawText)
	if err != nil {
		fmt.Printf("[PIPELINE] Warning: extraction degraded: %v\n", err)
	}
	result.Extracted = extracted

	// 3. Market research
	fmt.Println("[PIPELINE] Stage 3/5: Running market analysis...")
	marketReport, err := o.market.Run(ctx, toMap(extracted))
	if err != nil {
		fmt.Printf("[PIPELINE] Warning: market research failed: %v\n", err)
		marketReport = map[string]any{"error": err.Error()}
	}
	result.Market = marketReport

	// 4. Financial model; the engine never fails
	fmt.Println("[PIPELINE] Stage 4/5: Building financial model...")
	result.Financial = o.financial.Run(ctx, extracted.NotableMetrics, overrides)

	// 5. Memo, then deck
	fmt.Println("[PIPELINE] Stage 5/5: Generating memo and deck...")
	result.Memo = o.memoWriter.Run(extracted, marketReport, result.Financial)

	deckOut, err := o.deck.Run(ctx, extracted, marketReport, result.Financial, result.Memo)
	if err != nil {
		fmt.Printf("[PIPELINE] Warning: deck generation failed: %v\n", err)
	} else {
		result.Deck = deckOut
		result.DeckPath = deckOut.PDFPath
	}

	o.persist(ctx, &result)

	fmt.Printf("[PIPELINE] Analysis complete in %s\n", time.Since(start).Round(time.Millisecond))
	return result, nil
}

// persist stores the full run and the compact bank summary. Storage errors
// never fail an analysis that already produced its outputs.
func (o *Orchestrator) persist(ctx context.Context, result *Result) {
	if o.runs != nil {
		record, err := o.runs.Save(ctx, result)
		if err != nil {
			fmt.Printf("[PIPELINE] Warning: failed to persist run: %v\n", err)
		} else {
			result.RunID = record.ID
			fmt.Printf("[PIPELINE] Run saved as %s\n", record.ID)
		}
	}

	if o.bank != nil {
		entry := store.BankEntry{
			Name:      result.Memo.Sections.Overview.Name,
			Verdict:   result.Memo.Evaluation.Overall.Verdict,
			Score:     result.Memo.Evaluation.Overall.Score,
			Summary:   result.Memo.Sections.Overview.OneLiner,
			CreatedAt: result.Timestamp,
		}
		if err := o.bank.Append(ctx, entry); err != nil {
			fmt.Printf("[PIPELINE] Warning: failed to update memory bank: %v\n", err)
		}
	}
}

// toMap flattens the typed extraction back into the loose mapping the
// research prompt embeds.
func toMap(e extract.Extraction) map[string]any {
	blob, err := json.Marshal(e)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(blob, &m); err != nil {
		return map[string]any{}
	}
	return m
}
