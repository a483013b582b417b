package deck

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

type mockProvider struct {
	response string
	err      error
	lastUser string
}

func (m *mockProvider) Generate(ctx context.Context, system, user string) (string, error) {
	m.lastUser = user
	return m.response, m.err
}

func testWriter(t *testing.T) *PDFWriter {
	t.Helper()
	return NewPDFWriter(t.TempDir())
}

func TestRunRendersDeck(t *testing.T) {
	mock := &mockProvider{response: `{
		"slides": [
			{"title": "Problem", "bullets": ["pharmacies overpay", "stockouts weekly"]},
			{"title": "Solution", "bullets": ["wholesale marketplace"]}
		]
	}`}

	agent := NewAgent(mock, testWriter(t))
	out, err := agent.Run(context.Background(),
		map[string]any{"problem": "overpaying"},
		map[string]any{"tam": "$4B"},
		map[string]any{"months": 24},
		map[string]any{"title": "memo"},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(out.Deck.Slides) != 2 {
		t.Errorf("Expected 2 slides, got %d", len(out.Deck.Slides))
	}

	info, err := os.Stat(out.PDFPath)
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}
	if !strings.HasSuffix(out.PDFPath, ".pdf") {
		t.Errorf("Unexpected output path: %s", out.PDFPath)
	}

	// All four bundle sections land in the prompt
	for _, fragment := range []string{"overpaying", "$4B", `"months": 24`, "memo"} {
		if !strings.Contains(mock.lastUser, fragment) {
			t.Errorf("Prompt missing bundle fragment %q", fragment)
		}
	}
}

func TestRunPromptCarriesOutline(t *testing.T) {
	mock := &mockProvider{response: `{"slides": [{"title": "Problem", "bullets": []}]}`}
	agent := NewAgent(mock, testWriter(t))

	if _, err := agent.Run(context.Background(), nil, nil, nil, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, title := range slideTitles {
		if !strings.Contains(mock.lastUser, title) {
			t.Errorf("Prompt outline missing slide %q", title)
		}
	}
}

func TestRunParseFailure(t *testing.T) {
	mock := &mockProvider{response: "not json"}
	agent := NewAgent(mock, testWriter(t))

	_, err := agent.Run(context.Background(), nil, nil, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "DECK_PARSE_ERROR") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestRunProviderError(t *testing.T) {
	mock := &mockProvider{err: errors.New("timeout")}
	agent := NewAgent(mock, testWriter(t))

	_, err := agent.Run(context.Background(), nil, nil, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "DECK_LLM_ERROR") {
		t.Errorf("Expected provider error, got %v", err)
	}
}

func TestWriterTruncatesLongBullets(t *testing.T) {
	w := testWriter(t)
	long := strings.Repeat("sentence ", 100)

	path, err := w.Write(SlideDeck{Slides: []Slide{
		{Title: "Traction", Bullets: []string{long}},
	}})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
}
