package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"venture_valuator/pkg/core/utils"
)

const maxBulletChars = 240

// PDFWriter renders a SlideDeck to a landscape PDF, one page per slide.
type PDFWriter struct {
	outputDir string
}

func NewPDFWriter(outputDir string) *PDFWriter {
	return &PDFWriter{outputDir: outputDir}
}

// Write renders the deck and returns the output path. Filenames are
// timestamped so repeated runs never clobber earlier decks.
func (w *PDFWriter) Write(deck SlideDeck) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	ts := time.Now().Format("20060102_150405")
	outputPath := filepath.Join(w.outputDir, fmt.Sprintf("pitch_deck_%s.pdf", ts))

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 15)

	for _, slide := range deck.Slides {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 28)
		pdf.CellFormat(0, 16, slide.Title, "", 1, "L", false, 0, "")
		pdf.Ln(6)

		pdf.SetFont("Arial", "", 14)
		for _, bullet := range slide.Bullets {
			text := utils.TruncateForSlide(bullet, maxBulletChars)
			pdf.CellFormat(6, 8, "-", "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 8, text, "", "L", false)
			pdf.Ln(2)
		}
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return outputPath, nil
}
