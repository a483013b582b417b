package pdfio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Reader extracts text from pitch deck PDFs using pdfcpu. Extraction is
// best-effort: decks are often image-heavy and a failed or empty extraction
// degrades to "" so the pipeline can fall back to generic analysis.
type Reader struct {
	tempDir string
}

func NewReader() *Reader {
	tempDir := filepath.Join(os.TempDir(), "venture-valuator-pdf")
	os.MkdirAll(tempDir, 0755)
	return &Reader{tempDir: tempDir}
}

// ReadText extracts the full text of a PDF at path, pages concatenated in
// order with page markers. Returns "" (never an error surface to callers'
// control flow) when the file is missing, unreadable or has no extractable
// text.
func (r *Reader) ReadText(path string) string {
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("[PDF] File not accessible: %s (%v)\n", path, err)
		return ""
	}

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		fmt.Printf("[PDF] Failed to read PDF context: %v\n", err)
		return ""
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(r.tempDir, fmt.Sprintf("pages_%d", os.Getpid()))
	os.MkdirAll(outDir, 0755)
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		fmt.Printf("[PDF] Content extraction failed: %v\n", err)
		return ""
	}

	pageTexts := r.collectPageTexts(outDir)

	var builder strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text, ok := pageTexts[pageNum]
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString(fmt.Sprintf("\n\n--- Page %d ---\n\n", pageNum))
		}
		builder.WriteString(text)
	}

	result := builder.String()
	if strings.TrimSpace(result) == "" {
		fmt.Printf("[PDF] No extractable text in %s (image-only deck?)\n", path)
		return ""
	}
	return result
}

// PageCount returns the number of pages, or 0 when the file cannot be read.
func (r *Reader) PageCount(path string) int {
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return 0
	}
	return pdfCtx.PageCount
}

func (r *Reader) collectPageTexts(outDir string) map[int]string {
	pageTexts := make(map[int]string)
	files, _ := os.ReadDir(outDir)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(file.Name(), "Content_page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		} else if _, err := fmt.Sscanf(file.Name(), "page_%d", &pageNum); err == nil {
			pageTexts[pageNum] = string(content)
		}
	}
	return pageTexts
}
