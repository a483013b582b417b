package market

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const maxSnippetsPerQuery = 5

// NewDuckDuckGoSearch returns a SearchFunc scraping the DuckDuckGo HTML
// endpoint. No API key needed, which keeps web enrichment usable in local
// runs; result quality is rough but the prompt only needs directional
// signals.
func NewDuckDuckGoSearch(client *http.Client) SearchFunc {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return func(ctx context.Context, query string) (string, error) {
		endpoint := "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(query)
		req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
		if err != nil {
			return "", fmt.Errorf("search request failed: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; venture-valuator/1.0)")

		resp, err := client.Do(req)
		if err != nil {
			return "", fmt.Errorf("search call failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("search returned status %d", resp.StatusCode)
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to parse search results: %w", err)
		}

		return extractSnippets(doc), nil
	}
}

func extractSnippets(doc *goquery.Document) string {
	var snippets []string
	doc.Find(".result__snippet").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			snippets = append(snippets, "- "+text)
		}
		return len(snippets) < maxSnippetsPerQuery
	})
	return strings.Join(snippets, "\n")
}
