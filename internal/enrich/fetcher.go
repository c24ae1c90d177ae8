// In file: internal/enrich/fetcher.go
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fetcherUserAgent = "StreamtechBot/1.0 (local test; contact: local@example.com)"

// Fetcher retrieves enrichment documents from French Wikipedia and caches
// them on disk. Concurrent fetches of the same uncached query may race and
// both hit the network; the write is idempotent for a given slug, so the
// last writer wins and no lock is taken.
type Fetcher struct {
	baseURL    string
	cacheDir   string
	httpClient *http.Client
	now        func() time.Time
}

// NewFetcher creates a fetcher. baseURL is overridable for tests; pass ""
// for the production site.
func NewFetcher(baseURL, cacheDir string) *Fetcher {
	if baseURL == "" {
		baseURL = "https://fr.wikipedia.org"
	}
	return &Fetcher{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

// Fetch returns the enrichment document for a query, from cache when a
// cached copy exists and refresh is false, from the network otherwise.
func (f *Fetcher) Fetch(ctx context.Context, query string, refresh bool) (*Document, error) {
	cachePath := filepath.Join(f.cacheDir, Slugify(query)+".json")

	if !refresh {
		if raw, err := os.ReadFile(cachePath); err == nil {
			var doc Document
			if err := json.Unmarshal(raw, &doc); err == nil {
				return &doc, nil
			}
		}
	}

	doc, err := f.scrape(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := f.store(cachePath, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// store persists the document as pretty-printed JSON under the cache dir.
func (f *Fetcher) store(cachePath string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode enrichment document: %w", err)
	}
	if err := os.WriteFile(cachePath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write enrichment cache: %w", err)
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetcherUserAgent)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	return f.httpClient.Do(req)
}

// scrape resolves the query to a Wikipedia page and extracts the document.
// Resolution order: direct page URL, then the REST HTML endpoint when the
// site throttles the direct fetch, then the search page when the direct
// page does not exist.
func (f *Fetcher) scrape(ctx context.Context, query string) (*Document, error) {
	directSlug := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	pageURL := f.baseURL + "/wiki/" + directSlug

	resp, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Wikipedia: %w", err)
	}
	page, err := goquery.NewDocumentFromReader(resp.Body)
	status := resp.StatusCode
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to parse Wikipedia page: %w", err)
	}

	if status == http.StatusForbidden || status == http.StatusTooManyRequests {
		restResp, err := f.get(ctx, f.baseURL+"/api/rest_v1/page/html/"+url.PathEscape(directSlug))
		if err != nil {
			return nil, fmt.Errorf("failed to reach Wikipedia: %w", err)
		}
		defer restResp.Body.Close()
		if restResp.StatusCode != http.StatusOK {
			return f.errorDocument(query, fmt.Sprintf("Accès Wikipédia refusé (%d).", status)), nil
		}
		if page, err = goquery.NewDocumentFromReader(restResp.Body); err != nil {
			return nil, fmt.Errorf("failed to parse Wikipedia page: %w", err)
		}
	} else if page.Find(".noarticletext").Length() > 0 {
		searchResp, err := f.get(ctx, f.baseURL+"/w/index.php?search="+url.QueryEscape(query))
		if err != nil {
			return nil, fmt.Errorf("failed to reach Wikipedia search: %w", err)
		}
		searchPage, err := goquery.NewDocumentFromReader(searchResp.Body)
		searchResp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse Wikipedia search page: %w", err)
		}

		href, ok := searchPage.Find(".mw-search-result-heading a").First().Attr("href")
		if !ok {
			return f.errorDocument(query, "Page Wikipédia introuvable."), nil
		}
		pageURL = f.baseURL + href
		resultResp, err := f.get(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to reach Wikipedia: %w", err)
		}
		page, err = goquery.NewDocumentFromReader(resultResp.Body)
		resultResp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse Wikipedia page: %w", err)
		}
	}

	title := cleanText(page.Find("#firstHeading").First().Text())
	if title == "" {
		title = query
	}
	infobox := extractInfobox(page)

	return &Document{
		Query:           query,
		URL:             pageURL,
		Title:           title,
		Summary:         extractSummary(page),
		Infobox:         infobox,
		InfoboxPriority: filterInfobox(infobox),
		Awards:          extractAwards(page),
		FetchedAt:       f.now().UTC(),
	}, nil
}

func (f *Fetcher) errorDocument(query, message string) *Document {
	return &Document{Query: query, Error: message}
}
