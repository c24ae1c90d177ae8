// In file: internal/tools/popular.go
package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// --- Popular movies/series (scraped) ---

// The "Populaires" rankings are not exposed by the TMDB REST API, so these
// two tools scrape the public listing pages instead.

// PopularScraper fetches and parses a TMDB listing page.
type PopularScraper struct {
	siteURL    string
	httpClient *http.Client
}

// NewPopularScraper creates a scraper for the TMDB site. siteURL is
// overridable for tests; pass "" for the production site.
func NewPopularScraper(siteURL string) *PopularScraper {
	if siteURL == "" {
		siteURL = "https://www.themoviedb.org"
	}
	return &PopularScraper{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type popularCard struct {
	Title    string
	Year     string
	Rating   string
	Overview string
}

func (s *PopularScraper) cards(ctx context.Context, path string) ([]popularCard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.siteURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create scrape request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach TMDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("impossible d'accéder à TMDB (status %d)", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TMDB page: %w", err)
	}

	var cards []popularCard
	doc.Find("div.card.style_1").Each(func(_ int, sel *goquery.Selection) {
		card := popularCard{
			Title:    strings.TrimSpace(sel.Find("h2 a").First().Text()),
			Year:     strings.TrimSpace(sel.Find("span.release_date").First().Text()),
			Overview: strings.TrimSpace(sel.Find("p.overview").First().Text()),
		}
		if percent, ok := sel.Find("div.user_score_chart").First().Attr("data-percent"); ok {
			card.Rating = percent
		}
		cards = append(cards, card)
	})
	return cards, nil
}

// --- get_top_n_popular_movies ---

type PopularMoviesTool struct {
	scraper *PopularScraper
}

var _ ToolExecutor = (*PopularMoviesTool)(nil)

func NewPopularMoviesTool(scraper *PopularScraper) *PopularMoviesTool {
	return &PopularMoviesTool{scraper: scraper}
}

func (t *PopularMoviesTool) Name() string { return "get_top_n_popular_movies" }

func (t *PopularMoviesTool) Execute(ctx context.Context, args map[string]string) (any, error) {
	cards, err := t.scraper.cards(ctx, "/movie")
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return "Aucun film trouvé sur la page Populaires.", nil
	}

	n := topN(args, 5)
	if n > len(cards) {
		n = len(cards)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎬 Top %d films Populaires sur TMDB:\n\n", n))
	for _, card := range cards[:n] {
		sb.WriteString(fmt.Sprintf("Titre: %s\nAnnée: %s\nNote TMDB: %s/100\nRésumé: %s\n"+
			"----------------------------------------\n",
			orNA(card.Title), orNA(card.Year), orNA(card.Rating), orNA(card.Overview)))
	}
	return sb.String(), nil
}

// --- get_top_n_popular_series ---

type PopularSeriesTool struct {
	scraper *PopularScraper
}

var _ ToolExecutor = (*PopularSeriesTool)(nil)

func NewPopularSeriesTool(scraper *PopularScraper) *PopularSeriesTool {
	return &PopularSeriesTool{scraper: scraper}
}

func (t *PopularSeriesTool) Name() string { return "get_top_n_popular_series" }

func (t *PopularSeriesTool) Execute(ctx context.Context, args map[string]string) (any, error) {
	cards, err := t.scraper.cards(ctx, "/tv")
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return "Aucune série trouvée sur la page Populaires.", nil
	}

	n := topN(args, 5)
	if n > len(cards) {
		n = len(cards)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📺 Top %d séries Populaires sur TMDB:\n\n", n))
	for _, card := range cards[:n] {
		sb.WriteString(fmt.Sprintf("Titre: %s\nNote TMDB: %s/100\n"+
			"----------------------------------------\n",
			orNA(card.Title), orNA(card.Rating)))
	}
	return sb.String(), nil
}
