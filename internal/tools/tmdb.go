// In file: internal/tools/tmdb.go
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// --- TMDB Catalog Tools ---

// TMDBClient wraps the TMDB REST API used by the catalog tools. It holds
// its own configured HTTP client for making robust external API calls.
type TMDBClient struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

// NewTMDBClient creates a TMDB API client. baseURL is overridable so tests
// can point it at a local server; pass "" for the production API.
func NewTMDBClient(apiKey, baseURL string) *TMDBClient {
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	return &TMDBClient{
		apiKey:   apiKey,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		language: "fr-FR",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Movie is one entry of a TMDB search or discover response.
type Movie struct {
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Overview         string  `json:"overview"`
	OriginalLanguage string  `json:"original_language"`
}

func (c *TMDBClient) get(ctx context.Context, path string, params url.Values) ([]Movie, error) {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create TMDB request: %w", err)
	}
	req.Header.Set("User-Agent", "Streamtech-Gateway/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call TMDB API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB API returned non-200 status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TMDB response: %w", err)
	}
	var apiResp struct {
		Results []Movie `json:"results"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse TMDB JSON response: %w", err)
	}
	return apiResp.Results, nil
}

func (c *TMDBClient) searchMovies(ctx context.Context, title string) ([]Movie, error) {
	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	return c.get(ctx, "/search/movie", params)
}

// topN parses the optional top_n argument, falling back to def.
func topN(args map[string]string, def int) int {
	if raw, ok := args["top_n"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// movieBlock renders one movie as the structured text block the formatter
// prompt consumes.
func movieBlock(m Movie) string {
	return fmt.Sprintf("Titre: %s\nDate de sortie: %s\nNote: %s\nRésumé: %s\n"+
		"----------------------------------------\n",
		orNA(m.Title), orNA(m.ReleaseDate), FormatFloat(m.VoteAverage), orNA(m.Overview))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// --- search_movie ---

// SearchMovieTool searches TMDB by title and returns the best-rated
// matches as structured text.
type SearchMovieTool struct {
	client *TMDBClient
}

var _ ToolExecutor = (*SearchMovieTool)(nil)

func NewSearchMovieTool(client *TMDBClient) *SearchMovieTool {
	return &SearchMovieTool{client: client}
}

func (t *SearchMovieTool) Name() string { return "search_movie" }

func (t *SearchMovieTool) Execute(ctx context.Context, args map[string]string) (any, error) {
	results, err := t.client.searchMovies(ctx, args["title"])
	if err != nil {
		return nil, err
	}

	// Keep only entries that carry a summary, then rank by rating.
	kept := results[:0]
	for _, m := range results {
		if m.Overview != "" {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].VoteAverage > kept[j].VoteAverage
	})

	if len(kept) == 0 {
		return "Aucun film trouvé.", nil
	}

	n := topN(args, 3)
	if n > len(kept) {
		n = len(kept)
	}
	var sb strings.Builder
	for _, m := range kept[:n] {
		sb.WriteString(movieBlock(m))
	}
	return sb.String(), nil
}

// --- get_movie_details ---

// MovieDetailsTool returns the most relevant match for a title.
type MovieDetailsTool struct {
	client *TMDBClient
}

var _ ToolExecutor = (*MovieDetailsTool)(nil)

func NewMovieDetailsTool(client *TMDBClient) *MovieDetailsTool {
	return &MovieDetailsTool{client: client}
}

func (t *MovieDetailsTool) Name() string { return "get_movie_details" }

func (t *MovieDetailsTool) Execute(ctx context.Context, args map[string]string) (any, error) {
	results, err := t.client.searchMovies(ctx, args["title"])
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return "Aucun film trouvé.", nil
	}

	best := pickBestMatch(results, args["title"])
	return fmt.Sprintf("Titre: %s\nDate de sortie: %s\nNote: %s\nRésumé: %s\n"+
		"Langue originale: %s\nPopularité: %s\n",
		orNA(best.Title), orNA(best.ReleaseDate), FormatFloat(best.VoteAverage),
		orNA(best.Overview), orNA(best.OriginalLanguage), FormatFloat(best.Popularity)), nil
}

// pickBestMatch ranks candidates by exact-title match, then a preferred
// original language, then presence of a release date, then vote count,
// popularity and rating.
func pickBestMatch(results []Movie, title string) Movie {
	normalized := strings.ToLower(strings.TrimSpace(title))
	score := func(m Movie) [6]float64 {
		var s [6]float64
		if strings.ToLower(strings.TrimSpace(m.Title)) == normalized {
			s[0] = 100
		}
		if m.OriginalLanguage == "en" || m.OriginalLanguage == "fr" {
			s[1] = 10
		}
		if m.ReleaseDate != "" {
			s[2] = 5
		}
		s[3] = float64(m.VoteCount)
		s[4] = m.Popularity
		s[5] = m.VoteAverage
		return s
	}

	best := results[0]
	bestScore := score(best)
	for _, m := range results[1:] {
		candidate := score(m)
		for i := range candidate {
			if candidate[i] != bestScore[i] {
				if candidate[i] > bestScore[i] {
					best, bestScore = m, candidate
				}
				break
			}
		}
	}
	return best
}

// --- get_movie_rating ---

// MovieRatingTool returns only the TMDB rating of the best-rated match,
// as a typed float payload.
type MovieRatingTool struct {
	client *TMDBClient
}

var _ ToolExecutor = (*MovieRatingTool)(nil)

func NewMovieRatingTool(client *TMDBClient) *MovieRatingTool {
	return &MovieRatingTool{client: client}
}

func (t *MovieRatingTool) Name() string { return "get_movie_rating" }

func (t *MovieRatingTool) Execute(ctx context.Context, args map[string]string) (any, error) {
	results, err := t.client.searchMovies(ctx, args["title"])
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("aucun film trouvé pour : %s", args["title"])
	}

	best := results[0]
	for _, m := range results[1:] {
		if m.VoteAverage > best.VoteAverage ||
			(m.VoteAverage == best.VoteAverage && m.VoteCount > best.VoteCount) {
			best = m
		}
	}
	return best.VoteAverage, nil
}

// --- recommend_movies ---

// RecommendMoviesTool recommends top-rated movies for a named genre via
// the TMDB discover endpoint. The genre-to-id mapping comes from the tool
// server's YAML configuration.
type RecommendMoviesTool struct {
	client   *TMDBClient
	genreIDs map[string]int
}

var _ ToolExecutor = (*RecommendMoviesTool)(nil)

func NewRecommendMoviesTool(client *TMDBClient, genreIDs map[string]int) *RecommendMoviesTool {
	return &RecommendMoviesTool{client: client, genreIDs: genreIDs}
}

func (t *RecommendMoviesTool) Name() string { return "recommend_movies" }

func (t *RecommendMoviesTool) Execute(ctx context.Context, args map[string]string) (any, error) {
	genre := strings.ToLower(strings.TrimSpace(args["genre"]))
	genreID, ok := t.genreIDs[genre]
	if !ok {
		// An unrecognized genre is answered in natural language, not as a
		// failed call.
		return "Genre non reconnu. Exemples: action, drame, comedie, science-fiction, " +
			"thriller, romance, horreur.", nil
	}

	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", "200")
	params.Set("include_adult", "false")
	results, err := t.client.get(ctx, "/discover/movie", params)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return "Aucun film trouvé pour ce genre.", nil
	}

	n := topN(args, 5)
	if n > len(results) {
		n = len(results)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎬 Top %d films (%s) :\n\n", n, genre))
	for _, m := range results[:n] {
		sb.WriteString(fmt.Sprintf("Titre: %s\nDate de sortie: %s\nNote: %s\n"+
			"----------------------------------------\n",
			orNA(m.Title), orNA(m.ReleaseDate), FormatFloat(m.VoteAverage)))
	}
	return sb.String(), nil
}

// --- get_upcoming_movies ---

// UpcomingMoviesTool lists this year's upcoming releases, sorted by
// release date ascending.
type UpcomingMoviesTool struct {
	client *TMDBClient
	now    func() time.Time
}

var _ ToolExecutor = (*UpcomingMoviesTool)(nil)

func NewUpcomingMoviesTool(client *TMDBClient) *UpcomingMoviesTool {
	return &UpcomingMoviesTool{client: client, now: time.Now}
}

func (t *UpcomingMoviesTool) Name() string { return "get_upcoming_movies" }

func (t *UpcomingMoviesTool) Execute(ctx context.Context, args map[string]string) (any, error) {
	params := url.Values{}
	params.Set("page", "1")
	results, err := t.client.get(ctx, "/movie/upcoming", params)
	if err != nil {
		return nil, err
	}

	targetYear := strconv.Itoa(t.now().Year())
	kept := results[:0]
	for _, m := range results {
		if strings.HasPrefix(m.ReleaseDate, targetYear) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return fmt.Sprintf("Aucun film a venir trouve pour %s.", targetYear), nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return releaseKey(kept[i]) < releaseKey(kept[j])
	})

	n := topN(args, 5)
	if n > len(kept) {
		n = len(kept)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎬 Top %d films a venir (tries par date):\n\n", n))
	for _, m := range kept[:n] {
		sb.WriteString(fmt.Sprintf("Titre: %s\nDate de sortie: %s\nNote: %s\nResume: %s\n"+
			"----------------------------------------\n",
			orNA(m.Title), orNA(m.ReleaseDate), FormatFloat(m.VoteAverage), orNA(m.Overview)))
	}
	return sb.String(), nil
}

func releaseKey(m Movie) string {
	if m.ReleaseDate == "" {
		return "9999-12-31"
	}
	return m.ReleaseDate
}
