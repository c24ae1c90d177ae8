// In file: internal/tools/popular_test.go
package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const popularCardHTML = `<div class="card style_1">
  <h2><a href="/movie/1">%s</a></h2>
  <span class="release_date">%s</span>
  <div class="user_score_chart" data-percent="%s"></div>
  <p class="overview">%s</p>
</div>`

func newPopularServer(t *testing.T, path, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err := fmt.Fprint(w, "<html><body>"+body+"</body></html>")
		assert.NoError(t, err)
	}))
}

func TestPopularMoviesToolParsesCards(t *testing.T) {
	body := fmt.Sprintf(popularCardHTML, "Dune", "15 sept. 2021", "81", "Arrakis.") +
		fmt.Sprintf(popularCardHTML, "Avatar", "16 déc. 2009", "76", "Pandora.")
	srv := newPopularServer(t, "/movie", body)
	defer srv.Close()

	tool := NewPopularMoviesTool(NewPopularScraper(srv.URL))
	result, err := tool.Execute(context.Background(), map[string]string{"top_n": "2"})
	require.NoError(t, err)

	text := result.(string)
	assert.Contains(t, text, "🎬 Top 2 films Populaires sur TMDB:")
	assert.Contains(t, text, "Titre: Dune")
	assert.Contains(t, text, "Note TMDB: 81/100")
	assert.Contains(t, text, "Résumé: Pandora.")
}

func TestPopularMoviesToolTruncatesToRequestedCount(t *testing.T) {
	body := fmt.Sprintf(popularCardHTML, "Dune", "2021", "81", "a") +
		fmt.Sprintf(popularCardHTML, "Avatar", "2009", "76", "b") +
		fmt.Sprintf(popularCardHTML, "Titanic", "1997", "79", "c")
	srv := newPopularServer(t, "/movie", body)
	defer srv.Close()

	tool := NewPopularMoviesTool(NewPopularScraper(srv.URL))
	result, err := tool.Execute(context.Background(), map[string]string{"top_n": "1"})
	require.NoError(t, err)

	text := result.(string)
	assert.Contains(t, text, "Dune")
	assert.NotContains(t, text, "Avatar")
	assert.NotContains(t, text, "Titanic")
}

func TestPopularSeriesToolUsesTVPage(t *testing.T) {
	body := fmt.Sprintf(popularCardHTML, "Dark", "2017", "83", "Winden.")
	srv := newPopularServer(t, "/tv", body)
	defer srv.Close()

	tool := NewPopularSeriesTool(NewPopularScraper(srv.URL))
	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)

	text := result.(string)
	assert.Contains(t, text, "📺 Top 1 séries Populaires sur TMDB:")
	assert.Contains(t, text, "Titre: Dark")
	assert.Contains(t, text, "Note TMDB: 83/100")
}

func TestPopularMoviesToolEmptyPage(t *testing.T) {
	srv := newPopularServer(t, "/movie", "<p>rien ici</p>")
	defer srv.Close()

	tool := NewPopularMoviesTool(NewPopularScraper(srv.URL))
	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Aucun film trouvé sur la page Populaires.", result)
}

func TestPopularMoviesToolUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tool := NewPopularMoviesTool(NewPopularScraper(srv.URL))
	_, err := tool.Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
