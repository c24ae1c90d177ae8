// In file: internal/chat/intents_test.go
package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreetingsNeverMatchFastPredicates(t *testing.T) {
	for _, prompt := range []string{"Salut", "bonjour", "  Hello  ", "coucou", "yo"} {
		assert.False(t, isShortTitlePrompt(prompt), "short-title must exclude %q", prompt)
		assert.False(t, isCatalogPrompt(prompt), "catalog must exclude %q", prompt)
	}
}

func TestShortTitlePrompt(t *testing.T) {
	assert.True(t, isShortTitlePrompt("Inception"))
	assert.True(t, isShortTitlePrompt("Le Grand Bleu"))
	assert.False(t, isShortTitlePrompt("Le Seigneur des Anneaux intégrale"))
	assert.False(t, isShortTitlePrompt("   "))
}

func TestUpcomingPromptVariants(t *testing.T) {
	assert.True(t, isUpcomingPrompt("Quels films à venir ce mois-ci ?"))
	assert.True(t, isUpcomingPrompt("les prochaines sorties"))
	assert.True(t, isUpcomingPrompt("upcoming movies please"))
	assert.False(t, isUpcomingPrompt("Quelle est la note de Dune ?"))
}

func TestNeedsEnrichment(t *testing.T) {
	assert.True(t, needsEnrichment("Quel est le budget d'Avatar ?"))
	assert.True(t, needsEnrichment("combien d'entrées a fait le film"))
	assert.True(t, needsEnrichment("ses récompenses selon Wikipedia"))
	assert.False(t, needsEnrichment("Quelle est la note de Dune ?"))
}

func TestInferCatalogCallPriorities(t *testing.T) {
	// Genre recommendation outranks everything else.
	call := inferCatalogCall("Recommande moi un film d'horreur")
	assert.Equal(t, "recommend_movies", call.Name)
	assert.Equal(t, "Recommande moi un film d'horreur", call.Args["genre"])

	call = inferCatalogCall("les films à venir, top 4")
	assert.Equal(t, "get_upcoming_movies", call.Name)
	assert.Equal(t, "4", call.Args["top_n"])

	call = inferCatalogCall("top 3 des séries populaires")
	assert.Equal(t, "get_top_n_popular_series", call.Name)
	assert.Equal(t, "3", call.Args["top_n"])

	call = inferCatalogCall("top 10 des films populaires")
	assert.Equal(t, "get_top_n_popular_movies", call.Name)
	assert.Equal(t, "10", call.Args["top_n"])

	call = inferCatalogCall("cherche Interstellar")
	assert.Equal(t, "search_movie", call.Name)
	assert.Equal(t, "Interstellar", call.Args["title"])

	call = inferCatalogCall("la note du film Dune")
	assert.Equal(t, "get_movie_details", call.Name)
	assert.Equal(t, "Dune", call.Args["title"])
}

func TestFirstInteger(t *testing.T) {
	assert.Equal(t, 3, firstInteger("donne 3 titres", 5))
	assert.Equal(t, 5, firstInteger("donne des titres", 5))
	assert.Equal(t, 12, firstInteger("top 12 et ensuite 7", 5))
}

func TestLeakGuardMatchesToolVocabulary(t *testing.T) {
	markers := newLeakMarkers([]string{"GetTime", "search_movie"})
	assert.True(t, containsToolMention("je vais appeler search_movie ici", markers))
	assert.True(t, containsToolMention("TOOL: je réfléchis encore", markers))
	assert.True(t, containsToolMention("il faut utiliser GETTIME", markers))
	assert.False(t, containsToolMention("je cherche un film pour vous", markers))
}
