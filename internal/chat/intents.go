// In file: internal/chat/intents.go
package chat

import (
	"strconv"
	"strings"

	"github.com/streamtech/chat-gateway/internal/toolcall"
)

// Deterministic intent predicates: the fast path that resolves a turn
// without consulting the language model. Each predicate is pure and reads
// the raw utterance only. Rule order is part of the contract; the
// orchestrator evaluates them top to bottom and stops at the first match.

var greetings = map[string]struct{}{
	"salut":   {},
	"bonjour": {},
	"hello":   {},
	"hi":      {},
	"coucou":  {},
	"yo":      {},
	"hey":     {},
}

func isGreeting(prompt string) bool {
	_, ok := greetings[strings.ToLower(strings.TrimSpace(prompt))]
	return ok
}

// isShortTitlePrompt treats any 1-3 word utterance that is not a greeting
// as a bare movie title.
func isShortTitlePrompt(prompt string) bool {
	if isGreeting(prompt) {
		return false
	}
	words := strings.Fields(prompt)
	return len(words) >= 1 && len(words) <= 3
}

func isTimePrompt(prompt string) bool {
	return containsAny(strings.ToLower(strings.TrimSpace(prompt)),
		"heure", "time", "il est quelle heure", "quelle heure")
}

func isScreenTimePrompt(prompt string) bool {
	return containsAny(strings.ToLower(prompt),
		"temps d'ecran", "temps d’écran", "temps d'écran", "temps d’ecran",
		"moment de regarder", "bon moment", "regarder un film", "regarder quelque chose")
}

func isPasswordPrompt(prompt string) bool {
	return containsAny(strings.ToLower(prompt),
		"mot de passe", "password", "reinitialiser", "réinitialiser",
		"recuperer", "récupérer", "perdu mon mot de passe",
		"oublie mon mot de passe", "oublié mon mot de passe")
}

func isAboutPrompt(prompt string) bool {
	return containsAny(strings.ToLower(prompt),
		"parle moi de", "parle-moi de", "parle moi d'", "parle-moi d'")
}

func isUpcomingPrompt(prompt string) bool {
	return containsAny(strings.ToLower(prompt),
		"a venir", "à venir", "prochain", "sortie", "upcoming")
}

// isCatalogPrompt is the broad relevance rule: any catalog vocabulary, or
// the fallback "a 1-3 word utterance is a catalog query".
func isCatalogPrompt(prompt string) bool {
	if isGreeting(prompt) {
		return false
	}
	lowered := strings.ToLower(prompt)
	if containsAny(lowered,
		"note", "resume", "résumé", "date", "casting", "acteurs", "fiche",
		"infos", "information", "parle moi de", "film", "serie", "série",
		"recommande", "recommandation", "cherche", "recherche", "top") {
		return true
	}
	words := strings.Fields(prompt)
	return len(words) >= 1 && len(words) <= 3
}

// needsEnrichment reports whether the utterance asks for facts the catalog
// does not carry (budget, box office, awards), which the Wikipedia
// enrichment collaborator supplies.
func needsEnrichment(prompt string) bool {
	return containsAny(strings.ToLower(prompt),
		"budget", "box-office", "box office", "entrées", "entrees",
		"récompenses", "recompenses", "wikipedia", "wikimedia")
}

// inferCatalogCall maps a catalog-relevant utterance onto one concrete
// tool call by secondary keyword priority: genre recommendation first,
// then upcoming releases, then popular series, popular movies, search,
// and finally movie details as the default.
func inferCatalogCall(prompt string) toolcall.Call {
	lowered := strings.ToLower(prompt)

	if containsAny(lowered, "recommande", "recommandation") {
		return toolcall.Call{Name: "recommend_movies", Args: map[string]string{
			"genre": strings.TrimSpace(prompt),
		}}
	}
	if containsAny(lowered, "a venir", "à venir", "prochain", "upcoming") {
		return toolcall.Call{Name: "get_upcoming_movies", Args: map[string]string{
			"top_n": strconv.Itoa(firstInteger(lowered, 5)),
		}}
	}
	if strings.Contains(lowered, "top") && strings.Contains(lowered, "popul") &&
		containsAny(lowered, "serie", "série") {
		return toolcall.Call{Name: "get_top_n_popular_series", Args: map[string]string{
			"top_n": strconv.Itoa(firstInteger(lowered, 5)),
		}}
	}
	if strings.Contains(lowered, "top") && strings.Contains(lowered, "popul") {
		return toolcall.Call{Name: "get_top_n_popular_movies", Args: map[string]string{
			"top_n": strconv.Itoa(firstInteger(lowered, 5)),
		}}
	}
	if containsAny(lowered, "cherche", "recherche", "top") {
		return toolcall.Call{Name: "search_movie", Args: map[string]string{
			"title": ExtractTitle(prompt),
		}}
	}
	return toolcall.Call{Name: "get_movie_details", Args: map[string]string{
		"title": ExtractTitle(prompt),
	}}
}

// firstInteger returns the first whole-number token of the utterance, or
// def when none is present.
func firstInteger(lowered string, def int) int {
	for _, token := range strings.Fields(lowered) {
		if n, err := strconv.Atoi(token); err == nil {
			return n
		}
	}
	return def
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
