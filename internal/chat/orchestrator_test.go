// In file: internal/chat/orchestrator_test.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamtech/chat-gateway/internal/enrich"
	"github.com/streamtech/chat-gateway/internal/llm"
	"github.com/streamtech/chat-gateway/internal/tools"
)

// --- fakes -----------------------------------------------------------------

type llmCall struct {
	messages    []llm.Message
	temperature float32
}

type fakeLLM struct {
	replies []string
	err     error
	calls   []llmCall
}

func (f *fakeLLM) Complete(_ context.Context, messages []llm.Message, temperature float32) (string, error) {
	f.calls = append(f.calls, llmCall{messages: messages, temperature: temperature})
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no scripted reply left")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

type invocation struct {
	name string
	args map[string]string
}

type fakeInvoker struct {
	result tools.Result
	err    error
	calls  []invocation
}

func (f *fakeInvoker) Invoke(_ context.Context, name string, args map[string]string) (tools.Result, error) {
	f.calls = append(f.calls, invocation{name: name, args: args})
	if f.err != nil {
		return tools.Result{}, f.err
	}
	return f.result, nil
}

type fakeEnricher struct {
	doc     *enrich.Document
	err     error
	queries []string
}

func (f *fakeEnricher) Fetch(_ context.Context, query string, _ bool) (*enrich.Document, error) {
	f.queries = append(f.queries, query)
	return f.doc, f.err
}

func testConfig() Config {
	return Config{
		AllowList: []string{
			"GetTime", "multiply", "retrieve_password", "recommend_screen_time",
			"search_movie", "get_movie_details", "get_movie_rating",
			"compare_ratings", "get_top_n_popular_movies",
			"get_top_n_popular_series", "get_upcoming_movies", "recommend_movies",
		},
		RequiredArgs: map[string][]string{
			"search_movie":      {"title"},
			"get_movie_details": {"title"},
			"get_movie_rating":  {"title"},
			"compare_ratings":   {"movie1_title", "movie1_rating", "movie2_title", "movie2_rating"},
			"recommend_movies":  {"genre"},
			"multiply":          {"a", "b"},
		},
	}
}

// --- fast path -------------------------------------------------------------

func TestGreetingGoesToModelNotTools(t *testing.T) {
	model := &fakeLLM{replies: []string{"Bonjour ! Comment puis-je vous aider ?"}}
	invoker := &fakeInvoker{}
	o := NewOrchestrator(model, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Salut")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour ! Comment puis-je vous aider ?", answer)
	assert.Empty(t, invoker.calls, "a greeting must never invoke a tool")
	require.Len(t, model.calls, 1)
	assert.Equal(t, classifierPrompt, model.calls[0].messages[0].Content)
}

func TestShortTitleGoesStraightToDetails(t *testing.T) {
	model := &fakeLLM{}
	invoker := &fakeInvoker{result: tools.TextResult("🎬 Inception (2010)")}
	o := NewOrchestrator(model, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Inception")
	require.NoError(t, err)
	assert.Equal(t, "🎬 Inception (2010)", answer)
	require.Len(t, invoker.calls, 1)
	assert.Equal(t, "get_movie_details", invoker.calls[0].name)
	assert.Equal(t, "Inception", invoker.calls[0].args["title"])
	assert.Empty(t, model.calls, "the direct-pass branch skips the model entirely")
}

func TestTimePromptRendersClockPhrase(t *testing.T) {
	invoker := &fakeInvoker{result: tools.TextResult("2026-09-01 15:04:05")}
	o := NewOrchestrator(&fakeLLM{}, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Il est quelle heure en ce moment ?")
	require.NoError(t, err)
	assert.Equal(t, "Il est 15h04.", answer)
	require.Len(t, invoker.calls, 1)
	assert.Equal(t, "GetTime", invoker.calls[0].name)
}

func TestTimePromptFailureYieldsApology(t *testing.T) {
	invoker := &fakeInvoker{err: errors.New("connection refused")}
	o := NewOrchestrator(&fakeLLM{}, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Il est quelle heure en ce moment ?")
	require.NoError(t, err, "fast-path failures are never fatal to the turn")
	assert.Equal(t, apologyTime, answer)
}

func TestUpcomingPromptPicksFirstInteger(t *testing.T) {
	invoker := &fakeInvoker{result: tools.TextResult("🎬 Film A\n🎬 Film B\n🎬 Film C")}
	o := NewOrchestrator(&fakeLLM{}, invoker, nil, testConfig())

	_, err := o.Answer(context.Background(), "Quels sont les films à venir ? Donne 3 titres")
	require.NoError(t, err)
	require.Len(t, invoker.calls, 1)
	assert.Equal(t, "get_upcoming_movies", invoker.calls[0].name)
	assert.Equal(t, "3", invoker.calls[0].args["top_n"])
}

func TestUpcomingPromptDefaultsToFive(t *testing.T) {
	invoker := &fakeInvoker{result: tools.TextResult("🎬 Film A")}
	o := NewOrchestrator(&fakeLLM{}, invoker, nil, testConfig())

	_, err := o.Answer(context.Background(), "Quelles sont les prochaines sorties prévues ?")
	require.NoError(t, err)
	require.Len(t, invoker.calls, 1)
	assert.Equal(t, "5", invoker.calls[0].args["top_n"])
}

func TestPasswordPromptFormatsProcedure(t *testing.T) {
	model := &fakeLLM{replies: []string{"Voici comment réinitialiser votre mot de passe."}}
	invoker := &fakeInvoker{result: tools.TextResult("Procédure interne complète")}
	o := NewOrchestrator(model, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "J'ai oublié mon mot de passe, que faire ?")
	require.NoError(t, err)
	assert.Equal(t, "Voici comment réinitialiser votre mot de passe.", answer)
	require.Len(t, invoker.calls, 1)
	assert.Equal(t, "retrieve_password", invoker.calls[0].name)
	require.Len(t, model.calls, 1)
	assert.Equal(t, formatterPrompt, model.calls[0].messages[0].Content)
	assert.InDelta(t, formatTemperature, model.calls[0].temperature, 1e-6)
}

func TestCatalogPromptWithEnrichmentMergesSources(t *testing.T) {
	model := &fakeLLM{replies: []string{"Avatar a coûté environ 237 millions de dollars."}}
	invoker := &fakeInvoker{result: tools.StructuredResult(map[string]any{"title": "Avatar"})}
	enricher := &fakeEnricher{doc: &enrich.Document{Title: "Avatar", Summary: "Film de James Cameron."}}
	o := NewOrchestrator(model, invoker, enricher, testConfig())

	answer, err := o.Answer(context.Background(), "Quel est le budget du film Avatar ?")
	require.NoError(t, err)
	assert.Equal(t, "Avatar a coûté environ 237 millions de dollars.", answer)

	require.Len(t, invoker.calls, 1)
	assert.Equal(t, "get_movie_details", invoker.calls[0].name)
	assert.Equal(t, "Avatar", invoker.calls[0].args["title"])

	require.Equal(t, []string{"Avatar"}, enricher.queries)

	// Both sources must reach the formatter, merged into one payload.
	require.Len(t, model.calls, 1)
	userContent := model.calls[0].messages[1].Content
	assert.Contains(t, userContent, "tmdb")
	assert.Contains(t, userContent, "wikipedia")
	assert.Contains(t, userContent, "Film de James Cameron.")
}

func TestCatalogPromptWithoutEnrichmentSkipsCollaborator(t *testing.T) {
	model := &fakeLLM{replies: []string{"Voici la fiche du film."}}
	invoker := &fakeInvoker{result: tools.StructuredResult(map[string]any{"title": "Dune"})}
	enricher := &fakeEnricher{}
	o := NewOrchestrator(model, invoker, enricher, testConfig())

	_, err := o.Answer(context.Background(), "Donne-moi la fiche du film Dune")
	require.NoError(t, err)
	assert.Empty(t, enricher.queries)
}

// --- classification path ---------------------------------------------------

func TestClassifiedCallBackfillsTitle(t *testing.T) {
	model := &fakeLLM{replies: []string{
		"TOOL:get_movie_details()",
		"Dune est un film de science-fiction.",
	}}
	invoker := &fakeInvoker{result: tools.StructuredResult(map[string]any{"title": "Dune"})}
	o := NewOrchestrator(model, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Parle un peu plus longuement de Dune")
	require.NoError(t, err)
	assert.Equal(t, "Dune est un film de science-fiction.", answer)
	require.Len(t, invoker.calls, 1)
	assert.Equal(t, "Dune", invoker.calls[0].args["title"])
}

func TestUnlistedToolIsRefused(t *testing.T) {
	model := &fakeLLM{replies: []string{
		"TOOL:delete_database(path=tout)",
		"Je ne peux pas faire cela, mais je peux vous renseigner autrement.",
	}}
	invoker := &fakeInvoker{}
	o := NewOrchestrator(model, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Exécute une opération interne particulière maintenant s'il te plaît")
	require.NoError(t, err)
	assert.Equal(t, "Je ne peux pas faire cela, mais je peux vous renseigner autrement.", answer)
	assert.Empty(t, invoker.calls, "an unlisted name must short-circuit before invocation")
	require.Len(t, model.calls, 2)
	assert.Equal(t, noToolsPrompt, model.calls[1].messages[0].Content)
}

func TestMissingArgumentsAskForClarification(t *testing.T) {
	model := &fakeLLM{replies: []string{"TOOL:compare_ratings(movie1_title=Dune)"}}
	invoker := &fakeInvoker{}
	o := NewOrchestrator(model, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Peux-tu comparer Dune et Avatar selon toi ?")
	require.NoError(t, err)
	assert.Equal(t,
		missingArgsPrefix+"movie1_rating, movie2_title, movie2_rating.",
		answer,
		"missing keys are named in the table's declaration order")
	assert.Empty(t, invoker.calls)
}

func TestClassifiedToolFailureYieldsApology(t *testing.T) {
	model := &fakeLLM{replies: []string{"TOOL:multiply(a=3,b=4)"}}
	invoker := &fakeInvoker{err: errors.New("boom")}
	o := NewOrchestrator(model, invoker, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Combien valent trois multiplié par quatre ?")
	require.NoError(t, err)
	assert.Equal(t, apologyTool, answer)
}

func TestLeakGuardReanswersWithoutTools(t *testing.T) {
	model := &fakeLLM{replies: []string{
		"Je vais utiliser get_movie_details pour répondre.",
		"Je n'ai pas cette information sous la main.",
	}}
	o := NewOrchestrator(model, &fakeInvoker{}, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Donne ton avis personnel sans consulter quoi que ce soit")
	require.NoError(t, err)
	assert.Equal(t, "Je n'ai pas cette information sous la main.", answer)
	require.Len(t, model.calls, 2)
	assert.Equal(t, noToolsPrompt, model.calls[1].messages[0].Content)
	assert.InDelta(t, converseTemperature, model.calls[1].temperature, 1e-6)
}

func TestPlainAnswerPassesThrough(t *testing.T) {
	model := &fakeLLM{replies: []string{"Votre compte se gère depuis les paramètres."}}
	o := NewOrchestrator(model, &fakeInvoker{}, nil, testConfig())

	answer, err := o.Answer(context.Background(), "Où puis-je gérer mon abonnement mensuel ?")
	require.NoError(t, err)
	assert.Equal(t, "Votre compte se gère depuis les paramètres.", answer)
	require.Len(t, model.calls, 1)
	assert.InDelta(t, classifyTemperature, model.calls[0].temperature, 1e-6)
}

func TestModelUnavailableEscapesAsError(t *testing.T) {
	model := &fakeLLM{err: fmt.Errorf("%w: connection refused", llm.ErrUnavailable)}
	o := NewOrchestrator(model, &fakeInvoker{}, nil, testConfig())

	_, err := o.Answer(context.Background(), "Bonjour")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

// --- formatter -------------------------------------------------------------

func TestAnswerWithoutToolsSubstitutesOnCallAttempt(t *testing.T) {
	model := &fakeLLM{replies: []string{"TOOL:retrieve_password()"}}
	f := NewFormatter(model)

	answer, err := f.AnswerWithoutTools(context.Background(), "réinitialise mon compte")
	require.NoError(t, err)
	assert.Equal(t, textOnlyFallback, answer)
}

func TestTimeReplyEchoesUnparseableValue(t *testing.T) {
	assert.Equal(t, "Il est bientôt midi.", timeReply("bientôt midi"))
}
