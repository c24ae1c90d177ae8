// In file: internal/toolcall/codec_test.go
package toolcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	call := Parse("foo(a=1,b=2)")
	assert.Equal(t, "foo", call.Name)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, call.Args)

	// Re-serializing must reproduce an equivalent call. Key order is not
	// part of the contract, but String sorts, so the output is stable.
	reparsed := Parse(call.String())
	assert.Equal(t, call.Name, reparsed.Name)
	assert.Equal(t, call.Args, reparsed.Args)
}

func TestParseBareName(t *testing.T) {
	call := Parse("GetTime")
	assert.Equal(t, "GetTime", call.Name)
	assert.Empty(t, call.Args)
}

func TestParseTrimsWhitespace(t *testing.T) {
	call := Parse("  search_movie( title = Inception , top_n = 3 )  ")
	assert.Equal(t, "search_movie", call.Name)
	assert.Equal(t, "Inception", call.Args["title"])
	assert.Equal(t, "3", call.Args["top_n"])
}

func TestParseDropsMalformedSegments(t *testing.T) {
	// Segments without '=' are dropped silently, never treated as errors.
	call := Parse("compare_ratings(movie1_title=Dune,oops,movie1_rating=8.1)")
	assert.Equal(t, map[string]string{
		"movie1_title":  "Dune",
		"movie1_rating": "8.1",
	}, call.Args)
}

func TestParseEmptyArgList(t *testing.T) {
	call := Parse("retrieve_password()")
	assert.Equal(t, "retrieve_password", call.Name)
	assert.Empty(t, call.Args)
}

func TestExtractCall(t *testing.T) {
	call, ok := ExtractCall("TOOL:get_movie_details(title=Dune)")
	require.True(t, ok)
	assert.Equal(t, "get_movie_details", call.Name)
	assert.Equal(t, "Dune", call.Args["title"])

	_, ok = ExtractCall("Je ne connais pas ce film.")
	assert.False(t, ok)
}

func TestContainsMarker(t *testing.T) {
	assert.True(t, ContainsMarker("voici : TOOL:GetTime()"))
	assert.False(t, ContainsMarker("voici l'heure qu'il est"))
}

func TestStringNoArgs(t *testing.T) {
	assert.Equal(t, "GetTime()", Call{Name: "GetTime"}.String())
}
