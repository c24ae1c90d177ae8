// In file: internal/tools/gateway_test.go
package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolServer(t *testing.T, handler func(req CallRequest) (int, any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rpc/call", r.URL.Path)

		var req CallRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		status, reply := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(reply))
	}))
}

func TestInvokeNormalizesTextReply(t *testing.T) {
	srv := newToolServer(t, func(req CallRequest) (int, any) {
		assert.Equal(t, "GetTime", req.Name)
		return http.StatusOK, CallEnvelope{Content: []ContentBlock{{Type: "text", Text: "2026-09-01 15:04:05"}}}
	})
	defer srv.Close()

	result, err := NewGateway(srv.URL).Invoke(context.Background(), "GetTime", nil)
	require.NoError(t, err)
	assert.Equal(t, KindText, result.Kind)
	assert.Equal(t, "2026-09-01 15:04:05", result.Text)
}

func TestInvokeMultiplyRendersEquation(t *testing.T) {
	srv := newToolServer(t, func(req CallRequest) (int, any) {
		return http.StatusOK, CallEnvelope{Data: 12.0}
	})
	defer srv.Close()

	result, err := NewGateway(srv.URL).Invoke(context.Background(), "multiply",
		map[string]string{"a": "3", "b": "4"})
	require.NoError(t, err)
	assert.Equal(t, "3.0 × 4.0 fait 12.0", result.Render())
}

func TestInvokeMultiplyRejectsNonNumericOperands(t *testing.T) {
	srv := newToolServer(t, func(req CallRequest) (int, any) {
		t.Error("the server must not be reached with bad operands")
		return http.StatusInternalServerError, ErrorReply{Error: "unexpected call"}
	})
	defer srv.Close()

	_, err := NewGateway(srv.URL).Invoke(context.Background(), "multiply",
		map[string]string{"a": "trois", "b": "4"})
	assert.Error(t, err)
}

func TestInvokeSurfacesToolFailure(t *testing.T) {
	srv := newToolServer(t, func(req CallRequest) (int, any) {
		return http.StatusInternalServerError, ErrorReply{Error: "aucun film trouvé pour : Xyzzy"}
	})
	defer srv.Close()

	_, err := NewGateway(srv.URL).Invoke(context.Background(), "get_movie_rating",
		map[string]string{"title": "Xyzzy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aucun film trouvé pour : Xyzzy")
}

func TestInvokeUnreachableServer(t *testing.T) {
	// Closed immediately so the port refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewGateway(url).Invoke(context.Background(), "GetTime", nil)
	assert.Error(t, err)
}

func TestInvokeClosesConnectionPerCall(t *testing.T) {
	srv := newToolServer(t, func(req CallRequest) (int, any) {
		return http.StatusOK, CallEnvelope{Content: []ContentBlock{{Type: "text", Text: "ok"}}}
	})
	defer srv.Close()

	gw := NewGateway(srv.URL)
	for i := 0; i < 3; i++ {
		_, err := gw.Invoke(context.Background(), "GetTime", nil)
		require.NoError(t, err)
	}
}
