package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peekay/feedex"
	"github.com/peekay/feedex/openai"
)

// newTestClient returns a client pointed at a fake completion endpoint.
func newTestClient(t *testing.T, handler http.HandlerFunc) *gopenai.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := gopenai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return gopenai.NewClientWithConfig(cfg)
}

func completionResponse(content string) gopenai.ChatCompletionResponse {
	return gopenai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  gopenai.GPT4o,
		Choices: []gopenai.ChatCompletionChoice{
			{Message: gopenai.ChatCompletionMessage{Role: "assistant", Content: content}},
		},
	}
}

func TestEnricher_Enrich(t *testing.T) {
	t.Parallel()

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/chat/completions", r.URL.Path)

			var req gopenai.ChatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Messages, 2)
			assert.Equal(t, feedex.EnrichmentSystemPrompt, req.Messages[0].Content)
			assert.Contains(t, req.Messages[1].Content, "Ada Lovelace")

			w.Header().Set("Content-Type", "application/json")
			resp := completionResponse(`{"records":[{"postIndex":0,"company":"Analytical Engines","location":"London"}]}`)
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		})

		records := []*feedex.Record{
			{Name: "Ada Lovelace", Title: "Engineer", Details: "Working on the engine.", PostIndex: 0},
		}

		e := openai.NewEnricher(client, "")
		require.NoError(t, e.Enrich(context.Background(), records))

		assert.Equal(t, "Analytical Engines", records[0].Company)
		assert.Equal(t, "London", records[0].Location)
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		t.Parallel()

		// An empty batch never reaches the API, so no client is needed.
		e := openai.NewEnricher(nil, "")
		require.NoError(t, e.Enrich(context.Background(), nil))
	})

	t.Run("ErrProviderUnavailable", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
		})

		records := []*feedex.Record{{Name: "Ada Lovelace", PostIndex: 0}}

		e := openai.NewEnricher(client, "")
		err := e.Enrich(context.Background(), records)

		require.Error(t, err)
		assert.Equal(t, feedex.EUNAVAILABLE, feedex.ErrorCode(err))
	})

	t.Run("ErrUnparsableResponse", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			resp := completionResponse("I cannot help with that.")
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		})

		records := []*feedex.Record{{Name: "Ada Lovelace", PostIndex: 0}}

		e := openai.NewEnricher(client, "")
		err := e.Enrich(context.Background(), records)

		require.Error(t, err)
		assert.Equal(t, feedex.EINTERNAL, feedex.ErrorCode(err))
	})
}
