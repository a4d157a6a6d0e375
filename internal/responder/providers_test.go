package responder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestAnthropicBackendJoinsTextBlocks(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "Stillness "}, {"type": "text", "text": "is also motion."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 6}
		}`)
	}))
	defer srv.Close()

	backend, err := NewAnthropicBackend("test-key", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	got, err := backend.Generate(context.Background(), sampleRequest, BuildPrompt(sampleRequest))
	require.NoError(t, err)
	assert.Equal(t, "Stillness is also motion.", got)
	assert.True(t, strings.Contains(body, "forest spirit"), "prompt not sent: %s", body)
	assert.Equal(t, "anthropic:claude-haiku-4-5", backend.Name())
}

func TestGeminiBackendReadsCandidateText(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Moss grows where you rest."}]}}]
		}`)
	}))
	defer srv.Close()

	backend, err := newGeminiBackend(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	}, "")
	require.NoError(t, err)

	got, err := backend.Generate(context.Background(), sampleRequest, BuildPrompt(sampleRequest))
	require.NoError(t, err)
	assert.Equal(t, "Moss grows where you rest.", got)
	assert.Contains(t, path, "gemini-2.5-flash")
}
