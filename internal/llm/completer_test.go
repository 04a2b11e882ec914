package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: Be brief.\nstyle:\n  max_tokens: 64\n"), 0o600))

	spec, err := LoadPromptSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "Be brief.", spec.System)
	assert.Equal(t, 64, spec.Style.MaxTokens)
	assert.Equal(t, float32(0.95), spec.Style.TopP)
	assert.Equal(t, float32(1), spec.Style.Temperature)
}

func TestLoadPromptSpecKeepsExplicitZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: Be exact.\nstyle:\n  temperature: 0\n"), 0o600))

	spec, err := LoadPromptSpec(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0), spec.Style.Temperature)
	assert.Equal(t, float32(0.95), spec.Style.TopP)
	assert.Equal(t, 200, spec.Style.MaxTokens)
}

func TestLoadPromptSpecRejectsNegativeStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.yaml")
	require.NoError(t, os.WriteFile(path, []byte("style:\n  max_tokens: -5\n"), 0o600))

	_, err := LoadPromptSpec(path)
	assert.Error(t, err)
}

func TestCompleteSendsZeroTemperature(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	spec := DefaultPromptSpec()
	spec.Style.Temperature = 0
	c := NewCompleter("k", srv.URL, "m", spec)

	_, err := c.Complete(context.Background(), "hi")
	require.NoError(t, err)
	require.Contains(t, got, "temperature")
	assert.InDelta(t, 0, got["temperature"], 1e-6)
}

func TestLoadPromptSpecMissingFile(t *testing.T) {
	spec, err := LoadPromptSpec(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPromptSpec(), spec)
}

func TestLoadPromptSpecInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: [unterminated"), 0o600))
	_, err := LoadPromptSpec(path)
	assert.Error(t, err)
}

func TestCompleteSendsSingleTurn(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Roti Bank serves meals daily.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	spec := DefaultPromptSpec()
	spec.System = "Be brief."
	c := NewCompleter("test-key", srv.URL+"/", "gemini-flash-latest", spec)

	out, err := c.Complete(context.Background(), "what is roti bank?")
	require.NoError(t, err)
	assert.Equal(t, "Roti Bank serves meals daily.", out)

	assert.Equal(t, "gemini-flash-latest", got["model"])
	assert.EqualValues(t, 200, got["max_tokens"])
	msgs := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "what is roti bank?", msgs[1].(map[string]any)["content"])
}

func TestCompleteEmptyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":""}}]}`))
	}))
	defer srv.Close()

	c := NewCompleter("k", srv.URL, "m", DefaultPromptSpec())
	_, err := c.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	c := NewCompleter("k", srv.URL, "m", DefaultPromptSpec())
	_, err := c.Complete(context.Background(), "hi")
	assert.Error(t, err)
}
