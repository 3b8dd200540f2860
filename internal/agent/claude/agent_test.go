package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maxbolgarin/cliex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbolgarin/critic/internal/model"
)

func TestNewRequiresAPIKey(t *testing.T) {
	cli, err := cliex.New()
	require.NoError(t, err)

	_, err = New(context.Background(), cli, model.ModelConfig{})
	require.Error(t, err)
}

func TestCallAPI(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messagesResponse{
			Content: []content{
				{Type: "text", Text: "The returned error "},
				{Type: "tool_use", Text: "ignored"},
				{Type: "text", Text: "is swallowed."},
			},
			Usage: usage{InputTokens: 7, OutputTokens: 3},
		})
	}))
	defer srv.Close()

	cli, err := cliex.New()
	require.NoError(t, err)

	agent, err := New(context.Background(), cli, model.ModelConfig{APIKey: "secret", URL: srv.URL})
	require.NoError(t, err)

	resp, err := agent.CallAPI(context.Background(), model.APIRequest{
		Prompt:       "review this",
		SystemPrompt: "you are a reviewer",
		MaxTokens:    200,
		Temperature:  0.1,
		TopP:         1.0,
	})
	require.NoError(t, err)

	assert.Equal(t, "The returned error is swallowed.", resp.Content)
	assert.Equal(t, 10, resp.TotalTokens)

	assert.Equal(t, "claude-3-5-haiku-20241022", captured.Model)
	assert.Equal(t, "you are a reviewer", captured.System)
	assert.Equal(t, 200, captured.MaxTokens)
	assert.Equal(t, float32(1.0), captured.TopP)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
}

func TestCallAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messagesResponse{
			Error: &apiError{Type: "overloaded_error", Message: "try again later"},
		})
	}))
	defer srv.Close()

	cli, err := cliex.New()
	require.NoError(t, err)

	agent, err := New(context.Background(), cli, model.ModelConfig{APIKey: "secret", URL: srv.URL})
	require.NoError(t, err)

	_, err = agent.CallAPI(context.Background(), model.APIRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "try again later")
}

func TestCallAPIEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messagesResponse{})
	}))
	defer srv.Close()

	cli, err := cliex.New()
	require.NoError(t, err)

	agent, err := New(context.Background(), cli, model.ModelConfig{APIKey: "secret", URL: srv.URL})
	require.NoError(t, err)

	resp, err := agent.CallAPI(context.Background(), model.APIRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
}
