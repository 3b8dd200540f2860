package openai

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
	var captured chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Created: 1700000000,
			Choices: []choice{{Message: message{Role: "assistant", Content: "  needs a nil check  "}}},
			Usage:   usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	}))
	defer srv.Close()

	cli, err := cliex.New()
	require.NoError(t, err)

	agent, err := New(context.Background(), cli, model.ModelConfig{APIKey: "test-key", URL: srv.URL})
	require.NoError(t, err)

	resp, err := agent.CallAPI(context.Background(), model.APIRequest{
		Prompt:       "user prompt",
		SystemPrompt: "system prompt",
		MaxTokens:    100,
		Temperature:  0.1,
		TopP:         1.0,
	})
	require.NoError(t, err)

	assert.Equal(t, "needs a nil check", resp.Content)
	assert.Equal(t, 15, resp.TotalTokens)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system prompt", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, float32(0.1), captured.Temperature)
	assert.Equal(t, float32(1.0), captured.TopP)
	assert.Equal(t, 100, captured.MaxTokens)
	assert.False(t, captured.Stream)
}

func TestCallAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Error: &apiError{Message: "model overloaded", Type: "server_error"},
		})
	}))
	defer srv.Close()

	cli, err := cliex.New()
	require.NoError(t, err)

	agent, err := New(context.Background(), cli, model.ModelConfig{APIKey: "test-key", URL: srv.URL})
	require.NoError(t, err)

	_, err = agent.CallAPI(context.Background(), model.APIRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestCallAPIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionResponse{})
	}))
	defer srv.Close()

	cli, err := cliex.New()
	require.NoError(t, err)

	agent, err := New(context.Background(), cli, model.ModelConfig{APIKey: "test-key", URL: srv.URL})
	require.NoError(t, err)

	resp, err := agent.CallAPI(context.Background(), model.APIRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
}
