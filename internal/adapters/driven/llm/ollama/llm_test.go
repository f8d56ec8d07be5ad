package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askitty/askitty/internal/core/ports/driven"
)

func TestNewLLMService_Defaults(t *testing.T) {
	svc := NewLLMService(Config{})
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestGenerate_Success(t *testing.T) {
	var gotReq generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(generateResponse{Response: "The answer is 42. [1]", Done: true})
	}))
	defer server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL, Model: "test-model"})

	out, err := svc.Generate(context.Background(), "What is the answer?", driven.GenerateOptions{
		MaxTokens:   300,
		Temperature: 0.2,
		TopP:        0.9,
	})
	require.NoError(t, err)

	assert.Equal(t, "The answer is 42. [1]", out)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, "What is the answer?", gotReq.Prompt)
	assert.False(t, gotReq.Stream)
	require.NotNil(t, gotReq.Options)
	assert.Equal(t, 300, gotReq.Options.NumPredict)
	assert.InDelta(t, 0.2, gotReq.Options.Temperature, 1e-9)
	assert.InDelta(t, 0.9, gotReq.Options.TopP, 1e-9)
}

func TestGenerate_ZeroOptionsOmitted(t *testing.T) {
	var gotReq generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	}))
	defer server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL})

	_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Nil(t, gotReq.Options)
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewLLMService(Config{BaseURL: server.URL})

	_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
