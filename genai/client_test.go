package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeforge/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Create a todo app", req.Prompt)
		assert.Equal(t, "grok-4-1-fast-reasoning", req.Model)
		assert.Equal(t, "code_generation", req.TaskType)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"response":     "export default function App() {}",
			"model_used":   "grok-4-1-fast-reasoning",
			"credits_used": 2,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	result, err := client.Generate(context.Background(), Request{
		ProjectID: "p-1",
		Prompt:    "Create a todo app",
		Model:     "grok-4-1-fast-reasoning",
		TaskType:  "code_generation",
	})

	require.NoError(t, err)
	assert.Equal(t, "export default function App() {}", result.Content)
	assert.Equal(t, "grok-4-1-fast-reasoning", result.ModelUsed)
	assert.Equal(t, 2, result.CreditsUsed)
}

func TestGenerate_ServiceErrorWithDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"detail": "model is overloaded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Generate(context.Background(), Request{Prompt: "hi", Model: "m"})

	var svcErr *domain.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "model is overloaded", svcErr.Error())
}

func TestGenerate_ServiceErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Generate(context.Background(), Request{Prompt: "hi", Model: "m"})

	var svcErr *domain.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "generation service returned status 503", svcErr.Error())
}

func TestGenerate_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "")
	_, err := client.Generate(context.Background(), Request{Prompt: "hi", Model: "m"})

	var svcErr *domain.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "generation service unreachable", svcErr.Error())
}
