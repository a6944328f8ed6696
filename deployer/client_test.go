package deployer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeforge/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploy_Success(t *testing.T) {
	projectID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/deployments", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, projectID.String(), req["project_id"])

		json.NewEncoder(w).Encode(map[string]string{
			"deployed_url": "https://todo-app.example.app",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	url, err := client.Deploy(context.Background(), projectID)

	require.NoError(t, err)
	assert.Equal(t, "https://todo-app.example.app", url)
}

func TestDeploy_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Deploy(context.Background(), uuid.New())

	var svcErr *domain.ServiceError
	require.ErrorAs(t, err, &svcErr)
}

func TestDeploy_MissingURLRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Deploy(context.Background(), uuid.New())

	var svcErr *domain.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "deployment service returned no URL", svcErr.Error())
}
