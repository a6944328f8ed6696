package deployer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"codeforge/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Client publishes a project through the external deployment service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type deployRequest struct {
	ProjectID string `json:"project_id"`
}

type deployResponse struct {
	DeployedURL string `json:"deployed_url"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Deploy requests a deployment and returns the public URL. Failures are
// surfaced to the caller as domain.ServiceError and never retried here.
func (c *Client) Deploy(ctx context.Context, projectID uuid.UUID) (string, error) {
	body, err := json.Marshal(deployRequest{ProjectID: projectID.String()})
	if err != nil {
		return "", fmt.Errorf("failed to encode deploy request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/deployments", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build deploy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.ServiceError{Message: "deployment service unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.ServiceError{
			Message: fmt.Sprintf("deployment service returned status %d", resp.StatusCode),
		}
	}

	var dr deployResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return "", &domain.ServiceError{Message: "invalid deployment service response", Err: err}
	}
	if dr.DeployedURL == "" {
		return "", &domain.ServiceError{Message: "deployment service returned no URL"}
	}

	logrus.WithFields(logrus.Fields{
		"project_id":   projectID,
		"deployed_url": dr.DeployedURL,
	}).Info("Deployment completed")
	return dr.DeployedURL, nil
}
