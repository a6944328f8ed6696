package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codeforge/domain"

	"github.com/sirupsen/logrus"
)

// Client calls the external code-generation service. This is the sole
// network round trip of a generation session; it may take a long time
// but always terminates, so the HTTP client carries a generous timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Request is the generation service's wire format.
type Request struct {
	ProjectID string `json:"project_id"`
	Prompt    string `json:"prompt"`
	Model     string `json:"model"`
	TaskType  string `json:"task_type"`
}

// Result is the generation service's reply: the generated file content,
// the model that actually served the request, and the credits it
// charged for.
type Result struct {
	Content     string `json:"response"`
	ModelUsed   string `json:"model_used"`
	CreditsUsed int    `json:"credits_used"`
}

type serviceError struct {
	Detail string `json:"detail"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Generate dispatches one prompt and blocks until the service responds.
// Any transport or non-2xx failure is surfaced as a domain.ServiceError;
// the caller decides how to resolve the conversation.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.ServiceError{Message: "generation service unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ServiceError{
			Message: serviceFailureMessage(resp),
		}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &domain.ServiceError{Message: "invalid generation service response", Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"project_id": req.ProjectID,
		"model":      result.ModelUsed,
		"credits":    result.CreditsUsed,
		"duration":   time.Since(start),
	}).Info("Generation completed")
	return &result, nil
}

func serviceFailureMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var se serviceError
	if err := json.Unmarshal(body, &se); err == nil && se.Detail != "" {
		return se.Detail
	}
	return fmt.Sprintf("generation service returned status %d", resp.StatusCode)
}
