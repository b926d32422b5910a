package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envAPIURL     = "LEXSEARCH_API_URL"
	envAdminToken = "LEXSEARCH_ADMIN_TOKEN"

	defaultAPIURL = "http://localhost:8080"
)

type APIClient struct {
	baseURL    string
	adminToken string
	httpClient *http.Client
}

// NewAPIClientWithCmd resolves settings with the cascade flag → env → default.
// If cmd is nil, flags are skipped.
func NewAPIClientWithCmd(cmd *cobra.Command) *APIClient {
	_ = godotenv.Load()

	var baseURL, token string
	if cmd != nil {
		if v, err := cmd.Flags().GetString("api-url"); err == nil {
			baseURL = v
		}
		if v, err := cmd.Flags().GetString("admin-token"); err == nil {
			token = v
		}
	}

	if baseURL == "" {
		baseURL = os.Getenv(envAPIURL)
	}
	if token == "" {
		token = os.Getenv(envAdminToken)
	}
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	return NewAPIClientWithConfig(baseURL, token)
}

// NewAPIClientWithConfig creates an APIClient with explicit settings.
func NewAPIClientWithConfig(baseURL, adminToken string) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
		httpClient: &http.Client{
			// Search can wait on summary generation for every result.
			Timeout: 2 * time.Minute,
		},
	}
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (%d %s): %s", e.StatusCode, e.Code, e.Message)
}

// Get performs a GET request and decodes the JSON body into out.
func (c *APIClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body and decodes the reply into out.
func (c *APIClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Message == "" {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		}
		return &APIError{StatusCode: resp.StatusCode, Code: errResp.Error, Message: errResp.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
