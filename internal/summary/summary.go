package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var errNoEndpoint = errors.New("no summary endpoint configured")

// Client asks a remote endpoint for a prose summary of the board's text
// content. The endpoint receives {"model","texts"} and answers with
// {"summary"} or {"error"}.
type Client struct {
	Endpoint string
	Model    string
	HTTP     *http.Client
}

// New builds a Client for the configured endpoint.
func New(endpoint, model string) *Client {
	return &Client{
		Endpoint: endpoint,
		Model:    model,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

type request struct {
	Model string   `json:"model,omitempty"`
	Texts []string `json:"texts"`
}

type response struct {
	Summary string `json:"summary"`
	Error   string `json:"error,omitempty"`
}

// Summarize posts the texts and returns the endpoint's summary. The
// bearer token, when present, comes from SCRAWL_SUMMARY_TOKEN so it
// never lands in a config file.
func (c *Client) Summarize(ctx context.Context, texts []string) (string, error) {
	if c == nil || c.Endpoint == "" {
		return "", errNoEndpoint
	}
	body, err := json.Marshal(request{Model: c.Model, Texts: texts})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := os.Getenv("SCRAWL_SUMMARY_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("summary endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}
	if parsed.Error != "" {
		return "", errors.New(parsed.Error)
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return "", errors.New("summary endpoint returned no text")
	}
	return parsed.Summary, nil
}
