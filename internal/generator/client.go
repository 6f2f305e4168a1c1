package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUpstreamUnavailable indicates the completion endpoint was unreachable
// or answered with a server error. Calls are not retried.
var ErrUpstreamUnavailable = errors.New("generation service unavailable")

// ErrInvalidResponse indicates the endpoint answered but the response could
// not be parsed into text.
var ErrInvalidResponse = errors.New("invalid generation response")

// Client is a chat-completion API client for an Azure-OpenAI-style
// deployment endpoint.
type Client struct {
	endpoint       string
	apiKey         string
	deploymentName string
	apiVersion     string
	httpClient     *http.Client
}

// NewClient creates a new completion API client
func NewClient(endpoint, apiKey, deploymentName, apiVersion string) *Client {
	return &Client{
		endpoint:       endpoint,
		apiKey:         apiKey,
		deploymentName: deploymentName,
		apiVersion:     apiVersion,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one chat-completion request and returns the generated
// text. Every call re-invokes the external service.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	reqBody := completionRequest{
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deploymentName, c.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("%w: HTTP %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode >= 400 {
		if result.Error != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidResponse, result.Error.Message)
		}
		return "", fmt.Errorf("%w: HTTP %d", ErrInvalidResponse, resp.StatusCode)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no choices returned", ErrInvalidResponse)
	}

	return result.Choices[0].Message.Content, nil
}
