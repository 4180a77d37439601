// Package inference talks to the local vLLM chat-completions endpoint that
// hosts the vision model. The wire format is the OpenAI chat shape with a
// single user message carrying prompt text plus one base64 image part.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	DefaultEndpointURL = "http://localhost:8001/v1/chat/completions"
	DefaultModel       = "/data/models/gemma-3-12b-it"
	DefaultTemperature = 0.2
	DefaultTopP        = 0.5
	DefaultTimeout     = 300 * time.Second
)

// ErrEmptyResponse is returned when the endpoint answers 200 but the
// response carries no choices.
var ErrEmptyResponse = errors.New("no response content found")

// Config holds the fixed decoding and transport parameters for the client.
type Config struct {
	EndpointURL string
	Model       string
	Temperature float64
	TopP        float64
	Timeout     time.Duration
}

// Client posts chat-completion requests to a single endpoint. One request
// is in flight at a time per caller; the client itself keeps no state
// beyond the HTTP client and is safe for concurrent lanes.
type Client struct {
	endpointURL string
	model       string
	temperature float64
	topP        float64
	client      *http.Client
}

// NewClient creates a client, filling zero fields from defaults.
func NewClient(cfg Config) *Client {
	if cfg.EndpointURL == "" {
		cfg.EndpointURL = DefaultEndpointURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.TopP == 0 {
		cfg.TopP = DefaultTopP
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		endpointURL: cfg.EndpointURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete sends one prompt plus one image and returns the raw text content
// of the first choice. There are no retries here: a transport or server
// failure surfaces immediately so the batch can record it and move on.
func (c *Client) Complete(ctx context.Context, prompt, imageDataURI string) (string, error) {
	req := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		TopP:        c.topP,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []chatContent{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &chatImageURL{URL: imageDataURI}},
				},
			},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return chatResp.Choices[0].Message.Content, nil
}

// WaitReady polls the endpoint's models listing until the server answers,
// so a batch does not burn its first files against a model that is still
// loading.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	httpClient := &http.Client{Timeout: 2 * time.Second}
	url := modelsURL(c.endpointURL)

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
			if err != nil {
				return err
			}
			resp, err := httpClient.Do(req)
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(timeout.Seconds())),
		retry.Delay(1*time.Second),
	)
}

// modelsURL derives the sibling /models URL from the chat-completions URL.
func modelsURL(endpointURL string) string {
	if i := strings.LastIndex(endpointURL, "/chat/completions"); i >= 0 {
		return endpointURL[:i] + "/models"
	}
	return strings.TrimRight(endpointURL, "/") + "/models"
}

// Wire types for the chat-completions endpoint.

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
