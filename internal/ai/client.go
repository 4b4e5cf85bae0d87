package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultTemperature = 0.7
	defaultTimeout     = 90 * time.Second
)

// Config describes how the OpenAI client should be initialised.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client offers a thin wrapper around the OpenAI Chat Completions API. It
// performs a single request per call with no retries; failures are returned
// to the caller untouched.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

// NewClient builds a Client that can request recipe suggestions and
// nutritional lookups.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("ai: api key must not be empty")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	temp := cfg.Temperature
	if temp <= 0 {
		temp = defaultTemperature
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &Client{
		apiKey:      apiKey,
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temp,
		httpClient:  httpClient,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) performChatCompletion(ctx context.Context, temperature float64, messages []chatMessage) (string, error) {
	payload := map[string]any{
		"model":       c.model,
		"temperature": temperature,
		"messages":    messages,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: call openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("ai: openai returned status %s", resp.Status)
	}

	var responseData struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&responseData); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}

	if len(responseData.Choices) == 0 {
		return "", errors.New("ai: openai returned no choices")
	}

	return responseData.Choices[0].Message.Content, nil
}
