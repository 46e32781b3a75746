package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"scamradar/pkg/logger"
)

const (
	defaultEndpoint    = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel       = "llama-3.3-70b-versatile"
	defaultTemperature = 0.1
	defaultMaxTokens   = 300
	defaultTimeout     = 15 * time.Second
)

// ClientConfig holds inference endpoint configuration. The endpoint must
// speak the OpenAI chat-completions wire format.
type ClientConfig struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpClient *http.Client
	config     ClientConfig
	logger     *logger.Logger
}

// NewClient creates a new inference client
func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
		logger:     log.WithComponent("inference-client"),
	}
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an embeddable image reference.
type ImageURL struct {
	URL string `json:"url"`
}

// NewTextMessage creates a plain text message
func NewTextMessage(role, text string) Message {
	return Message{Role: role, Content: text}
}

// NewImageMessage creates a message carrying a prompt plus an inline image.
func NewImageMessage(role, text, imageURL string) Message {
	return Message{
		Role: role,
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
		},
	}
}

// Chat sends the messages and returns the first choice's content.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody := map[string]any{
		"model":       c.config.Model,
		"max_tokens":  c.config.MaxTokens,
		"temperature": c.config.Temperature,
		"messages":    messages,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in inference response")
	}

	return chatResp.Choices[0].Message.Content, nil
}
