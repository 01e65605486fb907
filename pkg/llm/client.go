package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// Config configures a Client
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
	// BaseURL overrides the Gemini endpoint. Empty uses the public API.
	BaseURL string
	// Mock answers locally without calling the provider.
	Mock bool
}

// Client turns prompts into text using Gemini, or a local stand-in in mock mode
type Client struct {
	genai     *genai.Client
	model     string
	maxTokens int
	mock      bool
}

// NewClient creates a new LLM client
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		mock:      cfg.Mock,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.mock {
		return c, nil
	}
	if cfg.APIKey == "" {
		return nil, errors.New("LLM API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	gc, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	c.genai = gc
	return c, nil
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

// IsMock reports whether the client answers locally
func (c *Client) IsMock() bool {
	return c.mock
}

// GenerateText sends a single-turn prompt and returns the model's text
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.mock {
		return mockReply(prompt), nil
	}

	var cfg *genai.GenerateContentConfig
	if c.maxTokens > 0 {
		cfg = &genai.GenerateContentConfig{MaxOutputTokens: int32(c.maxTokens)}
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("no text returned")
	}
	return text, nil
}

// mockReply builds a short message from the "Key: value" lines of the prompt.
func mockReply(prompt string) string {
	fields := map[string]string{}
	for _, line := range strings.Split(prompt, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, seen := fields[key]; !seen {
			fields[key] = strings.TrimSpace(value)
		}
	}

	name := fields["Name"]
	if name == "" {
		name = "there"
	}
	msg := fmt.Sprintf("Hi %s", name)
	if title, company := fields["Job Title"], fields["Company"]; title != "" && company != "" {
		msg += fmt.Sprintf(", your work as %s at %s caught my eye", title, company)
	}
	return msg + ". OutFlo helps sales teams automate outreach. Would love to connect!"
}
