// Package campaignapi is a typed client for the campaign REST API.
package campaignapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kkapil94/outflo-assignment/internal/models"
)

// DefaultBaseURL is where a locally started server listens
const DefaultBaseURL = "http://localhost:5000/api"

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client talks to the campaign API
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a new campaign API client. baseURL includes the /api prefix.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListCampaigns fetches every campaign that is not deleted
func (c *Client) ListCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	var out []*models.Campaign
	if err := c.do(ctx, http.MethodGet, "/campaigns", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.Campaign{}
	}
	return out, nil
}

// GetCampaign fetches one campaign
func (c *Client) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	var out models.Campaign
	if err := c.do(ctx, http.MethodGet, campaignPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCampaign creates a campaign
func (c *Client) CreateCampaign(ctx context.Context, in models.CreateCampaignInput) (*models.Campaign, error) {
	var out models.Campaign
	if err := c.do(ctx, http.MethodPost, "/campaigns", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCampaign sends a partial update
func (c *Client) UpdateCampaign(ctx context.Context, id string, patch models.CampaignPatch) (*models.Campaign, error) {
	var out models.Campaign
	if err := c.do(ctx, http.MethodPut, campaignPath(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCampaign soft-deletes a campaign and returns it as stored
func (c *Client) DeleteCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	var out models.Campaign
	if err := c.do(ctx, http.MethodDelete, campaignPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleCampaignStatus flips ACTIVE and INACTIVE on the server
func (c *Client) ToggleCampaignStatus(ctx context.Context, id string) (*models.Campaign, error) {
	var out models.Campaign
	if err := c.do(ctx, http.MethodPost, campaignPath(id)+"/toggle-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePersonalizedMessage asks the server to draft an outreach message
func (c *Client) GeneratePersonalizedMessage(ctx context.Context, profile models.LinkedInProfile) (*models.PersonalizedMessage, error) {
	var out models.PersonalizedMessage
	if err := c.do(ctx, http.MethodPost, "/campaigns/gen-msg", profile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func campaignPath(id string) string {
	return "/campaigns/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message, Detail: env.Error}
		if decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
