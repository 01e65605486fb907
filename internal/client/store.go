// Package client holds the state a campaign UI keeps between calls to the API.
package client

import (
	"context"
	"errors"
	"sync"

	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/pkg/campaignapi"
)

// CampaignAPI is the subset of the REST client the store drives
type CampaignAPI interface {
	ListCampaigns(ctx context.Context) ([]*models.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)
	CreateCampaign(ctx context.Context, in models.CreateCampaignInput) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, patch models.CampaignPatch) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) (*models.Campaign, error)
}

// CampaignStore caches the active campaign list. Operations are independent and may run
// concurrently; the mutex only guards the fields, it does not order requests.
type CampaignStore struct {
	api      CampaignAPI
	notifier Notifier

	mu        sync.Mutex
	campaigns []*models.Campaign
	inflight  int
	err       string
}

// NewCampaignStore creates an empty store
func NewCampaignStore(api CampaignAPI, notifier Notifier) *CampaignStore {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &CampaignStore{
		api:       api,
		notifier:  notifier,
		campaigns: []*models.Campaign{},
	}
}

// Campaigns returns a copy of the cached list
func (s *CampaignStore) Campaigns() []*models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Campaign, len(s.campaigns))
	for i, c := range s.campaigns {
		cp := *c
		out[i] = &cp
	}
	return out
}

// Loading reports whether any operation is in flight
func (s *CampaignStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Err returns the message of the most recent failure, or "" once a later operation starts
func (s *CampaignStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// FetchAll replaces the cache with the server's list. On failure the cache is kept.
func (s *CampaignStore) FetchAll(ctx context.Context) {
	s.begin()
	defer s.end()
	s.fetchAll(ctx)
}

func (s *CampaignStore) fetchAll(ctx context.Context) {
	campaigns, err := s.api.ListCampaigns(ctx)
	if err != nil {
		s.fail(err, "Failed to fetch campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	s.mu.Lock()
	s.campaigns = campaigns
	s.mu.Unlock()
}

// GetOne fetches a campaign without touching the cache. Any failure yields nil.
func (s *CampaignStore) GetOne(ctx context.Context, id string) *models.Campaign {
	s.begin()
	defer s.end()

	campaign, err := s.api.GetCampaign(ctx, id)
	if err != nil {
		s.fail(err, "Failed to fetch campaign "+id)
		return nil
	}
	return campaign
}

// Create stores a campaign and appends it to the cache
func (s *CampaignStore) Create(ctx context.Context, in models.CreateCampaignInput) *models.Campaign {
	s.begin()
	defer s.end()

	campaign, err := s.api.CreateCampaign(ctx, in)
	if err != nil {
		s.fail(err, "Failed to create campaign")
		return nil
	}

	s.mu.Lock()
	s.campaigns = append(s.campaigns, campaign)
	s.mu.Unlock()

	s.notifier.Notify(LevelSuccess, "Campaign created successfully")
	return campaign
}

// Update applies a patch and replaces the matching cache entry
func (s *CampaignStore) Update(ctx context.Context, id string, patch models.CampaignPatch) *models.Campaign {
	s.begin()
	defer s.end()

	campaign, err := s.api.UpdateCampaign(ctx, id, patch)
	if err != nil {
		s.fail(err, "Failed to update campaign "+id)
		return nil
	}

	s.mu.Lock()
	for i, c := range s.campaigns {
		if c.ID.Hex() == id {
			s.campaigns[i] = campaign
		}
	}
	s.mu.Unlock()

	s.notifier.Notify(LevelSuccess, "Campaign updated successfully")
	return campaign
}

// ToggleStatus sends the opposite of current as an update
func (s *CampaignStore) ToggleStatus(ctx context.Context, id string, current models.CampaignStatus) *models.Campaign {
	next := current.Toggled()
	return s.Update(ctx, id, models.CampaignPatch{Status: &next})
}

// Delete soft-deletes a campaign and then reloads the list from the server
func (s *CampaignStore) Delete(ctx context.Context, id string) bool {
	s.begin()
	defer s.end()

	if _, err := s.api.DeleteCampaign(ctx, id); err != nil {
		s.fail(err, "Failed to delete campaign "+id)
		return false
	}

	s.fetchAll(ctx)
	s.notifier.Notify(LevelSuccess, "Campaign deleted successfully")
	return true
}

func (s *CampaignStore) begin() {
	s.mu.Lock()
	s.inflight++
	s.err = ""
	s.mu.Unlock()
}

func (s *CampaignStore) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *CampaignStore) fail(err error, fallback string) {
	msg := errorMessage(err, fallback)
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
	s.notifier.Notify(LevelError, msg)
}

// errorMessage prefers the server's message over transport detail
func errorMessage(err error, fallback string) string {
	var apiErr *campaignapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
