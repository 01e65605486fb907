// Package memory provides an in-process campaign store with the same
// semantics as the MongoDB repository. Records are copied on the way in and
// out so callers never share state with the store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.CampaignRepository = (*CampaignRepository)(nil)

// CampaignRepository is a mutex-guarded map keyed by campaign id
type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[primitive.ObjectID]*models.Campaign
	order     []primitive.ObjectID // insertion order stands in for natural order
	now       func() time.Time
}

// NewCampaignRepository creates an empty store
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		campaigns: make(map[primitive.ObjectID]*models.Campaign),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	now := r.now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	campaign.Leads = nonNil(campaign.Leads)
	campaign.AccountIDs = nonNil(campaign.AccountIDs)

	r.campaigns[campaign.ID] = clone(campaign)
	r.order = append(r.order, campaign.ID)
	return nil
}

func (r *CampaignRepository) Find(ctx context.Context, filter repositories.CampaignFilter) ([]*models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	campaigns := []*models.Campaign{}
	for _, id := range r.order {
		c := r.campaigns[id]
		if filter.Matches(c) {
			campaigns = append(campaigns, clone(c))
		}
	}
	return campaigns, nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id primitive.ObjectID, filter repositories.CampaignFilter) (*models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.campaigns[id]
	if !ok || !filter.Matches(c) {
		return nil, repositories.ErrNotFound
	}
	return clone(c), nil
}

func (r *CampaignRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.CampaignPatch, filter repositories.CampaignFilter) (*models.Campaign, error) {
	return r.mutate(ctx, id, filter, func(c *models.Campaign) {
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.Status != nil {
			c.Status = *patch.Status
		}
		if patch.Leads != nil {
			c.Leads = nonNil(append([]string(nil), *patch.Leads...))
		}
		if patch.AccountIDs != nil {
			c.AccountIDs = nonNil(append([]string(nil), *patch.AccountIDs...))
		}
	})
}

func (r *CampaignRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus, filter repositories.CampaignFilter) (*models.Campaign, error) {
	return r.mutate(ctx, id, filter, func(c *models.Campaign) {
		c.Status = status
	})
}

func (r *CampaignRepository) Count(ctx context.Context, filter repositories.CampaignFilter) (int64, error) {
	campaigns, err := r.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(campaigns)), nil
}

func (r *CampaignRepository) mutate(ctx context.Context, id primitive.ObjectID, filter repositories.CampaignFilter, apply func(*models.Campaign)) (*models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.campaigns[id]
	if !ok || !filter.Matches(c) {
		return nil, repositories.ErrNotFound
	}
	apply(c)
	c.UpdatedAt = r.now()
	return clone(c), nil
}

func clone(c *models.Campaign) *models.Campaign {
	out := *c
	out.Leads = append([]string{}, c.Leads...)
	out.AccountIDs = append([]string{}, c.AccountIDs...)
	return &out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
