package repositories

import (
	"context"
	"errors"

	"github.com/kkapil94/outflo-assignment/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no campaign matches the id and filter
var ErrNotFound = errors.New("campaign not found")

// CampaignFilter restricts which campaigns a query or write may touch.
// Callers pass it explicitly; implementations never hide records on their own.
type CampaignFilter struct {
	ExcludeStatuses []models.CampaignStatus
}

// Matches applies the filter to a single campaign
func (f CampaignFilter) Matches(c *models.Campaign) bool {
	for _, s := range f.ExcludeStatuses {
		if c.Status == s {
			return false
		}
	}
	return true
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	Find(ctx context.Context, filter CampaignFilter) ([]*models.Campaign, error)
	FindByID(ctx context.Context, id primitive.ObjectID, filter CampaignFilter) (*models.Campaign, error)
	// Update applies the patch atomically and returns the updated document
	Update(ctx context.Context, id primitive.ObjectID, patch models.CampaignPatch, filter CampaignFilter) (*models.Campaign, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus, filter CampaignFilter) (*models.Campaign, error)
	Count(ctx context.Context, filter CampaignFilter) (int64, error)
}
