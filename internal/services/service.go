package services

import (
	"context"

	"github.com/kkapil94/outflo-assignment/internal/models"
)

// Compile-time checks that the concrete services satisfy the handler-facing interfaces
var (
	_ CampaignManager  = (*CampaignService)(nil)
	_ MessageGenerator = (*MessageService)(nil)
)

// CampaignManager defines the campaign operations exposed over HTTP
type CampaignManager interface {
	// ListCampaigns returns all campaigns that are not soft-deleted
	ListCampaigns(ctx context.Context) ([]*models.Campaign, error)

	// GetCampaign returns a single visible campaign
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)

	// CreateCampaign validates and stores a new campaign
	CreateCampaign(ctx context.Context, in models.CreateCampaignInput) (*models.Campaign, error)

	// UpdateCampaign applies a partial update
	UpdateCampaign(ctx context.Context, id string, patch models.CampaignPatch) (*models.Campaign, error)

	// DeleteCampaign soft-deletes a campaign
	DeleteCampaign(ctx context.Context, id string) (*models.Campaign, error)

	// ToggleCampaignStatus flips ACTIVE and INACTIVE
	ToggleCampaignStatus(ctx context.Context, id string) (*models.Campaign, error)
}

// MessageGenerator defines the personalized message operation
type MessageGenerator interface {
	GeneratePersonalizedMessage(ctx context.Context, profile models.LinkedInProfile) (*models.PersonalizedMessage, error)
}
