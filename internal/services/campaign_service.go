package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kkapil94/outflo-assignment/internal/apperrors"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/internal/repositories"
	"github.com/kkapil94/outflo-assignment/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// visible is the soft-delete predicate. Every read and write path passes it to the repository.
var visible = repositories.CampaignFilter{
	ExcludeStatuses: []models.CampaignStatus{models.CampaignStatusDeleted},
}

// CampaignService owns the campaign lifecycle rules
type CampaignService struct {
	repo   repositories.CampaignRepository
	logger *zap.Logger
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(repo repositories.CampaignRepository, logger *zap.Logger) *CampaignService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignService{
		repo:   repo,
		logger: logger.Named("campaigns"),
	}
}

// ListCampaigns returns every campaign that has not been soft-deleted
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	campaigns, err := s.repo.Find(ctx, visible)
	if err != nil {
		s.logger.Error("Failed to list campaigns", zap.Error(err))
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaign fetches a single visible campaign
func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	campaign, err := s.repo.FindByID(ctx, oid, visible)
	if err != nil {
		return nil, s.storeErr("fetch", id, err)
	}
	return campaign, nil
}

// CreateCampaign validates and persists a new campaign. Status defaults to ACTIVE.
func (s *CampaignService) CreateCampaign(ctx context.Context, in models.CreateCampaignInput) (*models.Campaign, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.CreateInput(in); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Leads:       in.Leads,
		AccountIDs:  in.AccountIDs,
	}
	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusActive
	}
	if campaign.Leads == nil {
		campaign.Leads = []string{}
	}
	if campaign.AccountIDs == nil {
		campaign.AccountIDs = []string{}
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		s.logger.Error("Failed to create campaign", zap.String("name", campaign.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.logger.Info("Campaign created", zap.String("id", campaign.ID.Hex()), zap.String("status", string(campaign.Status)))
	return campaign, nil
}

// UpdateCampaign applies the fields present in the patch. DELETED is rejected; use DeleteCampaign.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id string, patch models.CampaignPatch) (*models.Campaign, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		patch.Description = &trimmed
	}
	if err := validation.Patch(patch); err != nil {
		return nil, err
	}

	campaign, err := s.repo.Update(ctx, oid, patch, visible)
	if err != nil {
		return nil, s.storeErr("update", id, err)
	}
	return campaign, nil
}

// DeleteCampaign soft-deletes a campaign. The record is kept with status DELETED.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	campaign, err := s.repo.SetStatus(ctx, oid, models.CampaignStatusDeleted, visible)
	if err != nil {
		return nil, s.storeErr("delete", id, err)
	}

	s.logger.Info("Campaign soft-deleted", zap.String("id", id))
	return campaign, nil
}

// ToggleCampaignStatus flips ACTIVE and INACTIVE. Deleted campaigns are not visible and
// therefore come back as not found rather than being revived.
func (s *CampaignService) ToggleCampaignStatus(ctx context.Context, id string) (*models.Campaign, error) {
	current, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	next := current.Status.Toggled()
	return s.UpdateCampaign(ctx, id, models.CampaignPatch{Status: &next})
}

// CountCampaigns counts visible campaigns
func (s *CampaignService) CountCampaigns(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, visible)
}

func (s *CampaignService) storeErr(op, id string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NewCampaignNotFound(id)
	}
	s.logger.Error("Campaign store failure", zap.String("op", op), zap.String("id", id), zap.Error(err))
	return fmt.Errorf("failed to %s campaign %s: %w", op, id, err)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := models.ParseCampaignID(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewInvalidIdentifier(id)
	}
	return oid, nil
}
