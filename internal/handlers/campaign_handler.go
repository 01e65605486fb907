package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/internal/services"
	"github.com/kkapil94/outflo-assignment/internal/validation"
	"go.uber.org/zap"
)

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	campaignService services.CampaignManager
	responder
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService services.CampaignManager, mode config.Mode, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		responder:       newResponder(mode, logger),
	}
}

// GetCampaigns handles GET /campaigns
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.ListCampaigns(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to fetch campaigns", err)
		return
	}
	h.success(c, http.StatusOK, "Campaigns fetched successfully", campaigns)
}

// GetCampaignByID handles GET /campaigns/:id
func (h *CampaignHandler) GetCampaignByID(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to fetch campaign", err)
		return
	}
	h.success(c, http.StatusOK, "Campaign fetched successfully", campaign)
}

// CreateCampaign handles POST /campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var in models.CreateCampaignInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, "Failed to create campaign", bindingError(err, validation.Translate))
		return
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "Failed to create campaign", err)
		return
	}
	h.success(c, http.StatusCreated, "Campaign created successfully", campaign)
}

// UpdateCampaign handles PUT /campaigns/:id
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}

	var patch models.CampaignPatch
	if err := bindJSON(c, &patch); err != nil {
		h.fail(c, "Failed to update campaign", bindingError(err, validation.Translate))
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, "Failed to update campaign", err)
		return
	}
	h.success(c, http.StatusOK, "Campaign updated successfully", campaign)
}

// DeleteCampaign handles DELETE /campaigns/:id. The campaign is kept with status DELETED.
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.DeleteCampaign(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to delete campaign", err)
		return
	}
	h.success(c, http.StatusOK, "Campaign deleted successfully", campaign)
}

// ToggleCampaignStatus handles POST /campaigns/:id/toggle-status
func (h *CampaignHandler) ToggleCampaignStatus(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.ToggleCampaignStatus(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to update campaign", err)
		return
	}
	h.success(c, http.StatusOK, "Campaign status updated successfully", campaign)
}
