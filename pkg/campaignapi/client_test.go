package campaignapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kkapil94/outflo-assignment/api/routes"
	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/handlers"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/internal/repositories/memory"
	"github.com/kkapil94/outflo-assignment/internal/services"
	"github.com/kkapil94/outflo-assignment/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Server: config.ServerConfig{Mode: config.ModeTest}}
	gen, err := llm.NewClient(context.Background(), llm.Config{Mock: true})
	require.NoError(t, err)

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		CampaignHandler: handlers.NewCampaignHandler(services.NewCampaignService(memory.NewCampaignRepository(), nil), cfg.Server.Mode, nil),
		MessageHandler:  handlers.NewMessageHandler(services.NewMessageService(gen, nil), cfg.Server.Mode, nil),
	}, nil)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", WithHTTPClient(srv.Client()))
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	list, err := c.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	created, err := c.CreateCampaign(ctx, models.CreateCampaignInput{
		Name:        "Q1 Outreach",
		Description: "Target SaaS founders",
		Leads:       []string{"https://linkedin.com/in/alice"},
		AccountIDs:  []string{"101"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, created.Status)

	got, err := c.GetCampaign(ctx, created.ID.Hex())
	require.NoError(t, err)
	if diff := cmp.Diff(created, got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("GetCampaign mismatch (-created +got):\n%s", diff)
	}

	desc := "Target CTOs"
	updated, err := c.UpdateCampaign(ctx, created.ID.Hex(), models.CampaignPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Target CTOs", updated.Description)
	assert.Equal(t, created.Name, updated.Name)

	toggled, err := c.ToggleCampaignStatus(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusInactive, toggled.Status)

	deleted, err := c.DeleteCampaign(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusDeleted, deleted.Status)

	_, err = c.GetCampaign(ctx, created.ID.Hex())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Campaign not found", apiErr.Message)
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	_, err := c.CreateCampaign(ctx, models.CreateCampaignInput{Name: "x", Description: "y", Leads: []string{"nope"}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Leads must be valid LinkedIn profile URLs", apiErr.Message)

	_, err = c.GetCampaign(ctx, "123")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid campaign ID", apiErr.Message)
}

func TestGeneratePersonalizedMessage(t *testing.T) {
	c := newServer(t)
	msg, err := c.GeneratePersonalizedMessage(context.Background(), models.LinkedInProfile{
		Name: "John Doe", JobTitle: "Software Engineer", Company: "TechCorp", Location: "SF", Summary: "AI",
	})
	require.NoError(t, err)
	assert.Contains(t, msg.Message, "John Doe")
}

func TestNonEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL).ListCampaigns(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
