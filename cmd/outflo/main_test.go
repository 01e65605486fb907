package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kkapil94/outflo-assignment/api/routes"
	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/handlers"
	"github.com/kkapil94/outflo-assignment/internal/repositories/memory"
	"github.com/kkapil94/outflo-assignment/internal/services"
	"github.com/kkapil94/outflo-assignment/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) string {
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
	return srv.URL + "/api"
}

func run(t *testing.T, url string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--api-url", url}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCLICampaignFlow(t *testing.T) {
	url := startServer(t)

	out, _, err := run(t, url, "campaigns", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No campaigns yet")

	out, toasts, err := run(t, url, "campaigns", "create",
		"--name", "Q1 Outreach",
		"--description", "Target SaaS founders",
		"--lead", "https://linkedin.com/in/alice",
		"--account", "101")
	require.NoError(t, err)
	assert.Contains(t, out, "Q1 Outreach")
	assert.Contains(t, toasts, "Campaign created successfully")

	out, _, err = run(t, url, "campaigns", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "https://linkedin.com/in/alice")
}

func TestCLICreateValidation(t *testing.T) {
	url := startServer(t)

	_, _, err := run(t, url, "campaigns", "create", "--description", "no name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Campaign name is required")

	_, toasts, err := run(t, url, "campaigns", "create", "--name", "x", "--description", "y", "--lead", "https://example.com/bob")
	require.Error(t, err)
	assert.Contains(t, toasts, "Leads must be valid LinkedIn profile URLs")
}

func TestCLIGetMissing(t *testing.T) {
	url := startServer(t)
	_, _, err := run(t, url, "campaigns", "get", "123", "0123456789abcdef01234567")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "123")
}

func TestCLIMessage(t *testing.T) {
	url := startServer(t)

	out, _, err := run(t, url, "message",
		"--name", "John Doe", "--job-title", "Engineer", "--company", "TechCorp",
		"--location", "SF", "--summary", "AI")
	require.NoError(t, err)
	assert.Contains(t, out, "John Doe")

	_, _, err = run(t, url, "message", "--name", "John Doe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required fields")
}
