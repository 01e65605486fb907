package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/kkapil94/outflo-assignment/internal/apperrors"
	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	binding.Validator = validation.GinValidator()
	os.Exit(m.Run())
}

// spyCampaigns records calls and answers with canned values
type spyCampaigns struct {
	calls    []string
	campaign *models.Campaign
	err      error
	created  models.CreateCampaignInput
	patch    models.CampaignPatch
}

func (s *spyCampaigns) ListCampaigns(context.Context) ([]*models.Campaign, error) {
	s.calls = append(s.calls, "list")
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Campaign{}, nil
}

func (s *spyCampaigns) GetCampaign(_ context.Context, id string) (*models.Campaign, error) {
	s.calls = append(s.calls, "get:"+id)
	return s.campaign, s.err
}

func (s *spyCampaigns) CreateCampaign(_ context.Context, in models.CreateCampaignInput) (*models.Campaign, error) {
	s.calls = append(s.calls, "create")
	s.created = in
	return s.campaign, s.err
}

func (s *spyCampaigns) UpdateCampaign(_ context.Context, id string, patch models.CampaignPatch) (*models.Campaign, error) {
	s.calls = append(s.calls, "update:"+id)
	s.patch = patch
	return s.campaign, s.err
}

func (s *spyCampaigns) DeleteCampaign(_ context.Context, id string) (*models.Campaign, error) {
	s.calls = append(s.calls, "delete:"+id)
	return s.campaign, s.err
}

func (s *spyCampaigns) ToggleCampaignStatus(_ context.Context, id string) (*models.Campaign, error) {
	s.calls = append(s.calls, "toggle:"+id)
	return s.campaign, s.err
}

type spyMessages struct {
	called bool
	msg    *models.PersonalizedMessage
	err    error
}

func (s *spyMessages) GeneratePersonalizedMessage(context.Context, models.LinkedInProfile) (*models.PersonalizedMessage, error) {
	s.called = true
	return s.msg, s.err
}

func newRouter(campaigns *spyCampaigns, messages *spyMessages, mode config.Mode) *gin.Engine {
	ch := NewCampaignHandler(campaigns, mode, nil)
	mh := NewMessageHandler(messages, mode, nil)

	r := gin.New()
	g := r.Group("/api/campaigns")
	g.GET("", ch.GetCampaigns)
	g.GET("/:id", ch.GetCampaignByID)
	g.POST("", ch.CreateCampaign)
	g.PUT("/:id", ch.UpdateCampaign)
	g.DELETE("/:id", ch.DeleteCampaign)
	g.POST("/:id/toggle-status", ch.ToggleCampaignStatus)
	g.POST("/gen-msg", mh.GeneratePersonalizedMessage)
	return r
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, Response) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestMalformedIDNeverReachesService(t *testing.T) {
	spy := &spyCampaigns{}
	r := newRouter(spy, &spyMessages{}, config.ModeDevelopment)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/campaigns/123", ""},
		{http.MethodPut, "/api/campaigns/not-an-id", `{"name":"x"}`},
		{http.MethodDelete, "/api/campaigns/zzz", ""},
		{http.MethodPost, "/api/campaigns/xyz/toggle-status", ""},
	} {
		w, resp := do(r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid campaign ID", resp.Message)
	}
	assert.Empty(t, spy.calls)
}

func TestErrorMapping(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	cases := map[string]struct {
		err     error
		status  int
		message string
	}{
		"not found":  {apperrors.NewCampaignNotFound(id), http.StatusNotFound, "Campaign not found"},
		"validation": {apperrors.NewValidationError("Campaign name is required", "name"), http.StatusBadRequest, "Campaign name is required"},
		"store":      {errors.New("socket closed"), http.StatusInternalServerError, "Failed to fetch campaign"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newRouter(&spyCampaigns{err: tc.err}, &spyMessages{}, config.ModeDevelopment)
			w, resp := do(r, http.MethodGet, "/api/campaigns/"+id, "")
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, resp.Message)
			assert.False(t, resp.Success)
		})
	}
}

func TestServerErrorDetailHiddenInProduction(t *testing.T) {
	boom := errors.New("socket closed")

	r := newRouter(&spyCampaigns{err: boom}, &spyMessages{}, config.ModeDevelopment)
	_, resp := do(r, http.MethodGet, "/api/campaigns", "")
	assert.Equal(t, "Failed to fetch campaigns", resp.Message)
	assert.Equal(t, "socket closed", resp.Error)

	r = newRouter(&spyCampaigns{err: boom}, &spyMessages{}, config.ModeProduction)
	w, resp := do(r, http.MethodGet, "/api/campaigns", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, resp.Error)
	assert.NotContains(t, w.Body.String(), "socket closed")
}

func TestListReturnsEmptyArray(t *testing.T) {
	r := newRouter(&spyCampaigns{}, &spyMessages{}, config.ModeDevelopment)
	w, resp := do(r, http.MethodGet, "/api/campaigns", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestCreateCampaign(t *testing.T) {
	spy := &spyCampaigns{campaign: &models.Campaign{ID: primitive.NewObjectID(), Name: "Q1", Status: models.CampaignStatusActive}}
	r := newRouter(spy, &spyMessages{}, config.ModeDevelopment)

	w, resp := do(r, http.MethodPost, "/api/campaigns",
		`{"name":"Q1","description":"d","leads":["https://linkedin.com/in/a"],"accountIDs":["1"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Campaign created successfully", resp.Message)
	assert.Equal(t, []string{"https://linkedin.com/in/a"}, spy.created.Leads)
}

func TestCreateCampaign_RejectedBeforeService(t *testing.T) {
	cases := map[string]struct {
		body    string
		message string
	}{
		"unknown status":  {`{"name":"Q1","description":"d","status":"PAUSED"}`, "Invalid status. Must be one of: ACTIVE, INACTIVE, DELETED"},
		"missing name":    {`{"description":"d"}`, "Campaign name is required"},
		"bad lead":        {`{"name":"Q1","description":"d","leads":["https://example.com/x"]}`, "Leads must be valid LinkedIn profile URLs"},
		"malformed json":  {`{"name":`, "Invalid request body"},
		"deleted on make": {`{"name":"Q1","description":"d","status":"DELETED"}`, "Campaign status must be ACTIVE or INACTIVE"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			spy := &spyCampaigns{}
			r := newRouter(spy, &spyMessages{}, config.ModeDevelopment)
			w, resp := do(r, http.MethodPost, "/api/campaigns", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, resp.Message)
			assert.Empty(t, spy.calls)
		})
	}
}

func TestUpdateCampaign_PassesPresentFieldsOnly(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	spy := &spyCampaigns{campaign: &models.Campaign{Name: "Renamed"}}
	r := newRouter(spy, &spyMessages{}, config.ModeDevelopment)

	w, resp := do(r, http.MethodPut, "/api/campaigns/"+id, `{"name":"Renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Campaign updated successfully", resp.Message)
	require.NotNil(t, spy.patch.Name)
	assert.Equal(t, "Renamed", *spy.patch.Name)
	assert.Nil(t, spy.patch.Status)
	assert.Nil(t, spy.patch.Leads)
	assert.Equal(t, []string{"update:" + id}, spy.calls)
}

func TestGeneratePersonalizedMessage(t *testing.T) {
	body := `{"name":"John Doe","job_title":"Software Engineer","company":"TechCorp","location":"San Francisco, CA","summary":"Experienced in AI & ML"}`

	t.Run("success", func(t *testing.T) {
		msgs := &spyMessages{msg: &models.PersonalizedMessage{Message: "Hi John"}}
		r := newRouter(&spyCampaigns{}, msgs, config.ModeDevelopment)
		w, resp := do(r, http.MethodPost, "/api/campaigns/gen-msg", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"message": "Hi John"}, resp.Data)
	})

	t.Run("missing company", func(t *testing.T) {
		msgs := &spyMessages{}
		r := newRouter(&spyCampaigns{}, msgs, config.ModeDevelopment)
		w, resp := do(r, http.MethodPost, "/api/campaigns/gen-msg",
			`{"name":"John Doe","job_title":"Software Engineer","location":"SF","summary":"AI"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields: company", resp.Message)
		assert.False(t, msgs.called)
	})

	t.Run("empty body names every field", func(t *testing.T) {
		r := newRouter(&spyCampaigns{}, &spyMessages{}, config.ModeDevelopment)
		w, resp := do(r, http.MethodPost, "/api/campaigns/gen-msg", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields: name, job_title, company, location, summary", resp.Message)
	})

	t.Run("upstream failure", func(t *testing.T) {
		msgs := &spyMessages{err: &apperrors.GenerationError{Err: errors.New("quota")}}
		r := newRouter(&spyCampaigns{}, msgs, config.ModeDevelopment)
		w, resp := do(r, http.MethodPost, "/api/campaigns/gen-msg", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to generate personalized message", resp.Message)
		assert.Contains(t, resp.Error, "quota")
	})
}
