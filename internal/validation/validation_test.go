package validation

import (
	"testing"

	"github.com/kkapil94/outflo-assignment/internal/apperrors"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestIsLinkedInProfileURL(t *testing.T) {
	assert.True(t, IsLinkedInProfileURL("https://linkedin.com/in/alice"))
	assert.True(t, IsLinkedInProfileURL("https://www.linkedin.com/in/bob-smith/"))
	assert.False(t, IsLinkedInProfileURL("https://linkedin.com/company/acme"))
	assert.False(t, IsLinkedInProfileURL(""))
}

func TestCreateInput(t *testing.T) {
	valid := models.CreateCampaignInput{
		Name:        "Q1 Outreach",
		Description: "Target SaaS founders",
		Leads:       []string{"https://linkedin.com/in/alice"},
		AccountIDs:  []string{"101"},
	}
	require.NoError(t, CreateInput(valid))

	t.Run("blank name and description", func(t *testing.T) {
		in := valid
		in.Name = "   "
		in.Description = ""
		err := CreateInput(in)
		require.Error(t, err)

		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"name", "description"}, verr.Fields)
		assert.Contains(t, verr.Message, "Campaign name is required")
		assert.Contains(t, verr.Message, "Campaign description is required")
	})

	t.Run("one bad lead", func(t *testing.T) {
		in := valid
		in.Leads = []string{"https://linkedin.com/in/alice", "https://example.com/bob", "nope"}
		err := CreateInput(in)

		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"leads"}, verr.Fields)
		assert.Equal(t, "Leads must be valid LinkedIn profile URLs", verr.Message)
	})

	t.Run("deleted status on create", func(t *testing.T) {
		in := valid
		in.Status = models.CampaignStatusDeleted
		err := CreateInput(in)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("explicit inactive", func(t *testing.T) {
		in := valid
		in.Status = models.CampaignStatusInactive
		assert.NoError(t, CreateInput(in))
	})
}

func TestPatch(t *testing.T) {
	assert.NoError(t, Patch(models.CampaignPatch{}))
	assert.NoError(t, Patch(models.CampaignPatch{Name: strPtr("Renamed")}))

	deleted := models.CampaignStatusDeleted
	err := Patch(models.CampaignPatch{Status: &deleted})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"status"}, verr.Fields)

	err = Patch(models.CampaignPatch{Description: strPtr(" ")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"description"}, verr.Fields)

	leads := []string{"https://twitter.com/alice"}
	err = Patch(models.CampaignPatch{Leads: &leads})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"leads"}, verr.Fields)

	empty := []string{}
	assert.NoError(t, Patch(models.CampaignPatch{Leads: &empty}))
}

func TestMissingFields(t *testing.T) {
	err := Struct(models.LinkedInProfile{
		Name:     "Alice",
		JobTitle: "CTO",
		Location: "Berlin",
		Summary:  " ",
	})
	assert.Equal(t, []string{"company", "summary"}, MissingFields(err))
	assert.Nil(t, MissingFields(nil))
}

func TestGinValidatorIgnoresNonStructs(t *testing.T) {
	v := GinValidator()
	assert.NoError(t, v.ValidateStruct(nil))
	assert.NoError(t, v.ValidateStruct([]string{"x"}))
	assert.Error(t, v.ValidateStruct(&models.LinkedInProfile{}))
	assert.Same(t, Validator(), v.Engine())
}
