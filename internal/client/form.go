package client

import (
	"context"
	"sort"
	"strings"

	"github.com/kkapil94/outflo-assignment/internal/models"
)

// FieldErrors maps form fields to the message shown next to them
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = f[k]
	}
	return strings.Join(msgs, "; ")
}

// CampaignForm collects campaign input. Leads and account ids are typed one per line.
type CampaignForm struct {
	Name          string
	Description   string
	Status        models.CampaignStatus
	LeadsInput    string
	AccountsInput string
}

// NewCampaignForm returns an empty form for creating a campaign
func NewCampaignForm() CampaignForm {
	return CampaignForm{Status: models.CampaignStatusActive}
}

// FormFromCampaign pre-fills the form for editing
func FormFromCampaign(c *models.Campaign) CampaignForm {
	return CampaignForm{
		Name:          c.Name,
		Description:   c.Description,
		Status:        c.Status,
		LeadsInput:    strings.Join(c.Leads, "\n"),
		AccountsInput: strings.Join(c.AccountIDs, "\n"),
	}
}

// ParseLines splits on newlines, trims each entry and drops blank ones
func ParseLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Validate returns nil when the form may be submitted
func (f CampaignForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Campaign name is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Campaign description is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Leads parses the leads textarea
func (f CampaignForm) Leads() []string {
	return ParseLines(f.LeadsInput)
}

// AccountIDs parses the accounts textarea
func (f CampaignForm) AccountIDs() []string {
	return ParseLines(f.AccountsInput)
}

// CreateInput builds the create payload
func (f CampaignForm) CreateInput() models.CreateCampaignInput {
	return models.CreateCampaignInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Status:      f.Status,
		Leads:       f.Leads(),
		AccountIDs:  f.AccountIDs(),
	}
}

// Patch builds an update carrying every form field
func (f CampaignForm) Patch() models.CampaignPatch {
	name := strings.TrimSpace(f.Name)
	description := strings.TrimSpace(f.Description)
	leads := f.Leads()
	accounts := f.AccountIDs()

	patch := models.CampaignPatch{
		Name:        &name,
		Description: &description,
		Leads:       &leads,
		AccountIDs:  &accounts,
	}
	if f.Status != "" {
		status := f.Status
		patch.Status = &status
	}
	return patch
}

// Submit validates and then calls fn. Invalid forms return FieldErrors and fn is never called.
func (f CampaignForm) Submit(ctx context.Context, fn func(context.Context, CampaignForm) error) error {
	if errs := f.Validate(); errs != nil {
		return errs
	}
	return fn(ctx, f)
}
