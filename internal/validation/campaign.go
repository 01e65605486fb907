package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kkapil94/outflo-assignment/internal/apperrors"
	"github.com/kkapil94/outflo-assignment/internal/models"
)

const (
	msgNameRequired        = "Campaign name is required"
	msgDescriptionRequired = "Campaign description is required"
	msgInvalidLeads        = "Leads must be valid LinkedIn profile URLs"
	msgCreateStatus        = "Campaign status must be ACTIVE or INACTIVE"
	msgDeletedViaUpdate    = "Cannot set status to DELETED through update. Use delete endpoint instead."
)

// CreateInput checks a create payload. Failures are returned as *apperrors.ValidationError.
func CreateInput(in models.CreateCampaignInput) error {
	if err := Struct(in); err != nil {
		return Translate(err)
	}
	return nil
}

// Patch checks only the fields present in a partial update
func Patch(p models.CampaignPatch) error {
	if p.Status != nil && *p.Status == models.CampaignStatusDeleted {
		return apperrors.NewValidationError(msgDeletedViaUpdate, "status")
	}

	var errs fieldErrors
	if p.Name != nil && Var(*p.Name, "notblank") != nil {
		errs.add("name", msgNameRequired)
	}
	if p.Description != nil && Var(*p.Description, "notblank") != nil {
		errs.add("description", msgDescriptionRequired)
	}
	if p.Status != nil {
		if _, err := models.ParseCampaignStatus(string(*p.Status)); err != nil {
			errs.add("status", err.Error())
		}
	}
	if p.Leads != nil && Var(*p.Leads, "dive,linkedin_profile") != nil {
		errs.add("leads", msgInvalidLeads)
	}
	return errs.err()
}

type fieldErrors struct {
	fields   []string
	messages []string
}

func (f *fieldErrors) add(field, message string) {
	for _, existing := range f.fields {
		if existing == field {
			return
		}
	}
	f.fields = append(f.fields, field)
	f.messages = append(f.messages, message)
}

func (f *fieldErrors) err() error {
	if len(f.fields) == 0 {
		return nil
	}
	return &apperrors.ValidationError{
		Message: strings.Join(f.messages, "; "),
		Fields:  f.fields,
	}
}

// Translate turns validator failures on campaign payloads into a *apperrors.ValidationError
func Translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error())
	}
	var errs fieldErrors
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		errs.add(field, fieldMessage(field, fe.Tag()))
	}
	return errs.err()
}

func fieldMessage(field, tag string) string {
	switch {
	case field == "name":
		return msgNameRequired
	case field == "description":
		return msgDescriptionRequired
	case tag == "linkedin_profile":
		return msgInvalidLeads
	case field == "status":
		return msgCreateStatus
	default:
		return field + " is invalid"
	}
}
