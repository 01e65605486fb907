package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"text/template"

	"github.com/kkapil94/outflo-assignment/internal/apperrors"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/internal/validation"
	"go.uber.org/zap"
)

// TextGenerator is the external language model
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var outreachPrompt = template.Must(template.New("outreach").Parse(`Generate a personalized, friendly outreach message for a LinkedIn connection request to:

Name: {{.Name}}
Job Title: {{.JobTitle}}
Company: {{.Company}}
Location: {{.Location}}
Profile Summary: {{.Summary}}

The message should:
1. Be concise (max 200 characters)
2. Mention their role and company
3. Highlight how OutFlo (an AI outreach tool for sales teams) could help them
4. End with a call to action to connect
5. Sound natural and conversational, not like a generic template
`))

// MessageService drafts outreach messages from a profile
type MessageService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(generator TextGenerator, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		generator: generator,
		logger:    logger.Named("messages"),
	}
}

// ValidateProfile checks that all five profile fields are present
func ValidateProfile(profile models.LinkedInProfile) error {
	err := validation.Struct(profile)
	if err == nil {
		return nil
	}
	if missing := validation.MissingFields(err); len(missing) > 0 {
		return apperrors.NewMissingFieldsError(missing)
	}
	return apperrors.NewValidationError(err.Error())
}

// RenderPrompt fills the outreach prompt template
func RenderPrompt(profile models.LinkedInProfile) (string, error) {
	var buf bytes.Buffer
	if err := outreachPrompt.Execute(&buf, profile); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GeneratePersonalizedMessage asks the model for a message. Upstream failures and
// empty output are reported as *apperrors.GenerationError.
func (s *MessageService) GeneratePersonalizedMessage(ctx context.Context, profile models.LinkedInProfile) (*models.PersonalizedMessage, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	prompt, err := RenderPrompt(profile)
	if err != nil {
		return nil, &apperrors.GenerationError{Err: err}
	}

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("Error generating personalized message", zap.String("company", profile.Company), zap.Error(err))
		return nil, &apperrors.GenerationError{Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Warn("Model returned no usable text", zap.String("company", profile.Company))
		return nil, &apperrors.GenerationError{Err: errors.New("empty response from model")}
	}

	return &models.PersonalizedMessage{Message: text}, nil
}
