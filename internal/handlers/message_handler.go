package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkapil94/outflo-assignment/internal/apperrors"
	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/kkapil94/outflo-assignment/internal/services"
	"github.com/kkapil94/outflo-assignment/internal/validation"
	"go.uber.org/zap"
)

const msgGenerationFailed = "Failed to generate personalized message"

// MessageHandler handles personalized message generation
type MessageHandler struct {
	messageService services.MessageGenerator
	responder
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService services.MessageGenerator, mode config.Mode, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		responder:      newResponder(mode, logger),
	}
}

// GeneratePersonalizedMessage handles POST /campaigns/gen-msg
func (h *MessageHandler) GeneratePersonalizedMessage(c *gin.Context) {
	var profile models.LinkedInProfile
	if err := bindJSON(c, &profile); err != nil {
		h.fail(c, msgGenerationFailed, bindingError(err, missingProfileFields))
		return
	}

	msg, err := h.messageService.GeneratePersonalizedMessage(c.Request.Context(), profile)
	if err != nil {
		h.fail(c, msgGenerationFailed, err)
		return
	}
	h.success(c, http.StatusOK, "Personalized message generated successfully", msg)
}

func missingProfileFields(err error) error {
	if missing := validation.MissingFields(err); len(missing) > 0 {
		return apperrors.NewMissingFieldsError(missing)
	}
	return apperrors.NewValidationError(err.Error())
}
