package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kkapil94/outflo-assignment/internal/apperrors"
	"github.com/kkapil94/outflo-assignment/internal/config"
	"github.com/kkapil94/outflo-assignment/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const msgInvalidID = "Invalid campaign ID"

// Response is the envelope every API endpoint answers with
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// responder writes envelopes. Internal error detail is only exposed outside production.
type responder struct {
	mode   config.Mode
	logger *zap.Logger
}

func newResponder(mode config.Mode, logger *zap.Logger) responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return responder{mode: mode, logger: logger}
}

func (r responder) success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func (r responder) reply(c *gin.Context, status int, message string, err error) {
	resp := Response{Success: false, Message: message}
	if err != nil && !r.mode.IsProduction() {
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}

// fail maps a service error onto a status code. fallback is the message for server-side failures.
func (r responder) fail(c *gin.Context, fallback string, err error) {
	var (
		iderr *apperrors.InvalidIdentifierError
		verr  *apperrors.ValidationError
		nf    *apperrors.NotFoundError
	)
	switch {
	case errors.As(err, &iderr):
		r.reply(c, http.StatusBadRequest, msgInvalidID, nil)
	case errors.As(err, &verr):
		r.reply(c, http.StatusBadRequest, verr.Message, nil)
	case errors.As(err, &nf):
		r.reply(c, http.StatusNotFound, capitalize(nf.Resource)+" not found", nil)
	default:
		r.logger.Error(fallback,
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("RequestID")),
			zap.Error(err))
		r.reply(c, http.StatusInternalServerError, fallback, err)
	}
}

// campaignID validates the :id path parameter before anything reaches the service
func (r responder) campaignID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		r.reply(c, http.StatusBadRequest, msgInvalidID, nil)
		return "", false
	}
	return id, true
}

// bindJSON decodes the body into obj. An empty body is treated as an empty object.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) && binding.Validator != nil {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// bindingError converts a decode or tag failure into a *apperrors.ValidationError
func bindingError(err error, translate func(error) error) error {
	var (
		statusErr *models.InvalidStatusError
		verrs     validator.ValidationErrors
	)
	switch {
	case errors.As(err, &statusErr):
		return apperrors.NewValidationError(statusErr.Error(), "status")
	case errors.As(err, &verrs):
		return translate(err)
	default:
		return apperrors.NewValidationError("Invalid request body")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
