package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/api/middleware"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

const (
	CodeUnauthorized      = "unauthorized"
	CodeValidation        = "validation_failed"
	CodeUpstream          = "upstream_unavailable"
	CodeRateLimited       = "upstream_rate_limited"
	CodeMalformedUpstream = "malformed_upstream_response"
	CodeInternal          = "internal_error"
)

// errorStatus maps an error to its HTTP status and error code
func errorStatus(err error) (int, string) {
	var unauthorized *errors.ErrUnauthorized
	var validation *errors.ErrValidation
	var upstream *errors.ErrUpstream
	var malformed *errors.ErrMalformedResponse

	switch {
	case stderrors.As(err, &unauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case stderrors.As(err, &validation):
		return http.StatusUnprocessableEntity, CodeValidation
	case stderrors.As(err, &malformed):
		return http.StatusBadGateway, CodeMalformedUpstream
	case stderrors.As(err, &upstream):
		if upstream.Throttled {
			return http.StatusTooManyRequests, CodeRateLimited
		}
		return http.StatusBadGateway, CodeUpstream
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError writes {"error": code, "message": text}. Validation errors
// also carry their field messages.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := errorStatus(err)

	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Warn("Request failed", fields...)
	}

	body := gin.H{"error": code, "message": err.Error()}
	if status == http.StatusInternalServerError {
		body["message"] = "internal server error"
	}
	var validation *errors.ErrValidation
	if stderrors.As(err, &validation) && len(validation.Fields) > 0 {
		body["fields"] = validation.Fields
	}
	c.JSON(status, body)
}
