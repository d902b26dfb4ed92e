package middleware

import (
	"errors"
	"net/http"

	"lingo-days/internal/domain"
	"lingo-days/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool                     `json:"success"`
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Details map[string]interface{}   `json:"details,omitempty"`
	Errors  []domain.ValidationError `json:"errors,omitempty"`
}

// ErrorHandler is a centralized error handling middleware. Messages of 500 responses are
// only exposed when exposeInternal is set (development).
func ErrorHandler(exposeInternal bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Debug("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := mapDomainErrorToHTTPStatus(domainErr)
			message := domainErr.Message
			if status >= http.StatusInternalServerError {
				log.Error("Domain error occurred",
					zap.String("code", string(domainErr.Code)),
					zap.String("path", c.Path()),
					zap.Error(domainErr.Cause),
				)
				if !exposeInternal && status == http.StatusInternalServerError {
					message = internalErrorMessage
				}
			} else {
				log.Info("Request rejected",
					zap.String("code", string(domainErr.Code)),
					zap.String("path", c.Path()),
					zap.Int("status", status),
				)
			}

			response := ErrorResponse{
				Code:    string(domainErr.Code),
				Message: message,
				Status:  status,
			}
			if len(domainErr.Context) > 0 && status < http.StatusInternalServerError {
				response.Details = domainErr.Context
			}
			return c.Status(status).JSON(response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		message := internalErrorMessage
		if exposeInternal {
			message = err.Error()
		}
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: message,
			Status:  http.StatusInternalServerError,
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeLessonNotFound, domain.CodeUserNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingField,
		domain.CodeInvalidFormat, domain.CodeOutOfRange, domain.CodeInvalidContent:
		return http.StatusBadRequest
	case domain.CodeUnauthorized, domain.CodeInvalidCredentials, domain.CodeInvalidSignature:
		return http.StatusUnauthorized
	case domain.CodeConflict, domain.CodeEmailTaken:
		return http.StatusConflict
	case domain.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
