package middleware

import (
	"errors"
	"net/http"

	"coursecraft/internal/domain"
	"coursecraft/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorEnvelope is the uniform error response body.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorHandler translates domain errors into HTTP responses. Handlers
// return errors; this is the single place status codes are decided.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if de, ok := domain.AsDomainError(err); ok {
			status := mapDomainErrorToHTTPStatus(de)

			logger.Get().Error("Domain error occurred",
				zap.String("code", string(de.Code)),
				zap.String("message", de.Message),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(de.Err),
			)

			return c.Status(status).JSON(ErrorEnvelope{
				Status:  "error",
				Message: de.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorEnvelope{
				Status:  "error",
				Message: fiberErr.Message,
			})
		}

		logger.Get().Error("Unhandled error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorEnvelope{
			Status:  "error",
			Message: "Internal server error",
		})
	}
}

func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeInvalidInput, domain.CodeSessionExpired:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeDuplicateUser:
		return http.StatusConflict
	case domain.CodeGenerationFailed, domain.CodeMalformedResponse, domain.CodeEmptyQuiz:
		// Presented identically to the client; the codes differ only for
		// diagnostic logging.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
