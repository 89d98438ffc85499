package utils

import (
	"errors"

	"corpus-backend/internal/corpus"

	"github.com/gofiber/fiber/v2"
)

// StandardResponse represents the standard API response format
type StandardResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Reason  string      `json:"reason,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, code int, reason, message string) error {
	status := "error"
	if code >= 500 {
		status = "fail"
	}
	return c.Status(code).JSON(StandardResponse{
		Status:  status,
		Code:    code,
		Message: message,
		Reason:  reason,
	})
}

// StatusFor maps a corpus error kind to an HTTP status code.
func StatusFor(kind corpus.Kind) int {
	switch kind {
	case corpus.KindNotFound:
		return fiber.StatusNotFound
	case corpus.KindInvalidArgument:
		return fiber.StatusBadRequest
	case corpus.KindConflict:
		return fiber.StatusConflict
	case corpus.KindBackendUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// CorpusErrorResponse sends err with the status and reason of its kind.
// Messages of internal errors are not exposed.
func CorpusErrorResponse(c *fiber.Ctx, err error) error {
	kind := corpus.KindOf(err)
	message := err.Error()

	var ce *corpus.Error
	if errors.As(err, &ce) {
		message = ce.Message
	}
	if kind == corpus.KindInternal {
		message = "internal error"
	}
	return ErrorResponse(c, StatusFor(kind), string(kind), message)
}
