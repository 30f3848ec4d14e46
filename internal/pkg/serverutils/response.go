package serverutils

import (
	"errors"
	"log"

	"ai-shopassist-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Reference string `json:"reference,omitempty"`
}

func SuccessResponse(message string, data interface{}) *Response {
	return &Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ValidateRequest runs struct-tag validation and wraps the first failure in a
// fiber 400 so the error handler renders it directly.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "validation failed on field '"+verrs[0].Field()+"' ("+verrs[0].Tag()+")")
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorHandlerMiddleware converts errors escaping a handler into a JSON body.
// Unexpected errors get a reference id so the log line can be found later
// without leaking internals to the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(&ErrorBody{
				Message: fiberErr.Message,
			})
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			// The wrapped detail is for the log only, never the client
			if detail := appErr.Detail(); detail != "" {
				log.Printf("[WARN] %s %s %s: %s", ctx.Method(), ctx.Path(), appErr.Code, detail)
			}
			return ctx.Status(statusForCode(appErr.Code)).JSON(&ErrorBody{
				Message: appErr.Message,
				Code:    string(appErr.Code),
			})
		}

		ref := uuid.NewString()
		log.Printf("[ERROR] ref=%s %s %s: %v", ref, ctx.Method(), ctx.Path(), err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(&ErrorBody{
			Message:   "internal server error",
			Code:      string(apperror.CodeSystemError),
			Reference: ref,
		})
	}
}

func statusForCode(code apperror.Code) int {
	switch code {
	case apperror.CodeInvalidInput, apperror.CodeValidationFailure:
		return fiber.StatusBadRequest
	case apperror.CodeNoProductsFound:
		return fiber.StatusNotFound
	case apperror.CodeSearchFailed, apperror.CodeCapabilityFailure,
		apperror.CodeIntentDetectionFailed, apperror.CodeQueryExtractionFailed,
		apperror.CodeGeneralShoppingFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
