package apperror

import "fmt"

// Code identifies the failure category carried by an AppError.
type Code string

const (
	CodeInvalidInput          Code = "INVALID_INPUT"
	CodeIntentDetectionFailed Code = "INTENT_DETECTION_FAILED"
	CodeQueryExtractionFailed Code = "QUERY_EXTRACTION_FAILED"
	CodeSearchFailed          Code = "SEARCH_FAILED"
	CodeNoProductsFound       Code = "NO_PRODUCTS_FOUND"
	CodeGeneralShoppingFailed Code = "GENERAL_SHOPPING_FAILED"
	CodeCapabilityFailure     Code = "CAPABILITY_FAILURE"
	CodeValidationFailure     Code = "VALIDATION_FAILURE"
	CodeSystemError           Code = "SYSTEM_ERROR"
)

// AppError is a typed application error with a user-safe message.
// The wrapped error carries the technical detail for diagnostics.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Detail returns the technical detail string, or empty when there is none.
func (e *AppError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
