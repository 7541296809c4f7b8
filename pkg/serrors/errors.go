package serrors

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// BaseError is the wire shape of every API-facing failure.
type BaseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *BaseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, details string) *BaseError {
	return &BaseError{Code: code, Message: message, Details: details}
}

// FieldError describes a single invalid field of an inbound DTO.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

func NewFieldRequiredError(field string) FieldError {
	return FieldError{
		Field:   field,
		Code:    "FIELD_REQUIRED",
		Message: fmt.Sprintf("%s is required", field),
	}
}

// ProcessValidatorErrors converts go-playground validator output into
// our ValidationErrors shape.
func ProcessValidatorErrors(err error) *ValidationErrors {
	out := &ValidationErrors{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out.Fields = append(out.Fields, FieldError{
			Field:   "",
			Code:    "INVALID_PAYLOAD",
			Message: err.Error(),
		})
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out.Fields = append(out.Fields, NewFieldRequiredError(fe.Field()))
		default:
			out.Fields = append(out.Fields, FieldError{
				Field:   fe.Field(),
				Code:    "FIELD_INVALID",
				Message: fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()),
			})
		}
	}
	return out
}

// HTTPStatus maps well-known error codes to status codes. Unknown codes
// are treated as internal failures.
func HTTPStatus(err error) int {
	base, ok := err.(*BaseError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch base.Code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "FORBIDDEN":
		return http.StatusForbidden
	case "INVALID_PAYLOAD", "VALIDATION_FAILED":
		return http.StatusBadRequest
	case "CONFLICT":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
