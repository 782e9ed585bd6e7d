package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mediahub/mediahub-api/internal/domain"
)

// MaxJSONBodyBytes bounds JSON request bodies.
const MaxJSONBodyBytes = 1 << 20

// ErrInvalidRequestBody is returned when a JSON body cannot be decoded.
var ErrInvalidRequestBody = errors.New("invalid request body")

// Global validator instance for reuse. Field names in failures are taken
// from the json tag so they match what clients send.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Normalizer is implemented by request DTOs that clean their input
// (trimming whitespace) before validation.
type Normalizer interface {
	Normalize()
}

// FieldChecker is implemented by request DTOs with rules that span
// several fields, such as "at least one field present".
type FieldChecker interface {
	CheckFields() []FieldError
}

// FieldError describes one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every rule failure of a request.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError builds a ValidationError with a single failure.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Rule)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap makes errors.Is(err, domain.ErrValidation) true.
func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// DecodeJSON decodes a single JSON object from the request body into v.
// An empty body decodes as an empty object so that missing fields surface as
// validation failures. Unknown fields and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("body must contain a single JSON object")
		}
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequestBody, err)
}

// ValidateRequest normalizes v and evaluates all of its rules.
// It returns a *ValidationError listing every failure, or nil.
func ValidateRequest(v interface{}) error {
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}

	var failures []FieldError

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validator misuse: %w", err)
		}
		for _, fe := range verrs {
			failures = append(failures, FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: fieldMessage(fe),
			})
		}
	}

	if c, ok := v.(FieldChecker); ok {
		failures = append(failures, c.CheckFields()...)
	}

	if len(failures) > 0 {
		return &ValidationError{Errors: failures}
	}
	return nil
}

// fieldMessage maps a validation failure to a human readable message.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "alphanum":
		return field + " must contain only letters and digits"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// TrimPtr trims the string behind p in place.
func TrimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
