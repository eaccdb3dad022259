package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/library-manager/internal/library"
)

func init() {
	// Report validation failures under the JSON field names clients send.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// requestError is a malformed or invalid request, reported as 400.
type requestError struct {
	message string
	fields  map[string][]string
	err     error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *requestError) Unwrap() error {
	return e.err
}

func newRequestError(message string, err error) *requestError {
	return &requestError{message: message, err: err}
}

// invalidRequest turns a binding or validation failure into a requestError.
func invalidRequest(err error) *requestError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string][]string)
		for _, fieldErr := range validationErrs {
			name := fieldErr.Field()
			fields[name] = append(fields[name], validationMessage(fieldErr))
		}
		return &requestError{message: summarizeFields(fields), fields: fields, err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, library.ErrInvalidDate):
		return &requestError{
			message: "publishedDate must be a date in YYYY-MM-DD format.",
			fields:  map[string][]string{"publishedDate": {"publishedDate must be a date in YYYY-MM-DD format"}},
			err:     err,
		}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return newRequestError("The request body is not valid JSON.", err)
	case errors.As(err, &typeErr):
		return &requestError{
			message: fmt.Sprintf("%s has the wrong type.", typeErr.Field),
			fields:  map[string][]string{typeErr.Field: {"wrong type"}},
			err:     err,
		}
	}
	return newRequestError("The request could not be read.", err)
}

func validationMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	param := fieldErr.Param()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func summarizeFields(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	messages := make([]string, 0, len(fields))
	for _, name := range names {
		messages = append(messages, fields[name]...)
	}
	return "One or more validation errors occurred: " + strings.Join(messages, "; ") + "."
}
