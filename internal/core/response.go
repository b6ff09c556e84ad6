// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Envelope is the wire shape of every JSON response. Message, Data and
// Errors are each optional; Success is always present.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(env)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func OKMessage(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
	})
}

// ValidationFailed reports boundary validation per field so callers can
// highlight each invalid input.
func ValidationFailed(w http.ResponseWriter, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Errors:  errs,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "authentication required"
	}
	WriteJSON(w, http.StatusUnauthorized, Envelope{
		Success: false,
		Message: message,
	})
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "insufficient permissions"
	}
	WriteJSON(w, http.StatusForbidden, Envelope{
		Success: false,
		Message: message,
	})
}

func NotFound(w http.ResponseWriter, resource string) {
	if resource == "" {
		resource = "resource"
	}
	WriteJSON(w, http.StatusNotFound, Envelope{
		Success: false,
		Message: resource + " not found",
	})
}

// InternalServerError logs the cause and returns a generic message; no
// internal detail crosses the boundary. The cause is also recorded on
// the active span when tracing is enabled.
func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	SetSpanError(r.Context(), err)
	slog.Error("internal error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
	)
	WriteJSON(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "internal server error",
	})
}

func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := AsAppError(err); ok {
		WriteJSON(w, appErr.Status, Envelope{
			Success: false,
			Message: appErr.Message,
		})
		return
	}
	InternalServerError(w, r, err)
}

// FieldErrors converts validator output to the envelope's per-field form.
// Field names come from the json tag, so the client sees wire names.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldErrorMessage(fe),
		})
	}
	return out
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		return "must contain only digits"
	case "containsany":
		return "must contain at least one digit"
	default:
		return "is invalid"
	}
}

// NewValidator builds the validator shared by handlers, reporting struct
// fields under their json names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
