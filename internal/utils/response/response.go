package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrUnauthorized is the single signal for both anonymous and non-admin callers.
var ErrUnauthorized = errors.New("Unauthorized")

func WriteJSON(w http.ResponseWriter, status int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, fieldMessage(err))
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(messages, "; "),
	}
}

func fieldMessage(err validator.FieldError) string {
	field := err.Field()
	switch err.Tag() {
	case "required":
		return field + " is required"
	case "category":
		return field + " must be one of Commercial, Music Video, Wedding, Short Film, Personal"
	case "oneof":
		return field + " must be one of " + err.Param()
	case "hexcolor":
		return field + " must be a hex colour"
	case "email":
		return field + " must be a valid email"
	case "datetime":
		return field + " must be a date formatted as " + err.Param()
	case "max":
		return field + " must be at most " + err.Param() + " characters"
	case "min":
		return field + " must be at least " + err.Param() + " characters"
	default:
		return field + ": " + err.Tag()
	}
}

func RequestOK(message string, data any) Response {
	return Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// Success is the bare acknowledgement body used by mutating admin endpoints.
func Success() map[string]bool {
	return map[string]bool{"success": true}
}

func Unauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, GeneralError(ErrUnauthorized))
}
