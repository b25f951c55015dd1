package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/library"
	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorStatus maps a domain error to an HTTP status and a user-facing message.
//
// Storage and unexpected errors are reported as a generic 500 so internals do not leak.
func errorStatus(err error) (int, string) {
	var vErr *auth.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message
	case errors.Is(err, library.ErrEmptyQuery),
		errors.Is(err, library.ErrMissingPlaylistName),
		errors.Is(err, library.ErrMissingTrack):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, shared.ErrInvalidArgument), errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrUnknownUser), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, rootMessage(err)
	case errors.Is(err, shared.ErrNotAuthenticated):
		return http.StatusUnauthorized, "login required"
	case errors.Is(err, auth.ErrUsernameTaken):
		return http.StatusConflict, auth.ErrUsernameTaken.Error()
	case errors.Is(err, library.ErrPlaylistExists):
		return http.StatusConflict, library.ErrPlaylistExists.Error()
	case errors.Is(err, library.ErrAlreadyInPlaylist):
		return http.StatusConflict, library.ErrAlreadyInPlaylist.Error()
	case errors.Is(err, library.ErrPlaylistNotFound):
		return http.StatusNotFound, library.ErrPlaylistNotFound.Error()
	case errors.Is(err, services.ErrTrackNotFound):
		return http.StatusNotFound, services.ErrTrackNotFound.Error()
	case errors.Is(err, shared.ErrServiceUnavailable), errors.Is(err, shared.ErrMissingAPIKey):
		return http.StatusServiceUnavailable, "music catalog is not available"
	case errors.Is(err, shared.ErrAPIRequest):
		return http.StatusBadGateway, "music catalog request failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// rootMessage returns the text of the innermost sentinel, dropping wrapping context.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// validationMessage flattens validator errors into one line such as "id is required".
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "required_without":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
