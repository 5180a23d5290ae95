package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"holidaze-server/api"
	"holidaze-server/availability"
	"holidaze-server/internaltypes"
)

const SESSION_HEADER = "X-Session-ID"

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Println("Internal error:", err)
		msg = "Internal server error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func statusFor(err error) int {
	var validation *internaltypes.ValidationError
	var apiErr *api.APIError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, availability.ErrInvalidRange),
		errors.Is(err, internaltypes.ErrMissingID):
		return http.StatusBadRequest
	case errors.Is(err, internaltypes.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, internaltypes.ErrCursorNotFound):
		return http.StatusNotFound
	case errors.Is(err, internaltypes.ErrSuperseded),
		errors.Is(err, internaltypes.ErrUnavailable):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
			http.StatusNotFound, http.StatusConflict:
			return apiErr.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return internaltypes.NewValidationError("Invalid JSON body")
	}
	return nil
}
