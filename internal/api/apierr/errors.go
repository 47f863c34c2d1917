package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pdlabs/pdgame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidName        = "INVALID_NAME"
	CodeInvalidID          = "INVALID_ID"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidTheme       = "INVALID_THEME"
	CodeInvalidMove        = "INVALID_MOVE"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeConnectionNotFound = "CONNECTION_NOT_FOUND"
	CodeConnectionExists   = "CONNECTION_EXISTS"
	CodeConnectionInactive = "CONNECTION_NOT_ACTIVE"
	CodeDataCorruption     = "DATA_CORRUPTION"
	CodeStorageError       = "STORAGE_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Name must not be empty"}}
	case errors.Is(err, model.ErrInvalidID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidID, "Id must not be empty"}}
	case errors.Is(err, model.ErrInvalidStatus):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidStatus, "Status must be pending or active"}}
	case errors.Is(err, model.ErrInvalidTheme):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTheme, "Theme must be light or dark"}}
	case errors.Is(err, model.ErrInvalidMove):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMove, "Move must be cooperate or defect"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "No player is registered"}}
	case errors.Is(err, model.ErrConnectionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeConnectionNotFound, "Connection not found"}}
	case errors.Is(err, model.ErrConnectionExists):
		return &httpError{http.StatusConflict, APIError{CodeConnectionExists, "A connection with this id already exists"}}
	case errors.Is(err, model.ErrConnectionNotActive):
		return &httpError{http.StatusConflict, APIError{CodeConnectionInactive, "Connection has not been accepted"}}
	case errors.Is(err, model.ErrDataCorruption):
		return &httpError{http.StatusInternalServerError, APIError{CodeDataCorruption, "Stored data is corrupt"}}
	case errors.Is(err, model.ErrKeyNotFound):
		// A raw key miss leaking this far is a bug in a store layer
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	default:
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStorageError, "Storage is unavailable"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
