package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/services/auth"
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
	CodeInvalidCoordinate  = "INVALID_COORDINATE"
	CodeInvalidMatchConfig = "INVALID_MATCH_CONFIG"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeSelfRequest        = "SELF_REQUEST"
	CodeAlreadyFriends     = "ALREADY_FRIENDS"
	CodeRequestPending     = "REQUEST_PENDING"
	CodeRequestNotFound    = "REQUEST_NOT_FOUND"
	CodeNotFriends         = "NOT_FRIENDS"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeMatchFull          = "MATCH_FULL"
	CodeRoleFull           = "ROLE_FULL"
	CodeAlreadyInMatch     = "ALREADY_IN_MATCH"
	CodeNotInMatch         = "NOT_IN_MATCH"
	CodeNotEnoughPlayers   = "NOT_ENOUGH_PLAYERS"
	CodeNotAHunter         = "NOT_A_HUNTER"
	CodeNotAHider          = "NOT_A_HIDER"
	CodeNoHidersLeft       = "NO_HIDERS_LEFT"
	CodeNoHiderNearby      = "NO_HIDER_NEARBY"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
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
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidCoordinate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoordinate, "Invalid coordinate"}}
	case errors.Is(err, model.ErrInvalidMatchConfig):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMatchConfig, "Invalid match configuration"}}
	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRole, "Role must be hunter or hider"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSelfRequest):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfRequest, "Cannot send a friend request to yourself"}}
	case errors.Is(err, model.ErrAlreadyFriends):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyFriends, "Already friends"}}
	case errors.Is(err, model.ErrRequestAlreadySent):
		return &httpError{http.StatusConflict, APIError{CodeRequestPending, "A friend request is already pending"}}
	case errors.Is(err, model.ErrRequestNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRequestNotFound, "Friend request not found"}}
	case errors.Is(err, model.ErrNotFriends):
		return &httpError{http.StatusNotFound, APIError{CodeNotFriends, "Players are not friends"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrMatchFull):
		return &httpError{http.StatusConflict, APIError{CodeMatchFull, "Match is full"}}
	case errors.Is(err, model.ErrRoleFull):
		return &httpError{http.StatusConflict, APIError{CodeRoleFull, "No slots left for that role"}}
	case errors.Is(err, model.ErrAlreadyInMatch):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInMatch, "Already in a match"}}
	case errors.Is(err, model.ErrNotInMatch):
		return &httpError{http.StatusConflict, APIError{CodeNotInMatch, "Not in a match"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughPlayers, "Not enough players"}}
	case errors.Is(err, model.ErrNotAHunter):
		return &httpError{http.StatusForbidden, APIError{CodeNotAHunter, "Only hunters can perform this action"}}
	case errors.Is(err, model.ErrNotAHider):
		return &httpError{http.StatusForbidden, APIError{CodeNotAHider, "Only hiders can perform this action"}}
	case errors.Is(err, model.ErrNoHidersLeft):
		return &httpError{http.StatusNotFound, APIError{CodeNoHidersLeft, "No hiders left in the match"}}
	case errors.Is(err, model.ErrNoHiderNearby):
		return &httpError{http.StatusNotFound, APIError{CodeNoHiderNearby, "No hider within range"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
