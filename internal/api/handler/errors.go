package handler

import (
	"net/http"

	"github.com/manhunt-game/manhunt-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidCoordinate  = apierr.CodeInvalidCoordinate
	CodeInvalidMatchConfig = apierr.CodeInvalidMatchConfig
	CodeInvalidRole        = apierr.CodeInvalidRole
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeSelfRequest        = apierr.CodeSelfRequest
	CodeAlreadyFriends     = apierr.CodeAlreadyFriends
	CodeRequestPending     = apierr.CodeRequestPending
	CodeRequestNotFound    = apierr.CodeRequestNotFound
	CodeNotFriends         = apierr.CodeNotFriends
	CodeMatchNotFound      = apierr.CodeMatchNotFound
	CodeMatchFull          = apierr.CodeMatchFull
	CodeRoleFull           = apierr.CodeRoleFull
	CodeAlreadyInMatch     = apierr.CodeAlreadyInMatch
	CodeNotInMatch         = apierr.CodeNotInMatch
	CodeNotEnoughPlayers   = apierr.CodeNotEnoughPlayers
	CodeNotAHunter         = apierr.CodeNotAHunter
	CodeNotAHider          = apierr.CodeNotAHider
	CodeNoHidersLeft       = apierr.CodeNoHidersLeft
	CodeNoHiderNearby      = apierr.CodeNoHiderNearby
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
