package model

import "errors"

// Common errors used across the application
var (
	// Validation errors
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrInvalidMatchConfig = errors.New("invalid match configuration")
	ErrInvalidRole        = errors.New("invalid role")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Social graph errors
	ErrSelfRequest        = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends     = errors.New("players are already friends")
	ErrRequestAlreadySent = errors.New("friend request already pending")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrNotFriends         = errors.New("players are not friends")

	// Match lifecycle errors
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchFull        = errors.New("match is full")
	ErrRoleFull         = errors.New("no slots left for that role")
	ErrAlreadyInMatch   = errors.New("player is already in a match")
	ErrNotInMatch       = errors.New("player is not in a match")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNotAHunter       = errors.New("player is not a hunter")
	ErrNotAHider        = errors.New("player is not a hider")

	// Proximity errors
	ErrNoHidersLeft  = errors.New("no hiders left in the match")
	ErrNoHiderNearby = errors.New("no hider within range")
)
