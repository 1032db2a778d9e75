package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a game participant and their live state
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	Location    Coordinate

	// CurrentMatch references the match the player is in, or nil.
	// A player belongs to at most one match at a time.
	CurrentMatch *MatchID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InMatch reports whether the player is currently a member of a match
func (p *Player) InMatch() bool {
	return p.CurrentMatch != nil
}

// RegisteredPlayer extends Player with authentication data
// Stored separately for security (password never in memory with session)
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
