package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// Role is a player's side within a match
type Role string

const (
	RoleNone   Role = ""       // joined but no side chosen yet
	RoleHunter Role = "hunter" // seeking
	RoleHider  Role = "hider"  // being sought
)

// ValidRole reports whether r is a role a player can request
func ValidRole(r Role) bool {
	return r == RoleHunter || r == RoleHider
}

// MatchConfig holds the host-chosen parameters of a match.
// The durations are informational for clients; the server never fires
// timers off them.
type MatchConfig struct {
	MaxHunters     int
	MaxHiders      int
	Duration       time.Duration // total match length
	HidingDuration time.Duration // head start for hiders before hunting begins
	HintInterval   time.Duration // how often hunters receive location hints
}

// DefaultMatchConfig returns the default match parameters
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		MaxHunters:     5,
		MaxHiders:      5,
		Duration:       30 * time.Minute,
		HidingDuration: 5 * time.Minute,
		HintInterval:   5 * time.Minute,
	}
}

// Validate checks that the config describes a playable match
func (c MatchConfig) Validate() error {
	if c.MaxHunters < 1 || c.MaxHiders < 1 {
		return ErrInvalidMatchConfig
	}
	if c.Duration < 0 || c.HidingDuration < 0 || c.HintInterval < 0 {
		return ErrInvalidMatchConfig
	}
	return nil
}

// MatchMember is a player's membership in a match, carrying all of the
// player's per-match state. The state lives here rather than on the Player
// so that ending a match resets it in one place.
type MatchMember struct {
	PlayerID  PlayerID
	Role      Role
	Ready     bool
	Caught    bool
	Invisible bool
	Loaded    bool // client finished loading into the match
	JoinedAt  time.Time
}

// Match represents one hide-and-seek session anchored to a real-world point
type Match struct {
	ID       MatchID
	HostID   PlayerID // the founding player
	Name     string
	Config   MatchConfig
	Location Coordinate // where the match was created
	Started  bool
	Members  []MatchMember

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Capacity returns the total number of joinable slots
func (m *Match) Capacity() int {
	return m.Config.MaxHunters + m.Config.MaxHiders
}

// IsFull reports whether no further players can join
func (m *Match) IsFull() bool {
	return len(m.Members) >= m.Capacity()
}

// GetMember returns the member with the given player ID, or nil if not found
func (m *Match) GetMember(playerID PlayerID) *MatchMember {
	for i := range m.Members {
		if m.Members[i].PlayerID == playerID {
			return &m.Members[i]
		}
	}
	return nil
}

// RoleCount returns how many members currently hold the given role
func (m *Match) RoleCount(role Role) int {
	n := 0
	for _, mem := range m.Members {
		if mem.Role == role {
			n++
		}
	}
	return n
}

// RoleCap returns the maximum member count for the given role
func (m *Match) RoleCap(role Role) int {
	switch role {
	case RoleHunter:
		return m.Config.MaxHunters
	case RoleHider:
		return m.Config.MaxHiders
	default:
		return 0
	}
}

// MembersWithRole returns all members currently holding the given role
func (m *Match) MembersWithRole(role Role) []MatchMember {
	var members []MatchMember
	for _, mem := range m.Members {
		if mem.Role == role {
			members = append(members, mem)
		}
	}
	return members
}

// AllReady reports whether every member has flagged ready
func (m *Match) AllReady() bool {
	for _, mem := range m.Members {
		if !mem.Ready {
			return false
		}
	}
	return true
}

// AllLoaded reports whether every member's client has finished loading
func (m *Match) AllLoaded() bool {
	for _, mem := range m.Members {
		if !mem.Loaded {
			return false
		}
	}
	return true
}
