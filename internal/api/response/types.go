package response

import (
	"time"

	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/services/auth"
	"github.com/manhunt-game/manhunt-go/internal/services/proximity"
)

// Coordinate is a latitude/longitude pair in API responses
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CoordinateFromModel converts a model.Coordinate
func CoordinateFromModel(c model.Coordinate) Coordinate {
	return Coordinate{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

// Player represents a player in API responses
type Player struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"display_name"`
	IsGuest      bool       `json:"is_guest"`
	Location     Coordinate `json:"location"`
	CurrentMatch *string    `json:"current_match"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	var currentMatch *string
	if p.CurrentMatch != nil {
		m := string(*p.CurrentMatch)
		currentMatch = &m
	}
	return Player{
		ID:           string(p.ID),
		DisplayName:  p.DisplayName,
		IsGuest:      p.IsGuest,
		Location:     CoordinateFromModel(p.Location),
		CurrentMatch: currentMatch,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// FriendRequest represents a pending friend request
type FriendRequest struct {
	RequesterID string    `json:"requester_id"`
	RecipientID string    `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FriendRequestFromModel converts a model.FriendRequest
func FriendRequestFromModel(r *model.FriendRequest) FriendRequest {
	return FriendRequest{
		RequesterID: string(r.Requester),
		RecipientID: string(r.Recipient),
		CreatedAt:   r.CreatedAt,
	}
}

// Experience is the shared experience of one friend pair
type Experience struct {
	Experience int `json:"experience"`
}

// MatchConfig represents match parameters
type MatchConfig struct {
	MaxHunters      int `json:"max_hunters"`
	MaxHiders       int `json:"max_hiders"`
	DurationSec     int `json:"duration_sec"`
	HidingSec       int `json:"hiding_sec"`
	HintIntervalSec int `json:"hint_interval_sec"`
}

// MatchConfigFromModel converts model.MatchConfig
func MatchConfigFromModel(c model.MatchConfig) MatchConfig {
	return MatchConfig{
		MaxHunters:      c.MaxHunters,
		MaxHiders:       c.MaxHiders,
		DurationSec:     int(c.Duration.Seconds()),
		HidingSec:       int(c.HidingDuration.Seconds()),
		HintIntervalSec: int(c.HintInterval.Seconds()),
	}
}

// MatchMember represents a member and their in-match state
type MatchMember struct {
	PlayerID  string    `json:"player_id"`
	Role      string    `json:"role"`
	Ready     bool      `json:"ready"`
	Caught    bool      `json:"caught"`
	Invisible bool      `json:"invisible"`
	Loaded    bool      `json:"loaded"`
	JoinedAt  time.Time `json:"joined_at"`
}

// MatchMemberFromModel converts model.MatchMember
func MatchMemberFromModel(m model.MatchMember) MatchMember {
	return MatchMember{
		PlayerID:  string(m.PlayerID),
		Role:      string(m.Role),
		Ready:     m.Ready,
		Caught:    m.Caught,
		Invisible: m.Invisible,
		Loaded:    m.Loaded,
		JoinedAt:  m.JoinedAt,
	}
}

// Match represents a match in API responses
type Match struct {
	ID       string        `json:"id"`
	HostID   string        `json:"host_id"`
	Name     string        `json:"name"`
	Config   MatchConfig   `json:"config"`
	Location Coordinate    `json:"location"`
	Started  bool          `json:"started"`
	Members  []MatchMember `json:"members"`
}

// MatchFromModel converts model.Match
func MatchFromModel(m *model.Match) Match {
	members := make([]MatchMember, len(m.Members))
	for i, member := range m.Members {
		members[i] = MatchMemberFromModel(member)
	}
	return Match{
		ID:       string(m.ID),
		HostID:   string(m.HostID),
		Name:     m.Name,
		Config:   MatchConfigFromModel(m.Config),
		Location: CoordinateFromModel(m.Location),
		Started:  m.Started,
		Members:  members,
	}
}

// MatchesFromModel converts a slice of matches
func MatchesFromModel(matches []*model.Match) []Match {
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = MatchFromModel(m)
	}
	return out
}

// NearbyPlayer is a player annotated with distance from the query origin
type NearbyPlayer struct {
	Player     Player  `json:"player"`
	DistanceKm float64 `json:"distance_km"`
}

// NearbyPlayersFromService converts proximity results
func NearbyPlayersFromService(nearby []proximity.NearbyPlayer) []NearbyPlayer {
	out := make([]NearbyPlayer, len(nearby))
	for i, n := range nearby {
		out[i] = NearbyPlayer{
			Player:     PlayerFromModel(n.Player),
			DistanceKm: n.DistanceKm,
		}
	}
	return out
}

// NearbyMatch is a match annotated with distance from the query origin
type NearbyMatch struct {
	Match      Match   `json:"match"`
	DistanceKm float64 `json:"distance_km"`
}

// NearbyMatchesFromService converts proximity results
func NearbyMatchesFromService(nearby []proximity.NearbyMatch) []NearbyMatch {
	out := make([]NearbyMatch, len(nearby))
	for i, n := range nearby {
		out[i] = NearbyMatch{
			Match:      MatchFromModel(n.Match),
			DistanceKm: n.DistanceKm,
		}
	}
	return out
}

// NearestHider is the result of a nearest-hider probe
type NearestHider struct {
	Player         Player  `json:"player"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Readiness reports an all-members flag check
type Readiness struct {
	All bool `json:"all"`
}

// AverageExperience is the mean shared experience across a match's pairs
type AverageExperience struct {
	Average float64 `json:"average"`
}

// ServerTime is the current server clock reading
type ServerTime struct {
	Time time.Time `json:"time"`
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// FriendRequestsFromModel converts a slice of friend requests
func FriendRequestsFromModel(requests []*model.FriendRequest) []FriendRequest {
	out := make([]FriendRequest, len(requests))
	for i, r := range requests {
		out[i] = FriendRequestFromModel(r)
	}
	return out
}
