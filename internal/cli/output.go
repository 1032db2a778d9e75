package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case AuthResult:
		o.printAuthResult(v)
	case []FriendRequest:
		o.printFriendRequests(v)
	case Experience:
		fmt.Printf("Shared experience: %d\n", v.Experience)
	case Match:
		o.printMatch(v)
	case []NearbyPlayer:
		o.printNearbyPlayers(v)
	case []NearbyMatch:
		o.printNearbyMatches(v)
	case NearestHider:
		o.printNearestHider(v)
	case Readiness:
		o.printReadiness(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Coordinate response type (matches API)
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Player response type
type Player struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"display_name"`
	IsGuest      bool       `json:"is_guest"`
	Location     Coordinate `json:"location"`
	CurrentMatch *string    `json:"current_match"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// FriendRequest response type
type FriendRequest struct {
	RequesterID string `json:"requester_id"`
	RecipientID string `json:"recipient_id"`
}

// Experience response type
type Experience struct {
	Experience int `json:"experience"`
}

// MatchConfig response type
type MatchConfig struct {
	MaxHunters      int `json:"max_hunters"`
	MaxHiders       int `json:"max_hiders"`
	DurationSec     int `json:"duration_sec"`
	HidingSec       int `json:"hiding_sec"`
	HintIntervalSec int `json:"hint_interval_sec"`
}

// MatchMember response type
type MatchMember struct {
	PlayerID  string `json:"player_id"`
	Role      string `json:"role"`
	Ready     bool   `json:"ready"`
	Caught    bool   `json:"caught"`
	Invisible bool   `json:"invisible"`
	Loaded    bool   `json:"loaded"`
}

// Match response type
type Match struct {
	ID       string        `json:"id"`
	HostID   string        `json:"host_id"`
	Name     string        `json:"name"`
	Config   MatchConfig   `json:"config"`
	Location Coordinate    `json:"location"`
	Started  bool          `json:"started"`
	Members  []MatchMember `json:"members"`
}

// NearbyPlayer response type
type NearbyPlayer struct {
	Player     Player  `json:"player"`
	DistanceKm float64 `json:"distance_km"`
}

// NearbyMatch response type
type NearbyMatch struct {
	Match      Match   `json:"match"`
	DistanceKm float64 `json:"distance_km"`
}

// NearestHider response type
type NearestHider struct {
	Player         Player  `json:"player"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Readiness response type
type Readiness struct {
	All bool `json:"all"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
	fmt.Printf("Location: %.5f, %.5f\n", p.Location.Latitude, p.Location.Longitude)
	if p.CurrentMatch != nil {
		fmt.Printf("Match: %s\n", *p.CurrentMatch)
	}
}

func (o *Output) printPlayers(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  - %s (%s)\n", p.DisplayName, p.ID)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printFriendRequests(requests []FriendRequest) {
	fmt.Printf("Pending requests (%d):\n", len(requests))
	for _, r := range requests {
		fmt.Printf("  - from %s\n", r.RequesterID)
	}
}

func (o *Output) printMatch(m Match) {
	stateStr := "open"
	if m.Started {
		stateStr = "started"
	}
	fmt.Printf("Match: %s (%s)\n", m.Name, m.ID)
	fmt.Printf("Host: %s\n", m.HostID)
	fmt.Printf("State: %s\n", stateStr)
	fmt.Printf("Location: %.5f, %.5f\n", m.Location.Latitude, m.Location.Longitude)
	fmt.Printf("Slots: %d hunters, %d hiders\n", m.Config.MaxHunters, m.Config.MaxHiders)
	fmt.Printf("Members (%d):\n", len(m.Members))
	for _, member := range m.Members {
		role := member.Role
		if role == "" {
			role = "unassigned"
		}
		flags := ""
		if member.Ready {
			flags += " [ready]"
		}
		if member.Caught {
			flags += " [caught]"
		}
		fmt.Printf("  - %s - %s%s\n", member.PlayerID, role, flags)
	}
}

func (o *Output) printNearbyPlayers(nearby []NearbyPlayer) {
	fmt.Printf("Nearby players (%d):\n", len(nearby))
	for _, n := range nearby {
		fmt.Printf("  - %s (%s) - %.2f km\n", n.Player.DisplayName, n.Player.ID, n.DistanceKm)
	}
}

func (o *Output) printNearbyMatches(nearby []NearbyMatch) {
	fmt.Printf("Nearby matches (%d):\n", len(nearby))
	for _, n := range nearby {
		fmt.Printf("  - %s (%s) - %.2f km, %d members\n", n.Match.Name, n.Match.ID, n.DistanceKm, len(n.Match.Members))
	}
}

func (o *Output) printNearestHider(n NearestHider) {
	fmt.Printf("Nearest hider: %s (%s)\n", n.Player.DisplayName, n.Player.ID)
	fmt.Printf("Distance: %.1f m\n", n.DistanceMeters)
}

func (o *Output) printReadiness(r Readiness) {
	if r.All {
		fmt.Println("All members ready")
	} else {
		fmt.Println("Waiting on members")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
