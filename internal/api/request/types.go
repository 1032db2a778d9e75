package request

// Coordinate is a latitude/longitude pair in request bodies
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string     `json:"display_name"`
	Location    Coordinate `json:"location"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	DisplayName string     `json:"display_name"`
	Location    Coordinate `json:"location"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateLocationRequest is the request body for reporting a position
type UpdateLocationRequest struct {
	Location Coordinate `json:"location"`
}

// SendFriendRequest is the request body for sending a friend request
type SendFriendRequest struct {
	RecipientID string `json:"recipient_id"`
}

// RespondFriendRequest is the request body for answering a friend request
type RespondFriendRequest struct {
	RequesterID string `json:"requester_id"`
	Accept      bool   `json:"accept"`
}

// HostMatchRequest is the request body for hosting a match
type HostMatchRequest struct {
	Name            string     `json:"name"`
	Location        Coordinate `json:"location"`
	MaxHunters      int        `json:"max_hunters,omitempty"`
	MaxHiders       int        `json:"max_hiders,omitempty"`
	DurationSec     int        `json:"duration_sec,omitempty"`
	HidingSec       int        `json:"hiding_sec,omitempty"`
	HintIntervalSec int        `json:"hint_interval_sec,omitempty"`
}

// AssignRoleRequest is the request body for choosing a role
type AssignRoleRequest struct {
	Role string `json:"role"`
}

// SetFlagRequest is the request body for ready/loaded/invisible toggles
type SetFlagRequest struct {
	Value bool `json:"value"`
}

// CatchHiderRequest is the request body for catching a hider
type CatchHiderRequest struct {
	TargetID string `json:"target_id"`
}
