package match

import (
	"context"
	"errors"

	"github.com/manhunt-game/manhunt-go/internal/dependencies/clock"
	"github.com/manhunt-game/manhunt-go/internal/dependencies/locking"
	"github.com/manhunt-game/manhunt-go/internal/dependencies/random"
	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/storage"
)

const (
	// MatchIDLength is the length of generated match IDs
	MatchIDLength = 8
	// MatchIDAlphabet is the characters used in match IDs (avoid confusing chars)
	MatchIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages the match lifecycle and per-match player state
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random

	// locks serializes every check-then-write on a single match
	locks *locking.KeyedMutex
}

// NewController creates a new match Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		locks:   locking.New(),
	}
}

// HostMatch creates a new match with the given player as host. If the host
// already hosts a match it is ended and replaced; if the host is a member of
// someone else's match the call fails with ErrAlreadyInMatch.
func (c *Controller) HostMatch(
	ctx context.Context,
	hostID model.PlayerID,
	name string,
	location model.Coordinate,
	config model.MatchConfig,
) (*model.Match, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	player, err := c.storage.GetPlayer(ctx, hostID)
	if err != nil {
		return nil, err
	}

	if player.InMatch() {
		existing, err := c.storage.GetMatch(ctx, *player.CurrentMatch)
		switch {
		case errors.Is(err, model.ErrMatchNotFound):
			// Stale reference, clear it and continue
		case err != nil:
			return nil, err
		case existing.HostID != hostID:
			return nil, model.ErrAlreadyInMatch
		default:
			// Replace semantics: hosting again tears down the old match
			if err := c.endMatch(ctx, existing.ID); err != nil {
				return nil, err
			}
		}

		player, err = c.storage.GetPlayer(ctx, hostID)
		if err != nil {
			return nil, err
		}
	}

	now := c.clock.Now()

	// Generate unique match ID
	var id model.MatchID
	for {
		id = model.MatchID(c.random.String(MatchIDLength, MatchIDAlphabet))
		_, err := c.storage.GetMatch(ctx, id)
		if errors.Is(err, model.ErrMatchNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	match := &model.Match{
		ID:       id,
		HostID:   hostID,
		Name:     name,
		Config:   config,
		Location: location,
		Started:  false,
		Members: []model.MatchMember{
			{
				PlayerID: hostID,
				Role:     model.RoleNone,
				JoinedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	player.CurrentMatch = &match.ID
	player.UpdatedAt = now
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return match, nil
}

// JoinMatch adds a player to a match. The capacity check and the append are
// serialized per match so concurrent joins cannot overfill it.
func (c *Controller) JoinMatch(ctx context.Context, playerID model.PlayerID, matchID model.MatchID) error {
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if player.InMatch() {
		return model.ErrAlreadyInMatch
	}

	unlock := c.locks.Lock(string(matchID))
	defer unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if match.GetMember(playerID) != nil {
		return model.ErrAlreadyInMatch
	}
	if match.IsFull() {
		return model.ErrMatchFull
	}

	now := c.clock.Now()
	match.Members = append(match.Members, model.MatchMember{
		PlayerID: playerID,
		Role:     model.RoleNone,
		JoinedAt: now,
	})
	match.UpdatedAt = now

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		return err
	}

	player.CurrentMatch = &match.ID
	player.UpdatedAt = now
	return c.storage.SavePlayer(ctx, player)
}

// AssignRole sets a member's role, enforcing the per-role cap. Requesting
// the role the member already holds is a no-op.
func (c *Controller) AssignRole(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, role model.Role) error {
	if !model.ValidRole(role) {
		return model.ErrInvalidRole
	}

	unlock := c.locks.Lock(string(matchID))
	defer unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	member := match.GetMember(playerID)
	if member == nil {
		return model.ErrNotInMatch
	}
	if member.Role == role {
		return nil
	}
	if match.RoleCount(role) >= match.RoleCap(role) {
		return model.ErrRoleFull
	}

	member.Role = role
	match.UpdatedAt = c.clock.Now()
	return c.storage.SaveMatch(ctx, match)
}

// SetReady flags whether a member is ready to start
func (c *Controller) SetReady(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, ready bool) error {
	return c.updateMember(ctx, playerID, matchID, func(member *model.MatchMember) error {
		member.Ready = ready
		return nil
	})
}

// SetLoaded flags whether a member's client has finished loading the match
func (c *Controller) SetLoaded(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, loaded bool) error {
	return c.updateMember(ctx, playerID, matchID, func(member *model.MatchMember) error {
		member.Loaded = loaded
		return nil
	})
}

// SetInvisible toggles a hider's visibility to hunters. Only hiders can go
// invisible.
func (c *Controller) SetInvisible(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, invisible bool) error {
	return c.updateMember(ctx, playerID, matchID, func(member *model.MatchMember) error {
		if member.Role != model.RoleHider {
			return model.ErrNotAHider
		}
		member.Invisible = invisible
		return nil
	})
}

// CatchHider marks a hider as caught by a hunter in the same match
func (c *Controller) CatchHider(ctx context.Context, hunterID model.PlayerID, matchID model.MatchID, targetID model.PlayerID) error {
	unlock := c.locks.Lock(string(matchID))
	defer unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	hunter := match.GetMember(hunterID)
	if hunter == nil {
		return model.ErrNotInMatch
	}
	if hunter.Role != model.RoleHunter {
		return model.ErrNotAHunter
	}

	target := match.GetMember(targetID)
	if target == nil {
		return model.ErrNotInMatch
	}
	if target.Role != model.RoleHider {
		return model.ErrNotAHider
	}

	target.Caught = true
	match.UpdatedAt = c.clock.Now()
	return c.storage.SaveMatch(ctx, match)
}

// AllReady reports whether every member of the match is ready. A match with
// fewer than two members is never considered ready.
func (c *Controller) AllReady(ctx context.Context, matchID model.MatchID) (bool, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return false, err
	}
	if len(match.Members) < 2 {
		return false, model.ErrNotEnoughPlayers
	}
	return match.AllReady(), nil
}

// AllLoaded reports whether every member's client has loaded the match
func (c *Controller) AllLoaded(ctx context.Context, matchID model.MatchID) (bool, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return false, err
	}
	if len(match.Members) < 2 {
		return false, model.ErrNotEnoughPlayers
	}
	return match.AllLoaded(), nil
}

// StartMatch begins the match. At least two members must have joined.
// Readiness is advisory: clients gate on AllReady but the server does not
// enforce it here.
func (c *Controller) StartMatch(ctx context.Context, matchID model.MatchID) error {
	unlock := c.locks.Lock(string(matchID))
	defer unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if len(match.Members) < 2 {
		return model.ErrNotEnoughPlayers
	}

	match.Started = true
	match.UpdatedAt = c.clock.Now()
	return c.storage.SaveMatch(ctx, match)
}

// LeaveMatch removes the player from their current match. The last member
// leaving deletes the match; the host leaving ends it for everyone.
func (c *Controller) LeaveMatch(ctx context.Context, playerID model.PlayerID) error {
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if !player.InMatch() {
		return model.ErrNotInMatch
	}
	matchID := *player.CurrentMatch

	unlock := c.locks.Lock(string(matchID))
	defer unlock()

	now := c.clock.Now()

	match, err := c.storage.GetMatch(ctx, matchID)
	if errors.Is(err, model.ErrMatchNotFound) {
		// Stale reference, just clear it
		player.CurrentMatch = nil
		player.UpdatedAt = now
		return c.storage.SavePlayer(ctx, player)
	}
	if err != nil {
		return err
	}

	if match.GetMember(playerID) == nil {
		player.CurrentMatch = nil
		player.UpdatedAt = now
		return c.storage.SavePlayer(ctx, player)
	}

	// The host leaving tears the match down; matches are addressed by host
	if match.HostID == playerID {
		return c.deleteMatch(ctx, match)
	}

	for i, m := range match.Members {
		if m.PlayerID == playerID {
			match.Members = append(match.Members[:i], match.Members[i+1:]...)
			break
		}
	}

	player.CurrentMatch = nil
	player.UpdatedAt = now
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return err
	}

	if len(match.Members) == 0 {
		return c.storage.DeleteMatch(ctx, match.ID)
	}

	match.UpdatedAt = now
	return c.storage.SaveMatch(ctx, match)
}

// EndMatch ends the match hosted by the given player, clearing every
// member's match reference
func (c *Controller) EndMatch(ctx context.Context, hostID model.PlayerID) error {
	match, err := c.storage.GetMatchByHost(ctx, hostID)
	if err != nil {
		return err
	}
	return c.endMatch(ctx, match.ID)
}

func (c *Controller) endMatch(ctx context.Context, matchID model.MatchID) error {
	unlock := c.locks.Lock(string(matchID))
	defer unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	return c.deleteMatch(ctx, match)
}

// deleteMatch removes the match and detaches every member. Callers must
// hold the match lock.
func (c *Controller) deleteMatch(ctx context.Context, match *model.Match) error {
	now := c.clock.Now()
	for _, member := range match.Members {
		player, err := c.storage.GetPlayer(ctx, member.PlayerID)
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return err
		}
		if player.CurrentMatch != nil && *player.CurrentMatch == match.ID {
			player.CurrentMatch = nil
			player.UpdatedAt = now
			if err := c.storage.SavePlayer(ctx, player); err != nil {
				return err
			}
		}
	}

	return c.storage.DeleteMatch(ctx, match.ID)
}

// GetMatch retrieves a match by ID
func (c *Controller) GetMatch(ctx context.Context, matchID model.MatchID) (*model.Match, error) {
	return c.storage.GetMatch(ctx, matchID)
}

// GetMatchByHost retrieves the match hosted by the given player
func (c *Controller) GetMatchByHost(ctx context.Context, hostID model.PlayerID) (*model.Match, error) {
	return c.storage.GetMatchByHost(ctx, hostID)
}

// ListMatches retrieves all matches
func (c *Controller) ListMatches(ctx context.Context) ([]*model.Match, error) {
	return c.storage.ListMatches(ctx)
}

// MembersOf retrieves the player records of every member of a match
func (c *Controller) MembersOf(ctx context.Context, matchID model.MatchID) ([]*model.Player, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(match.Members))
	for _, member := range match.Members {
		player, err := c.storage.GetPlayer(ctx, member.PlayerID)
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// updateMember applies a mutation to a single member under the match lock
func (c *Controller) updateMember(
	ctx context.Context,
	playerID model.PlayerID,
	matchID model.MatchID,
	update func(member *model.MatchMember) error,
) error {
	unlock := c.locks.Lock(string(matchID))
	defer unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	member := match.GetMember(playerID)
	if member == nil {
		return model.ErrNotInMatch
	}

	if err := update(member); err != nil {
		return err
	}

	match.UpdatedAt = c.clock.Now()
	return c.storage.SaveMatch(ctx, match)
}

// Interface for dependency injection
type ControllerInterface interface {
	HostMatch(ctx context.Context, hostID model.PlayerID, name string, location model.Coordinate, config model.MatchConfig) (*model.Match, error)
	JoinMatch(ctx context.Context, playerID model.PlayerID, matchID model.MatchID) error
	AssignRole(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, role model.Role) error
	SetReady(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, ready bool) error
	SetLoaded(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, loaded bool) error
	SetInvisible(ctx context.Context, playerID model.PlayerID, matchID model.MatchID, invisible bool) error
	CatchHider(ctx context.Context, hunterID model.PlayerID, matchID model.MatchID, targetID model.PlayerID) error
	AllReady(ctx context.Context, matchID model.MatchID) (bool, error)
	AllLoaded(ctx context.Context, matchID model.MatchID) (bool, error)
	StartMatch(ctx context.Context, matchID model.MatchID) error
	LeaveMatch(ctx context.Context, playerID model.PlayerID) error
	EndMatch(ctx context.Context, hostID model.PlayerID) error
	GetMatch(ctx context.Context, matchID model.MatchID) (*model.Match, error)
	GetMatchByHost(ctx context.Context, hostID model.PlayerID) (*model.Match, error)
	ListMatches(ctx context.Context) ([]*model.Match, error)
	MembersOf(ctx context.Context, matchID model.MatchID) ([]*model.Player, error)
}

var _ ControllerInterface = (*Controller)(nil)
