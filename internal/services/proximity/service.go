package proximity

import (
	"context"
	"errors"
	"sort"

	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/services/social"
	"github.com/manhunt-game/manhunt-go/internal/storage"
)

// NearbyPlayer is a player annotated with their distance from a query origin
type NearbyPlayer struct {
	Player     *model.Player
	DistanceKm float64
}

// NearbyMatch is a match annotated with the distance to its creation point
type NearbyMatch struct {
	Match      *model.Match
	DistanceKm float64
}

// Service answers location queries: who and what is near a point, and which
// opposing players a match member can currently see
type Service struct {
	storage storage.Storage
	social  social.ServiceInterface
}

// New creates a new proximity Service
func New(storage storage.Storage, social social.ServiceInterface) *Service {
	return &Service{
		storage: storage,
		social:  social,
	}
}

// NearbyPlayers returns all players strictly within radiusKm of the origin,
// sorted nearest first. The excluded player (usually the querier) is omitted.
func (s *Service) NearbyPlayers(ctx context.Context, origin model.Coordinate, radiusKm float64, exclude model.PlayerID) ([]NearbyPlayer, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []NearbyPlayer
	for _, player := range players {
		if player.ID == exclude {
			continue
		}
		distance := model.DistanceKm(origin, player.Location)
		if distance < radiusKm {
			nearby = append(nearby, NearbyPlayer{Player: player, DistanceKm: distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	return nearby, nil
}

// NearbyMatches returns joinable matches (not started, not full) strictly
// within radiusKm of the origin, sorted nearest first
func (s *Service) NearbyMatches(ctx context.Context, origin model.Coordinate, radiusKm float64) ([]NearbyMatch, error) {
	matches, err := s.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []NearbyMatch
	for _, match := range matches {
		if match.Started || match.IsFull() {
			continue
		}
		distance := model.DistanceKm(origin, match.Location)
		if distance < radiusKm {
			nearby = append(nearby, NearbyMatch{Match: match, DistanceKm: distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	return nearby, nil
}

// AllMatches returns every match annotated with its distance from the origin
func (s *Service) AllMatches(ctx context.Context, origin model.Coordinate) ([]NearbyMatch, error) {
	matches, err := s.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	annotated := make([]NearbyMatch, 0, len(matches))
	for _, match := range matches {
		annotated = append(annotated, NearbyMatch{
			Match:      match,
			DistanceKm: model.DistanceKm(origin, match.Location),
		})
	}

	sort.Slice(annotated, func(i, j int) bool {
		return annotated[i].DistanceKm < annotated[j].DistanceKm
	})
	return annotated, nil
}

// MatchesOfFriends returns the matches hosted by the player's friends
func (s *Service) MatchesOfFriends(ctx context.Context, playerID model.PlayerID) ([]*model.Match, error) {
	friends, err := s.social.FriendsOf(ctx, playerID)
	if err != nil {
		return nil, err
	}

	var matches []*model.Match
	for _, friend := range friends {
		match, err := s.storage.GetMatchByHost(ctx, friend.ID)
		if errors.Is(err, model.ErrMatchNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// VisibleHiders returns the uncaught, visible hiders in the hunter's match,
// annotated with their distance from the hunter and sorted nearest first
func (s *Service) VisibleHiders(ctx context.Context, hunterID model.PlayerID) ([]NearbyPlayer, error) {
	hunter, match, err := s.memberInMatch(ctx, hunterID)
	if err != nil {
		return nil, err
	}
	if match.GetMember(hunterID).Role != model.RoleHunter {
		return nil, model.ErrNotAHunter
	}

	return s.visibleOpponents(ctx, hunter, match, model.RoleHider)
}

// VisibleHunters returns the hunters in the hider's match with distances.
// Hunters are always visible to hiders.
func (s *Service) VisibleHunters(ctx context.Context, hiderID model.PlayerID) ([]NearbyPlayer, error) {
	hider, match, err := s.memberInMatch(ctx, hiderID)
	if err != nil {
		return nil, err
	}
	if match.GetMember(hiderID).Role != model.RoleHider {
		return nil, model.ErrNotAHider
	}

	return s.visibleOpponents(ctx, hider, match, model.RoleHunter)
}

// NearestHider finds the closest visible hider within maxRadiusMeters of the
// hunter. It distinguishes the hunter-win condition from an empty search:
// ErrNoHidersLeft means no uncaught hiders remain in the match at all, while
// ErrNoHiderNearby means hiders remain but none is visible within range.
func (s *Service) NearestHider(ctx context.Context, hunterID model.PlayerID, maxRadiusMeters float64) (*model.Player, float64, error) {
	hunter, match, err := s.memberInMatch(ctx, hunterID)
	if err != nil {
		return nil, 0, err
	}
	if match.GetMember(hunterID).Role != model.RoleHunter {
		return nil, 0, model.ErrNotAHunter
	}

	remaining := 0
	for _, member := range match.MembersWithRole(model.RoleHider) {
		if !member.Caught {
			remaining++
		}
	}
	if remaining == 0 {
		return nil, 0, model.ErrNoHidersLeft
	}

	candidates, err := s.visibleOpponents(ctx, hunter, match, model.RoleHider)
	if err != nil {
		return nil, 0, err
	}
	if len(candidates) == 0 {
		return nil, 0, model.ErrNoHiderNearby
	}

	nearest := candidates[0]
	meters := nearest.DistanceKm * 1000
	if meters >= maxRadiusMeters {
		return nil, 0, model.ErrNoHiderNearby
	}
	return nearest.Player, meters, nil
}

// NonFriendPlayers returns every player who could still be befriended: not
// the player themself, not already a friend, and with no request pending in
// either direction. Results carry the distance from the player and are
// sorted nearest first.
func (s *Service) NonFriendPlayers(ctx context.Context, playerID model.PlayerID) ([]NearbyPlayer, error) {
	self, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	excluded := map[model.PlayerID]bool{playerID: true}

	friends, err := s.social.FriendsOf(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for _, friend := range friends {
		excluded[friend.ID] = true
	}

	incoming, err := s.storage.ListFriendRequestsFor(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for _, req := range incoming {
		excluded[req.Requester] = true
	}

	outgoing, err := s.storage.ListFriendRequestsFrom(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for _, req := range outgoing {
		excluded[req.Recipient] = true
	}

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []NearbyPlayer
	for _, player := range players {
		if excluded[player.ID] {
			continue
		}
		candidates = append(candidates, NearbyPlayer{
			Player:     player,
			DistanceKm: model.DistanceKm(self.Location, player.Location),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})
	return candidates, nil
}

// memberInMatch resolves a player and the match they are in
func (s *Service) memberInMatch(ctx context.Context, playerID model.PlayerID) (*model.Player, *model.Match, error) {
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}
	if !player.InMatch() {
		return nil, nil, model.ErrNotInMatch
	}

	match, err := s.storage.GetMatch(ctx, *player.CurrentMatch)
	if errors.Is(err, model.ErrMatchNotFound) {
		return nil, nil, model.ErrNotInMatch
	}
	if err != nil {
		return nil, nil, err
	}
	if match.GetMember(playerID) == nil {
		return nil, nil, model.ErrNotInMatch
	}

	return player, match, nil
}

// visibleOpponents lists the match members with the given role that the
// observer can see, sorted by distance. Invisible and caught hiders are
// hidden from hunters; hunters are never hidden.
func (s *Service) visibleOpponents(ctx context.Context, observer *model.Player, match *model.Match, role model.Role) ([]NearbyPlayer, error) {
	var visible []NearbyPlayer
	for _, member := range match.MembersWithRole(role) {
		if role == model.RoleHider && (member.Invisible || member.Caught) {
			continue
		}

		player, err := s.storage.GetPlayer(ctx, member.PlayerID)
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		visible = append(visible, NearbyPlayer{
			Player:     player,
			DistanceKm: model.DistanceKm(observer.Location, player.Location),
		})
	}

	sort.Slice(visible, func(i, j int) bool {
		return visible[i].DistanceKm < visible[j].DistanceKm
	})
	return visible, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	NearbyPlayers(ctx context.Context, origin model.Coordinate, radiusKm float64, exclude model.PlayerID) ([]NearbyPlayer, error)
	NearbyMatches(ctx context.Context, origin model.Coordinate, radiusKm float64) ([]NearbyMatch, error)
	AllMatches(ctx context.Context, origin model.Coordinate) ([]NearbyMatch, error)
	MatchesOfFriends(ctx context.Context, playerID model.PlayerID) ([]*model.Match, error)
	VisibleHiders(ctx context.Context, hunterID model.PlayerID) ([]NearbyPlayer, error)
	VisibleHunters(ctx context.Context, hiderID model.PlayerID) ([]NearbyPlayer, error)
	NearestHider(ctx context.Context, hunterID model.PlayerID, maxRadiusMeters float64) (*model.Player, float64, error)
	NonFriendPlayers(ctx context.Context, playerID model.PlayerID) ([]NearbyPlayer, error)
}

var _ ServiceInterface = (*Service)(nil)
