package memory

import (
	"context"
	"sync"

	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	matches           map[model.MatchID]*model.Match
	hostIndex         map[model.PlayerID]model.MatchID
	friendships       map[pairKey]*model.Friendship
	friendRequests    map[requestKey]*model.FriendRequest
}

type pairKey struct {
	a model.PlayerID // canonical order, a < b
	b model.PlayerID
}

type requestKey struct {
	requester model.PlayerID
	recipient model.PlayerID
}

func newPairKey(a, b model.PlayerID) pairKey {
	first, second := model.PairKey(a, b)
	return pairKey{a: first, b: second}
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		matches:           make(map[model.MatchID]*model.Match),
		hostIndex:         make(map[model.PlayerID]model.MatchID),
		friendships:       make(map[pairKey]*model.Friendship),
		friendRequests:    make(map[requestKey]*model.FriendRequest),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = match
	s.hostIndex[match.HostID] = match.ID
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) GetMatchByHost(ctx context.Context, hostID model.PlayerID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.hostIndex[hostID]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]*model.Match, 0, len(s.matches))
	for _, match := range s.matches {
		matches = append(matches, match)
	}
	return matches, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if ok && s.hostIndex[match.HostID] == id {
		delete(s.hostIndex, match.HostID)
	}
	delete(s.matches, id)
	return nil
}

// Friendship operations

func (s *Storage) SaveFriendship(ctx context.Context, friendship *model.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.friendships[newPairKey(friendship.PlayerA, friendship.PlayerB)] = friendship
	return nil
}

func (s *Storage) GetFriendship(ctx context.Context, a, b model.PlayerID) (*model.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	friendship, ok := s.friendships[newPairKey(a, b)]
	if !ok {
		return nil, model.ErrNotFriends
	}
	return friendship, nil
}

func (s *Storage) ListFriendshipsOf(ctx context.Context, playerID model.PlayerID) ([]*model.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var friendships []*model.Friendship
	for key, friendship := range s.friendships {
		if key.a == playerID || key.b == playerID {
			friendships = append(friendships, friendship)
		}
	}
	return friendships, nil
}

func (s *Storage) DeleteFriendship(ctx context.Context, a, b model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.friendships, newPairKey(a, b))
	return nil
}

// Friend request operations

func (s *Storage) SaveFriendRequest(ctx context.Context, request *model.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := requestKey{requester: request.Requester, recipient: request.Recipient}
	s.friendRequests[key] = request
	return nil
}

func (s *Storage) GetFriendRequest(ctx context.Context, requester, recipient model.PlayerID) (*model.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	request, ok := s.friendRequests[requestKey{requester: requester, recipient: recipient}]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	return request, nil
}

func (s *Storage) ListFriendRequestsFor(ctx context.Context, recipient model.PlayerID) ([]*model.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var requests []*model.FriendRequest
	for key, request := range s.friendRequests {
		if key.recipient == recipient {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (s *Storage) ListFriendRequestsFrom(ctx context.Context, requester model.PlayerID) ([]*model.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var requests []*model.FriendRequest
	for key, request := range s.friendRequests {
		if key.requester == requester {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (s *Storage) DeleteFriendRequest(ctx context.Context, requester, recipient model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.friendRequests, requestKey{requester: requester, recipient: recipient})
	return nil
}
