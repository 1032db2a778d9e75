package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	keys, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Guest player may have expired
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	key := playerKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, playersIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	// Look up player ID from username index
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	key := matchKey(match.ID)

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.MatchTTL)
	pipe.SAdd(ctx, matchesIndexKey(), key)
	pipe.Set(ctx, hostIndexKey(match.HostID), string(match.ID), s.cfg.MatchTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) GetMatchByHost(ctx context.Context, hostID model.PlayerID) (*model.Match, error) {
	matchIDStr, err := s.client.Get(ctx, hostIndexKey(hostID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	return s.GetMatch(ctx, model.MatchID(matchIDStr))
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.Match, error) {
	keys, err := s.client.SMembers(ctx, matchesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Match{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Match may have expired
		}
		var match model.Match
		if err := json.Unmarshal([]byte(val.(string)), &match); err != nil {
			continue // Skip invalid data
		}
		matches = append(matches, &match)
	}

	return matches, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	// Fetch first so the host index entry can be cleared too
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			return nil
		}
		return err
	}

	key := matchKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, matchesIndexKey(), key)
	pipe.Del(ctx, hostIndexKey(match.HostID))
	_, err = pipe.Exec(ctx)
	return err
}

// Friendship operations

func (s *Storage) SaveFriendship(ctx context.Context, friendship *model.Friendship) error {
	data, err := json.Marshal(friendship)
	if err != nil {
		return err
	}

	key := friendshipKey(friendship.PlayerA, friendship.PlayerB)

	// Use pipeline for atomic save + per-player index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0) // Friendships never expire
	pipe.SAdd(ctx, friendshipsIndexKey(friendship.PlayerA), key)
	pipe.SAdd(ctx, friendshipsIndexKey(friendship.PlayerB), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetFriendship(ctx context.Context, a, b model.PlayerID) (*model.Friendship, error) {
	data, err := s.client.Get(ctx, friendshipKey(a, b)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotFriends
		}
		return nil, err
	}

	var friendship model.Friendship
	if err := json.Unmarshal(data, &friendship); err != nil {
		return nil, err
	}
	return &friendship, nil
}

func (s *Storage) ListFriendshipsOf(ctx context.Context, playerID model.PlayerID) ([]*model.Friendship, error) {
	keys, err := s.client.SMembers(ctx, friendshipsIndexKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	friendships := make([]*model.Friendship, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var friendship model.Friendship
		if err := json.Unmarshal([]byte(val.(string)), &friendship); err != nil {
			continue // Skip invalid data
		}
		friendships = append(friendships, &friendship)
	}

	return friendships, nil
}

func (s *Storage) DeleteFriendship(ctx context.Context, a, b model.PlayerID) error {
	key := friendshipKey(a, b)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, friendshipsIndexKey(a), key)
	pipe.SRem(ctx, friendshipsIndexKey(b), key)
	_, err := pipe.Exec(ctx)
	return err
}

// Friend request operations

func (s *Storage) SaveFriendRequest(ctx context.Context, request *model.FriendRequest) error {
	data, err := json.Marshal(request)
	if err != nil {
		return err
	}

	key := friendRequestKey(request.Requester, request.Recipient)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.RequestTTL)
	pipe.SAdd(ctx, requestsForIndexKey(request.Recipient), key)
	pipe.SAdd(ctx, requestsFromIndexKey(request.Requester), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetFriendRequest(ctx context.Context, requester, recipient model.PlayerID) (*model.FriendRequest, error) {
	data, err := s.client.Get(ctx, friendRequestKey(requester, recipient)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRequestNotFound
		}
		return nil, err
	}

	var request model.FriendRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *Storage) ListFriendRequestsFor(ctx context.Context, recipient model.PlayerID) ([]*model.FriendRequest, error) {
	return s.listRequests(ctx, requestsForIndexKey(recipient))
}

func (s *Storage) ListFriendRequestsFrom(ctx context.Context, requester model.PlayerID) ([]*model.FriendRequest, error) {
	return s.listRequests(ctx, requestsFromIndexKey(requester))
}

func (s *Storage) listRequests(ctx context.Context, indexKey string) ([]*model.FriendRequest, error) {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	requests := make([]*model.FriendRequest, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Request may have expired
		}
		var request model.FriendRequest
		if err := json.Unmarshal([]byte(val.(string)), &request); err != nil {
			continue // Skip invalid data
		}
		requests = append(requests, &request)
	}

	return requests, nil
}

func (s *Storage) DeleteFriendRequest(ctx context.Context, requester, recipient model.PlayerID) error {
	key := friendRequestKey(requester, recipient)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, requestsForIndexKey(recipient), key)
	pipe.SRem(ctx, requestsFromIndexKey(requester), key)
	_, err := pipe.Exec(ctx)
	return err
}
