package redis

import (
	"fmt"

	"github.com/manhunt-game/manhunt-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "manhunt"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchesIndexKey returns the Redis key for the SET of all match keys
func matchesIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}

// hostIndexKey returns the Redis key for the host player_id -> match_id index
func hostIndexKey(hostID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:match_host:%s", keyPrefix, hostID)
}

// friendshipKey returns the Redis key for a Friendship. The pair is
// canonicalized so both orders map to the same key.
func friendshipKey(a, b model.PlayerID) string {
	first, second := model.PairKey(a, b)
	return fmt.Sprintf("%s:friendship:%s:%s", keyPrefix, first, second)
}

// friendshipsIndexKey returns the Redis key for the SET of friendship keys
// involving a player
func friendshipsIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:friendships:%s", keyPrefix, playerID)
}

// friendRequestKey returns the Redis key for a FriendRequest (directed)
func friendRequestKey(requester, recipient model.PlayerID) string {
	return fmt.Sprintf("%s:friend_request:%s:%s", keyPrefix, requester, recipient)
}

// requestsForIndexKey returns the Redis key for the SET of request keys
// addressed to a recipient
func requestsForIndexKey(recipient model.PlayerID) string {
	return fmt.Sprintf("%s:idx:requests_for:%s", keyPrefix, recipient)
}

// requestsFromIndexKey returns the Redis key for the SET of request keys
// sent by a requester
func requestsFromIndexKey(requester model.PlayerID) string {
	return fmt.Sprintf("%s:idx:requests_from:%s", keyPrefix, requester)
}
