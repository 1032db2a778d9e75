package storage

import (
	"context"

	"github.com/manhunt-game/manhunt-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	GetMatchByHost(ctx context.Context, hostID model.PlayerID) (*model.Match, error)
	ListMatches(ctx context.Context) ([]*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error

	// Friendship operations. Pair arguments are accepted in either order;
	// implementations canonicalize with model.PairKey.
	SaveFriendship(ctx context.Context, friendship *model.Friendship) error
	GetFriendship(ctx context.Context, a, b model.PlayerID) (*model.Friendship, error)
	ListFriendshipsOf(ctx context.Context, playerID model.PlayerID) ([]*model.Friendship, error)
	DeleteFriendship(ctx context.Context, a, b model.PlayerID) error

	// Friend request operations, keyed by the ordered (requester, recipient) pair
	SaveFriendRequest(ctx context.Context, request *model.FriendRequest) error
	GetFriendRequest(ctx context.Context, requester, recipient model.PlayerID) (*model.FriendRequest, error)
	ListFriendRequestsFor(ctx context.Context, recipient model.PlayerID) ([]*model.FriendRequest, error)
	ListFriendRequestsFrom(ctx context.Context, requester model.PlayerID) ([]*model.FriendRequest, error)
	DeleteFriendRequest(ctx context.Context, requester, recipient model.PlayerID) error
}
