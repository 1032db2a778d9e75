package memory

import (
	"context"
	"testing"
	"time"

	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		Location:    model.Coordinate{Latitude: 51.5, Longitude: -0.12},
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.Equal(player.Location, retrieved.Location)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	match := &model.Match{
		ID:     "match-1",
		HostID: "player-1",
		Name:   "Park game",
		Config: model.MatchConfig{MaxHunters: 2, MaxHiders: 3},
		Members: []model.MatchMember{
			{PlayerID: "player-1"},
		},
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(match.ID, retrieved.ID)
	s.Equal(match.HostID, retrieved.HostID)
	s.Len(retrieved.Members, 1)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestGetMatchByHost() {
	match := &model.Match{ID: "match-1", HostID: "player-1"}
	_ = s.storage.SaveMatch(s.ctx, match)

	retrieved, err := s.storage.GetMatchByHost(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.MatchID("match-1"), retrieved.ID)

	_, err = s.storage.GetMatchByHost(s.ctx, "player-2")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestListMatches() {
	_ = s.storage.SaveMatch(s.ctx, &model.Match{ID: "match-1", HostID: "p1"})
	_ = s.storage.SaveMatch(s.ctx, &model.Match{ID: "match-2", HostID: "p2"})

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Len(matches, 2)
}

func (s *StorageSuite) TestDeleteMatchClearsHostIndex() {
	match := &model.Match{ID: "match-1", HostID: "player-1"}
	_ = s.storage.SaveMatch(s.ctx, match)

	err := s.storage.DeleteMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "match-1")
	s.ErrorIs(err, model.ErrMatchNotFound)

	_, err = s.storage.GetMatchByHost(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// Friendship tests

func (s *StorageSuite) TestSaveAndGetFriendshipEitherOrder() {
	friendship := model.NewFriendship("player-2", "player-1", time.Now())
	friendship.Experience = 10

	err := s.storage.SaveFriendship(s.ctx, friendship)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetFriendship(s.ctx, "player-1", "player-2")
	s.Require().NoError(err)
	s.Equal(10, retrieved.Experience)

	retrieved, err = s.storage.GetFriendship(s.ctx, "player-2", "player-1")
	s.Require().NoError(err)
	s.Equal(10, retrieved.Experience)
}

func (s *StorageSuite) TestGetFriendshipNotFound() {
	_, err := s.storage.GetFriendship(s.ctx, "player-1", "player-2")
	s.ErrorIs(err, model.ErrNotFriends)
}

func (s *StorageSuite) TestListFriendshipsOf() {
	_ = s.storage.SaveFriendship(s.ctx, model.NewFriendship("player-1", "player-2", time.Now()))
	_ = s.storage.SaveFriendship(s.ctx, model.NewFriendship("player-3", "player-1", time.Now()))
	_ = s.storage.SaveFriendship(s.ctx, model.NewFriendship("player-2", "player-3", time.Now()))

	friendships, err := s.storage.ListFriendshipsOf(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Len(friendships, 2)
}

func (s *StorageSuite) TestDeleteFriendshipEitherOrder() {
	_ = s.storage.SaveFriendship(s.ctx, model.NewFriendship("player-1", "player-2", time.Now()))

	err := s.storage.DeleteFriendship(s.ctx, "player-2", "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetFriendship(s.ctx, "player-1", "player-2")
	s.ErrorIs(err, model.ErrNotFriends)
}

// Friend request tests

func (s *StorageSuite) TestSaveAndGetFriendRequest() {
	req := &model.FriendRequest{Requester: "player-1", Recipient: "player-2", CreatedAt: time.Now()}

	err := s.storage.SaveFriendRequest(s.ctx, req)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetFriendRequest(s.ctx, "player-1", "player-2")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.Requester)

	// Directed: the reverse pair is a different request
	_, err = s.storage.GetFriendRequest(s.ctx, "player-2", "player-1")
	s.ErrorIs(err, model.ErrRequestNotFound)
}

func (s *StorageSuite) TestListFriendRequestsForAndFrom() {
	_ = s.storage.SaveFriendRequest(s.ctx, &model.FriendRequest{Requester: "player-1", Recipient: "player-3"})
	_ = s.storage.SaveFriendRequest(s.ctx, &model.FriendRequest{Requester: "player-2", Recipient: "player-3"})
	_ = s.storage.SaveFriendRequest(s.ctx, &model.FriendRequest{Requester: "player-1", Recipient: "player-2"})

	forThree, err := s.storage.ListFriendRequestsFor(s.ctx, "player-3")
	s.Require().NoError(err)
	s.Len(forThree, 2)

	fromOne, err := s.storage.ListFriendRequestsFrom(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Len(fromOne, 2)
}

func (s *StorageSuite) TestDeleteFriendRequest() {
	_ = s.storage.SaveFriendRequest(s.ctx, &model.FriendRequest{Requester: "player-1", Recipient: "player-2"})

	err := s.storage.DeleteFriendRequest(s.ctx, "player-1", "player-2")
	s.Require().NoError(err)

	_, err = s.storage.GetFriendRequest(s.ctx, "player-1", "player-2")
	s.ErrorIs(err, model.ErrRequestNotFound)
}
