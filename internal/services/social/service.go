package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/manhunt-game/manhunt-go/internal/dependencies/clock"
	"github.com/manhunt-game/manhunt-go/internal/dependencies/locking"
	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/storage"
)

// Service manages the friendship graph: friend requests, friendships and
// the shared experience counter on each friendship.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	// locks serializes request/accept/decline per player pair so that
	// duplicate requests and mirror cleanup cannot interleave
	locks *locking.KeyedMutex
}

// New creates a new social Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		locks:   locking.New(),
	}
}

// pairLockKey returns the lock key for an unordered player pair
func pairLockKey(a, b model.PlayerID) string {
	first, second := model.PairKey(a, b)
	return fmt.Sprintf("%s|%s", first, second)
}

// SendRequest creates a pending friend request from requester to recipient
func (s *Service) SendRequest(ctx context.Context, requester, recipient model.PlayerID) error {
	if requester == recipient {
		return model.ErrSelfRequest
	}

	// Both players must exist
	if _, err := s.storage.GetPlayer(ctx, requester); err != nil {
		return err
	}
	if _, err := s.storage.GetPlayer(ctx, recipient); err != nil {
		return err
	}

	unlock := s.locks.Lock(pairLockKey(requester, recipient))
	defer unlock()

	_, err := s.storage.GetFriendship(ctx, requester, recipient)
	if err == nil {
		return model.ErrAlreadyFriends
	}
	if !errors.Is(err, model.ErrNotFriends) {
		return err
	}

	// A pending request in either direction blocks a new one
	if _, err := s.storage.GetFriendRequest(ctx, requester, recipient); err == nil {
		return model.ErrRequestAlreadySent
	} else if !errors.Is(err, model.ErrRequestNotFound) {
		return err
	}
	if _, err := s.storage.GetFriendRequest(ctx, recipient, requester); err == nil {
		return model.ErrRequestAlreadySent
	} else if !errors.Is(err, model.ErrRequestNotFound) {
		return err
	}

	return s.storage.SaveFriendRequest(ctx, &model.FriendRequest{
		Requester: requester,
		Recipient: recipient,
		CreatedAt: s.clock.Now(),
	})
}

// RespondToRequest accepts or declines a pending request. Either way the
// request is consumed, along with any mirror request in the opposite
// direction, so no pending edges survive between the pair.
func (s *Service) RespondToRequest(ctx context.Context, requester, recipient model.PlayerID, accept bool) error {
	unlock := s.locks.Lock(pairLockKey(requester, recipient))
	defer unlock()

	if _, err := s.storage.GetFriendRequest(ctx, requester, recipient); err != nil {
		return err
	}

	if accept {
		if err := s.storage.SaveFriendship(ctx, model.NewFriendship(requester, recipient, s.clock.Now())); err != nil {
			return err
		}
	}

	if err := s.storage.DeleteFriendRequest(ctx, requester, recipient); err != nil {
		return err
	}
	// Mirror cleanup: a crossed request from the other side is consumed too
	return s.storage.DeleteFriendRequest(ctx, recipient, requester)
}

// AreFriends reports whether the two players are friends
func (s *Service) AreFriends(ctx context.Context, a, b model.PlayerID) (bool, error) {
	_, err := s.storage.GetFriendship(ctx, a, b)
	if errors.Is(err, model.ErrNotFriends) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FriendsOf returns the player records of everyone the player is friends with
func (s *Service) FriendsOf(ctx context.Context, playerID model.PlayerID) ([]*model.Player, error) {
	friendships, err := s.storage.ListFriendshipsOf(ctx, playerID)
	if err != nil {
		return nil, err
	}

	friends := make([]*model.Player, 0, len(friendships))
	for _, f := range friendships {
		friend, err := s.storage.GetPlayer(ctx, f.Other(playerID))
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

// PendingRequestsFor returns the requests awaiting the player's response
func (s *Service) PendingRequestsFor(ctx context.Context, playerID model.PlayerID) ([]*model.FriendRequest, error) {
	return s.storage.ListFriendRequestsFor(ctx, playerID)
}

// ExperienceBetween returns the shared experience of a friend pair
func (s *Service) ExperienceBetween(ctx context.Context, a, b model.PlayerID) (int, error) {
	friendship, err := s.storage.GetFriendship(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return friendship.Experience, nil
}

// RemoveFriendship deletes the friendship between the pair
func (s *Service) RemoveFriendship(ctx context.Context, a, b model.PlayerID) error {
	unlock := s.locks.Lock(pairLockKey(a, b))
	defer unlock()

	if _, err := s.storage.GetFriendship(ctx, a, b); err != nil {
		return err
	}
	return s.storage.DeleteFriendship(ctx, a, b)
}

// AddExperienceWithFriends bumps the experience counter on every friendship
// the player is part of, typically after a match finishes
func (s *Service) AddExperienceWithFriends(ctx context.Context, playerID model.PlayerID, amount int) error {
	friendships, err := s.storage.ListFriendshipsOf(ctx, playerID)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	for _, f := range friendships {
		f.Experience += amount
		f.UpdatedAt = now
		if err := s.storage.SaveFriendship(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	SendRequest(ctx context.Context, requester, recipient model.PlayerID) error
	RespondToRequest(ctx context.Context, requester, recipient model.PlayerID, accept bool) error
	AreFriends(ctx context.Context, a, b model.PlayerID) (bool, error)
	FriendsOf(ctx context.Context, playerID model.PlayerID) ([]*model.Player, error)
	PendingRequestsFor(ctx context.Context, playerID model.PlayerID) ([]*model.FriendRequest, error)
	ExperienceBetween(ctx context.Context, a, b model.PlayerID) (int, error)
	RemoveFriendship(ctx context.Context, a, b model.PlayerID) error
	AddExperienceWithFriends(ctx context.Context, playerID model.PlayerID, amount int) error
}

var _ ServiceInterface = (*Service)(nil)
