package experience

import (
	"context"
	"errors"

	"github.com/manhunt-game/manhunt-go/internal/model"
	"github.com/manhunt-game/manhunt-go/internal/storage"
)

// Service aggregates shared-experience statistics over match members
type Service struct {
	storage storage.Storage
}

// New creates a new experience Service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// AverageForMatch computes the mean shared experience over every member
// pair of the match that has a friendship. A match with no befriended pairs
// averages to zero.
func (s *Service) AverageForMatch(ctx context.Context, matchID model.MatchID) (float64, error) {
	match, err := s.storage.GetMatch(ctx, matchID)
	if err != nil {
		return 0, err
	}

	total := 0
	pairs := 0
	for i := 0; i < len(match.Members); i++ {
		for j := i + 1; j < len(match.Members); j++ {
			friendship, err := s.storage.GetFriendship(ctx, match.Members[i].PlayerID, match.Members[j].PlayerID)
			if errors.Is(err, model.ErrNotFriends) {
				continue
			}
			if err != nil {
				return 0, err
			}
			total += friendship.Experience
			pairs++
		}
	}

	if pairs == 0 {
		return 0, nil
	}
	return float64(total) / float64(pairs), nil
}

// Interface for dependency injection
type ServiceInterface interface {
	AverageForMatch(ctx context.Context, matchID model.MatchID) (float64, error)
}

var _ ServiceInterface = (*Service)(nil)
