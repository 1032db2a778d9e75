package model

import "time"

// Friendship is the single undirected record for a pair of friends.
// PlayerA and PlayerB are stored in canonical order (PlayerA < PlayerB) so
// that one record covers both directions of every query; use NewFriendship
// or PairKey rather than filling the fields by hand.
type Friendship struct {
	PlayerA    PlayerID
	PlayerB    PlayerID
	Experience int // shared play experience, bumped by gameplay outcomes
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PairKey returns the two IDs in canonical storage order
func PairKey(a, b PlayerID) (PlayerID, PlayerID) {
	if b < a {
		return b, a
	}
	return a, b
}

// NewFriendship creates a friendship record for the pair, canonicalizing
// the order of the endpoints
func NewFriendship(a, b PlayerID, now time.Time) *Friendship {
	first, second := PairKey(a, b)
	return &Friendship{
		PlayerA:   first,
		PlayerB:   second,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Involves reports whether p is one of the friendship's endpoints
func (f *Friendship) Involves(p PlayerID) bool {
	return f.PlayerA == p || f.PlayerB == p
}

// Other returns the endpoint that is not p. Callers must ensure p is an
// endpoint of the friendship.
func (f *Friendship) Other(p PlayerID) PlayerID {
	if f.PlayerA == p {
		return f.PlayerB
	}
	return f.PlayerA
}

// FriendRequest is a pending directed edge from Requester to Recipient.
// At most one exists per ordered pair; accepting or declining also removes
// any mirror request in the opposite direction.
type FriendRequest struct {
	Requester PlayerID
	Recipient PlayerID
	CreatedAt time.Time
}
