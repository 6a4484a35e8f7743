package domain

import "time"

// VoteType is an up or down ballot.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether the vote type is one of the enumerated values.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote is a single user's ballot within a vote session. At most one Vote
// per UserID exists in a session; a repeat vote overwrites the prior one.
type Vote struct {
	UserID   string
	VoteType VoteType
}

// VoteSession is a suggestion-scoped polling window. Ending a session keeps
// the accumulated votes so the historical tally stays visible; restarting
// reactivates the same session without clearing them.
type VoteSession struct {
	IsActive  bool
	StartedAt time.Time
	Votes     []Vote
}

// VoteTally is the computed result of a session.
type VoteTally struct {
	Up    int
	Down  int
	Total int
}

// Tally recomputes the up/down counts from the vote collection.
func (s *VoteSession) Tally() VoteTally {
	if s == nil {
		return VoteTally{}
	}
	tally := VoteTally{Total: len(s.Votes)}
	for _, vote := range s.Votes {
		switch vote.VoteType {
		case VoteUp:
			tally.Up++
		case VoteDown:
			tally.Down++
		}
	}
	return tally
}

// VoteByUser returns the user's current ballot, if any.
func (s *VoteSession) VoteByUser(userID string) (Vote, bool) {
	if s == nil {
		return Vote{}, false
	}
	for _, vote := range s.Votes {
		if vote.UserID == userID {
			return vote, true
		}
	}
	return Vote{}, false
}

// Upsert records the user's ballot, replacing any prior one.
func (s *VoteSession) Upsert(vote Vote) {
	for i := range s.Votes {
		if s.Votes[i].UserID == vote.UserID {
			s.Votes[i].VoteType = vote.VoteType
			return
		}
	}
	s.Votes = append(s.Votes, vote)
}

// NewVoteSession allocates an active session with an empty tally.
func NewVoteSession(now time.Time) *VoteSession {
	return &VoteSession{
		IsActive:  true,
		StartedAt: now,
		Votes:     []Vote{},
	}
}
