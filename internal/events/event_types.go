package events

import (
	"time"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSuggestionCreated       EventType = "suggestion_created"
	EventSuggestionStatusChanged EventType = "suggestion_status_changed"
	EventVoteSessionStarted      EventType = "vote_session_started"
	EventVoteSessionEnded        EventType = "vote_session_ended"
	EventVoteCast                EventType = "vote_cast"
	EventRoadmapItemCreated      EventType = "roadmap_item_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	SuggestionID string      `json:"suggestion_id,omitempty"`
	ActorID      string      `json:"actor_id,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// SuggestionCreatedPayload payload.
type SuggestionCreatedPayload struct {
	Title    string                    `json:"title"`
	Category domain.SuggestionCategory `json:"category"`
	AuthorID string                    `json:"author_id"`
}

// SuggestionStatusChangedPayload payload.
type SuggestionStatusChangedPayload struct {
	OldStatus domain.SuggestionStatus `json:"old_status"`
	NewStatus domain.SuggestionStatus `json:"new_status"`
}

// VoteCastPayload payload.
type VoteCastPayload struct {
	UserID   string           `json:"user_id"`
	VoteType domain.VoteType  `json:"vote_type"`
	Tally    domain.VoteTally `json:"tally"`
}

// VoteSessionPayload payload for session start/end.
type VoteSessionPayload struct {
	StartedAt  time.Time `json:"started_at"`
	TotalVotes int       `json:"total_votes"`
}

// RoadmapItemCreatedPayload payload.
type RoadmapItemCreatedPayload struct {
	RoadmapItemID string `json:"roadmap_item_id"`
	Title         string `json:"title"`
	Quarter       string `json:"quarter"`
}
