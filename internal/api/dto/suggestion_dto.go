package dto

import (
	"time"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

// CreateSuggestionRequest payload.
type CreateSuggestionRequest struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Category    domain.SuggestionCategory `json:"category"`
	Tags        []string                  `json:"tags"`
}

// UpdateSuggestionRequest carries a partial merge; absent fields are left alone.
type UpdateSuggestionRequest struct {
	Title       *string                    `json:"title"`
	Description *string                    `json:"description"`
	Category    *domain.SuggestionCategory `json:"category"`
	Status      *domain.SuggestionStatus   `json:"status"`
	Priority    *domain.Priority           `json:"priority"`
	Votes       *int                       `json:"votes"`
	AdminNotes  *string                    `json:"admin_notes"`
	Tags        *[]string                  `json:"tags"`
}

// SubmitVoteRequest payload.
type SubmitVoteRequest struct {
	VoteType domain.VoteType `json:"vote_type"`
}

// VoteSessionResponse reports session state with its recomputed tally.
type VoteSessionResponse struct {
	IsActive  bool      `json:"is_active"`
	StartedAt time.Time `json:"started_at"`
	UpVotes   int       `json:"up_votes"`
	DownVotes int       `json:"down_votes"`
	Total     int       `json:"total"`
}

// SuggestionResponse is the full representation returned by all suggestion
// endpoints.
type SuggestionResponse struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Category    domain.SuggestionCategory `json:"category"`
	Status      domain.SuggestionStatus   `json:"status"`
	Priority    domain.Priority           `json:"priority"`
	AuthorID    string                    `json:"author_id"`
	AuthorName  string                    `json:"author_name"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
	Votes       int                       `json:"votes"`
	AdminNotes  string                    `json:"admin_notes,omitempty"`
	Tags        []string                  `json:"tags,omitempty"`
	VoteSession *VoteSessionResponse      `json:"vote_session,omitempty"`
}

// TagCountResponse pairs a tag with its usage count.
type TagCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
