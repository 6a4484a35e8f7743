package domain

import "time"

// SuggestionStatus enumerates lifecycle states for suggestions.
// Transitions are deliberately unconstrained: any status may follow any other.
type SuggestionStatus string

const (
	SuggestionStatusPending    SuggestionStatus = "pending"
	SuggestionStatusApproved   SuggestionStatus = "approved"
	SuggestionStatusInProgress SuggestionStatus = "in-progress"
	SuggestionStatusCompleted  SuggestionStatus = "completed"
	SuggestionStatusRejected   SuggestionStatus = "rejected"
)

// SuggestionCategory classifies what kind of request a suggestion is.
type SuggestionCategory string

const (
	CategoryFeature     SuggestionCategory = "feature"
	CategoryImprovement SuggestionCategory = "improvement"
	CategoryBug         SuggestionCategory = "bug"
	CategoryOther       SuggestionCategory = "other"
)

// Priority is shared by suggestions and roadmap items.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Suggestion is the aggregate for employee-submitted ideas.
//
// AuthorName is a snapshot taken at creation time and is never refreshed
// when the author later renames their profile. Votes is the legacy flat
// counter, independent of the per-session tallies in VoteSession.
type Suggestion struct {
	ID          string
	Title       string
	Description string
	Category    SuggestionCategory
	Status      SuggestionStatus
	Priority    Priority
	AuthorID    string
	AuthorName  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Votes       int
	AdminNotes  string
	Tags        []string
	VoteSession *VoteSession
}
