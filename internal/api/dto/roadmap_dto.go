package dto

import (
	"time"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

// CreateRoadmapItemRequest payload.
type CreateRoadmapItemRequest struct {
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Status              domain.RoadmapStatus `json:"status"`
	Priority            domain.Priority      `json:"priority"`
	Quarter             string               `json:"quarter"`
	EstimatedCompletion *time.Time           `json:"estimated_completion"`
	AssignedTo          string               `json:"assigned_to"`
	RelatedSuggestions  []string             `json:"related_suggestions"`
}

// UpdateRoadmapItemRequest carries a partial merge; absent fields are left alone.
type UpdateRoadmapItemRequest struct {
	Title               *string               `json:"title"`
	Description         *string               `json:"description"`
	Status              *domain.RoadmapStatus `json:"status"`
	Priority            *domain.Priority      `json:"priority"`
	Quarter             *string               `json:"quarter"`
	EstimatedCompletion *time.Time            `json:"estimated_completion"`
	AssignedTo          *string               `json:"assigned_to"`
	RelatedSuggestions  *[]string             `json:"related_suggestions"`
}

// RoadmapItemResponse is the representation returned by roadmap endpoints.
// Related holds the suggestions whose ids still resolve; stale references
// are omitted.
type RoadmapItemResponse struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Status              domain.RoadmapStatus `json:"status"`
	Priority            domain.Priority      `json:"priority"`
	Quarter             string               `json:"quarter"`
	EstimatedCompletion *time.Time           `json:"estimated_completion,omitempty"`
	AssignedTo          string               `json:"assigned_to,omitempty"`
	RelatedSuggestions  []string             `json:"related_suggestions"`
	Related             []SuggestionResponse `json:"related,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}
