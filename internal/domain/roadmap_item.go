package domain

import "time"

// RoadmapStatus enumerates roadmap planning states.
type RoadmapStatus string

const (
	RoadmapStatusPlanned    RoadmapStatus = "planned"
	RoadmapStatusInProgress RoadmapStatus = "in-progress"
	RoadmapStatusCompleted  RoadmapStatus = "completed"
)

// RoadmapItem is a planned deliverable on the public roadmap.
//
// RelatedSuggestions holds suggestion ids as a non-owning cross-reference.
// Referential integrity is not enforced: stale ids are tolerated and simply
// fail to resolve when the roadmap view joins them back to suggestions.
type RoadmapItem struct {
	ID                  string
	Title               string
	Description         string
	Status              RoadmapStatus
	Priority            Priority
	Quarter             string
	EstimatedCompletion *time.Time
	AssignedTo          string
	RelatedSuggestions  []string
	CreatedAt           time.Time
}
