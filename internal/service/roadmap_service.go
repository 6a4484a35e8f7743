package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/suggestion-box/internal/domain"
	"github.com/spec-kit/suggestion-box/internal/events"
	"github.com/spec-kit/suggestion-box/internal/repository"
	apperrors "github.com/spec-kit/suggestion-box/pkg/util/errorutil"
)

// RoadmapService coordinates roadmap backlog management.
type RoadmapService struct {
	roadmap     repository.RoadmapRepository
	suggestions repository.SuggestionRepository
	dispatcher  events.Dispatcher
}

// RoadmapDependencies bundles collaborators for the roadmap service.
type RoadmapDependencies struct {
	RoadmapRepo    repository.RoadmapRepository
	SuggestionRepo repository.SuggestionRepository
	Dispatcher     events.Dispatcher
}

// RoadmapCreateInput describes roadmap item creation payload.
type RoadmapCreateInput struct {
	Title               string
	Description         string
	Status              domain.RoadmapStatus
	Priority            domain.Priority
	Quarter             string
	EstimatedCompletion *time.Time
	AssignedTo          string
	RelatedSuggestions  []string
}

// RoadmapUpdateInput carries a partial merge; nil fields are left alone.
type RoadmapUpdateInput struct {
	Title               *string
	Description         *string
	Status              *domain.RoadmapStatus
	Priority            *domain.Priority
	Quarter             *string
	EstimatedCompletion *time.Time
	AssignedTo          *string
	RelatedSuggestions  *[]string
}

// NewRoadmapService constructs the service.
func NewRoadmapService(deps RoadmapDependencies) *RoadmapService {
	return &RoadmapService{
		roadmap:     deps.RoadmapRepo,
		suggestions: deps.SuggestionRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create allocates a roadmap item.
func (s *RoadmapService) Create(ctx context.Context, input RoadmapCreateInput) (*domain.RoadmapItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	item := &domain.RoadmapItem{
		ID:                  uuid.NewString(),
		Title:               title,
		Description:         strings.TrimSpace(input.Description),
		Status:              input.Status,
		Priority:            input.Priority,
		Quarter:             input.Quarter,
		EstimatedCompletion: input.EstimatedCompletion,
		AssignedTo:          input.AssignedTo,
		RelatedSuggestions:  input.RelatedSuggestions,
		CreatedAt:           time.Now(),
	}
	if item.Status == "" {
		item.Status = domain.RoadmapStatusPlanned
	}
	if item.Priority == "" {
		item.Priority = domain.PriorityMedium
	}
	if item.RelatedSuggestions == nil {
		item.RelatedSuggestions = []string{}
	}

	if err := s.roadmap.Create(ctx, item); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRoadmapItemCreated,
			Timestamp: time.Now(),
			Payload: events.RoadmapItemCreatedPayload{
				RoadmapItemID: item.ID,
				Title:         item.Title,
				Quarter:       item.Quarter,
			},
		})
	}
	return item, nil
}

// Get fetches a single roadmap item.
func (s *RoadmapService) Get(ctx context.Context, id string) (*domain.RoadmapItem, error) {
	item, err := s.roadmap.GetByID(ctx, id)
	if err != nil {
		return nil, roadmapNotFound(err, id)
	}
	return item, nil
}

// List returns roadmap items newest-first, applying the given filters.
func (s *RoadmapService) List(ctx context.Context, filter repository.RoadmapFilter) ([]domain.RoadmapItem, error) {
	return s.roadmap.ListWithFilter(ctx, filter)
}

// Update merges the given fields into the roadmap item.
func (s *RoadmapService) Update(ctx context.Context, id string, input RoadmapUpdateInput) (*domain.RoadmapItem, error) {
	item, err := s.roadmap.GetByID(ctx, id)
	if err != nil {
		return nil, roadmapNotFound(err, id)
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.Priority != nil {
		item.Priority = *input.Priority
	}
	if input.Quarter != nil {
		item.Quarter = *input.Quarter
	}
	if input.EstimatedCompletion != nil {
		item.EstimatedCompletion = input.EstimatedCompletion
	}
	if input.AssignedTo != nil {
		item.AssignedTo = *input.AssignedTo
	}
	if input.RelatedSuggestions != nil {
		item.RelatedSuggestions = *input.RelatedSuggestions
	}

	if err := s.roadmap.Update(ctx, item); err != nil {
		return nil, roadmapNotFound(err, id)
	}
	return item, nil
}

// Delete removes the roadmap item. Deleting an absent id is a no-op.
func (s *RoadmapService) Delete(ctx context.Context, id string) error {
	return s.roadmap.Delete(ctx, id)
}

// ResolveRelated maps an item's related suggestion ids to the suggestions
// that still exist. Stale ids are skipped, not errors: the references are
// non-owning and integrity is not enforced.
func (s *RoadmapService) ResolveRelated(ctx context.Context, item *domain.RoadmapItem) ([]domain.Suggestion, error) {
	resolved := []domain.Suggestion{}
	for _, id := range item.RelatedSuggestions {
		suggestion, err := s.suggestions.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		resolved = append(resolved, *suggestion)
	}
	return resolved, nil
}

func roadmapNotFound(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("roadmap item", map[string]any{"id": id})
	}
	return err
}
