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

// SuggestionService coordinates suggestion workflows: create/update/delete,
// vote session lifecycle and ballot upserts.
type SuggestionService struct {
	suggestions repository.SuggestionRepository
	dispatcher  events.Dispatcher
	tags        *TagService
}

// SuggestionDependencies bundles collaborators for the suggestion service.
type SuggestionDependencies struct {
	SuggestionRepo repository.SuggestionRepository
	Dispatcher     events.Dispatcher
	Tags           *TagService
}

// SuggestionCreateInput describes suggestion creation payload. Status,
// priority and the vote counter are not accepted here: creation always
// forces pending/medium/0.
type SuggestionCreateInput struct {
	Title       string
	Description string
	Category    domain.SuggestionCategory
	Tags        []string
}

// SuggestionUpdateInput carries a partial merge; nil fields are left alone.
// No field-level validation is applied beyond what the caller supplies.
type SuggestionUpdateInput struct {
	Title       *string
	Description *string
	Category    *domain.SuggestionCategory
	Status      *domain.SuggestionStatus
	Priority    *domain.Priority
	Votes       *int
	AdminNotes  *string
	Tags        *[]string
}

// NewSuggestionService constructs the service.
func NewSuggestionService(deps SuggestionDependencies) *SuggestionService {
	return &SuggestionService{
		suggestions: deps.SuggestionRepo,
		dispatcher:  deps.Dispatcher,
		tags:        deps.Tags,
	}
}

// Create builds a new suggestion authored by the acting user. The author
// name is snapshotted; later profile renames do not touch it.
func (s *SuggestionService) Create(ctx context.Context, actor *domain.User, input SuggestionCreateInput) (*domain.Suggestion, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	now := time.Now()
	suggestion := &domain.Suggestion{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Category:    input.Category,
		Status:      domain.SuggestionStatusPending,
		Priority:    domain.PriorityMedium,
		AuthorID:    actor.ID,
		AuthorName:  actor.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
		Votes:       0,
		Tags:        input.Tags,
	}
	if suggestion.Category == "" {
		suggestion.Category = domain.CategoryOther
	}

	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return nil, err
	}
	s.invalidateTags(ctx)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventSuggestionCreated,
		SuggestionID: suggestion.ID,
		ActorID:      actor.ID,
		Payload: events.SuggestionCreatedPayload{
			Title:    suggestion.Title,
			Category: suggestion.Category,
			AuthorID: suggestion.AuthorID,
		},
	})
	return suggestion, nil
}

// Get fetches a single suggestion.
func (s *SuggestionService) Get(ctx context.Context, id string) (*domain.Suggestion, error) {
	suggestion, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, suggestionNotFound(err, id)
	}
	return suggestion, nil
}

// List returns suggestions newest-first, applying the given filters.
func (s *SuggestionService) List(ctx context.Context, filter repository.SuggestionFilter) ([]domain.Suggestion, error) {
	return s.suggestions.ListWithFilter(ctx, filter)
}

// Update merges the given fields into the suggestion and refreshes its
// update timestamp. Status transitions are not constrained: any status may
// replace any other. ID, author attribution and creation time never change.
func (s *SuggestionService) Update(ctx context.Context, id string, actorID string, input SuggestionUpdateInput) (*domain.Suggestion, error) {
	suggestion, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, suggestionNotFound(err, id)
	}

	oldStatus := suggestion.Status
	if input.Title != nil {
		suggestion.Title = *input.Title
	}
	if input.Description != nil {
		suggestion.Description = *input.Description
	}
	if input.Category != nil {
		suggestion.Category = *input.Category
	}
	if input.Status != nil {
		suggestion.Status = *input.Status
	}
	if input.Priority != nil {
		suggestion.Priority = *input.Priority
	}
	if input.Votes != nil {
		suggestion.Votes = *input.Votes
	}
	if input.AdminNotes != nil {
		suggestion.AdminNotes = *input.AdminNotes
	}
	if input.Tags != nil {
		suggestion.Tags = *input.Tags
	}
	suggestion.UpdatedAt = time.Now()

	if err := s.suggestions.Update(ctx, suggestion); err != nil {
		return nil, suggestionNotFound(err, id)
	}
	if input.Tags != nil {
		s.invalidateTags(ctx)
	}
	if suggestion.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:         events.EventSuggestionStatusChanged,
			SuggestionID: suggestion.ID,
			ActorID:      actorID,
			Payload: events.SuggestionStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: suggestion.Status,
			},
		})
	}
	return suggestion, nil
}

// Delete removes the suggestion. Deleting an absent id is a no-op.
func (s *SuggestionService) Delete(ctx context.Context, id string) error {
	if err := s.suggestions.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTags(ctx)
	return nil
}

// StartVoteSession opens (or reopens) the polling window on a suggestion.
// A fresh session starts with an empty tally; restarting an ended session
// keeps the prior votes and the original start time.
func (s *SuggestionService) StartVoteSession(ctx context.Context, id string, actorID string) (*domain.Suggestion, error) {
	suggestion, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, suggestionNotFound(err, id)
	}

	if suggestion.VoteSession == nil {
		suggestion.VoteSession = domain.NewVoteSession(time.Now())
	} else {
		suggestion.VoteSession.IsActive = true
	}

	if err := s.suggestions.SaveVoteSession(ctx, id, suggestion.VoteSession); err != nil {
		return nil, suggestionNotFound(err, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:         events.EventVoteSessionStarted,
		SuggestionID: id,
		ActorID:      actorID,
		Payload: events.VoteSessionPayload{
			StartedAt:  suggestion.VoteSession.StartedAt,
			TotalVotes: len(suggestion.VoteSession.Votes),
		},
	})
	return suggestion, nil
}

// EndVoteSession closes the polling window. The accumulated votes are kept
// so the historical tally stays visible.
func (s *SuggestionService) EndVoteSession(ctx context.Context, id string, actorID string) (*domain.Suggestion, error) {
	suggestion, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, suggestionNotFound(err, id)
	}
	if suggestion.VoteSession == nil {
		return nil, apperrors.NewInvalidState("VOTE_NOT_OPEN", "no vote session to end", map[string]any{"suggestion_id": id})
	}

	suggestion.VoteSession.IsActive = false
	if err := s.suggestions.SaveVoteSession(ctx, id, suggestion.VoteSession); err != nil {
		return nil, suggestionNotFound(err, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:         events.EventVoteSessionEnded,
		SuggestionID: id,
		ActorID:      actorID,
		Payload: events.VoteSessionPayload{
			StartedAt:  suggestion.VoteSession.StartedAt,
			TotalVotes: len(suggestion.VoteSession.Votes),
		},
	})
	return suggestion, nil
}

// SubmitVote upserts the user's ballot in the active session: a repeat vote
// replaces the earlier one instead of appending. Voting outside an active
// session is rejected rather than silently dropped.
func (s *SuggestionService) SubmitVote(ctx context.Context, id string, userID string, voteType domain.VoteType) (*domain.Suggestion, error) {
	if !voteType.Valid() {
		return nil, apperrors.NewValidationError("vote_type must be up or down", nil)
	}

	suggestion, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, suggestionNotFound(err, id)
	}
	if suggestion.VoteSession == nil || !suggestion.VoteSession.IsActive {
		return nil, apperrors.NewInvalidState("VOTE_NOT_OPEN", "voting is not open on this suggestion", map[string]any{"suggestion_id": id})
	}

	vote := domain.Vote{UserID: userID, VoteType: voteType}
	if err := s.suggestions.UpsertVote(ctx, id, vote); err != nil {
		return nil, suggestionNotFound(err, id)
	}

	suggestion.VoteSession.Upsert(vote)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventVoteCast,
		SuggestionID: id,
		ActorID:      userID,
		Payload: events.VoteCastPayload{
			UserID:   userID,
			VoteType: voteType,
			Tally:    suggestion.VoteSession.Tally(),
		},
	})
	return suggestion, nil
}

func (s *SuggestionService) invalidateTags(ctx context.Context) {
	if s.tags != nil {
		s.tags.Invalidate(ctx)
	}
}

func (s *SuggestionService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func suggestionNotFound(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("suggestion", map[string]any{"id": id})
	}
	return err
}
