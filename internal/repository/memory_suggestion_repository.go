package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

// memorySuggestionRepository keeps suggestions in a newest-first slice,
// guarded by a single mutex so concurrent HTTP callers serialize per store.
// It returns pgx.ErrNoRows for unknown ids so callers treat both backends
// uniformly.
type memorySuggestionRepository struct {
	mu    sync.RWMutex
	items []*domain.Suggestion
}

// NewMemorySuggestionRepository returns an empty in-memory implementation.
func NewMemorySuggestionRepository() SuggestionRepository {
	return &memorySuggestionRepository{}
}

func (r *memorySuggestionRepository) Create(_ context.Context, suggestion *domain.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// prepend: the recent-suggestions views rely on newest-first ordering
	r.items = append([]*domain.Suggestion{cloneSuggestion(suggestion)}, r.items...)
	return nil
}

func (r *memorySuggestionRepository) Update(_ context.Context, suggestion *domain.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.ID == suggestion.ID {
			clone := cloneSuggestion(suggestion)
			clone.VoteSession = existing.VoteSession
			r.items[i] = clone
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memorySuggestionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	filtered := r.items[:0]
	for _, existing := range r.items {
		if existing.ID != id {
			filtered = append(filtered, existing)
		}
	}
	r.items = filtered
	return nil
}

func (r *memorySuggestionRepository) GetByID(_ context.Context, id string) (*domain.Suggestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.items {
		if existing.ID == id {
			return cloneSuggestion(existing), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memorySuggestionRepository) ListWithFilter(_ context.Context, filter SuggestionFilter) ([]domain.Suggestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Suggestion{}
	for _, existing := range r.items {
		if !matchesSuggestion(existing, filter) {
			continue
		}
		matched = append(matched, *cloneSuggestion(existing))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []domain.Suggestion{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *memorySuggestionRepository) SaveVoteSession(_ context.Context, suggestionID string, session *domain.VoteSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == suggestionID {
			existing.VoteSession = cloneSession(session)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memorySuggestionRepository) UpsertVote(_ context.Context, suggestionID string, vote domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == suggestionID {
			if existing.VoteSession == nil {
				return pgx.ErrNoRows
			}
			existing.VoteSession.Upsert(vote)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memorySuggestionRepository) AllTags(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tags []string
	for _, existing := range r.items {
		tags = append(tags, existing.Tags...)
	}
	return tags, nil
}

func matchesSuggestion(s *domain.Suggestion, filter SuggestionFilter) bool {
	if filter.AuthorID != nil && s.AuthorID != *filter.AuthorID {
		return false
	}
	if len(filter.Statuses) > 0 && !containsValue(filter.Statuses, s.Status) {
		return false
	}
	if len(filter.Categories) > 0 && !containsValue(filter.Categories, s.Category) {
		return false
	}
	if len(filter.Priorities) > 0 && !containsValue(filter.Priorities, s.Priority) {
		return false
	}
	if filter.SearchTerm != nil {
		term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Title), term) &&
			!strings.Contains(strings.ToLower(s.Description), term) {
			return false
		}
	}
	return true
}

func containsValue[T comparable](values []T, target T) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func cloneSuggestion(s *domain.Suggestion) *domain.Suggestion {
	clone := *s
	clone.Tags = append([]string(nil), s.Tags...)
	clone.VoteSession = cloneSession(s.VoteSession)
	return &clone
}

func cloneSession(session *domain.VoteSession) *domain.VoteSession {
	if session == nil {
		return nil
	}
	clone := *session
	clone.Votes = append([]domain.Vote{}, session.Votes...)
	return &clone
}
