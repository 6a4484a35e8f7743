package repository

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

type memoryRoadmapRepository struct {
	mu    sync.RWMutex
	items []*domain.RoadmapItem
}

// NewMemoryRoadmapRepository returns an empty in-memory implementation.
func NewMemoryRoadmapRepository() RoadmapRepository {
	return &memoryRoadmapRepository{}
}

func (r *memoryRoadmapRepository) Create(_ context.Context, item *domain.RoadmapItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]*domain.RoadmapItem{cloneRoadmapItem(item)}, r.items...)
	return nil
}

func (r *memoryRoadmapRepository) Update(_ context.Context, item *domain.RoadmapItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.ID == item.ID {
			r.items[i] = cloneRoadmapItem(item)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memoryRoadmapRepository) Delete(_ context.Context, id string) error {
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

func (r *memoryRoadmapRepository) GetByID(_ context.Context, id string) (*domain.RoadmapItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.items {
		if existing.ID == id {
			return cloneRoadmapItem(existing), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryRoadmapRepository) ListWithFilter(_ context.Context, filter RoadmapFilter) ([]domain.RoadmapItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.RoadmapItem{}
	for _, existing := range r.items {
		if len(filter.Statuses) > 0 && !containsValue(filter.Statuses, existing.Status) {
			continue
		}
		if filter.Quarter != nil && *filter.Quarter != "" && existing.Quarter != *filter.Quarter {
			continue
		}
		matched = append(matched, *cloneRoadmapItem(existing))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []domain.RoadmapItem{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func cloneRoadmapItem(item *domain.RoadmapItem) *domain.RoadmapItem {
	clone := *item
	clone.RelatedSuggestions = append([]string(nil), item.RelatedSuggestions...)
	return &clone
}
