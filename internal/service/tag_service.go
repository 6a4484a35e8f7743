package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/suggestion-box/internal/persistence"
	"github.com/spec-kit/suggestion-box/internal/repository"
)

const tagCacheKey = "tags:available"

// TagCount pairs a tag with its usage frequency.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TagService derives the tag registry from suggestion tag assignments.
// Nothing is stored: the registry is the case-normalized union of all tags,
// recomputed on demand. The alphabetical list is cached in Redis and
// invalidated whenever suggestion tags change; with no Redis the service
// just recomputes on every call.
type TagService struct {
	suggestions repository.SuggestionRepository
	redis       *persistence.Redis
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewTagService constructs the service. redis may be nil.
func NewTagService(suggestions repository.SuggestionRepository, redis *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *TagService {
	return &TagService{
		suggestions: suggestions,
		redis:       redis,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// AvailableTags returns the deduplicated, lower-cased union of all tags,
// sorted alphabetically for deterministic autocomplete display.
func (s *TagService) AvailableTags(ctx context.Context) ([]string, error) {
	if cached, ok := s.cachedTags(ctx); ok {
		return cached, nil
	}

	raw, err := s.suggestions.AllTags(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	tags := []string{}
	for _, tag := range raw {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		tags = append(tags, normalized)
	}
	sort.Strings(tags)

	s.storeTags(ctx, tags)
	return tags, nil
}

// TopTags returns tags ordered by usage frequency, most used first. Ties
// break alphabetically. Used by the analytics views, distinct from the
// autocomplete ordering on purpose.
func (s *TagService) TopTags(ctx context.Context, limit int) ([]TagCount, error) {
	raw, err := s.suggestions.AllTags(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, tag := range raw {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		counts[normalized]++
	}

	result := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, TagCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Invalidate drops the cached tag list.
func (s *TagService) Invalidate(ctx context.Context) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	if err := s.redis.Client.Del(ctx, tagCacheKey).Err(); err != nil {
		s.logger.Debug("tag cache invalidation failed", zap.Error(err))
	}
}

func (s *TagService) cachedTags(ctx context.Context) ([]string, bool) {
	if s.redis == nil || s.redis.Client == nil {
		return nil, false
	}
	payload, err := s.redis.Client.Get(ctx, tagCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var tags []string
	if err := json.Unmarshal(payload, &tags); err != nil {
		return nil, false
	}
	return tags, true
}

func (s *TagService) storeTags(ctx context.Context, tags []string) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	payload, err := json.Marshal(tags)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, tagCacheKey, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("tag cache store failed", zap.Error(err))
	}
}
