package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/suggestion-box/internal/domain"
	"github.com/spec-kit/suggestion-box/internal/repository"
	apperrors "github.com/spec-kit/suggestion-box/pkg/util/errorutil"
)

func newTestRoadmapService() (*RoadmapService, *SuggestionService) {
	suggestionRepo := repository.NewMemorySuggestionRepository()
	suggestions := NewSuggestionService(SuggestionDependencies{SuggestionRepo: suggestionRepo})
	roadmap := NewRoadmapService(RoadmapDependencies{
		RoadmapRepo:    repository.NewMemoryRoadmapRepository(),
		SuggestionRepo: suggestionRepo,
	})
	return roadmap, suggestions
}

func TestCreateRoadmapItemDefaults(t *testing.T) {
	svc, _ := newTestRoadmapService()

	created, err := svc.Create(context.Background(), RoadmapCreateInput{
		Title:       "Mobile app",
		Description: "Native clients",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.RoadmapStatusPlanned, created.Status)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.NotNil(t, created.RelatedSuggestions)
	assert.Empty(t, created.RelatedSuggestions)
}

func TestCreateRoadmapItemRequiresTitle(t *testing.T) {
	svc, _ := newTestRoadmapService()

	_, err := svc.Create(context.Background(), RoadmapCreateInput{Description: "no title"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestRoadmapListNewestFirst(t *testing.T) {
	svc, _ := newTestRoadmapService()

	first, err := svc.Create(context.Background(), RoadmapCreateInput{Title: "first"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), RoadmapCreateInput{Title: "second"})
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), repository.RoadmapFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestUpdateRoadmapItemPreservesIdentity(t *testing.T) {
	svc, _ := newTestRoadmapService()

	created, err := svc.Create(context.Background(), RoadmapCreateInput{Title: "Mobile app"})
	require.NoError(t, err)

	status := domain.RoadmapStatusInProgress
	quarter := "Q3 2026"
	updated, err := svc.Update(context.Background(), created.ID, RoadmapUpdateInput{
		Status:  &status,
		Quarter: &quarter,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, domain.RoadmapStatusInProgress, updated.Status)
	assert.Equal(t, "Q3 2026", updated.Quarter)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestDeleteRoadmapItemIdempotent(t *testing.T) {
	svc, _ := newTestRoadmapService()

	created, err := svc.Create(context.Background(), RoadmapCreateInput{Title: "Mobile app"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestResolveRelatedSkipsStaleIDs(t *testing.T) {
	roadmap, suggestions := newTestRoadmapService()

	live, err := suggestions.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)

	item, err := roadmap.Create(context.Background(), RoadmapCreateInput{
		Title:              "Mobile app",
		RelatedSuggestions: []string{live.ID, "gone"},
	})
	require.NoError(t, err)

	resolved, err := roadmap.ResolveRelated(context.Background(), item)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, live.ID, resolved[0].ID)

	// the stale id stays on the item itself
	fetched, err := roadmap.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{live.ID, "gone"}, fetched.RelatedSuggestions)
}

func TestRoadmapItemSurvivesSuggestionDelete(t *testing.T) {
	roadmap, suggestions := newTestRoadmapService()

	s, err := suggestions.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)

	item, err := roadmap.Create(context.Background(), RoadmapCreateInput{
		Title:              "Mobile app",
		RelatedSuggestions: []string{s.ID},
	})
	require.NoError(t, err)

	require.NoError(t, suggestions.Delete(context.Background(), s.ID))

	resolved, err := roadmap.ResolveRelated(context.Background(), item)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
