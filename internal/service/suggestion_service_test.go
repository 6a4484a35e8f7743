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

func newTestSuggestionService() (*SuggestionService, repository.SuggestionRepository) {
	repo := repository.NewMemorySuggestionRepository()
	svc := NewSuggestionService(SuggestionDependencies{SuggestionRepo: repo})
	return svc, repo
}

func testAuthor() *domain.User {
	return &domain.User{ID: "u1", Name: "John Employee", Role: domain.RoleEmployee}
}

func TestCreateSuggestionDefaults(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "Dark mode",
		Description: "Add a dark theme",
		Category:    domain.CategoryFeature,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.SuggestionStatusPending, created.Status)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, 0, created.Votes)
	assert.Equal(t, "u1", created.AuthorID)
	assert.Equal(t, "John Employee", created.AuthorName)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateSuggestionValidation(t *testing.T) {
	svc, _ := newTestSuggestionService()

	cases := []struct {
		name  string
		input SuggestionCreateInput
	}{
		{"empty title", SuggestionCreateInput{Title: "   ", Description: "desc"}},
		{"empty description", SuggestionCreateInput{Title: "title", Description: "\t"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), testAuthor(), tc.input)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}
}

func TestCreateSuggestionIDsUnique(t *testing.T) {
	svc, _ := newTestSuggestionService()

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
			Title:       "idea",
			Description: "details",
		})
		require.NoError(t, err)
		_, dup := seen[created.ID]
		require.False(t, dup, "id %q issued twice", created.ID)
		seen[created.ID] = struct{}{}
	}
}

func TestUpdateSuggestionPreservesIdentity(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "Dark mode",
		Description: "Add a dark theme",
	})
	require.NoError(t, err)

	status := domain.SuggestionStatusApproved
	updated, err := svc.Update(context.Background(), created.ID, "admin-1", SuggestionUpdateInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.SuggestionStatusApproved, updated.Status)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.AuthorID, updated.AuthorID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateSuggestionPermissiveTransitions(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)

	// any status may follow any other, including completed back to pending
	for _, status := range []domain.SuggestionStatus{
		domain.SuggestionStatusCompleted,
		domain.SuggestionStatusPending,
		domain.SuggestionStatusRejected,
		domain.SuggestionStatusInProgress,
	} {
		status := status
		_, err := svc.Update(context.Background(), created.ID, "admin-1", SuggestionUpdateInput{Status: &status})
		require.NoError(t, err)
	}
}

func TestUpdateSuggestionUnknownID(t *testing.T) {
	svc, _ := newTestSuggestionService()

	title := "new title"
	_, err := svc.Update(context.Background(), "missing", "u1", SuggestionUpdateInput{Title: &title})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteSuggestionIdempotent(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	listed, err := svc.List(context.Background(), repository.SuggestionFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestVoteSessionLifecycle(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)

	started, err := svc.StartVoteSession(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)
	require.NotNil(t, started.VoteSession)
	assert.True(t, started.VoteSession.IsActive)
	assert.Empty(t, started.VoteSession.Votes)

	_, err = svc.SubmitVote(context.Background(), created.ID, "u2", domain.VoteUp)
	require.NoError(t, err)

	ended, err := svc.EndVoteSession(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)
	assert.False(t, ended.VoteSession.IsActive)
	assert.Len(t, ended.VoteSession.Votes, 1, "tally persists after the session ends")

	// restarting keeps the prior votes and the original start time
	restarted, err := svc.StartVoteSession(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)
	assert.True(t, restarted.VoteSession.IsActive)
	assert.Len(t, restarted.VoteSession.Votes, 1)
	assert.Equal(t, ended.VoteSession.StartedAt, restarted.VoteSession.StartedAt)
}

func TestSubmitVoteUpsert(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)
	_, err = svc.StartVoteSession(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)

	_, err = svc.SubmitVote(context.Background(), created.ID, "u2", domain.VoteUp)
	require.NoError(t, err)
	voted, err := svc.SubmitVote(context.Background(), created.ID, "u2", domain.VoteDown)
	require.NoError(t, err)

	tally := voted.VoteSession.Tally()
	assert.Equal(t, 0, tally.Up)
	assert.Equal(t, 1, tally.Down)
	assert.Equal(t, 1, tally.Total)
	assert.Len(t, voted.VoteSession.Votes, 1)
}

func TestSubmitVoteRequiresOpenSession(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)

	_, err = svc.SubmitVote(context.Background(), created.ID, "u2", domain.VoteUp)
	require.Error(t, err)
	assert.Equal(t, "VOTE_NOT_OPEN", apperrors.ToDomainError(err).Code)

	_, err = svc.StartVoteSession(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)
	_, err = svc.EndVoteSession(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)

	_, err = svc.SubmitVote(context.Background(), created.ID, "u2", domain.VoteUp)
	require.Error(t, err)
	assert.Equal(t, "VOTE_NOT_OPEN", apperrors.ToDomainError(err).Code)
}

func TestSubmitVoteRejectsBadVoteType(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)
	_, err = svc.StartVoteSession(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)

	_, err = svc.SubmitVote(context.Background(), created.ID, "u2", domain.VoteType("sideways"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestEndVoteSessionWithoutSession(t *testing.T) {
	svc, _ := newTestSuggestionService()

	created, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{
		Title:       "idea",
		Description: "details",
	})
	require.NoError(t, err)

	_, err = svc.EndVoteSession(context.Background(), created.ID, "admin-1")
	require.Error(t, err)
	assert.Equal(t, "VOTE_NOT_OPEN", apperrors.ToDomainError(err).Code)
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestSuggestionService()

	first, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{Title: "first", Description: "d"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), testAuthor(), SuggestionCreateInput{Title: "second", Description: "d"})
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), repository.SuggestionFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}
