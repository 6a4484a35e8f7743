package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

func seedSuggestion(t *testing.T, repo SuggestionRepository, s domain.Suggestion) {
	t.Helper()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
		s.UpdatedAt = s.CreatedAt
	}
	require.NoError(t, repo.Create(context.Background(), &s))
}

func TestMemorySuggestionFilterStatusAndCategory(t *testing.T) {
	repo := NewMemorySuggestionRepository()
	seedSuggestion(t, repo, domain.Suggestion{ID: "a", Status: domain.SuggestionStatusPending, Category: domain.CategoryFeature, AuthorID: "u1"})
	seedSuggestion(t, repo, domain.Suggestion{ID: "b", Status: domain.SuggestionStatusApproved, Category: domain.CategoryBug, AuthorID: "u2"})
	seedSuggestion(t, repo, domain.Suggestion{ID: "c", Status: domain.SuggestionStatusApproved, Category: domain.CategoryFeature, AuthorID: "u1"})

	byStatus, err := repo.ListWithFilter(context.Background(), SuggestionFilter{
		Statuses: []domain.SuggestionStatus{domain.SuggestionStatusApproved},
	})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byBoth, err := repo.ListWithFilter(context.Background(), SuggestionFilter{
		Statuses:   []domain.SuggestionStatus{domain.SuggestionStatusApproved},
		Categories: []domain.SuggestionCategory{domain.CategoryFeature},
	})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "c", byBoth[0].ID)

	author := "u1"
	byAuthor, err := repo.ListWithFilter(context.Background(), SuggestionFilter{AuthorID: &author})
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)
}

func TestMemorySuggestionSearchTerm(t *testing.T) {
	repo := NewMemorySuggestionRepository()
	seedSuggestion(t, repo, domain.Suggestion{ID: "a", Title: "Dark Mode Support", Description: "theming"})
	seedSuggestion(t, repo, domain.Suggestion{ID: "b", Title: "Faster builds", Description: "CI is slow in dark hours"})
	seedSuggestion(t, repo, domain.Suggestion{ID: "c", Title: "Coffee machine", Description: "kitchen"})

	term := "DARK"
	matched, err := repo.ListWithFilter(context.Background(), SuggestionFilter{SearchTerm: &term})
	require.NoError(t, err)
	assert.Len(t, matched, 2, "search matches title and description, case-insensitively")
}

func TestMemorySuggestionPagination(t *testing.T) {
	repo := NewMemorySuggestionRepository()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedSuggestion(t, repo, domain.Suggestion{ID: id})
	}

	page, err := repo.ListWithFilter(context.Background(), SuggestionFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	// newest-first: e d | c b | a
	assert.Equal(t, "c", page[0].ID)
	assert.Equal(t, "b", page[1].ID)

	past, err := repo.ListWithFilter(context.Background(), SuggestionFilter{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestMemorySuggestionUpdateDoesNotClobberSession(t *testing.T) {
	repo := NewMemorySuggestionRepository()
	seedSuggestion(t, repo, domain.Suggestion{ID: "a", Title: "idea"})

	session := domain.NewVoteSession(time.Now())
	require.NoError(t, repo.SaveVoteSession(context.Background(), "a", session))
	require.NoError(t, repo.UpsertVote(context.Background(), "a", domain.Vote{UserID: "u1", VoteType: domain.VoteUp}))

	// a plain update carries no session; the stored one must survive
	fetched, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	fetched.Title = "renamed"
	fetched.VoteSession = nil
	require.NoError(t, repo.Update(context.Background(), fetched))

	after, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "renamed", after.Title)
	require.NotNil(t, after.VoteSession)
	assert.Len(t, after.VoteSession.Votes, 1)
}

func TestMemorySuggestionClonesDetachCaller(t *testing.T) {
	repo := NewMemorySuggestionRepository()
	seedSuggestion(t, repo, domain.Suggestion{ID: "a", Tags: []string{"ux"}})

	fetched, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	fetched.Tags[0] = "mutated"

	again, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"ux"}, again.Tags)
}

func TestMemorySuggestionNotFoundSentinel(t *testing.T) {
	repo := NewMemorySuggestionRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	err = repo.Update(context.Background(), &domain.Suggestion{ID: "missing"})
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	err = repo.SaveVoteSession(context.Background(), "missing", domain.NewVoteSession(time.Now()))
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.NoError(t, repo.Delete(context.Background(), "missing"))
}

func TestMemorySuggestionAllTags(t *testing.T) {
	repo := NewMemorySuggestionRepository()
	seedSuggestion(t, repo, domain.Suggestion{ID: "a", Tags: []string{"ux", "theme"}})
	seedSuggestion(t, repo, domain.Suggestion{ID: "b", Tags: []string{"ux"}})

	tags, err := repo.AllTags(context.Background())
	require.NoError(t, err)
	// raw occurrences, duplicates included; normalization happens upstream
	assert.Len(t, tags, 3)
}
