package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/suggestion-box/internal/auth"
	"github.com/spec-kit/suggestion-box/internal/domain"
)

func TestSeedFixtures(t *testing.T) {
	users := NewMemoryUserRepository()
	suggestions := NewMemorySuggestionRepository()
	roadmap := NewMemoryRoadmapRepository()

	require.NoError(t, SeedFixtures(context.Background(), users, suggestions, roadmap, bcrypt.MinCost))

	admin, err := users.GetByEmail(context.Background(), "admin@company.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.NoError(t, auth.ComparePassword(admin.PasswordHash, "password"))

	allUsers, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, allUsers, 3)

	listed, err := suggestions.ListWithFilter(context.Background(), SuggestionFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "s-2", listed[0].ID, "newest suggestion first")
	assert.Equal(t, "s-1", listed[1].ID)

	items, err := roadmap.ListWithFilter(context.Background(), RoadmapFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "r-2", items[0].ID, "newest roadmap item first")
	assert.Equal(t, []string{"s-1"}, items[0].RelatedSuggestions)
}
