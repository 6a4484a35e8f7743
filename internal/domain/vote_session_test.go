package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVoteSessionUpsert(t *testing.T) {
	session := NewVoteSession(time.Now())

	session.Upsert(Vote{UserID: "u1", VoteType: VoteUp})
	session.Upsert(Vote{UserID: "u2", VoteType: VoteUp})
	session.Upsert(Vote{UserID: "u1", VoteType: VoteDown})

	assert.Len(t, session.Votes, 2)
	if vote, ok := session.VoteByUser("u1"); assert.True(t, ok) {
		assert.Equal(t, VoteDown, vote.VoteType)
	}

	tally := session.Tally()
	assert.Equal(t, 1, tally.Up)
	assert.Equal(t, 1, tally.Down)
	assert.Equal(t, 2, tally.Total)
}

func TestVoteSessionTallyEmpty(t *testing.T) {
	session := NewVoteSession(time.Now())

	tally := session.Tally()
	assert.Equal(t, 0, tally.Up)
	assert.Equal(t, 0, tally.Down)
	assert.Equal(t, 0, tally.Total)
}

func TestVoteTypeValid(t *testing.T) {
	assert.True(t, VoteUp.Valid())
	assert.True(t, VoteDown.Valid())
	assert.False(t, VoteType("sideways").Valid())
	assert.False(t, VoteType("").Valid())
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEmployee.Valid())
	assert.False(t, UserRole("owner").Valid())
}
