package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthstream/projects-backend/internal/projects/domain"
	"github.com/earthstream/projects-backend/internal/projects/engine"
)

func TestVoting(t *testing.T) {
	setup := func(t *testing.T) (*engine.Engine, string) {
		t.Helper()
		e := newTestEngine()
		id, err := e.CreateProject("carol", validData("P", nil, 0, 0))
		require.NoError(t, err)
		return e, id
	}

	t.Run("vote increments the count with the record", func(t *testing.T) {
		e, id := setup(t)
		require.NoError(t, e.VoteForProject("dave", id))

		assert.Equal(t, 1, e.GetProjectVotes(id))
		assert.True(t, e.GetUserVoteForProject(id, "dave"))

		p, _ := e.GetProject(id)
		assert.Equal(t, 1, p.VoteCount)
	})

	t.Run("double vote fails", func(t *testing.T) {
		e, id := setup(t)
		require.NoError(t, e.VoteForProject("dave", id))
		assert.ErrorIs(t, e.VoteForProject("dave", id), domain.ErrAlreadyVoted)
		assert.Equal(t, 1, e.GetProjectVotes(id))
	})

	t.Run("remove without a vote fails", func(t *testing.T) {
		e, id := setup(t)
		assert.ErrorIs(t, e.RemoveVote("dave", id), domain.ErrNotVoted)
	})

	t.Run("remove decrements atomically", func(t *testing.T) {
		e, id := setup(t)
		require.NoError(t, e.VoteForProject("dave", id))
		require.NoError(t, e.RemoveVote("dave", id))

		assert.Equal(t, 0, e.GetProjectVotes(id))
		assert.False(t, e.GetUserVoteForProject(id, "dave"))

		// vote again after removal is allowed
		assert.NoError(t, e.VoteForProject("dave", id))
	})

	t.Run("unknown project", func(t *testing.T) {
		e, _ := setup(t)
		assert.ErrorIs(t, e.VoteForProject("dave", "missing"), domain.ErrNotFound)
		assert.ErrorIs(t, e.RemoveVote("dave", "missing"), domain.ErrNotFound)
		assert.Equal(t, 0, e.GetProjectVotes("missing"))
		assert.False(t, e.GetUserVoteForProject("missing", "dave"))
	})

	t.Run("empty caller rejected", func(t *testing.T) {
		e, id := setup(t)
		assert.ErrorIs(t, e.VoteForProject("", id), domain.ErrInvalidInput)
	})
}

func TestVoteCountMatchesLedger(t *testing.T) {
	e := newTestEngine()
	a, err := e.CreateProject("carol", validData("A", nil, 0, 0))
	require.NoError(t, err)
	b, err := e.CreateProject("carol", validData("B", nil, 1, 1))
	require.NoError(t, err)

	voters := []string{"v1", "v2", "v3", "v4", "v5"}
	for _, v := range voters {
		require.NoError(t, e.VoteForProject(v, a))
	}
	require.NoError(t, e.VoteForProject("v1", b))
	require.NoError(t, e.RemoveVote("v2", a))
	require.NoError(t, e.RemoveVote("v1", b))
	require.NoError(t, e.VoteForProject("v2", a))
	require.NoError(t, e.RemoveVote("v5", a))

	live := 0
	for _, v := range voters {
		if e.GetUserVoteForProject(a, v) {
			live++
		}
	}
	assert.Equal(t, live, e.GetProjectVotes(a))
	assert.Equal(t, 0, e.GetProjectVotes(b))
	assert.Equal(t, live, e.TotalVotes())
}

func TestGetUserVotedProjects(t *testing.T) {
	e := newTestEngine()
	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		id, err := e.CreateProject("carol", validData(name, nil, 0, 0))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, e.VoteForProject("dave", ids[0]))
	require.NoError(t, e.VoteForProject("dave", ids[1]))
	require.NoError(t, e.VoteForProject("dave", ids[2]))

	t.Run("most recent vote first", func(t *testing.T) {
		resp := e.GetUserVotedProjects("dave", 0, 0)
		require.Equal(t, 3, resp.Total)
		require.Len(t, resp.Projects, 3)
		assert.Equal(t, ids[2], resp.Projects[0].ID)
		assert.Equal(t, ids[1], resp.Projects[1].ID)
		assert.Equal(t, ids[0], resp.Projects[2].ID)
	})

	t.Run("removal drops the entry", func(t *testing.T) {
		require.NoError(t, e.RemoveVote("dave", ids[1]))
		resp := e.GetUserVotedProjects("dave", 0, 0)
		require.Equal(t, 2, resp.Total)
		assert.Equal(t, ids[2], resp.Projects[0].ID)
		assert.Equal(t, ids[0], resp.Projects[1].ID)
	})

	t.Run("unknown voter gets an empty page", func(t *testing.T) {
		resp := e.GetUserVotedProjects("nobody", 0, 0)
		assert.Equal(t, 0, resp.Total)
		assert.Empty(t, resp.Projects)
		assert.Equal(t, 0, resp.Pages)
	})
}
