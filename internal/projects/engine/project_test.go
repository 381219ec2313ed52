package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthstream/projects-backend/internal/projects/domain"
	"github.com/earthstream/projects-backend/internal/projects/engine"
)

func TestCreateProject(t *testing.T) {
	t.Run("creates in pending review with derived fields", func(t *testing.T) {
		e := newTestEngine()
		id, err := e.CreateProject("carol", validData("Rooftop GSM", []string{"GSM", "urban", "gsm"}, 52.52, 13.405))
		require.NoError(t, err)
		require.NotEmpty(t, id)

		p, ok := e.GetProject(id)
		require.True(t, ok)
		assert.Equal(t, domain.StatusPendingReview, p.Status)
		assert.Equal(t, "carol", p.Owner)
		assert.Equal(t, 0, p.VoteCount)
		assert.False(t, p.Featured)
		assert.Nil(t, p.FeaturedAt)
		assert.False(t, p.CreatedAt.IsZero())
		assert.NotEmpty(t, p.Location.Geohash)
		// tags are lowercased and deduplicated
		assert.Equal(t, []string{"gsm", "urban"}, p.Tags)
	})

	t.Run("ids are unique across projects", func(t *testing.T) {
		e := newTestEngine()
		a, err := e.CreateProject("carol", validData("Same Name", nil, 0, 0))
		require.NoError(t, err)
		b, err := e.CreateProject("carol", validData("Same Name", nil, 0, 0))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("validation", func(t *testing.T) {
		e := newTestEngine()

		data := validData("ok", nil, 0, 0)
		data.Name = "  "
		_, err := e.CreateProject("carol", data)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		data = validData("ok", nil, 0, 0)
		data.Description = ""
		_, err = e.CreateProject("carol", data)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		data = validData("ok", nil, 0, 0)
		data.PrivateDiscord = ""
		_, err = e.CreateProject("carol", data)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		data = validData("ok", nil, 0, 0)
		data.GatewayType = "satellite"
		_, err = e.CreateProject("carol", data)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		data = validData("ok", nil, 0, 0)
		data.SensorsRequired = 10001
		_, err = e.CreateProject("carol", data)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		data = validData("ok", nil, 91, 0)
		_, err = e.CreateProject("carol", data)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		data = validData("ok", nil, 0, -181)
		_, err = e.CreateProject("carol", data)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = e.CreateProject("", validData("ok", nil, 0, 0))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUpdateProject(t *testing.T) {
	setup := func(t *testing.T) (e *engine.Engine, id string) {
		t.Helper()
		eng := newTestEngine()
		require.NoError(t, eng.CreateSuperAdmin("alice"))
		require.NoError(t, eng.AddAdmin("alice", "bob"))
		pid, err := eng.CreateProject("carol", validData("Original", []string{"old"}, 10, 20))
		require.NoError(t, err)
		return eng, pid
	}

	t.Run("owner replaces mutable fields only", func(t *testing.T) {
		e, id := setup(t)
		before, _ := e.GetProject(id)

		next := validData("Renamed", []string{"new"}, -33.9, 18.4)
		next.GatewayType = domain.GatewayGSM
		next.SensorsRequired = 9
		require.NoError(t, e.UpdateProject("carol", id, next))

		p, ok := e.GetProject(id)
		require.True(t, ok)
		assert.Equal(t, "Renamed", p.Name)
		assert.Equal(t, domain.GatewayGSM, p.GatewayType)
		assert.Equal(t, 9, p.SensorsRequired)
		assert.Equal(t, []string{"new"}, p.Tags)
		assert.NotEqual(t, before.Location.Geohash, p.Location.Geohash)

		// immutable fields survive
		assert.Equal(t, before.ID, p.ID)
		assert.Equal(t, before.Owner, p.Owner)
		assert.Equal(t, before.CreatedAt, p.CreatedAt)
		assert.Equal(t, before.Status, p.Status)
		assert.Equal(t, before.VoteCount, p.VoteCount)
		assert.Equal(t, before.Featured, p.Featured)
	})

	t.Run("admin may update someone else's project", func(t *testing.T) {
		e, id := setup(t)
		assert.NoError(t, e.UpdateProject("bob", id, validData("Fixed", nil, 0, 0)))
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		e, id := setup(t)
		assert.ErrorIs(t, e.UpdateProject("mallory", id, validData("X", nil, 0, 0)), domain.ErrUnauthorized)
	})

	t.Run("unknown project", func(t *testing.T) {
		e, _ := setup(t)
		assert.ErrorIs(t, e.UpdateProject("carol", "missing", validData("X", nil, 0, 0)), domain.ErrNotFound)
	})
}

func TestStatusTransitions(t *testing.T) {
	setup := func(t *testing.T) (e *engine.Engine, id string) {
		t.Helper()
		eng := newTestEngine()
		require.NoError(t, eng.CreateSuperAdmin("alice"))
		pid, err := eng.CreateProject("carol", validData("P", nil, 0, 0))
		require.NoError(t, err)
		return eng, pid
	}

	t.Run("allowed edges", func(t *testing.T) {
		steps := []struct {
			from, to domain.ProjectStatus
		}{
			{domain.StatusPendingReview, domain.StatusApproved},
			{domain.StatusApproved, domain.StatusSuspended},
			{domain.StatusSuspended, domain.StatusApproved},
		}
		e, id := setup(t)
		for _, s := range steps {
			p, _ := e.GetProject(id)
			require.Equal(t, s.from, p.Status)
			require.NoError(t, e.UpdateProjectStatus("alice", id, s.to))
		}
	})

	t.Run("rejection and resubmission", func(t *testing.T) {
		e, id := setup(t)
		require.NoError(t, e.UpdateProjectStatus("alice", id, domain.StatusRejected))
		require.NoError(t, e.UpdateProjectStatus("alice", id, domain.StatusPendingReview))
		require.NoError(t, e.UpdateProjectStatus("alice", id, domain.StatusApproved))
	})

	t.Run("disallowed edges fail", func(t *testing.T) {
		e, id := setup(t)
		require.NoError(t, e.UpdateProjectStatus("alice", id, domain.StatusApproved))

		assert.ErrorIs(t, e.UpdateProjectStatus("alice", id, domain.StatusPendingReview), domain.ErrInvalidTransition)
		assert.ErrorIs(t, e.UpdateProjectStatus("alice", id, domain.StatusRejected), domain.ErrInvalidTransition)
		assert.ErrorIs(t, e.UpdateProjectStatus("alice", id, domain.StatusApproved), domain.ErrInvalidTransition)
	})

	t.Run("admin gate and unknown ids", func(t *testing.T) {
		e, id := setup(t)
		assert.ErrorIs(t, e.UpdateProjectStatus("carol", id, domain.StatusApproved), domain.ErrUnauthorized)
		assert.ErrorIs(t, e.UpdateProjectStatus("alice", "missing", domain.StatusApproved), domain.ErrNotFound)
		assert.ErrorIs(t, e.UpdateProjectStatus("alice", id, "archived"), domain.ErrInvalidInput)
	})
}

func TestFeatureProject(t *testing.T) {
	setup := func(t *testing.T) (e *engine.Engine, id string) {
		t.Helper()
		eng := newTestEngine()
		require.NoError(t, eng.CreateSuperAdmin("alice"))
		pid, err := eng.CreateProject("carol", validData("P", nil, 0, 0))
		require.NoError(t, err)
		return eng, pid
	}

	t.Run("feature sets featured_at exactly once", func(t *testing.T) {
		e, id := setup(t)
		require.NoError(t, e.FeatureProject("alice", id))

		p, _ := e.GetProject(id)
		require.True(t, p.Featured)
		require.NotNil(t, p.FeaturedAt)
		first := *p.FeaturedAt

		// repeat is a no-op, timestamp unchanged
		require.NoError(t, e.FeatureProject("alice", id))
		p, _ = e.GetProject(id)
		require.NotNil(t, p.FeaturedAt)
		assert.Equal(t, first, *p.FeaturedAt)
	})

	t.Run("unfeature clears featured_at and is idempotent", func(t *testing.T) {
		e, id := setup(t)
		require.NoError(t, e.FeatureProject("alice", id))
		require.NoError(t, e.UnfeatureProject("alice", id))

		p, _ := e.GetProject(id)
		assert.False(t, p.Featured)
		assert.Nil(t, p.FeaturedAt)

		assert.NoError(t, e.UnfeatureProject("alice", id))
	})

	t.Run("admin gate and unknown ids", func(t *testing.T) {
		e, id := setup(t)
		assert.ErrorIs(t, e.FeatureProject("carol", id), domain.ErrUnauthorized)
		assert.ErrorIs(t, e.UnfeatureProject("carol", id), domain.ErrUnauthorized)
		assert.ErrorIs(t, e.FeatureProject("alice", "missing"), domain.ErrNotFound)
	})
}
