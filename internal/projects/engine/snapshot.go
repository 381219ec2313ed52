package engine

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/earthstream/projects-backend/internal/projects/domain"
)

// snapshotState is the serialized form of the aggregate. Only the two
// sources of truth and the admin registry are persisted; every index is
// rebuilt on restore.
type snapshotState struct {
	Projects   []domain.Project         `json:"projects"`
	Votes      map[string][]domain.Vote `json:"votes"`
	SuperAdmin string                   `json:"super_admin,omitempty"`
	Admins     []string                 `json:"admins"`
}

// Snapshot serializes the full state deterministically: projects sorted by
// id, votes sorted by timestamp then voter, admins sorted.
func (e *Engine) Snapshot() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := snapshotState{
		Projects:   make([]domain.Project, 0, len(e.projects)),
		Votes:      make(map[string][]domain.Vote, len(e.ledger.byProject)),
		SuperAdmin: e.admins.super,
		Admins:     make([]string, 0, len(e.admins.admins)),
	}

	for _, p := range e.projects {
		state.Projects = append(state.Projects, clone(p))
	}
	sort.Slice(state.Projects, func(i, j int) bool { return state.Projects[i].ID < state.Projects[j].ID })

	for id, votes := range e.ledger.byProject {
		if len(votes) == 0 {
			continue
		}
		list := make([]domain.Vote, 0, len(votes))
		for _, v := range votes {
			list = append(list, v)
		}
		sort.Slice(list, func(i, j int) bool {
			if !list[i].Timestamp.Equal(list[j].Timestamp) {
				return list[i].Timestamp.Before(list[j].Timestamp)
			}
			return list[i].Voter < list[j].Voter
		})
		state.Votes[id] = list
	}

	for a := range e.admins.admins {
		state.Admins = append(state.Admins, a)
	}
	sort.Strings(state.Admins)

	return json.Marshal(state)
}

// Restore replaces the aggregate with the snapshot contents and rebuilds
// every index. The voter-side ledger is reconstructed in vote-time order so
// voted-project listings come back identical. The swap happens only after
// the whole snapshot has validated, so a rejected snapshot leaves the
// current state untouched.
func (e *Engine) Restore(data []byte) error {
	var state snapshotState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	projects := make(map[string]*domain.Project, len(state.Projects))
	for i := range state.Projects {
		p := state.Projects[i]
		projects[p.ID] = &p
	}

	admins := newAdminRegistry()
	admins.super = state.SuperAdmin
	for _, a := range state.Admins {
		admins.admins[a] = struct{}{}
	}

	type flatVote struct {
		projectID string
		vote      domain.Vote
	}
	flat := make([]flatVote, 0)
	for id, votes := range state.Votes {
		if _, ok := projects[id]; !ok {
			return fmt.Errorf("snapshot votes reference unknown project %s", id)
		}
		for _, v := range votes {
			flat = append(flat, flatVote{projectID: id, vote: v})
		}
	}
	sort.Slice(flat, func(i, j int) bool {
		if !flat[i].vote.Timestamp.Equal(flat[j].vote.Timestamp) {
			return flat[i].vote.Timestamp.Before(flat[j].vote.Timestamp)
		}
		return flat[i].projectID < flat[j].projectID
	})

	ledger := newVoteLedger()
	for _, fv := range flat {
		ledger.add(fv.projectID, fv.vote.Voter, fv.vote.Timestamp)
	}

	// vote_count is derived; recompute rather than trusting the snapshot.
	for id, p := range projects {
		p.VoteCount = len(ledger.byProject[id])
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.projects = projects
	e.admins = admins
	e.ledger = ledger
	e.idx.rebuild(e.projects)
	return nil
}
