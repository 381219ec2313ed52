package engine

import (
	"time"

	"github.com/earthstream/projects-backend/internal/projects/domain"
)

// voteRef records one vote from the voter's side, ordered by vote time.
type voteRef struct {
	projectID string
	at        time.Time
}

// voteLedger is the source of truth for vote membership. byProject holds
// the authoritative records; byVoter mirrors them in vote-time order.
type voteLedger struct {
	byProject map[string]map[string]domain.Vote
	byVoter   map[string][]voteRef
}

func newVoteLedger() *voteLedger {
	return &voteLedger{
		byProject: make(map[string]map[string]domain.Vote),
		byVoter:   make(map[string][]voteRef),
	}
}

func (l *voteLedger) has(projectID, voter string) bool {
	_, ok := l.byProject[projectID][voter]
	return ok
}

func (l *voteLedger) add(projectID, voter string, at time.Time) {
	votes, ok := l.byProject[projectID]
	if !ok {
		votes = make(map[string]domain.Vote)
		l.byProject[projectID] = votes
	}
	votes[voter] = domain.Vote{Voter: voter, Timestamp: at}
	l.byVoter[voter] = append(l.byVoter[voter], voteRef{projectID: projectID, at: at})
}

func (l *voteLedger) remove(projectID, voter string) {
	delete(l.byProject[projectID], voter)
	refs := l.byVoter[voter]
	for i, ref := range refs {
		if ref.projectID == projectID {
			l.byVoter[voter] = append(refs[:i], refs[i+1:]...)
			break
		}
	}
}

// votedProjects returns the voter's project ids, most recent vote first.
func (l *voteLedger) votedProjects(voter string) []string {
	refs := l.byVoter[voter]
	out := make([]string, 0, len(refs))
	for i := len(refs) - 1; i >= 0; i-- {
		out = append(out, refs[i].projectID)
	}
	return out
}

// VoteForProject records the caller's vote and bumps the project's count in
// the same step. A second vote from the same caller fails with
// ErrAlreadyVoted.
func (e *Engine) VoteForProject(caller, projectID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller == "" {
		return domain.ErrInvalidInput
	}
	p, ok := e.projects[projectID]
	if !ok {
		return domain.ErrNotFound
	}
	if e.ledger.has(projectID, caller) {
		return domain.ErrAlreadyVoted
	}

	e.ledger.add(projectID, caller, e.now())
	old := p.VoteCount
	p.VoteCount++
	e.idx.bumpVotes(projectID, old, p.VoteCount)
	return nil
}

// RemoveVote deletes the caller's vote and decrements the count atomically
// with the deletion.
func (e *Engine) RemoveVote(caller, projectID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.projects[projectID]
	if !ok {
		return domain.ErrNotFound
	}
	if !e.ledger.has(projectID, caller) {
		return domain.ErrNotVoted
	}

	e.ledger.remove(projectID, caller)
	old := p.VoteCount
	p.VoteCount--
	e.idx.bumpVotes(projectID, old, p.VoteCount)
	return nil
}

// GetProjectVotes returns the project's current vote count; unknown
// projects report zero.
func (e *Engine) GetProjectVotes(projectID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p, ok := e.projects[projectID]; ok {
		return p.VoteCount
	}
	return 0
}

// GetUserVoteForProject reports whether the principal has a live vote for
// the project.
func (e *Engine) GetUserVoteForProject(projectID, principal string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.has(projectID, principal)
}

// GetUserVotedProjects lists the projects the principal has voted for,
// most recent vote first.
func (e *Engine) GetUserVotedProjects(principal string, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.collect(e.ledger.votedProjects(principal))
	return paginate(list, page, size)
}
