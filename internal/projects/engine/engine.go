// Package engine implements the project directory: a single-writer aggregate
// holding the canonical project records, the vote ledger, the admin registry
// and every derived secondary index. Each exported operation runs to
// completion under one mutex, so no caller ever observes a partially applied
// mutation.
package engine

import (
	"sync"
	"time"

	"github.com/earthstream/projects-backend/internal/projects/domain"
)

// Engine is the aggregate root. All access goes through its methods.
type Engine struct {
	mu  sync.Mutex
	now func() time.Time

	projects map[string]*domain.Project
	admins   *adminRegistry
	ledger   *voteLedger
	idx      *indexSet
}

// New creates an empty engine using the wall clock.
func New() *Engine {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty engine with an injectable clock.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{
		now:      now,
		projects: make(map[string]*domain.Project),
		admins:   newAdminRegistry(),
		ledger:   newVoteLedger(),
		idx:      newIndexSet(),
	}
}

// TotalProjects returns the number of projects in the store.
func (e *Engine) TotalProjects() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.projects)
}

// TotalVotes returns the number of live votes across all projects.
func (e *Engine) TotalVotes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, p := range e.projects {
		total += p.VoteCount
	}
	return total
}

// IndexStats reports per-index and per-status counters, mostly for the
// stats endpoint and operational checks.
func (e *Engine) IndexStats() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := map[string]int{
		"total_projects": len(e.projects),
		"tags":           len(e.idx.tag),
		"keywords":       len(e.idx.keyword),
		"geo_buckets":    len(e.idx.geo),
		"featured":       len(e.idx.featured),
	}
	for st, ids := range e.idx.status {
		stats["status_"+string(st)] = len(ids)
	}
	return stats
}

// clone returns a defensive copy so callers can never mutate stored state.
func clone(p *domain.Project) domain.Project {
	out := *p
	out.Images.Gallery = append([]string(nil), p.Images.Gallery...)
	out.Tags = append([]string(nil), p.Tags...)
	if p.FeaturedAt != nil {
		at := *p.FeaturedAt
		out.FeaturedAt = &at
	}
	return out
}
