package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/earthstream/projects-backend/internal/projects/domain"
	"github.com/earthstream/projects-backend/internal/projects/geo"
)

// collect loads projects by id preserving the given order, skipping unknown
// and duplicate ids.
func (e *Engine) collect(ids []string) []domain.Project {
	out := make([]domain.Project, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := e.projects[id]; ok {
			out = append(out, clone(p))
		}
	}
	return out
}

// collectSet loads a set of ids sorted by creation time descending, ties
// broken by id ascending. This is the default ordering for every filtered
// listing.
func (e *Engine) collectSet(ids map[string]struct{}) []domain.Project {
	out := make([]domain.Project, 0, len(ids))
	for id := range ids {
		if p, ok := e.projects[id]; ok {
			out = append(out, clone(p))
		}
	}
	sortByCreatedDesc(out)
	return out
}

func sortByCreatedDesc(list []domain.Project) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

// GetProject returns a project by id, reporting absence instead of erroring.
func (e *Engine) GetProject(id string) (domain.Project, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.projects[id]
	if !ok {
		return domain.Project{}, false
	}
	return clone(p), true
}

// GetProjectsByIDs returns the requested projects in request order, skipping
// ids that do not exist.
func (e *Engine) GetProjectsByIDs(ids []string, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return paginate(e.collect(ids), page, size)
}

// GetProjectsByOwner lists a principal's projects, newest first.
func (e *Engine) GetProjectsByOwner(owner string, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return paginate(e.collectSet(e.idx.owner[owner]), page, size)
}

// GetProjectsByDateRange lists projects created within [from, to], newest
// first. The bounds are inclusive.
func (e *Engine) GetProjectsByDateRange(from, to time.Time, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.idx.created
	lo := sort.Search(len(entries), func(i int) bool { return !entries[i].at.Before(from) })
	hi := sort.Search(len(entries), func(i int) bool { return entries[i].at.After(to) })

	out := make([]domain.Project, 0, hi-lo)
	for i := lo; i < hi; i++ {
		if p, ok := e.projects[entries[i].id]; ok {
			out = append(out, clone(p))
		}
	}
	sortByCreatedDesc(out)
	return paginate(out, page, size)
}

// GetProjectsByGatewayType lists projects of one gateway type, newest first.
func (e *Engine) GetProjectsByGatewayType(t domain.GatewayType, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return paginate(e.collectSet(e.idx.gateway[t]), page, size)
}

// GetProjectsByVotes lists projects whose vote count lies in [min, max]
// (either bound optional), sorted by vote count descending, ties by id.
func (e *Engine) GetProjectsByVotes(min, max *int, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Project, 0)
	for count, ids := range e.idx.votes {
		if min != nil && count < *min {
			continue
		}
		if max != nil && count > *max {
			continue
		}
		for id := range ids {
			if p, ok := e.projects[id]; ok {
				out = append(out, clone(p))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VoteCount != out[j].VoteCount {
			return out[i].VoteCount > out[j].VoteCount
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, page, size)
}

// GetFeaturedProjects lists featured projects, most recently featured first.
func (e *Engine) GetFeaturedProjects(page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.idx.featured
	out := make([]domain.Project, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if p, ok := e.projects[entries[i].id]; ok {
			out = append(out, clone(p))
		}
	}
	return paginate(out, page, size)
}

// GetProjectsByTag lists projects carrying a tag (case-insensitive), newest
// first.
func (e *Engine) GetProjectsByTag(tag string, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return paginate(e.collectSet(e.idx.tag[strings.ToLower(strings.TrimSpace(tag))]), page, size)
}

// GetProjectsByStatus lists projects in one moderation state, newest first.
func (e *Engine) GetProjectsByStatus(status domain.ProjectStatus, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return paginate(e.collectSet(e.idx.status[status]), page, size)
}

// GetAllTags returns every tag currently carried by at least one project,
// sorted ascending.
func (e *Engine) GetAllTags() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	tags := make([]string, 0, len(e.idx.tag))
	for tag := range e.idx.tag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// SearchProjects matches query tokens (case-insensitive, whitespace-split)
// against project name, description and tag tokens. Results are ordered by
// relevance: name hits weigh double, ties broken by id ascending.
func (e *Engine) SearchProjects(query string, page, size int) domain.ProjectsResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	terms := tokenize(query)
	if len(terms) == 0 {
		return paginate(nil, page, size)
	}

	candidates := make(map[string]struct{})
	for _, term := range terms {
		for id := range e.idx.keyword[term] {
			candidates[id] = struct{}{}
		}
	}

	type scored struct {
		p     domain.Project
		score int
	}
	results := make([]scored, 0, len(candidates))
	for id := range candidates {
		p, ok := e.projects[id]
		if !ok {
			continue
		}
		nameTokens := tokenSet(tokenize(p.Name))
		otherTokens := tokenizeProject(p)
		score := 0
		for _, term := range terms {
			if _, ok := nameTokens[term]; ok {
				score += 2
				continue
			}
			if _, ok := otherTokens[term]; ok {
				score++
			}
		}
		if score > 0 {
			results = append(results, scored{p: clone(p), score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].p.ID < results[j].p.ID
	})

	out := make([]domain.Project, len(results))
	for i, r := range results {
		out[i] = r.p
	}
	return paginate(out, page, size)
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// GetProjectsByLocation returns every project within radiusKm of the query
// point, nearest first. Geohash buckets prune candidates when the radius is
// small enough for pruning to be lossless; otherwise all projects are
// checked.
func (e *Engine) GetProjectsByLocation(lat, lng, radiusKm float64) []domain.Project {
	e.mu.Lock()
	defer e.mu.Unlock()

	var candidates map[string]struct{}
	if precision := geo.PrecisionForRadius(radiusKm, lat); precision > 0 {
		candidates = make(map[string]struct{})
		for _, cell := range geo.Cells(lat, lng, precision) {
			for id := range e.idx.geo[cell] {
				candidates[id] = struct{}{}
			}
		}
	} else {
		candidates = make(map[string]struct{}, len(e.projects))
		for id := range e.projects {
			candidates[id] = struct{}{}
		}
	}

	type hit struct {
		p    domain.Project
		dist float64
	}
	hits := make([]hit, 0, len(candidates))
	for id := range candidates {
		p, ok := e.projects[id]
		if !ok {
			continue
		}
		d := geo.Haversine(lat, lng, p.Location.Lat, p.Location.Lng)
		if d <= radiusKm {
			hits = append(hits, hit{p: clone(p), dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].p.ID < hits[j].p.ID
	})

	out := make([]domain.Project, len(hits))
	for i, h := range hits {
		out[i] = h.p
	}
	return out
}

// GetNearestProjects returns up to limit projects closest to the center of
// the given geohash cell, with their distances in kilometers.
func (e *Engine) GetNearestProjects(hash string, limit int) ([]domain.ProjectDistance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !geo.ValidHash(hash) {
		return nil, fmt.Errorf("%w: malformed geohash %q", domain.ErrInvalidInput, hash)
	}
	if limit < 1 {
		limit = 10
	}
	lat, lng := geo.Decode(hash)

	out := make([]domain.ProjectDistance, 0, len(e.projects))
	for _, p := range e.projects {
		out = append(out, domain.ProjectDistance{
			Project:  clone(p),
			Distance: geo.Haversine(lat, lng, p.Location.Lat, p.Location.Lng),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Project.ID < out[j].Project.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
