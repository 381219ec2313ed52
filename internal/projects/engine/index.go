package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/earthstream/projects-backend/internal/projects/domain"
	"github.com/earthstream/projects-backend/internal/projects/geo"
)

// dateEntry orders project ids by creation time for range queries.
type dateEntry struct {
	at time.Time
	id string
}

// featEntry orders featured project ids by the time they were featured.
type featEntry struct {
	at time.Time
	id string
}

// indexSet holds every secondary index. Indexes carry no information that
// cannot be rebuilt from the project store and the vote ledger; they are
// updated in the same step as the mutation they mirror.
type indexSet struct {
	owner    map[string]map[string]struct{}
	tag      map[string]map[string]struct{}
	status   map[domain.ProjectStatus]map[string]struct{}
	gateway  map[domain.GatewayType]map[string]struct{}
	created  []dateEntry
	votes    map[int]map[string]struct{}
	featured []featEntry
	geo      map[string]map[string]struct{}
	keyword  map[string]map[string]struct{}
}

func newIndexSet() *indexSet {
	return &indexSet{
		owner:   make(map[string]map[string]struct{}),
		tag:     make(map[string]map[string]struct{}),
		status:  make(map[domain.ProjectStatus]map[string]struct{}),
		gateway: make(map[domain.GatewayType]map[string]struct{}),
		votes:   make(map[int]map[string]struct{}),
		geo:     make(map[string]map[string]struct{}),
		keyword: make(map[string]map[string]struct{}),
	}
}

func addTo(m map[string]map[string]struct{}, key, id string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]struct{})
		m[key] = set
	}
	set[id] = struct{}{}
}

func dropFrom(m map[string]map[string]struct{}, key, id string) {
	set, ok := m[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(m, key)
	}
}

// insert registers a project in every index it belongs to.
func (x *indexSet) insert(p *domain.Project) {
	id := p.ID

	addTo(x.owner, p.Owner, id)
	for _, tag := range p.Tags {
		addTo(x.tag, strings.ToLower(tag), id)
	}

	set, ok := x.status[p.Status]
	if !ok {
		set = make(map[string]struct{})
		x.status[p.Status] = set
	}
	set[id] = struct{}{}

	gset, ok := x.gateway[p.GatewayType]
	if !ok {
		gset = make(map[string]struct{})
		x.gateway[p.GatewayType] = gset
	}
	gset[id] = struct{}{}

	x.insertCreated(p.CreatedAt, id)
	x.addVotes(id, p.VoteCount)

	if p.Featured && p.FeaturedAt != nil {
		x.insertFeatured(*p.FeaturedAt, id)
	}

	for _, prefix := range geo.Prefixes(p.Location.Geohash) {
		addTo(x.geo, prefix, id)
	}
	for token := range tokenizeProject(p) {
		addTo(x.keyword, token, id)
	}
}

// remove unregisters a project from every index. The project passed in must
// reflect the currently indexed field values.
func (x *indexSet) remove(p *domain.Project) {
	id := p.ID

	dropFrom(x.owner, p.Owner, id)
	for _, tag := range p.Tags {
		dropFrom(x.tag, strings.ToLower(tag), id)
	}

	if set, ok := x.status[p.Status]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(x.status, p.Status)
		}
	}
	if set, ok := x.gateway[p.GatewayType]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(x.gateway, p.GatewayType)
		}
	}

	x.removeCreated(p.CreatedAt, id)
	x.dropVotes(id, p.VoteCount)

	if p.Featured && p.FeaturedAt != nil {
		x.removeFeatured(*p.FeaturedAt, id)
	}

	for _, prefix := range geo.Prefixes(p.Location.Geohash) {
		dropFrom(x.geo, prefix, id)
	}
	for token := range tokenizeProject(p) {
		dropFrom(x.keyword, token, id)
	}
}

// reindex replaces old index entries with the project's current state.
func (x *indexSet) reindex(old *domain.Project, p *domain.Project) {
	x.remove(old)
	x.insert(p)
}

func (x *indexSet) insertCreated(at time.Time, id string) {
	i := sort.Search(len(x.created), func(i int) bool {
		e := x.created[i]
		return e.at.After(at) || (e.at.Equal(at) && e.id >= id)
	})
	x.created = append(x.created, dateEntry{})
	copy(x.created[i+1:], x.created[i:])
	x.created[i] = dateEntry{at: at, id: id}
}

func (x *indexSet) removeCreated(at time.Time, id string) {
	for i, e := range x.created {
		if e.id == id && e.at.Equal(at) {
			x.created = append(x.created[:i], x.created[i+1:]...)
			return
		}
	}
}

func (x *indexSet) insertFeatured(at time.Time, id string) {
	i := sort.Search(len(x.featured), func(i int) bool {
		e := x.featured[i]
		return e.at.After(at) || (e.at.Equal(at) && e.id >= id)
	})
	x.featured = append(x.featured, featEntry{})
	copy(x.featured[i+1:], x.featured[i:])
	x.featured[i] = featEntry{at: at, id: id}
}

func (x *indexSet) removeFeatured(at time.Time, id string) {
	for i, e := range x.featured {
		if e.id == id && e.at.Equal(at) {
			x.featured = append(x.featured[:i], x.featured[i+1:]...)
			return
		}
	}
}

func (x *indexSet) addVotes(id string, count int) {
	set, ok := x.votes[count]
	if !ok {
		set = make(map[string]struct{})
		x.votes[count] = set
	}
	set[id] = struct{}{}
}

func (x *indexSet) dropVotes(id string, count int) {
	if set, ok := x.votes[count]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(x.votes, count)
		}
	}
}

// bumpVotes moves a project between vote-count buckets.
func (x *indexSet) bumpVotes(id string, old, now int) {
	x.dropVotes(id, old)
	x.addVotes(id, now)
}

// rebuild reconstructs every index from the canonical stores. Used after
// snapshot restore; the result is identical to replaying every mutation.
func (x *indexSet) rebuild(projects map[string]*domain.Project) {
	*x = *newIndexSet()
	for _, p := range projects {
		x.insert(p)
	}
}

// tokenize lowercases and splits free text into whitespace-separated tokens.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// tokenizeProject returns the keyword set a project is indexed under:
// tokens of its name, description and tags.
func tokenizeProject(p *domain.Project) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, t := range tokenize(p.Name) {
		tokens[t] = struct{}{}
	}
	for _, t := range tokenize(p.Description) {
		tokens[t] = struct{}{}
	}
	for _, tag := range p.Tags {
		for _, t := range tokenize(tag) {
			tokens[t] = struct{}{}
		}
	}
	return tokens
}
