package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/earthstream/projects-backend/internal/projects/domain"
	"github.com/earthstream/projects-backend/internal/projects/geo"
)

const maxSensorsRequired = 10000

// allowedTransitions is the complete moderation state machine. Any edge not
// listed here is rejected with ErrInvalidTransition.
var allowedTransitions = map[domain.ProjectStatus][]domain.ProjectStatus{
	domain.StatusPendingReview: {domain.StatusApproved, domain.StatusRejected},
	domain.StatusApproved:      {domain.StatusSuspended},
	domain.StatusSuspended:     {domain.StatusApproved},
	domain.StatusRejected:      {domain.StatusPendingReview},
}

func transitionAllowed(from, to domain.ProjectStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func validateProjectData(data *domain.ProjectData) error {
	if strings.TrimSpace(data.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(data.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(data.PrivateDiscord) == "" {
		return fmt.Errorf("%w: private_discord is required", domain.ErrInvalidInput)
	}
	if !data.GatewayType.Valid() {
		return fmt.Errorf("%w: unknown gateway type %q", domain.ErrInvalidInput, data.GatewayType)
	}
	if data.SensorsRequired < 0 || data.SensorsRequired > maxSensorsRequired {
		return fmt.Errorf("%w: sensors_required out of range", domain.ErrInvalidInput)
	}
	if data.Location.Lat < -90 || data.Location.Lat > 90 {
		return fmt.Errorf("%w: latitude out of range", domain.ErrInvalidInput)
	}
	if data.Location.Lng < -180 || data.Location.Lng > 180 {
		return fmt.Errorf("%w: longitude out of range", domain.ErrInvalidInput)
	}
	return nil
}

// newProjectID derives a collision-free id from the project name, owner and
// creation timestamp.
func newProjectID(name, owner string, ts int64) string {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte(owner))
	h.Write([]byte(strconv.FormatInt(ts, 10)))
	return hex.EncodeToString(h.Sum(nil))
}

// dedupTags lowercases, trims and deduplicates tags, preserving first
// occurrence order.
func dedupTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// applyData copies the caller-mutable fields onto a project, normalizing
// tags and recomputing the geohash from the coordinates.
func applyData(p *domain.Project, data *domain.ProjectData) {
	p.Name = data.Name
	p.Description = data.Description
	p.GatewayType = data.GatewayType
	p.Images = domain.ProjectImages{
		Background: data.Images.Background,
		Gallery:    append([]string(nil), data.Images.Gallery...),
	}
	p.Location = data.Location
	p.Location.Geohash = geo.Encode(data.Location.Lat, data.Location.Lng)
	p.ProjectDiscord = data.ProjectDiscord
	p.PrivateDiscord = data.PrivateDiscord
	p.SensorsRequired = data.SensorsRequired
	p.Video = data.Video
	p.Tags = dedupTags(data.Tags)
}

// CreateProject validates the payload, assigns an id and stores the project
// in PendingReview state. Any authenticated principal may create.
func (e *Engine) CreateProject(caller string, data domain.ProjectData) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller == "" {
		return "", fmt.Errorf("%w: anonymous principals cannot create projects", domain.ErrInvalidInput)
	}
	if err := validateProjectData(&data); err != nil {
		return "", err
	}

	now := e.now()
	id := newProjectID(data.Name, caller, now.UnixNano())
	if _, exists := e.projects[id]; exists {
		// Same name, owner and nanosecond; practically unreachable.
		return "", fmt.Errorf("%w: duplicate project id", domain.ErrInvalidInput)
	}

	p := &domain.Project{
		ID:        id,
		Status:    domain.StatusPendingReview,
		Owner:     caller,
		CreatedAt: now,
	}
	applyData(p, &data)

	e.projects[id] = p
	e.idx.insert(p)
	return id, nil
}

// UpdateProject replaces the mutable fields of an existing project. Only
// the owner or an admin may update; id, owner, created_at, status, votes and
// the featured flag are untouched.
func (e *Engine) UpdateProject(caller, id string, data domain.ProjectData) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	if caller != p.Owner && !e.admins.isAdmin(caller) {
		return domain.ErrUnauthorized
	}
	if err := validateProjectData(&data); err != nil {
		return err
	}

	old := clone(p)
	applyData(p, &data)
	e.idx.reindex(&old, p)
	return nil
}

// UpdateProjectStatus applies one edge of the moderation state machine.
// Admin only.
func (e *Engine) UpdateProjectStatus(caller, id string, status domain.ProjectStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !e.admins.isAdmin(caller) {
		return domain.ErrUnauthorized
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if !transitionAllowed(p.Status, status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, p.Status, status)
	}

	old := clone(p)
	p.Status = status
	e.idx.reindex(&old, p)
	return nil
}

// FeatureProject marks a project as featured. Admin only; featuring an
// already-featured project is a no-op success.
func (e *Engine) FeatureProject(caller, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !e.admins.isAdmin(caller) {
		return domain.ErrUnauthorized
	}
	if p.Featured {
		return nil
	}

	old := clone(p)
	at := e.now()
	p.Featured = true
	p.FeaturedAt = &at
	e.idx.reindex(&old, p)
	return nil
}

// UnfeatureProject clears the featured flag. Admin only; unfeaturing an
// unfeatured project is a no-op success.
func (e *Engine) UnfeatureProject(caller, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !e.admins.isAdmin(caller) {
		return domain.ErrUnauthorized
	}
	if !p.Featured {
		return nil
	}

	old := clone(p)
	p.Featured = false
	p.FeaturedAt = nil
	e.idx.reindex(&old, p)
	return nil
}
