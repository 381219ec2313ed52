package domain

import "time"

// GatewayType identifies the physical gateway hardware a project deploys.
type GatewayType string

const (
	GatewayWifi GatewayType = "wifi"
	GatewayGSM  GatewayType = "gsm"
)

func (g GatewayType) Valid() bool {
	return g == GatewayWifi || g == GatewayGSM
}

// ProjectStatus is the moderation state of a project.
type ProjectStatus string

const (
	StatusPendingReview ProjectStatus = "pending_review"
	StatusApproved      ProjectStatus = "approved"
	StatusRejected      ProjectStatus = "rejected"
	StatusSuspended     ProjectStatus = "suspended"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPendingReview, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// ProjectImages holds the background image plus an ordered gallery.
type ProjectImages struct {
	Background string   `json:"background"`
	Gallery    []string `json:"gallery"`
}

// Location is the project's deployment site. Geohash is recomputed
// server-side from Lat/Lng so it always agrees with the coordinates.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
	Geohash string  `json:"geohash"`
}

// Project is the canonical directory entry. ID, Owner and CreatedAt are
// immutable after creation; VoteCount mirrors the vote ledger.
type Project struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	GatewayType     GatewayType   `json:"gateway_type"`
	Images          ProjectImages `json:"images"`
	Location        Location      `json:"location"`
	ProjectDiscord  string        `json:"project_discord,omitempty"`
	PrivateDiscord  string        `json:"private_discord"`
	SensorsRequired int           `json:"sensors_required"`
	Video           string        `json:"video,omitempty"`
	Status          ProjectStatus `json:"status"`
	Owner           string        `json:"owner"`
	CreatedAt       time.Time     `json:"created_at"`
	VoteCount       int           `json:"vote_count"`
	Featured        bool          `json:"featured"`
	FeaturedAt      *time.Time    `json:"featured_at,omitempty"`
	Tags            []string      `json:"tags"`
}

// ProjectData carries the caller-mutable fields of a project, used for both
// creation and full-replacement updates.
type ProjectData struct {
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	GatewayType     GatewayType   `json:"gateway_type"`
	Images          ProjectImages `json:"images"`
	Location        Location      `json:"location"`
	ProjectDiscord  string        `json:"project_discord,omitempty"`
	PrivateDiscord  string        `json:"private_discord"`
	SensorsRequired int           `json:"sensors_required"`
	Video           string        `json:"video,omitempty"`
	Tags            []string      `json:"tags"`
}

// Vote is one principal's endorsement of one project. At most one vote
// exists per (project, voter) pair.
type Vote struct {
	Voter     string    `json:"voter"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectsResponse is the envelope returned by every paginated query.
// Page numbering starts at 1.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// ProjectDistance pairs a project with its great-circle distance in
// kilometers from a query point.
type ProjectDistance struct {
	Project  Project `json:"project"`
	Distance float64 `json:"distance_km"`
}
