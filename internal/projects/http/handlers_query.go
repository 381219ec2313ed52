package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/earthstream/projects-backend/internal/projects/domain"
)

func (h *Handler) getProject(c *gin.Context) {
	p, ok := h.eng.GetProject(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) getProjectsByIDs(c *gin.Context) {
	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetProjectsByIDs(c.QueryArray("ids"), page, size))
}

func (h *Handler) getProjectsByOwner(c *gin.Context) {
	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetProjectsByOwner(c.Param("principal"), page, size))
}

func (h *Handler) getProjectsByDateRange(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "from must be RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "to must be RFC3339"})
		return
	}

	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetProjectsByDateRange(from, to, page, size))
}

func (h *Handler) getProjectsByLocation(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	radius, radErr := strconv.ParseFloat(c.Query("radius"), 64)
	if latErr != nil || lngErr != nil || radErr != nil || radius < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "lat, lng and radius are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.eng.GetProjectsByLocation(lat, lng, radius)})
}

func (h *Handler) getNearestProjects(c *gin.Context) {
	hash := c.Query("geohash")
	if hash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "geohash is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	nearest, err := h.eng.GetNearestProjects(hash, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": nearest})
}

func (h *Handler) getProjectsByGatewayType(c *gin.Context) {
	t := domain.GatewayType(c.Param("type"))
	if !t.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown gateway type"})
		return
	}

	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetProjectsByGatewayType(t, page, size))
}

func (h *Handler) getProjectsByVotes(c *gin.Context) {
	var min, max *int
	if v := c.Query("min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "min must be an integer"})
			return
		}
		min = &n
	}
	if v := c.Query("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "max must be an integer"})
			return
		}
		max = &n
	}

	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetProjectsByVotes(min, max, page, size))
}

func (h *Handler) getFeaturedProjects(c *gin.Context) {
	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetFeaturedProjects(page, size))
}

func (h *Handler) getProjectsByTag(c *gin.Context) {
	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetProjectsByTag(c.Param("tag"), page, size))
}

func (h *Handler) getProjectsByStatus(c *gin.Context) {
	status := domain.ProjectStatus(c.Param("status"))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown status"})
		return
	}

	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetProjectsByStatus(status, page, size))
}

func (h *Handler) searchProjects(c *gin.Context) {
	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.SearchProjects(c.Query("q"), page, size))
}

func (h *Handler) getProjectVotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "votes": h.eng.GetProjectVotes(c.Param("id"))})
}

func (h *Handler) getUserVoteForProject(c *gin.Context) {
	voted := h.eng.GetUserVoteForProject(c.Param("id"), c.Param("principal"))
	c.JSON(http.StatusOK, gin.H{"ok": true, "voted": voted})
}

func (h *Handler) getUserVotedProjects(c *gin.Context) {
	page, size := pageParams(c)
	c.JSON(http.StatusOK, h.eng.GetUserVotedProjects(c.Param("principal"), page, size))
}

func (h *Handler) getAllTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "tags": h.eng.GetAllTags()})
}

func (h *Handler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"total_projects": h.eng.TotalProjects(),
		"total_votes":    h.eng.TotalVotes(),
		"indexes":        h.eng.IndexStats(),
	})
}
