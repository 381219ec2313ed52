package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/earthstream/projects-backend/internal/auth"
	"github.com/earthstream/projects-backend/internal/projects/domain"
	"github.com/earthstream/projects-backend/internal/projects/engine"
)

// Handler exposes the directory engine over HTTP.
type Handler struct {
	eng *engine.Engine
}

func New(eng *engine.Engine) *Handler {
	return &Handler{eng: eng}
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyInitialized),
		errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrNotVoted),
		errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectDataReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id, err := h.eng.CreateProject(auth.Principal(c), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) updateProject(c *gin.Context) {
	var req projectDataReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.eng.UpdateProject(auth.Principal(c), c.Param("id"), req.toDomain()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) updateProjectStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.eng.UpdateProjectStatus(auth.Principal(c), c.Param("id"), domain.ProjectStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) featureProject(c *gin.Context) {
	if err := h.eng.FeatureProject(auth.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) unfeatureProject(c *gin.Context) {
	if err := h.eng.UnfeatureProject(auth.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) voteForProject(c *gin.Context) {
	if err := h.eng.VoteForProject(auth.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *Handler) removeVote(c *gin.Context) {
	if err := h.eng.RemoveVote(auth.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
