package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/earthstream/projects-backend/internal/auth"
)

func (h *Handler) createSuperAdmin(c *gin.Context) {
	if err := h.eng.CreateSuperAdmin(auth.Principal(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *Handler) addAdmin(c *gin.Context) {
	var req principalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.eng.AddAdmin(auth.Principal(c), req.Principal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *Handler) removeAdmin(c *gin.Context) {
	if err := h.eng.RemoveAdmin(auth.Principal(c), c.Param("principal")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) adminStatus(c *gin.Context) {
	principal := c.Param("principal")
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"admin":       h.eng.IsAdmin(principal),
		"super_admin": h.eng.IsSuperAdmin(principal),
	})
}
