package http

import "github.com/gin-gonic/gin"

// RegisterReads attaches the public query surface. Reads never require a
// caller identity.
func (h *Handler) RegisterReads(rg *gin.RouterGroup) {
	rg.GET("/projects/:id", h.getProject)
	rg.GET("/projects/:id/votes", h.getProjectVotes)
	rg.GET("/projects/:id/votes/:principal", h.getUserVoteForProject)

	q := rg.Group("/query")
	q.GET("/ids", h.getProjectsByIDs)
	q.GET("/owner/:principal", h.getProjectsByOwner)
	q.GET("/date-range", h.getProjectsByDateRange)
	q.GET("/location", h.getProjectsByLocation)
	q.GET("/nearest", h.getNearestProjects)
	q.GET("/gateway/:type", h.getProjectsByGatewayType)
	q.GET("/votes", h.getProjectsByVotes)
	q.GET("/featured", h.getFeaturedProjects)
	q.GET("/tag/:tag", h.getProjectsByTag)
	q.GET("/status/:status", h.getProjectsByStatus)
	q.GET("/search", h.searchProjects)

	rg.GET("/users/:principal/votes", h.getUserVotedProjects)
	rg.GET("/tags", h.getAllTags)
	rg.GET("/stats", h.getStats)
	rg.GET("/admins/:principal", h.adminStatus)
}

// RegisterMutations attaches the mutating surface. The caller must wrap the
// group with an auth middleware that sets the principal.
func (h *Handler) RegisterMutations(rg *gin.RouterGroup) {
	rg.POST("/projects", h.createProject)
	rg.PUT("/projects/:id", h.updateProject)
	rg.PATCH("/projects/:id/status", h.updateProjectStatus)
	rg.POST("/projects/:id/feature", h.featureProject)
	rg.DELETE("/projects/:id/feature", h.unfeatureProject)
	rg.POST("/projects/:id/votes", h.voteForProject)
	rg.DELETE("/projects/:id/votes", h.removeVote)

	rg.POST("/admins/super", h.createSuperAdmin)
	rg.POST("/admins", h.addAdmin)
	rg.DELETE("/admins/:principal", h.removeAdmin)
}
