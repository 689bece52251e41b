package handlers

import (
	"net/http"

	"github.com/alimgiray/kickfarter/internal/services"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	userService    *services.UserService
	projectService *services.ProjectService
	pledgeService  *services.PledgeService
}

func NewDashboardHandler(userService *services.UserService, projectService *services.ProjectService, pledgeService *services.PledgeService) *DashboardHandler {
	return &DashboardHandler{
		userService:    userService,
		projectService: projectService,
		pledgeService:  pledgeService,
	}
}

// Dashboard returns the projects the user created, newest first, and the
// pledges they made
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	projects, err := h.projectService.GetProjectsByCreator(user.ID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	summaries, err := h.projectService.Summaries(projects)
	if err != nil {
		respondError(c, err)
		return
	}

	pledges, err := h.pledgeService.GetPledgesByUser(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"projects": summaries,
		"pledges":  pledges,
	})
}
