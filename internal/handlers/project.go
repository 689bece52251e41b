package handlers

import (
	"net/http"

	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/alimgiray/kickfarter/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	userService    *services.UserService
}

func NewProjectHandler(projectService *services.ProjectService, userService *services.UserService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		userService:    userService,
	}
}

type projectRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Goal        decimal.Decimal `json:"goal"`
	Currency    string          `json:"currency" binding:"omitempty,oneof=USD EUR CAD"`
	CoverImage  string          `json:"cover_image" binding:"max=500"`
}

func (r projectRequest) input() services.ProjectInput {
	return services.ProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Goal:        r.Goal,
		Currency:    models.Currency(r.Currency),
		CoverImage:  r.CoverImage,
	}
}

type rewardTierRequest struct {
	Description   string          `json:"description" binding:"required,max=1000"`
	MinimumAmount decimal.Decimal `json:"minimum_amount"`
}

// ListActive returns summaries of the projects accepting pledges
func (h *ProjectHandler) ListActive(c *gin.Context) {
	projects, err := h.projectService.GetActiveProjects()
	if err != nil {
		respondError(c, err)
		return
	}

	summaries, err := h.projectService.Summaries(projects)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": summaries})
}

// CreateProject creates a draft project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Currency == "" {
		req.Currency = string(models.CurrencyUSD)
	}

	project, err := h.projectService.CreateProject(user, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ViewProject returns the summary of one project. Drafts are only visible to
// their creator.
func (h *ProjectHandler) ViewProject(c *gin.Context) {
	viewer, err := optionalUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	project, err := h.projectService.GetVisibleProject(c.Param("id"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.projectService.Summary(project.ID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateProject edits a draft project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(c.Param("id"), user, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// PublishProject opens a draft project for pledges
func (h *ProjectHandler) PublishProject(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	project, err := h.projectService.Publish(c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// CancelProject stops a draft or active project
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	project, err := h.projectService.Cancel(c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// AddRewardTier attaches a reward tier to a project
func (h *ProjectHandler) AddRewardTier(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	var req rewardTierRequest
	if !bindJSON(c, &req) {
		return
	}

	tier, err := h.projectService.AddRewardTier(c.Param("id"), user, req.Description, req.MinimumAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tier)
}
