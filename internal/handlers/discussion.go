package handlers

import (
	"net/http"

	"github.com/alimgiray/kickfarter/internal/services"
	"github.com/gin-gonic/gin"
)

// DiscussionHandler serves project comments and owner updates
type DiscussionHandler struct {
	commentService *services.CommentService
	updateService  *services.UpdateService
	userService    *services.UserService
}

func NewDiscussionHandler(commentService *services.CommentService, updateService *services.UpdateService, userService *services.UserService) *DiscussionHandler {
	return &DiscussionHandler{
		commentService: commentService,
		updateService:  updateService,
		userService:    userService,
	}
}

type commentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

type updateRequest struct {
	Text        string `json:"text" binding:"required,max=5000"`
	BackersOnly bool   `json:"backers_only"`
}

func (h *DiscussionHandler) ListComments(c *gin.Context) {
	viewer, err := optionalUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.commentService.GetComments(c.Param("id"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *DiscussionHandler) AddComment(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.AddComment(user, c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListUpdates hides backers-only updates from readers who neither own nor back the project
func (h *DiscussionHandler) ListUpdates(c *gin.Context) {
	viewer, err := optionalUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	updates, err := h.updateService.GetUpdates(c.Param("id"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

func (h *DiscussionHandler) PostUpdate(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateRequest
	if !bindJSON(c, &req) {
		return
	}

	update, err := h.updateService.PostUpdate(user, c.Param("id"), req.Text, req.BackersOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, update)
}
