package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/kickfarter/internal/middleware"
	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/alimgiray/kickfarter/internal/services"
	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type signupRequest struct {
	Email           string `json:"email" binding:"required,email,max=254"`
	Name            string `json:"name" binding:"max=100"`
	Password        string `json:"password" binding:"required,max=128"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a user and logs them in
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Signup(req.Email, req.Name, req.Password, req.PasswordConfirm)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := startSession(c, user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login checks credentials and starts a session
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			logger.WithField("email", models.NormalizeEmail(req.Email)).Warn("Failed login attempt")
		}
		respondError(c, err)
		return
	}

	if err := startSession(c, user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func startSession(c *gin.Context, user *models.User) error {
	return middleware.SetSession(c, user.ID.String(), user.Email, user.Name, user.IsAdmin)
}

// currentUser loads the logged in user. Sessions of deleted or deactivated
// users count as anonymous.
func currentUser(c *gin.Context, userService *services.UserService) (*models.User, error) {
	session := middleware.GetSession(c)
	if session == nil {
		return nil, errUnauthenticated
	}

	user, err := userService.GetUserByID(session.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, errUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errUnauthenticated
	}
	return user, nil
}

// optionalUser is currentUser for routes open to anonymous readers
func optionalUser(c *gin.Context, userService *services.UserService) (*models.User, error) {
	user, err := currentUser(c, userService)
	if errors.Is(err, errUnauthenticated) {
		return nil, nil
	}
	return user, err
}
