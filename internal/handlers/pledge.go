package handlers

import (
	"net/http"

	"github.com/alimgiray/kickfarter/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PledgeHandler struct {
	pledgeService *services.PledgeService
	userService   *services.UserService
}

func NewPledgeHandler(pledgeService *services.PledgeService, userService *services.UserService) *PledgeHandler {
	return &PledgeHandler{
		pledgeService: pledgeService,
		userService:   userService,
	}
}

type pledgeRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	RewardTierID string          `json:"reward_tier_id" binding:"omitempty,uuid"`
}

// CreatePledge backs a project as the current user
func (h *PledgeHandler) CreatePledge(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	var req pledgeRequest
	if !bindJSON(c, &req) {
		return
	}

	pledge, err := h.pledgeService.CreatePledge(user, c.Param("id"), req.Amount, req.RewardTierID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pledge)
}
