package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RewardTier is a reward backers can pick when pledging at least MinimumAmount
type RewardTier struct {
	ID            uuid.UUID       `json:"id"`
	ProjectID     uuid.UUID       `json:"project_id"`
	Description   string          `json:"description"`
	MinimumAmount decimal.Decimal `json:"minimum_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewRewardTier(projectID uuid.UUID, description string, minimumAmount decimal.Decimal) *RewardTier {
	return &RewardTier{
		ID:            uuid.New(),
		ProjectID:     projectID,
		Description:   strings.TrimSpace(description),
		MinimumAmount: minimumAmount,
		CreatedAt:     time.Now().UTC(),
	}
}

func (t *RewardTier) Validate() error {
	if t.Description == "" {
		return &ValidationError{Field: "description", Message: "Reward tier description is required"}
	}
	if t.MinimumAmount.IsNegative() {
		return &ValidationError{Field: "minimum_amount", Message: "Minimum amount cannot be negative"}
	}
	return nil
}
