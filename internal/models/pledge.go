package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pledge is a user's promise of money toward a project. Pledges are created once
// and never changed.
type Pledge struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	ProjectID    uuid.UUID       `json:"project_id"`
	UserID       uuid.UUID       `json:"user_id"`
	RewardTierID *uuid.UUID      `json:"reward_tier_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewPledge creates a new Pledge with a generated UUID
func NewPledge(userID, projectID uuid.UUID, amount decimal.Decimal, rewardTier *RewardTier) *Pledge {
	pledge := &Pledge{
		ID:        uuid.New(),
		Amount:    amount,
		ProjectID: projectID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if rewardTier != nil {
		tierID := rewardTier.ID
		pledge.RewardTierID = &tierID
	}
	return pledge
}

var (
	ErrPledgeAmountInvalid    = &ValidationError{Field: "amount", Message: "Pledge amount must be greater than zero"}
	ErrRewardTierMismatch     = &ValidationError{Field: "reward_tier_id", Message: "Reward tier does not belong to this project"}
	ErrRewardTierBelowMinimum = &ValidationError{Field: "amount", Message: "Pledge amount is below the reward tier minimum"}
)

// ValidatePledgeInput checks the structural constraints of a pledge request.
// rewardTier may be nil.
func ValidatePledgeInput(project *Project, amount decimal.Decimal, rewardTier *RewardTier) error {
	if !amount.IsPositive() {
		return ErrPledgeAmountInvalid
	}
	if rewardTier == nil {
		return nil
	}
	if rewardTier.ProjectID != project.ID {
		return ErrRewardTierMismatch
	}
	if amount.LessThan(rewardTier.MinimumAmount) {
		return ErrRewardTierBelowMinimum
	}
	return nil
}

// CheckPledgeEligibility applies the backing rules in a fixed order, first
// failure wins: own project, already backed, project not active.
func CheckPledgeEligibility(user *User, project *Project, alreadyBacked bool) error {
	if project.CreatedBy == user.ID {
		return ErrSelfBacking
	}
	if alreadyBacked {
		return ErrDuplicateBacking
	}
	if project.Status != ProjectStatusActive {
		return ErrProjectNotActive
	}
	return nil
}
