package services

import (
	"errors"
	"fmt"

	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PledgeService struct {
	pledgeRepo     PledgeStore
	projectService *ProjectService
}

func NewPledgeService(pledgeRepo PledgeStore, projectService *ProjectService) *PledgeService {
	return &PledgeService{
		pledgeRepo:     pledgeRepo,
		projectService: projectService,
	}
}

// CreatePledge records user's pledge toward a project. rewardTierID may be
// empty. Input validation runs first, then the backing rules in order.
func (s *PledgeService) CreatePledge(user *models.User, projectID string, amount decimal.Decimal, rewardTierID string) (*models.Pledge, error) {
	project, err := s.projectService.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	var tier *models.RewardTier
	if rewardTierID != "" {
		tier, err = s.projectService.GetRewardTier(rewardTierID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, models.ErrRewardTierMismatch
			}
			return nil, fmt.Errorf("failed to load reward tier: %w", err)
		}
	}

	if err := models.ValidatePledgeInput(project, amount, tier); err != nil {
		return nil, err
	}

	alreadyBacked, err := s.pledgeRepo.ExistsByUserAndProject(user.ID.String(), project.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to check existing pledges: %w", err)
	}

	if err := models.CheckPledgeEligibility(user, project, alreadyBacked); err != nil {
		logger.WithFields(logrus.Fields{
			"project_id": project.ID,
			"user_id":    user.ID,
			"reason":     err.Error(),
		}).Info("Pledge refused")
		return nil, err
	}

	pledge := models.NewPledge(user.ID, project.ID, amount, tier)
	if err := s.pledgeRepo.Create(pledge); err != nil {
		// the unique index catches a concurrent duplicate
		if errors.Is(err, models.ErrDuplicateBacking) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create pledge: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"pledge_id":  pledge.ID,
		"project_id": project.ID,
		"user_id":    user.ID,
		"amount":     amount.String(),
	}).Info("Pledge created")

	return pledge, nil
}

// HasBacked reports whether a user has pledged toward a project
func (s *PledgeService) HasBacked(user *models.User, projectID string) (bool, error) {
	if user == nil {
		return false, nil
	}
	return s.pledgeRepo.ExistsByUserAndProject(user.ID.String(), projectID)
}

// GetPledgesByProject lists the pledges of a project, oldest first
func (s *PledgeService) GetPledgesByProject(projectID string) ([]*models.Pledge, error) {
	return s.pledgeRepo.GetByProjectID(projectID)
}

// GetPledgesByUser lists a user's pledges joined with the backed projects
func (s *PledgeService) GetPledgesByUser(user *models.User) ([]*models.PledgeView, error) {
	pledges, err := s.pledgeRepo.GetByUserID(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load pledges: %w", err)
	}

	views := make([]*models.PledgeView, 0, len(pledges))
	for _, pledge := range pledges {
		project, err := s.projectService.GetProjectByID(pledge.ProjectID.String())
		if err != nil {
			return nil, err
		}
		views = append(views, &models.PledgeView{
			Pledge:       pledge,
			ProjectTitle: project.Title,
			Status:       project.Status,
		})
	}

	return views, nil
}
