package services

import "github.com/alimgiray/kickfarter/internal/models"

// The services depend on these storage contracts; the SQLite repositories in
// internal/repositories implement them.

type UserStore interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

type ProjectStore interface {
	Create(project *models.Project) error
	GetByID(id string) (*models.Project, error)
	GetByCreator(userID string) ([]*models.Project, error)
	GetByStatus(status models.ProjectStatus) ([]*models.Project, error)
	Update(project *models.Project) error
	UpdateStatus(project *models.Project) error
}

type PledgeStore interface {
	Create(pledge *models.Pledge) error
	GetByProjectID(projectID string) ([]*models.Pledge, error)
	GetByUserID(userID string) ([]*models.Pledge, error)
	ExistsByUserAndProject(userID, projectID string) (bool, error)
	CountByProjectID(projectID string) (int, error)
}

type RewardTierStore interface {
	Create(tier *models.RewardTier) error
	GetByID(id string) (*models.RewardTier, error)
	GetByProjectID(projectID string) ([]*models.RewardTier, error)
}

type CommentStore interface {
	Create(comment *models.Comment) error
	GetByProjectID(projectID string) ([]*models.Comment, error)
}

type UpdateStore interface {
	Create(update *models.Update) error
	GetByProjectID(projectID string) ([]*models.Update, error)
}
