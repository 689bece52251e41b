package services

import (
	"fmt"
	"time"

	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProjectInput carries the owner-editable fields of a project
type ProjectInput struct {
	Title       string
	Description string
	Goal        decimal.Decimal
	Currency    models.Currency
	CoverImage  string
}

type ProjectService struct {
	projectRepo    ProjectStore
	pledgeRepo     PledgeStore
	rewardTierRepo RewardTierStore
	durationDays   int
	now            func() time.Time
}

func NewProjectService(projectRepo ProjectStore, pledgeRepo PledgeStore, rewardTierRepo RewardTierStore, durationDays int) *ProjectService {
	if durationDays < 1 {
		durationDays = models.DefaultDurationDays
	}
	return &ProjectService{
		projectRepo:    projectRepo,
		pledgeRepo:     pledgeRepo,
		rewardTierRepo: rewardTierRepo,
		durationDays:   durationDays,
		now:            time.Now,
	}
}

// WithClock replaces the time source used for lifecycle decisions
func (s *ProjectService) WithClock(now func() time.Time) *ProjectService {
	s.now = now
	return s
}

// CreateProject creates a draft project owned by owner
func (s *ProjectService) CreateProject(owner *models.User, input ProjectInput) (*models.Project, error) {
	project := models.NewProject(owner.ID, input.Title, input.Description, input.Goal, input.Currency, input.CoverImage)
	project.DurationDays = s.durationDays
	project.CreatedAt = s.now().UTC()

	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"created_by": owner.ID,
	}).Info("Project created")

	return project, nil
}

// GetProjectByID loads a project and brings its status up to date
func (s *ProjectService) GetProjectByID(id string) (*models.Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	project, err := s.projectRepo.GetByID(projectID.String())
	if err != nil {
		return nil, err
	}

	if _, err := s.refresh(project); err != nil {
		return nil, err
	}

	return project, nil
}

// GetProjectsByCreator retrieves all projects created by a user
func (s *ProjectService) GetProjectsByCreator(userID string) ([]*models.Project, error) {
	projects, err := s.projectRepo.GetByCreator(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	for _, project := range projects {
		if _, err := s.refresh(project); err != nil {
			return nil, err
		}
	}

	return projects, nil
}

// GetActiveProjects lists the projects currently accepting pledges
func (s *ProjectService) GetActiveProjects() ([]*models.Project, error) {
	projects, err := s.projectRepo.GetByStatus(models.ProjectStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load active projects: %w", err)
	}

	active := make([]*models.Project, 0, len(projects))
	for _, project := range projects {
		if _, err := s.refresh(project); err != nil {
			return nil, err
		}
		if project.IsActive() {
			active = append(active, project)
		}
	}

	return active, nil
}

// TotalPledged sums the pledges stored for a project
func (s *ProjectService) TotalPledged(project *models.Project) (decimal.Decimal, error) {
	pledges, err := s.pledgeRepo.GetByProjectID(project.ID.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load pledges: %w", err)
	}
	return project.TotalPledgedAmount(pledges), nil
}

// refresh settles the status of a finished project and persists the change.
// It returns the pledged total it computed.
func (s *ProjectService) refresh(project *models.Project) (decimal.Decimal, error) {
	total, err := s.TotalPledged(project)
	if err != nil {
		return decimal.Zero, err
	}

	if !project.RefreshStatus(s.now(), total) {
		return total, nil
	}

	if err := s.projectRepo.UpdateStatus(project); err != nil {
		return decimal.Zero, fmt.Errorf("failed to persist project status: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"status":     project.Status,
		"total":      total.String(),
	}).Info("Project funding period ended")

	return total, nil
}

// Summary builds the read model of a project
func (s *ProjectService) Summary(id string) (*models.ProjectSummary, error) {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	return s.summarize(project)
}

// Summaries builds read models for a list of already loaded projects
func (s *ProjectService) Summaries(projects []*models.Project) ([]*models.ProjectSummary, error) {
	summaries := make([]*models.ProjectSummary, 0, len(projects))
	for _, project := range projects {
		summary, err := s.summarize(project)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ProjectService) summarize(project *models.Project) (*models.ProjectSummary, error) {
	total, err := s.TotalPledged(project)
	if err != nil {
		return nil, err
	}

	tiers, err := s.rewardTierRepo.GetByProjectID(project.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load reward tiers: %w", err)
	}

	backers, err := s.pledgeRepo.CountByProjectID(project.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to count backers: %w", err)
	}

	return &models.ProjectSummary{
		Project:          project,
		StatusLabel:      string(project.Status),
		CurrencyLabel:    project.Currency.Label(),
		TotalPledged:     total,
		PercentageFunded: project.PercentageFunded(total),
		TimeRemaining:    project.TimeRemaining(s.now()),
		RewardTiers:      tiers,
		BackerCount:      backers,
	}, nil
}

// UpdateProject edits a draft project. Only its creator may do so.
func (s *ProjectService) UpdateProject(id string, actor *models.User, input ProjectInput) (*models.Project, error) {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	if !isCreator(project, actor) {
		return nil, models.ErrForbidden
	}
	if !project.IsDraft() {
		return nil, &models.TransitionError{From: project.Status, Action: "edit"}
	}

	project.Title = input.Title
	project.Description = input.Description
	project.Goal = input.Goal
	project.CoverImage = input.CoverImage
	if input.Currency != "" {
		project.Currency = input.Currency
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Publish opens a draft project for pledges. Only its creator may do so.
func (s *ProjectService) Publish(id string, actor *models.User) (*models.Project, error) {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	if !isCreator(project, actor) {
		return nil, models.ErrForbidden
	}

	if err := project.Publish(s.now()); err != nil {
		return nil, err
	}

	if err := s.projectRepo.UpdateStatus(project); err != nil {
		return nil, fmt.Errorf("failed to publish project: %w", err)
	}

	logger.WithField("project_id", project.ID).Info("Project published")
	return project, nil
}

// Cancel stops a project. Its creator and admins may do so.
func (s *ProjectService) Cancel(id string, actor *models.User) (*models.Project, error) {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	if !isCreator(project, actor) && !actor.IsAdmin {
		return nil, models.ErrForbidden
	}

	if err := project.Cancel(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.UpdateStatus(project); err != nil {
		return nil, fmt.Errorf("failed to cancel project: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"actor_id":   actor.ID,
	}).Info("Project canceled")
	return project, nil
}

// AddRewardTier attaches a reward tier to a draft or active project
func (s *ProjectService) AddRewardTier(id string, actor *models.User, description string, minimumAmount decimal.Decimal) (*models.RewardTier, error) {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	if !isCreator(project, actor) {
		return nil, models.ErrForbidden
	}
	if project.Status.IsTerminal() {
		return nil, &models.TransitionError{From: project.Status, Action: "add reward tiers to"}
	}

	tier := models.NewRewardTier(project.ID, description, minimumAmount)
	if err := tier.Validate(); err != nil {
		return nil, err
	}

	if err := s.rewardTierRepo.Create(tier); err != nil {
		return nil, fmt.Errorf("failed to create reward tier: %w", err)
	}

	return tier, nil
}

// GetRewardTier retrieves a reward tier by ID
func (s *ProjectService) GetRewardTier(id string) (*models.RewardTier, error) {
	tierID, err := uuid.Parse(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.rewardTierRepo.GetByID(tierID.String())
}

// GetVisibleProject is GetProjectByID for readers. Drafts exist only for
// their creator; viewer may be nil.
func (s *ProjectService) GetVisibleProject(id string, viewer *models.User) (*models.Project, error) {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	if project.IsDraft() && !isCreator(project, viewer) {
		return nil, models.ErrNotFound
	}
	return project, nil
}

func isCreator(project *models.Project, user *models.User) bool {
	return user != nil && project.CreatedBy == user.ID
}
