package services

import (
	"fmt"

	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/alimgiray/kickfarter/pkg/logger"
)

type UpdateService struct {
	updateRepo     UpdateStore
	projectService *ProjectService
	pledgeService  *PledgeService
}

func NewUpdateService(updateRepo UpdateStore, projectService *ProjectService, pledgeService *PledgeService) *UpdateService {
	return &UpdateService{
		updateRepo:     updateRepo,
		projectService: projectService,
		pledgeService:  pledgeService,
	}
}

// PostUpdate adds a progress note. Only the project creator may post.
func (s *UpdateService) PostUpdate(user *models.User, projectID, text string, backersOnly bool) (*models.Update, error) {
	project, err := s.projectService.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if !isCreator(project, user) {
		return nil, models.ErrForbidden
	}

	update := models.NewUpdate(project.ID, text, backersOnly)
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if err := s.updateRepo.Create(update); err != nil {
		return nil, fmt.Errorf("failed to create update: %w", err)
	}

	logger.WithField("project_id", project.ID).Info("Project update posted")
	return update, nil
}

// GetUpdates lists the updates viewer may read. viewer may be nil for
// anonymous readers, who only see public updates.
func (s *UpdateService) GetUpdates(projectID string, viewer *models.User) ([]*models.Update, error) {
	project, err := s.projectService.GetVisibleProject(projectID, viewer)
	if err != nil {
		return nil, err
	}

	updates, err := s.updateRepo.GetByProjectID(project.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load updates: %w", err)
	}

	privileged := isCreator(project, viewer)
	if !privileged && viewer != nil {
		privileged, err = s.pledgeService.HasBacked(viewer, project.ID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to check backing: %w", err)
		}
	}

	visible := make([]*models.Update, 0, len(updates))
	for _, update := range updates {
		if update.VisibleTo(privileged) {
			visible = append(visible, update)
		}
	}
	return visible, nil
}
