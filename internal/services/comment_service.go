package services

import (
	"fmt"

	"github.com/alimgiray/kickfarter/internal/models"
)

type CommentService struct {
	commentRepo    CommentStore
	projectService *ProjectService
}

func NewCommentService(commentRepo CommentStore, projectService *ProjectService) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		projectService: projectService,
	}
}

// AddComment posts a comment on a published project
func (s *CommentService) AddComment(user *models.User, projectID, text string) (*models.Comment, error) {
	project, err := s.projectService.GetVisibleProject(projectID, user)
	if err != nil {
		return nil, err
	}
	if project.IsDraft() {
		return nil, &models.TransitionError{From: project.Status, Action: "comment on"}
	}

	comment := models.NewComment(project.ID, user.ID, text)
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetComments lists the comments on a project, oldest first. viewer may be nil.
func (s *CommentService) GetComments(projectID string, viewer *models.User) ([]*models.Comment, error) {
	project, err := s.projectService.GetVisibleProject(projectID, viewer)
	if err != nil {
		return nil, err
	}
	return s.commentRepo.GetByProjectID(project.ID.String())
}
