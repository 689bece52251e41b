package repositories

import (
	"database/sql"
	"sync"

	"github.com/alimgiray/kickfarter/internal/models"
)

type CommentRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create creates a new comment
func (r *CommentRepository) Create(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO comments (id, project_id, user_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		comment.ID, comment.ProjectID, comment.UserID,
		comment.Text, comment.CreatedAt,
	)
	return err
}

// GetByProjectID retrieves all comments on a project, oldest first
func (r *CommentRepository) GetByProjectID(projectID string) ([]*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, project_id, user_id, text, created_at
		FROM comments WHERE project_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(
			&comment.ID, &comment.ProjectID, &comment.UserID,
			&comment.Text, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}
