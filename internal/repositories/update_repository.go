package repositories

import (
	"database/sql"
	"sync"

	"github.com/alimgiray/kickfarter/internal/models"
)

type UpdateRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewUpdateRepository(db *sql.DB) *UpdateRepository {
	return &UpdateRepository{db: db}
}

// Create creates a new project update
func (r *UpdateRepository) Create(update *models.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO updates (id, project_id, text, backers_only, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		update.ID, update.ProjectID, update.Text,
		update.BackersOnly, update.CreatedAt,
	)
	return err
}

// GetByProjectID retrieves all updates of a project, newest first
func (r *UpdateRepository) GetByProjectID(projectID string) ([]*models.Update, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, project_id, text, backers_only, created_at
		FROM updates WHERE project_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := []*models.Update{}
	for rows.Next() {
		update := &models.Update{}
		err := rows.Scan(
			&update.ID, &update.ProjectID, &update.Text,
			&update.BackersOnly, &update.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		updates = append(updates, update)
	}

	return updates, rows.Err()
}
