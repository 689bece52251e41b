package repositories

import (
	"database/sql"
	"sync"
	"time"

	"github.com/alimgiray/kickfarter/internal/models"
)

type ProjectRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

const projectColumns = `id, title, description, goal, currency, cover_image, status, duration_days, created_by, created_at, published_on`

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	var publishedOn sql.NullTime
	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Goal,
		&project.Currency,
		&project.CoverImage,
		&project.Status,
		&project.DurationDays,
		&project.CreatedBy,
		&project.CreatedAt,
		&publishedOn,
	)
	if err != nil {
		return nil, err
	}
	if publishedOn.Valid {
		t := publishedOn.Time
		project.PublishedOn = &t
	}
	return project, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *ProjectRepository) queryProjects(query string, args ...interface{}) ([]*models.Project, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		project.ID,
		project.Title,
		project.Description,
		project.Goal,
		project.Currency,
		project.CoverImage,
		project.Status,
		project.DurationDays,
		project.CreatedBy,
		project.CreatedAt,
		nullTime(project.PublishedOn),
	)

	return err
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	project, err := scanProject(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return project, nil
}

// GetByCreator retrieves all projects created by a user, newest first
func (r *ProjectRepository) GetByCreator(userID string) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE created_by = ?
		ORDER BY created_at DESC
	`

	return r.queryProjects(query, userID)
}

// GetByStatus retrieves all projects in a status, most recently published first
func (r *ProjectRepository) GetByStatus(status models.ProjectStatus) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE status = ?
		ORDER BY published_on DESC, created_at DESC
	`

	return r.queryProjects(query, status)
}

// Update updates the editable description fields of a project
func (r *ProjectRepository) Update(project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE projects
		SET title = ?, description = ?, goal = ?, currency = ?, cover_image = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		project.Title,
		project.Description,
		project.Goal,
		project.Currency,
		project.CoverImage,
		project.ID,
	)
	if err != nil {
		return err
	}

	return expectOneRow(result)
}

// UpdateStatus persists the lifecycle fields of a project
func (r *ProjectRepository) UpdateStatus(project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `UPDATE projects SET status = ?, published_on = ? WHERE id = ?`

	result, err := r.db.Exec(query, project.Status, nullTime(project.PublishedOn), project.ID)
	if err != nil {
		return err
	}

	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
