package repositories

import (
	"database/sql"
	"sync"

	"github.com/alimgiray/kickfarter/internal/models"
)

type UserRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, name, password_hash, is_admin, is_active, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create creates a new user. A second account for the same email fails with
// models.ErrEmailTaken.
func (r *UserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.IsAdmin,
		user.IsActive,
		user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(r.db.QueryRow(query, models.NormalizeEmail(email)))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// Update updates a user's mutable fields
func (r *UserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE users
		SET name = ?, password_hash = ?, is_admin = ?, is_active = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		user.Name,
		user.PasswordHash,
		user.IsAdmin,
		user.IsActive,
		user.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}
