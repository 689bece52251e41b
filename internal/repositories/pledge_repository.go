package repositories

import (
	"database/sql"
	"sync"

	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/google/uuid"
)

// PledgeRepository handles database operations for pledges
type PledgeRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewPledgeRepository creates a new PledgeRepository
func NewPledgeRepository(db *sql.DB) *PledgeRepository {
	return &PledgeRepository{db: db}
}

const pledgeColumns = `id, amount, project_id, user_id, reward_tier_id, created_at`

func scanPledge(row rowScanner) (*models.Pledge, error) {
	pledge := &models.Pledge{}
	var rewardTierID uuid.NullUUID
	err := row.Scan(
		&pledge.ID,
		&pledge.Amount,
		&pledge.ProjectID,
		&pledge.UserID,
		&rewardTierID,
		&pledge.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rewardTierID.Valid {
		id := rewardTierID.UUID
		pledge.RewardTierID = &id
	}
	return pledge, nil
}

func (r *PledgeRepository) queryPledges(query string, args ...interface{}) ([]*models.Pledge, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pledges []*models.Pledge
	for rows.Next() {
		pledge, err := scanPledge(rows)
		if err != nil {
			return nil, err
		}
		pledges = append(pledges, pledge)
	}

	return pledges, rows.Err()
}

// Create inserts a pledge. The (user_id, project_id) unique index backs up the
// duplicate check done before insert; hitting it returns models.ErrDuplicateBacking.
func (r *PledgeRepository) Create(pledge *models.Pledge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO pledges (` + pledgeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var rewardTierID uuid.NullUUID
	if pledge.RewardTierID != nil {
		rewardTierID = uuid.NullUUID{UUID: *pledge.RewardTierID, Valid: true}
	}

	_, err := r.db.Exec(query,
		pledge.ID,
		pledge.Amount,
		pledge.ProjectID,
		pledge.UserID,
		rewardTierID,
		pledge.CreatedAt,
	)
	if isUniqueViolation(err) {
		return models.ErrDuplicateBacking
	}
	return err
}

// GetByID retrieves a pledge by ID
func (r *PledgeRepository) GetByID(id string) (*models.Pledge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + pledgeColumns + ` FROM pledges WHERE id = ?`

	pledge, err := scanPledge(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return pledge, nil
}

// GetByProjectID retrieves all pledges for a project, oldest first
func (r *PledgeRepository) GetByProjectID(projectID string) ([]*models.Pledge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT ` + pledgeColumns + `
		FROM pledges
		WHERE project_id = ?
		ORDER BY created_at ASC
	`

	return r.queryPledges(query, projectID)
}

// GetByUserID retrieves all pledges made by a user, newest first
func (r *PledgeRepository) GetByUserID(userID string) ([]*models.Pledge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT ` + pledgeColumns + `
		FROM pledges
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	return r.queryPledges(query, userID)
}

// ExistsByUserAndProject checks if a user already backs a project
func (r *PledgeRepository) ExistsByUserAndProject(userID, projectID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT COUNT(*) FROM pledges WHERE user_id = ? AND project_id = ?`
	var count int
	err := r.db.QueryRow(query, userID, projectID).Scan(&count)
	return count > 0, err
}

// CountByProjectID returns the number of backers of a project
func (r *PledgeRepository) CountByProjectID(projectID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT COUNT(*) FROM pledges WHERE project_id = ?`
	var count int
	err := r.db.QueryRow(query, projectID).Scan(&count)
	return count, err
}
