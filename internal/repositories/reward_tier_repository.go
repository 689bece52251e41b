package repositories

import (
	"database/sql"
	"sync"

	"github.com/alimgiray/kickfarter/internal/models"
)

type RewardTierRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewRewardTierRepository(db *sql.DB) *RewardTierRepository {
	return &RewardTierRepository{db: db}
}

const rewardTierColumns = `id, project_id, description, minimum_amount, created_at`

func scanRewardTier(row rowScanner) (*models.RewardTier, error) {
	tier := &models.RewardTier{}
	err := row.Scan(
		&tier.ID,
		&tier.ProjectID,
		&tier.Description,
		&tier.MinimumAmount,
		&tier.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tier, nil
}

// Create creates a new reward tier
func (r *RewardTierRepository) Create(tier *models.RewardTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO reward_tiers (` + rewardTierColumns + `)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		tier.ID,
		tier.ProjectID,
		tier.Description,
		tier.MinimumAmount,
		tier.CreatedAt,
	)
	return err
}

// GetByID retrieves a reward tier by ID
func (r *RewardTierRepository) GetByID(id string) (*models.RewardTier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + rewardTierColumns + ` FROM reward_tiers WHERE id = ?`

	tier, err := scanRewardTier(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return tier, nil
}

// GetByProjectID retrieves all reward tiers of a project, cheapest first
func (r *RewardTierRepository) GetByProjectID(projectID string) ([]*models.RewardTier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT ` + rewardTierColumns + `
		FROM reward_tiers
		WHERE project_id = ?
		ORDER BY CAST(minimum_amount AS REAL) ASC, created_at ASC
	`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiers := []*models.RewardTier{}
	for rows.Next() {
		tier, err := scanRewardTier(rows)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	return tiers, rows.Err()
}
