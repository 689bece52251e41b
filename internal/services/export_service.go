package services

import (
	"bytes"
	"fmt"

	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const backersSheet = "Backers"

var backerHeaders = []string{"Backer", "Email", "Amount", "Currency", "Reward Tier", "Pledged At"}

type ExportService struct {
	projectService *ProjectService
	pledgeRepo     PledgeStore
	userRepo       UserStore
	rewardTierRepo RewardTierStore
}

func NewExportService(projectService *ProjectService, pledgeRepo PledgeStore, userRepo UserStore, rewardTierRepo RewardTierStore) *ExportService {
	return &ExportService{
		projectService: projectService,
		pledgeRepo:     pledgeRepo,
		userRepo:       userRepo,
		rewardTierRepo: rewardTierRepo,
	}
}

// ExportBackers renders the backers of a project as an xlsx workbook. The
// project creator and admins may export.
func (s *ExportService) ExportBackers(projectID string, actor *models.User) (*models.Project, *bytes.Buffer, error) {
	project, err := s.projectService.GetProjectByID(projectID)
	if err != nil {
		return nil, nil, err
	}
	if !isCreator(project, actor) && !actor.IsAdmin {
		return nil, nil, models.ErrForbidden
	}

	pledges, err := s.pledgeRepo.GetByProjectID(project.ID.String())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load pledges: %w", err)
	}

	tiers, err := s.rewardTierRepo.GetByProjectID(project.ID.String())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reward tiers: %w", err)
	}
	tierNames := make(map[string]string, len(tiers))
	for _, tier := range tiers {
		tierNames[tier.ID.String()] = tier.Description
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", backersSheet); err != nil {
		return nil, nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range backerHeaders {
		if err := setCell(f, i+1, 1, header); err != nil {
			return nil, nil, err
		}
	}

	for i, pledge := range pledges {
		backer, err := s.userRepo.GetByID(pledge.UserID.String())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load backer %s: %w", pledge.UserID, err)
		}

		tierName := ""
		if pledge.RewardTierID != nil {
			tierName = tierNames[pledge.RewardTierID.String()]
		}

		row := []interface{}{
			backer.DisplayName(),
			backer.Email,
			pledge.Amount.InexactFloat64(),
			project.Currency.Label(),
			tierName,
			pledge.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range row {
			if err := setCell(f, col+1, i+2, value); err != nil {
				return nil, nil, err
			}
		}
	}

	if err := f.SetColWidth(backersSheet, "A", "F", 22); err != nil {
		return nil, nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.WithField("project_id", project.ID).Infof("Exported %d backers", len(pledges))
	return project, buf, nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(backersSheet, cell, value)
}
