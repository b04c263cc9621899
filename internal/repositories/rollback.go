package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"revisor/internal/models"
	"revisor/pkg/apperrors"
	"revisor/pkg/db/postgres"
)

func CreateRollback(rollback *models.RollbackRecord) (*models.RollbackRecord, error) {
	if err := postgres.GetDB().Create(rollback).Error; err != nil {
		return nil, err
	}
	return rollback, nil
}

func RollbackByID(id string) (*models.RollbackRecord, error) {
	var rollback models.RollbackRecord
	err := postgres.GetDB().First(&rollback, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("rollback", id)
	}
	if err != nil {
		return nil, err
	}
	return &rollback, nil
}

// CompleteRollback moves a pending record to its terminal state. Terminal
// records never change again; updating a missing or already terminal record
// is reported as not found.
func CompleteRollback(id string, status models.RollbackStatus, note string) error {
	updates := map[string]interface{}{
		"status": status,
		"note":   note,
	}
	if status == models.RollbackCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}
	res := postgres.GetDB().Model(&models.RollbackRecord{}).
		Where("id = ? AND status = ?", id, models.RollbackPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("pending rollback", id)
	}
	return nil
}

func ListRollbacksByProject(projectID string) ([]models.RollbackRecord, error) {
	var rollbacks []models.RollbackRecord
	err := postgres.GetDB().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&rollbacks).Error
	if err != nil {
		return nil, err
	}
	return rollbacks, nil
}
