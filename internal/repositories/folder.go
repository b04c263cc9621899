package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"revisor/internal/models"
	"revisor/pkg/apperrors"
	"revisor/pkg/db/postgres"
)

// CreateFolder inserts the folder row, converging on the existing row when a
// concurrent caller created the same project+path first.
func CreateFolder(folder *models.Folder) (*models.Folder, error) {
	res := postgres.GetDB().Clauses(clause.OnConflict{DoNothing: true}).Create(folder)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := FolderByPath(folder.ProjectID, folder.Path)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperrors.NotFound("folder", folder.Path)
		}
		return existing, nil
	}
	return folder, nil
}

// FolderByPath finds a folder by its full path within a project. Returns nil
// without error when no such folder exists.
func FolderByPath(projectID, path string) (*models.Folder, error) {
	var folder models.Folder
	err := postgres.GetDB().
		Where("project_id = ? AND path = ?", projectID, path).
		First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func ListFoldersByProject(projectID string) ([]models.Folder, error) {
	var folders []models.Folder
	err := postgres.GetDB().
		Where("project_id = ?", projectID).
		Order("path").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}
