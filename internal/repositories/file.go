package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"revisor/internal/models"
	"revisor/pkg/apperrors"
	"revisor/pkg/db/postgres"
)

// CreateFile inserts the row for a path. When a concurrent upload won the
// project+path uniqueness race, the insert is a no-op and the winner's row is
// returned instead.
func CreateFile(file *models.File) (*models.File, error) {
	res := postgres.GetDB().Clauses(clause.OnConflict{DoNothing: true}).Create(file)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := FileByProjectAndPath(file.ProjectID, file.Path)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperrors.NotFound("file", file.Path)
		}
		return existing, nil
	}
	return file, nil
}

func FileByID(id string) (*models.File, error) {
	var file models.File
	err := postgres.GetDB().First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("file", id)
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// FileByProjectAndPath returns nil without error when the path has never
// been committed to.
func FileByProjectAndPath(projectID, path string) (*models.File, error) {
	var file models.File
	err := postgres.GetDB().
		Where("project_id = ? AND path = ?", projectID, path).
		First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// SetLatestVersion repoints a file at its most recently created version.
func SetLatestVersion(fileID, versionID string) error {
	return postgres.GetDB().Model(&models.File{}).
		Where("id = ?", fileID).
		Update("latest_version_id", versionID).Error
}

func ListFilesByProject(projectID string) ([]models.File, error) {
	var files []models.File
	err := postgres.GetDB().
		Where("project_id = ?", projectID).
		Order("path").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}
