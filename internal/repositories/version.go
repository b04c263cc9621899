package repositories

import (
	"errors"

	"gorm.io/gorm"

	"revisor/internal/models"
	"revisor/pkg/apperrors"
	"revisor/pkg/db/postgres"
)

func CreateVersion(version *models.VersionRecord) (*models.VersionRecord, error) {
	if err := postgres.GetDB().Create(version).Error; err != nil {
		return nil, err
	}
	return version, nil
}

func VersionByID(id string) (*models.VersionRecord, error) {
	var version models.VersionRecord
	err := postgres.GetDB().
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("version_approvals.created_at")
		}).
		First(&version, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("version", id)
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func VersionByCommitID(projectID, commitID string) (*models.VersionRecord, error) {
	var version models.VersionRecord
	err := postgres.GetDB().
		Where("project_id = ? AND commit_id = ?", projectID, commitID).
		First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("version", commitID)
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// VersionFilter narrows ListVersions. Zero values mean "any".
type VersionFilter struct {
	ProjectID string
	FileID    string
	Branch    string
	Status    models.VersionStatus
	Page      int
	Limit     int
}

// ListVersions returns matching records newest first, plus the total count
// before paging.
func ListVersions(filter VersionFilter) ([]models.VersionRecord, int64, error) {
	query := postgres.GetDB().Model(&models.VersionRecord{})
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.FileID != "" {
		query = query.Where("file_id = ?", filter.FileID)
	}
	if filter.Branch != "" {
		query = query.Where("branch = ?", filter.Branch)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var versions []models.VersionRecord
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&versions).Error
	if err != nil {
		return nil, 0, err
	}
	return versions, total, nil
}

// AppendApproval records one review decision. The approvals list is
// append-only; a repeat decision from the same approver is a new row, never
// an update of an old one.
func AppendApproval(versionID string, approval *models.VersionApproval) error {
	var version models.VersionRecord
	err := postgres.GetDB().First(&version, "id = ?", versionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("version", versionID)
	}
	if err != nil {
		return err
	}

	approval.VersionID = versionID
	return postgres.GetDB().Create(approval).Error
}

func ApprovalsByVersion(versionID string) ([]models.VersionApproval, error) {
	var approvals []models.VersionApproval
	err := postgres.GetDB().
		Where("version_id = ?", versionID).
		Order("created_at").
		Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return approvals, nil
}

func SetVersionStatus(versionID string, status models.VersionStatus) error {
	res := postgres.GetDB().Model(&models.VersionRecord{}).
		Where("id = ?", versionID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("version", versionID)
	}
	return nil
}
