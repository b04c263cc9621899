package repositories

import (
	"errors"

	"gorm.io/gorm"

	"revisor/internal/models"
	"revisor/pkg/apperrors"
	"revisor/pkg/db/postgres"
)

func CreateProject(project *models.Project) (*models.Project, error) {
	if err := postgres.GetDB().Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func ProjectByID(projectID string) (*models.Project, error) {
	var project models.Project
	err := postgres.GetDB().Preload("Members").First(&project, "id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("project", projectID)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func SaveProject(project *models.Project) error {
	return postgres.GetDB().Save(project).Error
}

func AddMember(member *models.ProjectMember) error {
	return postgres.GetDB().Create(member).Error
}

func RemoveMember(projectID, userID string) error {
	return postgres.GetDB().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

func UpdateMemberRole(projectID, userID string, role models.MemberRole) error {
	res := postgres.GetDB().Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("member", userID)
	}
	return nil
}

// MemberRole returns a user's role within a project. The project owner always
// counts as owner even when not enumerated in the member table.
func MemberRole(projectID, userID string) (models.MemberRole, bool, error) {
	var project models.Project
	err := postgres.GetDB().First(&project, "id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, apperrors.NotFound("project", projectID)
	}
	if err != nil {
		return "", false, err
	}
	if project.OwnerID == userID {
		return models.RoleOwner, true, nil
	}

	var member models.ProjectMember
	err = postgres.GetDB().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return member.Role, true, nil
}

func ListMembers(projectID string) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := postgres.GetDB().
		Where("project_id = ?", projectID).
		Order("joined_at").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
