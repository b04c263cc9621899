package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"revisor/internal/models"
	"revisor/pkg/apperrors"
	"revisor/pkg/db/postgres"
)

func CreateInvitation(invitation *models.Invitation) (*models.Invitation, error) {
	if err := postgres.GetDB().Create(invitation).Error; err != nil {
		return nil, err
	}
	return invitation, nil
}

func InvitationByID(id string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := postgres.GetDB().First(&invitation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("invitation", id)
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func InvitationByToken(token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := postgres.GetDB().First(&invitation, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("invitation", token)
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func SetInvitationStatus(id string, status models.InvitationStatus, respondedAt *time.Time) error {
	return postgres.GetDB().Model(&models.Invitation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": respondedAt,
		}).Error
}

func ListInvitationsByProject(projectID string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := postgres.GetDB().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}
