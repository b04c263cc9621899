package repositories

import (
	"errors"

	"gorm.io/gorm"

	"revisor/internal/models"
	"revisor/pkg/apperrors"
	"revisor/pkg/db/postgres"
)

func GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := postgres.GetDB().First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUser resolves an actor id, creating the row on first sight.
func GetOrCreateUser(id string) (*models.User, error) {
	user, err := GetUserByID(id)
	if errors.Is(err, apperrors.ErrNotFound) {
		created := &models.User{ID: id}
		if err := postgres.GetDB().Create(created).Error; err != nil {
			return nil, err
		}
		return created, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func SaveUser(user *models.User) error {
	return postgres.GetDB().Save(user).Error
}
