package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitePending  InvitationStatus = "pending"
	InviteAccepted InvitationStatus = "accepted"
	InviteDeclined InvitationStatus = "declined"
	InviteExpired  InvitationStatus = "expired"
)

// Invitation asks a user (by email) to join a project. The core only records
// it and emits the payload; rendering and delivery belong to the excluded
// mail collaborator.
type Invitation struct {
	ID           string           `gorm:"primaryKey"`
	ProjectID    string           `gorm:"not null;index"`
	InviterID    string           `gorm:"not null"`
	InviteeEmail string           `gorm:"not null"`
	Token        string           `gorm:"not null;uniqueIndex"`
	Role         MemberRole       `gorm:"type:varchar(50);default:member"`
	Status       InvitationStatus `gorm:"type:varchar(50);default:pending"`
	ExpiresAt    *time.Time
	RespondedAt  *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Token == "" {
		i.Token = uuid.NewString()
	}
	return nil
}
