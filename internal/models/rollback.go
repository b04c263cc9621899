package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RollbackStatus string

const (
	RollbackPending   RollbackStatus = "pending"
	RollbackCompleted RollbackStatus = "completed"
	RollbackFailed    RollbackStatus = "failed"
)

// RollbackRecord is the audit entry for one rollback attempt. It reaches
// completed only after the repository checkout has durably succeeded and is
// immutable once terminal; a re-rollback creates a new record.
type RollbackRecord struct {
	ID             string         `gorm:"primaryKey"`
	ProjectID      string         `gorm:"not null;index"`
	TargetCommitID string         `gorm:"not null"`
	InitiatorID    string         `gorm:"not null"`
	Initiator      *User          `gorm:"foreignKey:InitiatorID"`
	Status         RollbackStatus `gorm:"type:varchar(50);default:pending"`
	Note           string
	CompletedAt    *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (RollbackRecord) TableName() string {
	return "rollback_records"
}

func (r *RollbackRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
