package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type VersionStatus string

const (
	StatusDraft         VersionStatus = "draft"
	StatusPendingReview VersionStatus = "pending_review"
	StatusApproved      VersionStatus = "approved"
	StatusRejected      VersionStatus = "rejected"
	StatusMerged        VersionStatus = "merged"
	StatusRolledBack    VersionStatus = "rolled_back"
)

// Terminal reports whether no transition may leave s.
func (s VersionStatus) Terminal() bool {
	return s == StatusRejected || s == StatusMerged || s == StatusRolledBack
}

// CanTransitionTo encodes the allowed edges of the status machine.
// Terminal states have no outgoing edges.
func (s VersionStatus) CanTransitionTo(next VersionStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusPendingReview
	case StatusPendingReview:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusMerged || next == StatusRolledBack
	}
	return false
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// VersionRecord is one commit in a project's history together with its
// review state. CommitID is unique per project and never changes once set.
type VersionRecord struct {
	ID              string         `gorm:"primaryKey"`
	ProjectID       string         `gorm:"not null;uniqueIndex:idx_version_project_commit;index:idx_version_project_branch"`
	FileID          *string        `gorm:"index"`
	File            *File          `gorm:"foreignKey:FileID"`
	CommitID        string         `gorm:"not null;uniqueIndex:idx_version_project_commit"`
	ParentCommitIDs pq.StringArray `gorm:"type:text[]"`
	Branch          string         `gorm:"default:main;index:idx_version_project_branch"`
	Message         string
	AuthorID        string        `gorm:"not null"`
	Author          *User         `gorm:"foreignKey:AuthorID"`
	Status          VersionStatus `gorm:"type:varchar(50);index"`

	// Review state. Approvals are append-only child rows.
	RequiredApprovals int
	Approvals         []VersionApproval `gorm:"foreignKey:VersionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Artifact locations for the excluded static-serving layer.
	StorageKey string
	PreviewURL string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (VersionRecord) TableName() string {
	return "version_records"
}

func (v *VersionRecord) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VersionApproval is one recorded review decision. A single approver may
// appear more than once; history is never rewritten.
type VersionApproval struct {
	ID         string   `gorm:"primaryKey"`
	VersionID  string   `gorm:"not null;index"`
	ApproverID string   `gorm:"not null"`
	Approver   *User    `gorm:"foreignKey:ApproverID"`
	Decision   Decision `gorm:"type:varchar(20);not null"`
	Comment    string
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (VersionApproval) TableName() string {
	return "version_approvals"
}

func (a *VersionApproval) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
