package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

type MemberRole string

const (
	RoleOwner      MemberRole = "owner"
	RoleMaintainer MemberRole = "maintainer"
	RoleMember     MemberRole = "member"
)

type Project struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	OwnerID     string `gorm:"not null;index"`
	Owner       *User  `gorm:"foreignKey:OwnerID"`
	RepoPath    string

	// Versioning policy. ReviewRequired must not carry a column default:
	// gorm omits zero-valued fields that have one on insert, so false
	// would never reach the row. CreateProject writes the flag explicitly.
	ReviewRequired bool
	MinApprovals   int    `gorm:"default:1"`
	BranchStrategy string `gorm:"default:main"`

	Status    ProjectStatus `gorm:"type:varchar(50);default:active"`
	CreatedAt time.Time     `gorm:"autoCreateTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime"`

	Members []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectMember links a user to a project with a role.
// (project, user) pairs are unique.
type ProjectMember struct {
	ID        string     `gorm:"primaryKey"`
	ProjectID string     `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID    string     `gorm:"not null;uniqueIndex:idx_project_user"`
	User      *User      `gorm:"foreignKey:UserID"`
	Role      MemberRole `gorm:"type:varchar(50);not null"`
	JoinedAt  time.Time  `gorm:"autoCreateTime"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
