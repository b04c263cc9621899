package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is one logical path inside a project. LatestVersionID tracks the most
// recently created version record for the path, not the most recently
// approved one.
type File struct {
	ID              string  `gorm:"primaryKey"`
	ProjectID       string  `gorm:"not null;uniqueIndex:idx_file_project_path"`
	FolderID        *string `gorm:"index"`
	Folder          *Folder `gorm:"foreignKey:FolderID"`
	Path            string  `gorm:"not null;uniqueIndex:idx_file_project_path"`
	LatestVersionID *string
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (File) TableName() string {
	return "files"
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
