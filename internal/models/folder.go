package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder groups files inside a project. Path is the slash-join of all
// ancestor names and is unique within the project.
type Folder struct {
	ID        string  `gorm:"primaryKey"`
	ProjectID string  `gorm:"not null;uniqueIndex:idx_folder_project_path"`
	ParentID  *string `gorm:"index"`
	Parent    *Folder `gorm:"foreignKey:ParentID"`
	Name      string  `gorm:"not null"`
	Path      string  `gorm:"not null;uniqueIndex:idx_folder_project_path"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Folder) TableName() string {
	return "folders"
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
