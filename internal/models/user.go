package models

import "time"

// User is the already-authenticated actor identity handed to the core.
// Rows are created lazily the first time an id shows up as an author,
// approver or rollback initiator.
type User struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"index"`
	Name      string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
