package model

import "time"

// User is owned by the identity subsystem; orders only read its session token.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Name         string `gorm:"size:255"`
	SessionToken string `gorm:"size:128"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// All lists every table the API migrates.
func All() []any {
	return []any{
		&User{},
		&Order{},
	}
}
