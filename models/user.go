package models

import "time"

// User represents an account that can sign in and join teams
type User struct {
	ID uint `gorm:"primarykey" json:"id"`

	// Authentication fields
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Profile information
	Name string `gorm:"not null" json:"name"`
	Role string `gorm:"default:'member'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Memberships []TeamMember `gorm:"foreignKey:UserID" json:"-"`
}

const DefaultUserRole = "member"
