package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User mirrors the identity pushed by the gateway, extended with
// gamification aggregates. Level is derived from TotalPoints
// (TotalPoints/100 + 1) and kept in sync by the progression service.
type User struct {
	ID          string   `gorm:"primaryKey;type:uuid" json:"id"`
	OpenID      string   `gorm:"uniqueIndex;size:64;not null" json:"open_id"`
	Name        string   `json:"name"`
	Email       string   `gorm:"size:320" json:"email"`
	LoginMethod string   `gorm:"size:64" json:"login_method"`
	Role        UserRole `gorm:"size:16;default:'user'" json:"role"`
	Avatar      string   `gorm:"type:text" json:"avatar"`
	Bio         string   `gorm:"type:text" json:"bio"`

	TotalPoints int `gorm:"default:0;not null" json:"total_points"`
	Level       int `gorm:"default:1;not null" json:"level"`
	TotalXP     int `gorm:"default:0;not null" json:"total_xp"`

	LastSignedIn time.Time `json:"last_signed_in"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
