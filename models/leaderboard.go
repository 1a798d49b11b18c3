package models

import "time"

type LeaderboardType string

const (
	LeaderboardTypeUser  LeaderboardType = "user"
	LeaderboardTypeGuild LeaderboardType = "guild"
)

// LeaderboardEntry is cached ranking data populated by an external
// batch process; this service only reads it.
type LeaderboardEntry struct {
	ID        string          `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    *string         `gorm:"type:uuid;index" json:"user_id,omitempty"`
	GuildID   *string         `gorm:"type:uuid;index" json:"guild_id,omitempty"`
	Type      LeaderboardType `gorm:"size:8;not null;index" json:"type"`
	Rank      int             `gorm:"not null" json:"rank"`
	Points    int             `gorm:"not null" json:"points"`
	Level     int             `gorm:"not null" json:"level"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
