package models

import "time"

// GuildMessage is a chat message in a guild channel.
type GuildMessage struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	GuildID   string    `gorm:"not null;index" json:"guild_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
