package models

import "time"

// Reward is an immutable point-grant record: appended by the
// progression service, never updated or deleted. The sum of a user's
// rewards is the source of truth that users.total_points tracks.
type Reward struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	GuildID   *string   `gorm:"type:uuid;index" json:"guild_id,omitempty"` // nil = user-only grant
	Points    int       `gorm:"not null" json:"points"`
	Reason    string    `gorm:"size:255;not null" json:"reason"` // task_completion, milestone, achievement, ...
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
