package models

import "time"

// Achievement: static catalog (seeded at startup). Requirement is a
// machine-readable trigger string evaluated by the achievement worker,
// e.g. "reach_level_5" or "complete_3_tasks".
type Achievement struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:text" json:"icon"`
	Requirement string    `gorm:"size:255;not null" json:"requirement"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserAchievement: unlocked instance (many-to-many)
type UserAchievement struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string    `gorm:"not null;index;uniqueIndex:uk_user_achievement" json:"user_id"`
	AchievementID string    `gorm:"not null;index;uniqueIndex:uk_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"autoCreateTime" json:"unlocked_at"`
}

// Predefined achievement catalog (seeded if missing)
var AchievementCatalog = []Achievement{
	{
		Name:        "First Steps",
		Description: "Earned your first points",
		Requirement: "earn_points_1",
	},
	{
		Name:        "Rising Star",
		Description: "Reached level 5",
		Requirement: "reach_level_5",
	},
	{
		Name:        "Scholar",
		Description: "Reached level 10",
		Requirement: "reach_level_10",
	},
	{
		Name:        "Task Master",
		Description: "Completed 5 guild tasks",
		Requirement: "complete_tasks_5",
	},
	{
		Name:        "Guild Founder",
		Description: "Created a guild",
		Requirement: "lead_guild_1",
	},
	{
		Name:        "Point Hoarder",
		Description: "Accumulated 1000 total points",
		Requirement: "earn_points_1000",
	},
}
