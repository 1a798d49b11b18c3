package models

import "time"

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Skill is a catalog entry (AI/ML, Web Dev, Data Science, ...)
type Skill struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:255" json:"icon"`
	Category    string    `gorm:"size:50;not null;index" json:"category"`
	Difficulty  string    `gorm:"size:16;default:'beginner'" json:"difficulty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserSkill tracks a user's progress in a skill. At most one row per
// (user, skill) pair, enforced by the composite unique index.
type UserSkill struct {
	ID          string      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string      `gorm:"not null;index;uniqueIndex:uk_user_skill" json:"user_id"`
	SkillID     string      `gorm:"not null;index;uniqueIndex:uk_user_skill" json:"skill_id"`
	Proficiency Proficiency `gorm:"size:16;default:'beginner'" json:"proficiency"`
	Progress    int         `gorm:"default:0;not null" json:"progress"` // 0-100
	EnrolledAt  time.Time   `gorm:"autoCreateTime" json:"enrolled_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}
