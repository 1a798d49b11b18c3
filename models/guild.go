package models

import "time"

type GuildRole string

const (
	GuildRoleLeader    GuildRole = "leader"
	GuildRoleModerator GuildRole = "moderator"
	GuildRoleMember    GuildRole = "member"
)

// Guild is a study group. MemberCount, TotalPoints and Level are
// denormalized: MemberCount tracks the exact number of GuildMember rows,
// Level is TotalPoints/500 + 1. Both are maintained inside the same
// transaction as the child-row change that triggers them.
type Guild struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Slug         string  `gorm:"size:120;index" json:"slug"`
	Description  string  `gorm:"type:text" json:"description"`
	CreatorID    string  `gorm:"not null;index" json:"creator_id"`
	Icon         string  `gorm:"type:text" json:"icon"`
	Banner       string  `gorm:"type:text" json:"banner"`
	PrimarySkill *string `gorm:"type:uuid" json:"primary_skill,omitempty"`

	MemberCount int  `gorm:"default:1;not null" json:"member_count"`
	TotalPoints int  `gorm:"default:0;not null" json:"total_points"`
	Level       int  `gorm:"default:1;not null" json:"level"`
	IsPublic    bool `gorm:"default:true;not null" json:"is_public"`

	Timestamps
}

// GuildMember is a (guild, user) membership row. The composite unique
// index is what makes concurrent joins collapse to a single row.
type GuildMember struct {
	ID       string    `gorm:"primaryKey;type:uuid" json:"id"`
	GuildID  string    `gorm:"not null;index;uniqueIndex:uk_guild_user" json:"guild_id"`
	UserID   string    `gorm:"not null;index;uniqueIndex:uk_guild_user" json:"user_id"`
	Role     GuildRole `gorm:"size:16;default:'member';not null" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
