package models

import "time"

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusOngoing   SessionStatus = "ongoing"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// StudySession is a scheduled group study slot. The status scheduler
// rolls scheduled sessions to ongoing/completed from ScheduledAt and
// Duration; cancelled sessions are never touched again.
type StudySession struct {
	ID            string        `gorm:"primaryKey;type:uuid" json:"id"`
	GuildID       string        `gorm:"not null;index" json:"guild_id"`
	CreatedBy     string        `gorm:"not null" json:"created_by"`
	Title         string        `gorm:"size:255;not null" json:"title"`
	Description   string        `gorm:"type:text" json:"description"`
	ScheduledAt   time.Time     `gorm:"not null;index" json:"scheduled_at"`
	Duration      int           `gorm:"not null" json:"duration"` // in minutes
	Status        SessionStatus `gorm:"size:16;default:'scheduled';not null" json:"status"`
	RecordingURL  string        `gorm:"type:text" json:"recording_url"`
	Transcription string        `gorm:"type:text" json:"transcription"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

type SessionParticipant struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	SessionID string     `gorm:"not null;index;uniqueIndex:uk_session_user" json:"session_id"`
	UserID    string     `gorm:"not null;uniqueIndex:uk_session_user" json:"user_id"`
	JoinedAt  time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	LeftAt    *time.Time `json:"left_at,omitempty"`
}
