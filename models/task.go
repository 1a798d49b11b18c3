package models

import "time"

type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusSubmitted  AssignmentStatus = "submitted"
)

// Task is a guild assignment worth RewardPoints. Only guild leaders and
// moderators may create tasks.
type Task struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	GuildID      string     `gorm:"not null;index" json:"guild_id"`
	CreatedBy    string     `gorm:"not null" json:"created_by"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	RewardPoints int        `gorm:"default:0;not null" json:"reward_points"`
	Difficulty   string     `gorm:"size:16;default:'medium'" json:"difficulty"` // easy, medium, hard
	Status       TaskStatus `gorm:"size:16;default:'active';not null" json:"status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

type TaskAssignment struct {
	ID            string           `gorm:"primaryKey;type:uuid" json:"id"`
	TaskID        string           `gorm:"not null;index" json:"task_id"`
	UserID        string           `gorm:"not null;index" json:"user_id"`
	Status        AssignmentStatus `gorm:"size:16;default:'pending';not null" json:"status"`
	SubmissionURL string           `gorm:"type:text" json:"submission_url"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	AssignedAt    time.Time        `gorm:"autoCreateTime" json:"assigned_at"`
}
