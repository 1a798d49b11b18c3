package models

import "time"

// Course belongs to a skill. EnrollmentCount is denormalized and bumped
// in the same transaction as the enrollment insert.
type Course struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	SkillID         string    `gorm:"not null;index" json:"skill_id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Instructor      string    `gorm:"size:100" json:"instructor"`
	Difficulty      string    `gorm:"size:16;default:'beginner'" json:"difficulty"`
	Duration        int       `json:"duration"` // in hours
	EnrollmentCount int       `gorm:"default:0;not null" json:"enrollment_count"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CourseEnrollment invariant: IsCompleted iff Progress == 100, and
// CompletedAt is non-nil exactly while completed.
type CourseEnrollment struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string     `gorm:"not null;index;uniqueIndex:uk_user_course" json:"user_id"`
	CourseID    string     `gorm:"not null;index;uniqueIndex:uk_user_course" json:"course_id"`
	Progress    int        `gorm:"default:0;not null" json:"progress"` // 0-100
	IsCompleted bool       `gorm:"default:false;not null" json:"is_completed"`
	EnrolledAt  time.Time  `gorm:"autoCreateTime" json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
