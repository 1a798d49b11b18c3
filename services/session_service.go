package services

import (
	"fmt"
	"time"

	"study-guild-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

type CreateSessionInput struct {
	GuildID     string
	Title       string
	Description string
	ScheduledAt time.Time
	Duration    int // minutes
}

func (s *SessionService) CreateSession(creatorID string, in CreateSessionInput) (*models.StudySession, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: session title required", ErrInvalidRange)
	}
	if in.Duration <= 0 {
		return nil, fmt.Errorf("%w: session duration must be positive", ErrInvalidRange)
	}

	session := &models.StudySession{
		ID:          uuid.NewString(),
		GuildID:     in.GuildID,
		CreatedBy:   creatorID,
		Title:       in.Title,
		Description: in.Description,
		ScheduledAt: in.ScheduledAt,
		Duration:    in.Duration,
		Status:      models.SessionStatusScheduled,
	}
	if err := s.DB.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) ListGuildSessions(guildID string) ([]models.StudySession, error) {
	var sessions []models.StudySession
	err := s.DB.Where("guild_id = ?", guildID).
		Order("scheduled_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// JoinSession records attendance. Re-joining an already joined session
// is a no-op.
func (s *SessionService) JoinSession(sessionID, userID string) error {
	var session models.StudySession
	if err := s.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
		}
		return err
	}

	participant := &models.SessionParticipant{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(participant).Error
}

func (s *SessionService) LeaveSession(sessionID, userID string) error {
	now := time.Now()
	return s.DB.Model(&models.SessionParticipant{}).
		Where("session_id = ? AND user_id = ? AND left_at IS NULL", sessionID, userID).
		Update("left_at", &now).Error
}

// RollSessionStatuses advances session lifecycles by clock time:
// scheduled sessions whose start has passed become ongoing, ongoing
// sessions past their end become completed. Cancelled sessions are
// left alone. Called by the scheduler.
func (s *SessionService) RollSessionStatuses(now time.Time) error {
	if err := s.DB.Model(&models.StudySession{}).
		Where("status = ? AND scheduled_at <= ?", models.SessionStatusScheduled, now).
		Update("status", models.SessionStatusOngoing).Error; err != nil {
		return err
	}

	// duration is minutes; end = scheduled_at + duration
	var ongoing []models.StudySession
	if err := s.DB.Where("status = ?", models.SessionStatusOngoing).
		Find(&ongoing).Error; err != nil {
		return err
	}
	for _, session := range ongoing {
		end := session.ScheduledAt.Add(time.Duration(session.Duration) * time.Minute)
		if now.Before(end) {
			continue
		}
		if err := s.DB.Model(&models.StudySession{}).
			Where("id = ? AND status = ?", session.ID, models.SessionStatusOngoing).
			Update("status", models.SessionStatusCompleted).Error; err != nil {
			return err
		}
	}
	return nil
}
