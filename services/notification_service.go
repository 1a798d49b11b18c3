package services

import (
	"fmt"

	"study-guild-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) ListUserNotifications(userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var notifs []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifs).Error
	return notifs, err
}

func (s *NotificationService) MarkAsRead(notificationID, userID string) error {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %s", ErrNotFound, notificationID)
	}
	return nil
}

// Notify creates an in-app notification. Used by the achievement
// worker; failures here never abort the caller's main write.
func (s *NotificationService) Notify(userID, notifType, title, content string) error {
	notif := &models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Content: content,
	}
	return s.DB.Create(notif).Error
}
