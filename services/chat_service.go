package services

import (
	"fmt"

	"study-guild-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatService struct {
	DB *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{DB: db}
}

func (s *ChatService) ListMessages(guildID string, limit int) ([]models.GuildMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var messages []models.GuildMessage
	err := s.DB.Where("guild_id = ?", guildID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (s *ChatService) SendMessage(guildID, userID, content string) (*models.GuildMessage, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: message content required", ErrInvalidRange)
	}

	msg := &models.GuildMessage{
		ID:      uuid.NewString(),
		GuildID: guildID,
		UserID:  userID,
		Content: content,
	}
	if err := s.DB.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}
