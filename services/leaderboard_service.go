package services

import (
	"study-guild-system/models"

	"gorm.io/gorm"
)

// LeaderboardService reads the cached leaderboard_entries table. The
// table is populated by an external batch process; this service only
// consumes it as plain data.
type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

func (s *LeaderboardService) GetTopUsers(limit int) ([]models.LeaderboardEntry, error) {
	return s.topEntries(models.LeaderboardTypeUser, limit)
}

func (s *LeaderboardService) GetTopGuilds(limit int) ([]models.LeaderboardEntry, error) {
	return s.topEntries(models.LeaderboardTypeGuild, limit)
}

func (s *LeaderboardService) topEntries(entryType models.LeaderboardType, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var entries []models.LeaderboardEntry
	err := s.DB.Where("type = ?", entryType).
		Order("rank ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
