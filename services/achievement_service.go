package services

import (
	"log"
	"strconv"
	"strings"

	"study-guild-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// SeedCatalog inserts the predefined achievements, skipping any whose
// name already exists.
func (s *AchievementService) SeedCatalog() error {
	for _, a := range models.AchievementCatalog {
		entry := a
		entry.ID = uuid.NewString()
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

// EvaluateUser checks every catalog achievement against the user's
// current state, unlocks the ones newly met, and returns them. Called
// by the achievement worker after it sees fresh reward grants, outside
// the grant transaction.
func (s *AchievementService) EvaluateUser(userID string) ([]models.Achievement, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var catalog []models.Achievement
	if err := s.DB.Find(&catalog).Error; err != nil {
		return nil, err
	}

	var unlocked []models.Achievement
	for _, achievement := range catalog {
		met, err := s.meetsRequirement(&user, achievement.Requirement)
		if err != nil {
			log.Printf("[Achievements] Bad requirement %q on %s: %v", achievement.Requirement, achievement.Name, err)
			continue
		}
		if !met {
			continue
		}

		unlock := &models.UserAchievement{
			ID:            uuid.NewString(),
			UserID:        userID,
			AchievementID: achievement.ID,
		}
		res := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).Create(unlock)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("[Achievements] Unlocked %q for user %s", achievement.Name, userID)
			unlocked = append(unlocked, achievement)
		}
	}
	return unlocked, nil
}

func (s *AchievementService) ListUserAchievements(userID string) ([]models.UserAchievement, error) {
	var unlocked []models.UserAchievement
	err := s.DB.Where("user_id = ?", userID).Find(&unlocked).Error
	return unlocked, err
}

// meetsRequirement interprets trigger strings of the form
// "<verb>_<noun>_<threshold>", e.g. "reach_level_5",
// "earn_points_1000", "complete_tasks_5", "lead_guild_1".
func (s *AchievementService) meetsRequirement(user *models.User, requirement string) (bool, error) {
	idx := strings.LastIndex(requirement, "_")
	if idx < 0 {
		return false, strconv.ErrSyntax
	}
	threshold, err := strconv.ParseInt(requirement[idx+1:], 10, 64)
	if err != nil {
		return false, err
	}

	switch requirement[:idx] {
	case "reach_level":
		return int64(user.Level) >= threshold, nil
	case "earn_points":
		return int64(user.TotalPoints) >= threshold, nil
	case "complete_tasks":
		var count int64
		err := s.DB.Model(&models.TaskAssignment{}).
			Where("user_id = ? AND status = ?", user.ID, models.AssignmentStatusCompleted).
			Count(&count).Error
		return count >= threshold, err
	case "lead_guild":
		var count int64
		err := s.DB.Model(&models.GuildMember{}).
			Where("user_id = ? AND role = ?", user.ID, models.GuildRoleLeader).
			Count(&count).Error
		return count >= threshold, err
	default:
		return false, strconv.ErrSyntax
	}
}
