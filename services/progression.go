package services

import (
	"errors"
	"fmt"
	"log"

	"study-guild-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Points needed per level step. A user gains a level every 100 points,
// a guild every 500.
const (
	UserPointsPerLevel  = 100
	GuildPointsPerLevel = 500
)

// levelForPoints derives a user level from total points:
// 0-99 → 1, 100-199 → 2, and so on. Totals are kept non-negative so
// integer division is exact floor here.
func levelForPoints(totalPoints int) int {
	return totalPoints/UserPointsPerLevel + 1
}

func guildLevelForPoints(totalPoints int) int {
	return totalPoints/GuildPointsPerLevel + 1
}

type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// GrantReward appends an immutable reward record and folds the points
// into the user's (and optionally guild's) aggregates, all in one
// transaction. Repeated identical grants are allowed; reasons like
// "task_completion" legitimately recur. The aggregate updates are
// single UPDATE statements whose right-hand sides read the old row, so
// concurrent grants cannot lose points to a read-modify-write race.
func (s *ProgressionService) GrantReward(userID string, points int, reason string, guildID *string) (*models.User, error) {
	var updated models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", ErrNotFound, userID)
			}
			return err
		}

		// Deductions are allowed, but a total below zero is not.
		if user.TotalPoints+points < 0 {
			return fmt.Errorf("%w: grant of %d would drive total points below 0", ErrInvalidRange, points)
		}

		reward := &models.Reward{
			ID:      uuid.NewString(),
			UserID:  userID,
			GuildID: guildID,
			Points:  points,
			Reason:  reason,
		}
		if err := tx.Create(reward).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"total_points": gorm.Expr("total_points + ?", points),
				"total_xp":     gorm.Expr("total_xp + ?", points),
				"level":        gorm.Expr("(total_points + ?) / ? + 1", points, UserPointsPerLevel),
			}).Error; err != nil {
			return err
		}

		// Guild aggregates only move when the grant names a guild, and
		// a missing guild is skipped rather than failing the grant. The
		// zero floor applies to the guild total too; a deduction the
		// guild cannot absorb rolls back the whole grant.
		if guildID != nil {
			var guild models.Guild
			err := tx.First(&guild, "id = ?", *guildID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				log.Printf("[Progression] Grant for unknown guild %s, user aggregate applied only", *guildID)
			case err != nil:
				return err
			default:
				if guild.TotalPoints+points < 0 {
					return fmt.Errorf("%w: grant of %d would drive guild points below 0", ErrInvalidRange, points)
				}
				if err := tx.Model(&models.Guild{}).
					Where("id = ?", *guildID).
					Updates(map[string]interface{}{
						"total_points": gorm.Expr("total_points + ?", points),
						"level":        gorm.Expr("(total_points + ?) / ? + 1", points, GuildPointsPerLevel),
					}).Error; err != nil {
					return err
				}
			}
		}

		return tx.First(&updated, "id = ?", userID).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Progression] Granted %d points to user %s (reason: %s) → total=%d level=%d",
		points, userID, reason, updated.TotalPoints, updated.Level)
	return &updated, nil
}

func (s *ProgressionService) ListUserRewards(userID string, limit int) ([]models.Reward, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rewards []models.Reward
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rewards).Error
	return rewards, err
}

func (s *ProgressionService) ListGuildRewards(guildID string, limit int) ([]models.Reward, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rewards []models.Reward
	err := s.DB.Where("guild_id = ?", guildID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rewards).Error
	return rewards, err
}

// UserStats aggregates the numbers the profile page shows.
type UserStats struct {
	User              *models.User `json:"user"`
	SkillsCount       int64        `json:"skills_count"`
	AchievementsCount int64        `json:"achievements_count"`
	TotalRewards      int64        `json:"total_rewards"`
}

func (s *ProgressionService) GetUserStats(userID string) (*UserStats, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, err
	}

	stats := &UserStats{User: &user}

	if err := s.DB.Model(&models.UserSkill{}).
		Where("user_id = ?", userID).
		Count(&stats.SkillsCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Count(&stats.AchievementsCount).Error; err != nil {
		return nil, err
	}

	var sum struct{ Total int64 }
	if err := s.DB.Model(&models.Reward{}).
		Select("COALESCE(SUM(points), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.TotalRewards = sum.Total

	return stats, nil
}

// ReconcileCounters recomputes the denormalized member and enrollment
// counters from their child rows. This is an operational safety net for
// drift (manual edits, partial restores); the hot path keeps counters
// in sync transactionally.
func (s *ProgressionService) ReconcileCounters() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`UPDATE guilds SET member_count = (
			SELECT COUNT(*) FROM guild_members WHERE guild_members.guild_id = guilds.id
		)`).Error; err != nil {
			return err
		}
		return tx.Exec(`UPDATE courses SET enrollment_count = (
			SELECT COUNT(*) FROM course_enrollments WHERE course_enrollments.course_id = courses.id
		)`).Error
	})
}
