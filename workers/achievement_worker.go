package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"study-guild-system/models"
	"study-guild-system/services"

	"gorm.io/gorm"
)

// AchievementWorker reacts to reward grants: it polls for reward rows
// created since the last tick, re-evaluates the affected users'
// achievements, and writes a notification for every new unlock. It is
// the external collaborator to the grant path: unlock evaluation never
// runs inside the grant transaction.
type AchievementWorker struct {
	DB            *gorm.DB
	Achievements  *services.AchievementService
	Notifications *services.NotificationService
	Interval      time.Duration
}

func NewAchievementWorker(db *gorm.DB, achievements *services.AchievementService, notifications *services.NotificationService, interval time.Duration) *AchievementWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &AchievementWorker{
		DB:            db,
		Achievements:  achievements,
		Notifications: notifications,
		Interval:      interval,
	}
}

func (w *AchievementWorker) Start(ctx context.Context) {
	log.Println("Starting achievement worker...")
	lastSeen := time.Now().UTC()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Achievement worker stopped.")
			return
		case <-ticker.C:
			tickTime := time.Now().UTC()
			if err := w.processGrantsSince(lastSeen); err != nil {
				log.Printf("[Achievements] Poll failed: %v", err)
				// Keep lastSeen so the same window retries next tick.
				continue
			}
			lastSeen = tickTime
		}
	}
}

func (w *AchievementWorker) processGrantsSince(since time.Time) error {
	var userIDs []string
	if err := w.DB.Model(&models.Reward{}).
		Distinct("user_id").
		Where("created_at > ?", since).
		Pluck("user_id", &userIDs).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	for _, userID := range userIDs {
		unlocked, err := w.Achievements.EvaluateUser(userID)
		if err != nil {
			log.Printf("[Achievements] Evaluation failed for user %s: %v", userID, err)
			continue
		}
		for _, achievement := range unlocked {
			title := fmt.Sprintf("Achievement unlocked: %s", achievement.Name)
			if err := w.Notifications.Notify(userID, "achievement", title, achievement.Description); err != nil {
				log.Printf("[Achievements] Notification failed for user %s: %v", userID, err)
			}
		}
	}
	return nil
}
