package services

import (
	"testing"

	"study-guild-system/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Every connection to :memory: is its own database, so the pool
	// must stay at one connection. Concurrent transactions serialize on
	// it rather than erroring with a table lock.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.UserSkill{},
		&models.Guild{},
		&models.GuildMember{},
		&models.Course{},
		&models.CourseEnrollment{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Reward{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.GuildMessage{},
		&models.StudySession{},
		&models.SessionParticipant{},
		&models.Notification{},
		&models.LeaderboardEntry{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		ID:     uuid.NewString(),
		OpenID: "open-" + uuid.NewString(),
		Name:   name,
		Role:   models.UserRoleUser,
		Level:  1,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestSkill(t *testing.T, db *gorm.DB, name string) *models.Skill {
	t.Helper()

	skill := &models.Skill{
		ID:       uuid.NewString(),
		Name:     name,
		Category: "programming",
	}
	if err := db.Create(skill).Error; err != nil {
		t.Fatalf("failed to create test skill: %v", err)
	}
	return skill
}

func createTestCourse(t *testing.T, db *gorm.DB, skillID, title string) *models.Course {
	t.Helper()

	course := &models.Course{
		ID:      uuid.NewString(),
		SkillID: skillID,
		Title:   title,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create test course: %v", err)
	}
	return course
}
