package services

import (
	"errors"
	"testing"

	"study-guild-system/models"
)

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}
	for _, c := range cases {
		if got := levelForPoints(c.points); got != c.level {
			t.Fatalf("levelForPoints(%d) = %d, want %d", c.points, got, c.level)
		}
	}

	if got := guildLevelForPoints(1200); got != 3 {
		t.Fatalf("guildLevelForPoints(1200) = %d, want 3", got)
	}
	if got := guildLevelForPoints(499); got != 1 {
		t.Fatalf("guildLevelForPoints(499) = %d, want 1", got)
	}
}

func TestGrantRewardUpdatesAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	user := createTestUser(t, db, "alice")

	if _, err := svc.GrantReward(user.ID, 80, "task_completion", nil); err != nil {
		t.Fatalf("first grant: %v", err)
	}
	updated, err := svc.GrantReward(user.ID, 30, "milestone", nil)
	if err != nil {
		t.Fatalf("second grant: %v", err)
	}

	if updated.TotalPoints != 110 {
		t.Fatalf("expected 110 total points, got %d", updated.TotalPoints)
	}
	if updated.TotalXP != 110 {
		t.Fatalf("expected 110 total xp, got %d", updated.TotalXP)
	}
	if updated.Level != 2 {
		t.Fatalf("expected level 2 at 110 points, got %d", updated.Level)
	}

	var rewards int64
	if err := db.Model(&models.Reward{}).Where("user_id = ?", user.ID).Count(&rewards).Error; err != nil {
		t.Fatalf("count rewards: %v", err)
	}
	if rewards != 2 {
		t.Fatalf("expected 2 reward rows, got %d", rewards)
	}
}

func TestGrantRewardGuildScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	guilds := NewGuildService(db)
	user := createTestUser(t, db, "alice")

	guild, err := guilds.CreateGuild(user.ID, CreateGuildInput{Name: "Study Squad", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}

	if _, err := svc.GrantReward(user.ID, 600, "tournament_win", &guild.ID); err != nil {
		t.Fatalf("grant: %v", err)
	}

	var reloaded models.Guild
	if err := db.First(&reloaded, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloaded.TotalPoints != 600 {
		t.Fatalf("expected guild points 600, got %d", reloaded.TotalPoints)
	}
	if reloaded.Level != 2 {
		t.Fatalf("expected guild level 2 at 600 points, got %d", reloaded.Level)
	}
}

func TestGrantRewardWithoutGuildLeavesGuildsAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	guilds := NewGuildService(db)
	user := createTestUser(t, db, "alice")

	guild, err := guilds.CreateGuild(user.ID, CreateGuildInput{Name: "Untouched", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}

	if _, err := svc.GrantReward(user.ID, 200, "milestone", nil); err != nil {
		t.Fatalf("grant: %v", err)
	}

	var reloaded models.Guild
	if err := db.First(&reloaded, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloaded.TotalPoints != 0 {
		t.Fatalf("expected guild points untouched, got %d", reloaded.TotalPoints)
	}
}

func TestGrantRewardUnknownGuildStillAppliesToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	user := createTestUser(t, db, "alice")

	ghost := "00000000-0000-0000-0000-000000000000"
	updated, err := svc.GrantReward(user.ID, 50, "milestone", &ghost)
	if err != nil {
		t.Fatalf("grant with unknown guild should not fail: %v", err)
	}
	if updated.TotalPoints != 50 {
		t.Fatalf("expected 50 points, got %d", updated.TotalPoints)
	}
}

func TestGrantRewardRejectsNegativeTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	user := createTestUser(t, db, "alice")

	if _, err := svc.GrantReward(user.ID, 40, "task_completion", nil); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := svc.GrantReward(user.ID, -100, "penalty", nil); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	// The rejected grant must leave no trace.
	var reloaded models.User
	if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.TotalPoints != 40 {
		t.Fatalf("expected 40 points after rejected deduction, got %d", reloaded.TotalPoints)
	}
	var rewards int64
	if err := db.Model(&models.Reward{}).Where("user_id = ?", user.ID).Count(&rewards).Error; err != nil {
		t.Fatalf("count rewards: %v", err)
	}
	if rewards != 1 {
		t.Fatalf("expected 1 reward row, got %d", rewards)
	}

	// Deductions within the balance are fine.
	updated, err := svc.GrantReward(user.ID, -40, "penalty", nil)
	if err != nil {
		t.Fatalf("in-balance deduction: %v", err)
	}
	if updated.TotalPoints != 0 {
		t.Fatalf("expected 0 points, got %d", updated.TotalPoints)
	}
	if updated.Level != 1 {
		t.Fatalf("expected level 1, got %d", updated.Level)
	}
}

func TestGrantRewardRejectsNegativeGuildTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	guilds := NewGuildService(db)
	user := createTestUser(t, db, "alice")

	guild, err := guilds.CreateGuild(user.ID, CreateGuildInput{Name: "Broke Guild", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}
	if _, err := svc.GrantReward(user.ID, 1000, "milestone", nil); err != nil {
		t.Fatalf("grant: %v", err)
	}

	// The user could absorb -600, but the guild sits at 0 and cannot.
	if _, err := svc.GrantReward(user.ID, -600, "penalty", &guild.ID); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	// The rejection rolls back the user side and the reward row too.
	var reloadedUser models.User
	if err := db.First(&reloadedUser, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloadedUser.TotalPoints != 1000 {
		t.Fatalf("expected user points untouched at 1000, got %d", reloadedUser.TotalPoints)
	}
	var rewards int64
	if err := db.Model(&models.Reward{}).Where("user_id = ?", user.ID).Count(&rewards).Error; err != nil {
		t.Fatalf("count rewards: %v", err)
	}
	if rewards != 1 {
		t.Fatalf("expected 1 reward row, got %d", rewards)
	}

	var reloadedGuild models.Guild
	if err := db.First(&reloadedGuild, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloadedGuild.TotalPoints != 0 {
		t.Fatalf("expected guild points still 0, got %d", reloadedGuild.TotalPoints)
	}
	if reloadedGuild.Level != 1 {
		t.Fatalf("expected guild level still 1, got %d", reloadedGuild.Level)
	}

	// A deduction the guild can absorb goes through on both sides.
	if _, err := svc.GrantReward(user.ID, 600, "tournament_win", &guild.ID); err != nil {
		t.Fatalf("fund guild: %v", err)
	}
	if _, err := svc.GrantReward(user.ID, -500, "penalty", &guild.ID); err != nil {
		t.Fatalf("in-balance guild deduction: %v", err)
	}
	if err := db.First(&reloadedGuild, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloadedGuild.TotalPoints != 100 {
		t.Fatalf("expected guild points 100, got %d", reloadedGuild.TotalPoints)
	}
	if reloadedGuild.Level != 1 {
		t.Fatalf("expected guild level 1 at 100 points, got %d", reloadedGuild.Level)
	}
}

func TestGrantRewardUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)

	if _, err := svc.GrantReward("no-such-user", 10, "milestone", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	enrollments := NewEnrollmentService(db)
	user := createTestUser(t, db, "alice")
	skill := createTestSkill(t, db, "Statistics")

	if _, err := enrollments.EnrollSkill(user.ID, skill.ID); err != nil {
		t.Fatalf("enroll skill: %v", err)
	}
	if _, err := svc.GrantReward(user.ID, 30, "task_completion", nil); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := svc.GrantReward(user.ID, 70, "milestone", nil); err != nil {
		t.Fatalf("grant: %v", err)
	}

	stats, err := svc.GetUserStats(user.ID)
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	if stats.SkillsCount != 1 {
		t.Fatalf("expected 1 skill, got %d", stats.SkillsCount)
	}
	if stats.TotalRewards != 100 {
		t.Fatalf("expected rewards sum 100, got %d", stats.TotalRewards)
	}
	if stats.User.TotalPoints != 100 {
		t.Fatalf("expected 100 total points, got %d", stats.User.TotalPoints)
	}
}

func TestReconcileCountersRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	guilds := NewGuildService(db)
	enrollments := NewEnrollmentService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	skill := createTestSkill(t, db, "Go")
	course := createTestCourse(t, db, skill.ID, "Concurrency Patterns")

	guild, err := guilds.CreateGuild(alice.ID, CreateGuildInput{Name: "Gophers", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}
	if err := guilds.Join(guild.ID, bob.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := enrollments.EnrollCourse(alice.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	// Inject drift into both counters.
	if err := db.Model(&models.Guild{}).Where("id = ?", guild.ID).
		UpdateColumn("member_count", 99).Error; err != nil {
		t.Fatalf("inject guild drift: %v", err)
	}
	if err := db.Model(&models.Course{}).Where("id = ?", course.ID).
		UpdateColumn("enrollment_count", 0).Error; err != nil {
		t.Fatalf("inject course drift: %v", err)
	}

	if err := svc.ReconcileCounters(); err != nil {
		t.Fatalf("ReconcileCounters failed: %v", err)
	}

	var reloadedGuild models.Guild
	if err := db.First(&reloadedGuild, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloadedGuild.MemberCount != 2 {
		t.Fatalf("expected member count repaired to 2, got %d", reloadedGuild.MemberCount)
	}

	var reloadedCourse models.Course
	if err := db.First(&reloadedCourse, "id = ?", course.ID).Error; err != nil {
		t.Fatalf("reload course: %v", err)
	}
	if reloadedCourse.EnrollmentCount != 1 {
		t.Fatalf("expected enrollment count repaired to 1, got %d", reloadedCourse.EnrollmentCount)
	}
}
