package services

import (
	"errors"
	"sync"
	"testing"

	"study-guild-system/models"
)

func TestCreateGuildSeedsLeaderMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	creator := createTestUser(t, db, "alice")

	guild, err := svc.CreateGuild(creator.ID, CreateGuildInput{
		Name:     "Rust Study Circle",
		IsPublic: true,
	})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}

	if guild.Slug != "rust-study-circle" {
		t.Fatalf("expected slug rust-study-circle, got %q", guild.Slug)
	}
	if guild.MemberCount != 1 {
		t.Fatalf("expected member count 1, got %d", guild.MemberCount)
	}
	if guild.Level != 1 {
		t.Fatalf("expected level 1, got %d", guild.Level)
	}

	var member models.GuildMember
	if err := db.Where("guild_id = ? AND user_id = ?", guild.ID, creator.ID).First(&member).Error; err != nil {
		t.Fatalf("expected leader membership row: %v", err)
	}
	if member.Role != models.GuildRoleLeader {
		t.Fatalf("expected leader role, got %q", member.Role)
	}
}

func TestCreateGuildRequiresName(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	creator := createTestUser(t, db, "alice")

	if _, err := svc.CreateGuild(creator.ID, CreateGuildInput{}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestJoinGuildIsAtMostOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	creator := createTestUser(t, db, "alice")
	joiner := createTestUser(t, db, "bob")

	guild, err := svc.CreateGuild(creator.ID, CreateGuildInput{Name: "Algorithms", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}

	if err := svc.Join(guild.ID, joiner.ID); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	if err := svc.Join(guild.ID, joiner.ID); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember on second join, got %v", err)
	}

	var reloaded models.Guild
	if err := db.First(&reloaded, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloaded.MemberCount != 2 {
		t.Fatalf("expected member count 2 after duplicate join, got %d", reloaded.MemberCount)
	}

	var rows int64
	if err := db.Model(&models.GuildMember{}).
		Where("guild_id = ? AND user_id = ?", guild.ID, joiner.ID).
		Count(&rows).Error; err != nil {
		t.Fatalf("count membership rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected exactly 1 membership row, got %d", rows)
	}
}

func TestConcurrentJoinsCollapseToOneMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	creator := createTestUser(t, db, "alice")
	joiner := createTestUser(t, db, "bob")

	guild, err := svc.CreateGuild(creator.ID, CreateGuildInput{Name: "Racers", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Join(guild.ID, joiner.ID)
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyMember):
			duplicates++
		default:
			t.Fatalf("unexpected join error: %v", err)
		}
	}
	if succeeded != 1 || duplicates != 1 {
		t.Fatalf("expected exactly one winner and one ErrAlreadyMember, got %d/%d", succeeded, duplicates)
	}

	var rows int64
	if err := db.Model(&models.GuildMember{}).
		Where("guild_id = ? AND user_id = ?", guild.ID, joiner.ID).
		Count(&rows).Error; err != nil {
		t.Fatalf("count membership rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected exactly 1 membership row, got %d", rows)
	}

	var reloaded models.Guild
	if err := db.First(&reloaded, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloaded.MemberCount != 2 {
		t.Fatalf("expected member count 2, got %d", reloaded.MemberCount)
	}
}

func TestJoinUnknownGuild(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	user := createTestUser(t, db, "bob")

	if err := svc.Join("no-such-guild", user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaveGuildIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	creator := createTestUser(t, db, "alice")
	joiner := createTestUser(t, db, "bob")

	guild, err := svc.CreateGuild(creator.ID, CreateGuildInput{Name: "Databases", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}
	if err := svc.Join(guild.ID, joiner.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if err := svc.Leave(guild.ID, joiner.ID); err != nil {
		t.Fatalf("first leave failed: %v", err)
	}
	if err := svc.Leave(guild.ID, joiner.ID); err != nil {
		t.Fatalf("second leave should be a no-op, got %v", err)
	}

	var reloaded models.Guild
	if err := db.First(&reloaded, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloaded.MemberCount != 1 {
		t.Fatalf("expected member count back at 1, got %d", reloaded.MemberCount)
	}
}

func TestLeaveNeverDropsCountBelowZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	creator := createTestUser(t, db, "alice")

	guild, err := svc.CreateGuild(creator.ID, CreateGuildInput{Name: "Networking", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}

	// Simulate pre-existing drift: counter is already zero while the
	// leader membership row still exists.
	if err := db.Model(&models.Guild{}).Where("id = ?", guild.ID).
		UpdateColumn("member_count", 0).Error; err != nil {
		t.Fatalf("force counter to zero: %v", err)
	}

	if err := svc.Leave(guild.ID, creator.ID); err != nil {
		t.Fatalf("leave failed: %v", err)
	}

	var reloaded models.Guild
	if err := db.First(&reloaded, "id = ?", guild.ID).Error; err != nil {
		t.Fatalf("reload guild: %v", err)
	}
	if reloaded.MemberCount != 0 {
		t.Fatalf("expected member count to stay at 0, got %d", reloaded.MemberCount)
	}
}

func TestRequireModerator(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	creator := createTestUser(t, db, "alice")
	member := createTestUser(t, db, "bob")
	outsider := createTestUser(t, db, "carol")

	guild, err := svc.CreateGuild(creator.ID, CreateGuildInput{Name: "Compilers", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}
	if err := svc.Join(guild.ID, member.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if err := svc.RequireModerator(guild.ID, creator.ID); err != nil {
		t.Fatalf("leader should pass the moderator gate: %v", err)
	}
	if err := svc.RequireModerator(guild.ID, member.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("plain member should be forbidden, got %v", err)
	}
	if err := svc.RequireModerator(guild.ID, outsider.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-member should be forbidden, got %v", err)
	}
}

func TestListUserGuilds(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuildService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	first, err := svc.CreateGuild(alice.ID, CreateGuildInput{Name: "Guild One", IsPublic: true})
	if err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}
	if _, err := svc.CreateGuild(bob.ID, CreateGuildInput{Name: "Guild Two", IsPublic: true}); err != nil {
		t.Fatalf("CreateGuild failed: %v", err)
	}

	guilds, err := svc.ListUserGuilds(alice.ID)
	if err != nil {
		t.Fatalf("ListUserGuilds failed: %v", err)
	}
	if len(guilds) != 1 {
		t.Fatalf("expected 1 guild for alice, got %d", len(guilds))
	}
	if guilds[0].ID != first.ID {
		t.Fatalf("expected guild %s, got %s", first.ID, guilds[0].ID)
	}
}
