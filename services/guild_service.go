package services

import (
	"errors"
	"fmt"

	"study-guild-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuildService struct {
	DB *gorm.DB
}

func NewGuildService(db *gorm.DB) *GuildService {
	return &GuildService{DB: db}
}

type CreateGuildInput struct {
	Name         string
	Description  string
	IsPublic     bool
	PrimarySkill *string
}

// CreateGuild inserts the guild row (MemberCount=1) and the creator's
// leader membership in one transaction. A guild without its leader row
// is an invariant violation, so neither write may land alone.
func (s *GuildService) CreateGuild(creatorID string, in CreateGuildInput) (*models.Guild, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: guild name required", ErrInvalidRange)
	}

	guild := &models.Guild{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Slug:         slug.Make(in.Name),
		Description:  in.Description,
		CreatorID:    creatorID,
		PrimarySkill: in.PrimarySkill,
		MemberCount:  1,
		TotalPoints:  0,
		Level:        1,
		IsPublic:     in.IsPublic,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(guild).Error; err != nil {
			return err
		}
		leader := &models.GuildMember{
			ID:      uuid.NewString(),
			GuildID: guild.ID,
			UserID:  creatorID,
			Role:    models.GuildRoleLeader,
		}
		return tx.Create(leader).Error
	})
	if err != nil {
		return nil, err
	}
	return guild, nil
}

// Join adds a member-role row and bumps the guild's member count.
// The conflict-aware insert against the (guild_id, user_id) unique
// index is what collapses concurrent joins: whichever request loses
// the race sees zero rows affected and gets ErrAlreadyMember, so the
// counter is incremented exactly once per membership row.
func (s *GuildService) Join(guildID, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var guild models.Guild
		if err := tx.First(&guild, "id = ?", guildID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: guild %s", ErrNotFound, guildID)
			}
			return err
		}

		member := &models.GuildMember{
			ID:      uuid.NewString(),
			GuildID: guildID,
			UserID:  userID,
			Role:    models.GuildRoleMember,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(member)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyMember
		}

		return tx.Model(&models.Guild{}).
			Where("id = ?", guildID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).Error
	})
}

// Leave is idempotent: a second leave for the same pair is a no-op and
// the counter never drops below zero.
func (s *GuildService) Leave(guildID, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("guild_id = ? AND user_id = ?", guildID, userID).
			Delete(&models.GuildMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&models.Guild{}).
			Where("id = ? AND member_count > 0", guildID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error
	})
}

// RequireModerator gates role-restricted actions (task creation):
// the acting user must hold a leader or moderator row in the guild.
func (s *GuildService) RequireModerator(guildID, userID string) error {
	var member models.GuildMember
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: only guild leaders/moderators can do this", ErrForbidden)
	}
	if err != nil {
		return err
	}
	if member.Role != models.GuildRoleLeader && member.Role != models.GuildRoleModerator {
		return fmt.Errorf("%w: only guild leaders/moderators can do this", ErrForbidden)
	}
	return nil
}

func (s *GuildService) GetByID(id string) (*models.Guild, error) {
	var guild models.Guild
	if err := s.DB.First(&guild, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guild %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &guild, nil
}

func (s *GuildService) ListPublic(limit int) ([]models.Guild, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var guilds []models.Guild
	err := s.DB.Where("is_public = ?", true).
		Order("total_points DESC").
		Limit(limit).
		Find(&guilds).Error
	return guilds, err
}

func (s *GuildService) ListUserGuilds(userID string) ([]models.Guild, error) {
	var guilds []models.Guild
	err := s.DB.
		Joins("INNER JOIN guild_members ON guild_members.guild_id = guilds.id").
		Where("guild_members.user_id = ?", userID).
		Find(&guilds).Error
	return guilds, err
}

func (s *GuildService) ListMembers(guildID string) ([]models.GuildMember, error) {
	var members []models.GuildMember
	err := s.DB.Where("guild_id = ?", guildID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

// SetGuildImages updates icon/banner URLs after an upload. Empty
// strings leave the existing value alone.
func (s *GuildService) SetGuildImages(guildID, iconURL, bannerURL string) error {
	updates := map[string]interface{}{}
	if iconURL != "" {
		updates["icon"] = iconURL
	}
	if bannerURL != "" {
		updates["banner"] = bannerURL
	}
	if len(updates) == 0 {
		return nil
	}
	res := s.DB.Model(&models.Guild{}).Where("id = ?", guildID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: guild %s", ErrNotFound, guildID)
	}
	return nil
}
