package services

import (
	"errors"
	"fmt"
	"time"

	"study-guild-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type UpsertUserInput struct {
	OpenID      string
	Name        string
	Email       string
	LoginMethod string
	Role        models.UserRole
}

// UpsertUser mirrors the gateway identity into the local users table,
// keyed by open_id. Existing rows keep their gamification aggregates;
// only the identity fields and last sign-in are refreshed.
func (s *UserService) UpsertUser(in UpsertUserInput) (*models.User, error) {
	if in.OpenID == "" {
		return nil, fmt.Errorf("%w: open_id required", ErrInvalidRange)
	}
	if in.Role == "" {
		in.Role = models.UserRoleUser
	}

	user := &models.User{
		ID:           uuid.NewString(),
		OpenID:       in.OpenID,
		Name:         in.Name,
		Email:        in.Email,
		LoginMethod:  in.LoginMethod,
		Role:         in.Role,
		Level:        1,
		LastSignedIn: time.Now(),
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "login_method", "last_signed_in",
		}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on conflict the insert ID above is not the stored one.
	return s.GetByOpenID(in.OpenID)
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByOpenID(openID string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "open_id = ?", openID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user open_id %s", ErrNotFound, openID)
		}
		return nil, err
	}
	return &user, nil
}

type UpdateProfileInput struct {
	Name   *string
	Bio    *string
	Avatar *string
}

func (s *UserService) UpdateProfile(userID string, in UpdateProfileInput) error {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if in.Avatar != nil {
		updates["avatar"] = *in.Avatar
	}
	if len(updates) == 0 {
		return nil
	}

	res := s.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return nil
}
