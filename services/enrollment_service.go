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

type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// EnrollSkill creates the (user, skill) row at beginner/0. Duplicate
// enrollments are caught by the unique index, not a racy pre-check.
func (s *EnrollmentService) EnrollSkill(userID, skillID string) (*models.UserSkill, error) {
	var skill models.Skill
	if err := s.DB.First(&skill, "id = ?", skillID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: skill %s", ErrNotFound, skillID)
		}
		return nil, err
	}

	enrollment := &models.UserSkill{
		ID:          uuid.NewString(),
		UserID:      userID,
		SkillID:     skillID,
		Proficiency: models.ProficiencyBeginner,
		Progress:    0,
	}
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
		DoNothing: true,
	}).Create(enrollment)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w in this skill", ErrAlreadyEnrolled)
	}
	return enrollment, nil
}

// EnrollCourse inserts the enrollment and bumps the course's
// enrollment count as one unit: if the counter update fails the insert
// rolls back with it.
func (s *EnrollmentService) EnrollCourse(userID, courseID string) (*models.CourseEnrollment, error) {
	enrollment := &models.CourseEnrollment{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: courseID,
		Progress: 0,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: course %s", ErrNotFound, courseID)
			}
			return err
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).Create(enrollment)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w in this course", ErrAlreadyEnrolled)
		}

		return tx.Model(&models.Course{}).
			Where("id = ?", courseID).
			UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// UpdateCourseProgress sets progress and derives completion:
// IsCompleted iff progress == 100, CompletedAt set on the transition to
// completed and cleared when progress moves back down.
func (s *EnrollmentService) UpdateCourseProgress(userID, courseID string, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("%w: progress must be 0-100, got %d", ErrInvalidRange, progress)
	}

	isCompleted := progress == 100
	updates := map[string]interface{}{
		"progress":     progress,
		"is_completed": isCompleted,
	}
	if isCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	} else {
		updates["completed_at"] = nil
	}

	res := s.DB.Model(&models.CourseEnrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: not enrolled in course %s", ErrNotFound, courseID)
	}
	return nil
}

func (s *EnrollmentService) ListSkills() ([]models.Skill, error) {
	var skills []models.Skill
	err := s.DB.Order("name ASC").Find(&skills).Error
	return skills, err
}

func (s *EnrollmentService) ListSkillsByCategory(category string) ([]models.Skill, error) {
	var skills []models.Skill
	err := s.DB.Where("category = ?", category).Find(&skills).Error
	return skills, err
}

func (s *EnrollmentService) ListUserSkills(userID string) ([]models.UserSkill, error) {
	var enrollments []models.UserSkill
	err := s.DB.Where("user_id = ?", userID).Find(&enrollments).Error
	return enrollments, err
}

func (s *EnrollmentService) ListCoursesBySkill(skillID string) ([]models.Course, error) {
	var courses []models.Course
	err := s.DB.Where("skill_id = ?", skillID).Find(&courses).Error
	return courses, err
}

func (s *EnrollmentService) ListUserCourseEnrollments(userID string) ([]models.CourseEnrollment, error) {
	var enrollments []models.CourseEnrollment
	err := s.DB.Where("user_id = ?", userID).Find(&enrollments).Error
	return enrollments, err
}
