package services

import (
	"fmt"
	"time"

	"study-guild-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct {
	DB     *gorm.DB
	Guilds *GuildService
}

func NewTaskService(db *gorm.DB, guilds *GuildService) *TaskService {
	return &TaskService{DB: db, Guilds: guilds}
}

type CreateTaskInput struct {
	GuildID      string
	Title        string
	Description  string
	DueDate      *time.Time
	RewardPoints int
	Difficulty   string
}

// CreateTask is role-gated: the creator must hold a leader or
// moderator membership in the guild.
func (s *TaskService) CreateTask(creatorID string, in CreateTaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: task title required", ErrInvalidRange)
	}
	if err := s.Guilds.RequireModerator(in.GuildID, creatorID); err != nil {
		return nil, err
	}

	if in.Difficulty == "" {
		in.Difficulty = "medium"
	}
	task := &models.Task{
		ID:           uuid.NewString(),
		GuildID:      in.GuildID,
		CreatedBy:    creatorID,
		Title:        in.Title,
		Description:  in.Description,
		DueDate:      in.DueDate,
		RewardPoints: in.RewardPoints,
		Difficulty:   in.Difficulty,
		Status:       models.TaskStatusActive,
	}
	if err := s.DB.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) AssignToUser(taskID, userID string) (*models.TaskAssignment, error) {
	var task models.Task
	if err := s.DB.First(&task, "id = ?", taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
		}
		return nil, err
	}

	assignment := &models.TaskAssignment{
		ID:     uuid.NewString(),
		TaskID: taskID,
		UserID: userID,
		Status: models.AssignmentStatusPending,
	}
	if err := s.DB.Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

// UpdateAssignmentStatus moves an assignment through its lifecycle.
// CompletedAt is stamped on the transition to completed.
func (s *TaskService) UpdateAssignmentStatus(assignmentID string, status models.AssignmentStatus) error {
	switch status {
	case models.AssignmentStatusPending, models.AssignmentStatusInProgress,
		models.AssignmentStatusCompleted, models.AssignmentStatusSubmitted:
	default:
		return fmt.Errorf("%w: unknown assignment status %q", ErrInvalidRange, status)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.AssignmentStatusCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}

	res := s.DB.Model(&models.TaskAssignment{}).
		Where("id = ?", assignmentID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: assignment %s", ErrNotFound, assignmentID)
	}
	return nil
}

func (s *TaskService) ListGuildTasks(guildID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.Where("guild_id = ?", guildID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (s *TaskService) ListUserAssignments(userID string) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	err := s.DB.Where("user_id = ?", userID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	return assignments, err
}
