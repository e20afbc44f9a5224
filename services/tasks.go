package services

import (
	"context"
	"strings"
	"time"

	"freelancehub/events"
	"freelancehub/exceptions"
	"freelancehub/models"

	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   string
	Timeline    time.Time
}

type TaskService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewTaskService(db *gorm.DB, publisher events.Publisher) *TaskService {
	return &TaskService{db: db, publisher: publisher}
}

// Create adds a milestone to a project. Only the project's assigned solver
// may add tasks, and never to a completed project.
func (s *TaskService) Create(ctx context.Context, solverID string, in CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	projectID := strings.TrimSpace(in.ProjectID)

	if title == "" || description == "" || projectID == "" {
		return nil, exceptions.BadRequest("Title, description and projectId are required")
	}
	if in.Timeline.IsZero() {
		return nil, exceptions.BadRequest("Timeline is required")
	}

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		return nil, notFound(err, exceptions.ErrProjectNotFound)
	}
	if !project.IsAssignedTo(solverID) {
		return nil, exceptions.ErrNotAssignedSolver
	}
	if project.Status == models.ProjectCompleted {
		return nil, exceptions.ErrProjectCompleted
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		ProjectID:   projectID,
		SolverID:    solverID,
		Timeline:    in.Timeline.UTC(),
		Status:      models.TaskPending,
	}
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Subject:   events.SubjectTaskCreated,
		ProjectID: projectID,
		TaskID:    task.ID,
		EntityID:  task.ID,
		ActorID:   solverID,
		Status:    string(task.Status),
	})

	return task, nil
}

func (s *TaskService) ListForProject(ctx context.Context, projectID string) ([]models.Task, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, exceptions.ErrProjectNotFound
	}

	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}
