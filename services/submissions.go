package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"freelancehub/events"
	"freelancehub/exceptions"
	"freelancehub/models"
	"freelancehub/storage"

	"gorm.io/gorm"
)

type SubmissionService struct {
	db        *gorm.DB
	store     storage.Store
	publisher events.Publisher
	now       func() time.Time
}

func NewSubmissionService(db *gorm.DB, store storage.Store, publisher events.Publisher) *SubmissionService {
	return &SubmissionService{
		db:        db,
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create stores an uploaded archive as a new pending submission for taskID
// and marks the task submitted. The task is checked before anything is written.
func (s *SubmissionService) Create(ctx context.Context, taskID, solverID, filename string, content io.Reader) (*models.Submission, error) {
	if !storage.IsArchive(filename) {
		return nil, exceptions.ErrArchivesOnly
	}

	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, "id = ?", taskID).Error; err != nil {
		return nil, notFound(err, exceptions.ErrTaskNotFound)
	}
	if task.SolverID != solverID {
		return nil, exceptions.ErrNotAuthorized
	}
	if !task.AcceptsSubmissions() {
		return nil, exceptions.ErrTaskCompleted
	}

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", task.ProjectID).Error; err != nil {
		return nil, notFound(err, exceptions.ErrProjectNotFound)
	}
	if project.Status == models.ProjectCompleted {
		return nil, exceptions.ErrProjectCompleted
	}

	name := storage.ArchiveName(filename, s.now())
	if err := s.store.Save(ctx, name, content); err != nil {
		return nil, err
	}

	submission := &models.Submission{
		TaskID:   taskID,
		SolverID: solverID,
		FilePath: storage.PublicPath(name),
		Status:   models.SubmissionPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}
		return tx.Model(&models.Task{}).
			Where("id = ?", taskID).
			Update("status", models.TaskSubmitted).Error
	})
	if err != nil {
		if rmErr := s.store.Delete(ctx, name); rmErr != nil {
			slog.WarnContext(ctx, "failed to remove orphaned archive",
				slog.String("name", name),
				slog.String("error", rmErr.Error()),
			)
		}
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Subject:   events.SubjectSubmissionCreated,
		ProjectID: task.ProjectID,
		TaskID:    taskID,
		EntityID:  submission.ID,
		ActorID:   solverID,
		Status:    string(submission.Status),
	})

	return submission, nil
}

func (s *SubmissionService) ListForTask(ctx context.Context, taskID string) ([]models.Submission, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, exceptions.ErrTaskNotFound
	}

	var submissions []models.Submission
	err := s.db.WithContext(ctx).
		Preload("Solver").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

// Review records the buyer's decision on a pending submission and moves the
// parent task: accepted completes it, rejected reopens it unless it is
// already completed.
func (s *SubmissionService) Review(ctx context.Context, submissionID string, status models.SubmissionStatus, buyerID string) (*models.Submission, error) {
	if !status.IsDecision() {
		return nil, exceptions.ErrInvalidStatus
	}

	var submission models.Submission
	var task models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&submission, "id = ?", submissionID).Error; err != nil {
			return notFound(err, exceptions.ErrSubmissionNotFound)
		}
		if err := tx.First(&task, "id = ?", submission.TaskID).Error; err != nil {
			return notFound(err, exceptions.ErrTaskNotFound)
		}

		var project models.Project
		if err := tx.First(&project, "id = ?", task.ProjectID).Error; err != nil {
			return notFound(err, exceptions.ErrProjectNotFound)
		}
		if !project.IsOwnedBy(buyerID) {
			return exceptions.ErrNotAuthorized
		}
		if submission.Status != models.SubmissionPending {
			return exceptions.ErrSubmissionReviewed
		}

		result := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", submissionID, models.SubmissionPending).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return exceptions.ErrSubmissionReviewed
		}

		// A completed task stays completed; later decisions on other
		// submissions for it are recorded without moving the task.
		return tx.Model(&models.Task{}).
			Where("id = ? AND status <> ?", task.ID, models.TaskCompleted).
			Update("status", status.TaskStatus()).Error
	})
	if err != nil {
		return nil, err
	}
	submission.Status = status

	publish(ctx, s.publisher, events.Event{
		Subject:   events.SubjectSubmissionReviewed,
		ProjectID: task.ProjectID,
		TaskID:    task.ID,
		EntityID:  submission.ID,
		ActorID:   buyerID,
		Status:    string(status),
	})

	return &submission, nil
}
