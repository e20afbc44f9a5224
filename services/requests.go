package services

import (
	"context"
	"errors"
	"strings"

	"freelancehub/events"
	"freelancehub/exceptions"
	"freelancehub/models"

	"gorm.io/gorm"
)

type RequestService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewRequestService(db *gorm.DB, publisher events.Publisher) *RequestService {
	return &RequestService{db: db, publisher: publisher}
}

// Create records solverID's application to an open project. A solver can
// apply to a project once.
func (s *RequestService) Create(ctx context.Context, solverID, projectID, message string) (*models.ProjectRequest, error) {
	projectID = strings.TrimSpace(projectID)
	message = strings.TrimSpace(message)
	if projectID == "" || message == "" {
		return nil, exceptions.BadRequest("projectId and message are required")
	}

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		return nil, notFound(err, exceptions.ErrProjectNotFound)
	}
	if project.Status != models.ProjectOpen {
		return nil, exceptions.ErrProjectNotOpen
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ProjectRequest{}).
		Where("project_id = ? AND solver_id = ?", projectID, solverID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, exceptions.ErrRequestAlreadySent
	}

	request := &models.ProjectRequest{
		ProjectID: projectID,
		SolverID:  solverID,
		Message:   message,
		Status:    models.RequestPending,
	}
	if err := s.db.WithContext(ctx).Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, exceptions.ErrRequestAlreadySent
		}
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Subject:   events.SubjectRequestCreated,
		ProjectID: projectID,
		EntityID:  request.ID,
		ActorID:   solverID,
		Status:    string(request.Status),
	})

	return request, nil
}

// ListForProject returns the requests on a project to its buyer, oldest first.
func (s *RequestService) ListForProject(ctx context.Context, projectID, buyerID string) ([]models.ProjectRequest, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		return nil, notFound(err, exceptions.ErrProjectNotFound)
	}
	if !project.IsOwnedBy(buyerID) {
		return nil, exceptions.ErrNotAuthorized
	}

	var requests []models.ProjectRequest
	err := s.db.WithContext(ctx).
		Preload("Solver").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}
