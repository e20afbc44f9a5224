package services

import (
	"context"
	"strings"

	"freelancehub/events"
	"freelancehub/exceptions"
	"freelancehub/models"

	"gorm.io/gorm"
)

type CreateProjectInput struct {
	Title       string
	Description string
	Budget      float64
}

type ProjectService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewProjectService(db *gorm.DB, publisher events.Publisher) *ProjectService {
	return &ProjectService{db: db, publisher: publisher}
}

func (s *ProjectService) Create(ctx context.Context, buyerID string, in CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if title == "" || description == "" {
		return nil, exceptions.BadRequest("Title and description are required")
	}
	if in.Budget <= 0 {
		return nil, exceptions.BadRequest("Budget must be greater than zero")
	}

	project := &models.Project{
		Title:       title,
		Description: description,
		Budget:      in.Budget,
		BuyerID:     buyerID,
		Status:      models.ProjectOpen,
	}
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) withPeople(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Buyer").Preload("AssignedSolver")
}

// List returns projects visible to user, newest first. Buyers can narrow to
// their own projects; solvers to open projects or the ones assigned to them.
func (s *ProjectService) List(ctx context.Context, user *models.User, filter models.ProjectFilter) ([]models.Project, error) {
	query := s.withPeople(ctx)

	if user.IsBuyer() && filter.Mine {
		query = query.Where("buyer_id = ?", user.ID)
	}
	if user.IsSolver() && filter.Open {
		query = query.Where("status = ?", models.ProjectOpen)
	}
	if user.IsSolver() && filter.Assigned {
		query = query.Where("assigned_solver_id = ?", user.ID)
	}

	var projects []models.Project
	err := query.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (s *ProjectService) ListByBuyer(ctx context.Context, buyerID string) ([]models.Project, error) {
	var projects []models.Project
	err := s.withPeople(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.withPeople(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, notFound(err, exceptions.ErrProjectNotFound)
	}
	return &project, nil
}

// Assign gives an open project to solverID. The solver's pending request is
// accepted and every other pending request on the project is rejected.
func (s *ProjectService) Assign(ctx context.Context, projectID, solverID, buyerID string) (*models.Project, error) {
	solverID = strings.TrimSpace(solverID)
	if solverID == "" {
		return nil, exceptions.BadRequest("solverId is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return notFound(err, exceptions.ErrProjectNotFound)
		}
		if !project.IsOwnedBy(buyerID) {
			return exceptions.ErrNotAuthorized
		}
		if project.Status != models.ProjectOpen {
			return exceptions.ErrProjectNotOpen
		}

		var solver models.User
		if err := tx.First(&solver, "id = ?", solverID).Error; err != nil {
			return notFound(err, exceptions.ErrSolverNotFound)
		}
		if !solver.IsSolver() {
			return exceptions.ErrSolverNotFound
		}

		// The status guard keeps a concurrent assignment from overwriting this one.
		result := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", projectID, models.ProjectOpen).
			Updates(map[string]any{
				"assigned_solver_id": solverID,
				"status":             models.ProjectAssigned,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return exceptions.ErrProjectNotOpen
		}

		if err := tx.Model(&models.ProjectRequest{}).
			Where("project_id = ? AND status = ? AND solver_id = ?", projectID, models.RequestPending, solverID).
			Update("status", models.RequestAccepted).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProjectRequest{}).
			Where("project_id = ? AND status = ? AND solver_id <> ?", projectID, models.RequestPending, solverID).
			Update("status", models.RequestRejected).Error
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Subject:   events.SubjectProjectAssigned,
		ProjectID: projectID,
		EntityID:  projectID,
		ActorID:   buyerID,
		Status:    string(models.ProjectAssigned),
	})

	return s.Get(ctx, projectID)
}

// Complete closes an assigned project. Only its buyer may do this.
func (s *ProjectService) Complete(ctx context.Context, projectID, buyerID string) (*models.Project, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return notFound(err, exceptions.ErrProjectNotFound)
		}
		if !project.IsOwnedBy(buyerID) {
			return exceptions.ErrNotAuthorized
		}

		switch project.Status {
		case models.ProjectCompleted:
			return exceptions.ErrProjectCompleted
		case models.ProjectOpen:
			return exceptions.ErrProjectNotAssigned
		}

		return tx.Model(&project).Update("status", models.ProjectCompleted).Error
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.Event{
		Subject:   events.SubjectProjectCompleted,
		ProjectID: projectID,
		EntityID:  projectID,
		ActorID:   buyerID,
		Status:    string(models.ProjectCompleted),
	})

	return s.Get(ctx, projectID)
}
