package services

import (
	"context"
	"math"

	"freelancehub/models"

	"gorm.io/gorm"
)

type PlatformStats struct {
	Users    int64   `json:"users"`
	Projects int64   `json:"projects"`
	Volume   float64 `json:"volume"`
}

type BuyerStats struct {
	TotalSpent     float64 `json:"totalSpent"`
	ActiveProjects int64   `json:"activeProjects"`
	PendingReviews int64   `json:"pendingReviews"`
}

type SolverStats struct {
	TotalEarnings     float64 `json:"totalEarnings"`
	SuccessRate       int     `json:"successRate"`
	TotalProjects     int64   `json:"totalProjects"`
	AvailableProjects int64   `json:"availableProjects"`
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Platform counts users and projects. Volume only includes completed projects.
func (s *StatsService) Platform(ctx context.Context) (*PlatformStats, error) {
	db := s.db.WithContext(ctx)
	stats := &PlatformStats{}

	if err := db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Count(&stats.Projects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).
		Where("status = ?", models.ProjectCompleted).
		Select("COALESCE(SUM(budget), 0)").
		Scan(&stats.Volume).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// AllProjects lists every project with its people, newest first. An empty
// status lists all of them.
func (s *StatsService) AllProjects(ctx context.Context, status models.ProjectStatus) ([]models.Project, error) {
	query := s.db.WithContext(ctx).Preload("Buyer").Preload("AssignedSolver")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var projects []models.Project
	err := query.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (s *StatsService) Buyer(ctx context.Context, buyerID string) (*BuyerStats, error) {
	db := s.db.WithContext(ctx)
	stats := &BuyerStats{}

	if err := db.Model(&models.Project{}).
		Where("buyer_id = ? AND status = ?", buyerID, models.ProjectCompleted).
		Select("COALESCE(SUM(budget), 0)").
		Scan(&stats.TotalSpent).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Project{}).
		Where("buyer_id = ? AND status IN ?", buyerID, []models.ProjectStatus{models.ProjectOpen, models.ProjectAssigned}).
		Count(&stats.ActiveProjects).Error; err != nil {
		return nil, err
	}

	var pendingSubmissions int64
	if err := db.Model(&models.Submission{}).
		Joins("JOIN tasks ON tasks.id = submissions.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.buyer_id = ? AND submissions.status = ?", buyerID, models.SubmissionPending).
		Count(&pendingSubmissions).Error; err != nil {
		return nil, err
	}

	var pendingRequests int64
	if err := db.Model(&models.ProjectRequest{}).
		Joins("JOIN projects ON projects.id = project_requests.project_id").
		Where("projects.buyer_id = ? AND projects.status = ? AND project_requests.status = ?",
			buyerID, models.ProjectOpen, models.RequestPending).
		Count(&pendingRequests).Error; err != nil {
		return nil, err
	}

	stats.PendingReviews = pendingSubmissions + pendingRequests
	return stats, nil
}

func (s *StatsService) Solver(ctx context.Context, solverID string) (*SolverStats, error) {
	db := s.db.WithContext(ctx)
	stats := &SolverStats{}

	var completed struct {
		TotalEarnings float64
		TotalProjects int64
	}
	if err := db.Model(&models.Project{}).
		Where("assigned_solver_id = ? AND status = ?", solverID, models.ProjectCompleted).
		Select("COALESCE(SUM(budget), 0) AS total_earnings, COUNT(*) AS total_projects").
		Scan(&completed).Error; err != nil {
		return nil, err
	}
	stats.TotalEarnings = completed.TotalEarnings
	stats.TotalProjects = completed.TotalProjects

	var totalTasks, completedTasks int64
	if err := db.Model(&models.Task{}).Where("solver_id = ?", solverID).Count(&totalTasks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Task{}).
		Where("solver_id = ? AND status = ?", solverID, models.TaskCompleted).
		Count(&completedTasks).Error; err != nil {
		return nil, err
	}
	stats.SuccessRate = successRate(completedTasks, totalTasks)

	if err := db.Model(&models.Project{}).
		Where("status = ?", models.ProjectOpen).
		Count(&stats.AvailableProjects).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func successRate(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
