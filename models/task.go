package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskSubmitted TaskStatus = "submitted"
	TaskCompleted TaskStatus = "completed"
)

// Task is a milestone the assigned solver defines inside a project.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Title       string     `gorm:"not null;size:200" json:"title"`
	Description string     `gorm:"not null;type:text" json:"description"`
	ProjectID   string     `gorm:"not null;size:36;index" json:"projectId"`
	SolverID    string     `gorm:"not null;size:36;index" json:"solverId"`
	Timeline    time.Time  `gorm:"not null" json:"timeline"`
	Status      TaskStatus `gorm:"not null;size:20;default:pending;index" json:"status"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TaskPending
	}
	return nil
}

func (t *Task) AcceptsSubmissions() bool {
	return t.Status != TaskCompleted
}
