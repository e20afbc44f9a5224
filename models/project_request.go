package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// ProjectRequest is a solver's application to work on a project.
type ProjectRequest struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	ProjectID string        `gorm:"not null;size:36;uniqueIndex:idx_project_requests_project_solver" json:"projectId"`
	SolverID  string        `gorm:"not null;size:36;uniqueIndex:idx_project_requests_project_solver" json:"solverId"`
	Solver    *User         `gorm:"foreignKey:SolverID" json:"solver,omitempty"`
	Message   string        `gorm:"not null;type:text" json:"message"`
	Status    RequestStatus `gorm:"not null;size:20;default:pending;index" json:"status"`
}

func (r *ProjectRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = RequestPending
	}
	return nil
}
