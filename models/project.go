package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectOpen      ProjectStatus = "open"
	ProjectAssigned  ProjectStatus = "assigned"
	ProjectCompleted ProjectStatus = "completed"
)

type Project struct {
	ID               string        `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt        time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	Title            string        `gorm:"not null;size:200" json:"title"`
	Description      string        `gorm:"not null;type:text" json:"description"`
	Budget           float64       `gorm:"not null" json:"budget"`
	BuyerID          string        `gorm:"not null;size:36;index" json:"buyerId"`
	Buyer            *User         `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	AssignedSolverID *string       `gorm:"size:36;index" json:"assignedSolverId"`
	AssignedSolver   *User         `gorm:"foreignKey:AssignedSolverID" json:"assignedSolver,omitempty"`
	Status           ProjectStatus `gorm:"not null;size:20;default:open;index" json:"status"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectOpen
	}
	return nil
}

func (p *Project) IsOwnedBy(userID string) bool {
	return p.BuyerID == userID
}

func (p *Project) IsAssignedTo(userID string) bool {
	return p.AssignedSolverID != nil && *p.AssignedSolverID == userID
}

// ProjectFilter narrows a project listing. Flags only apply to the role they make sense for.
type ProjectFilter struct {
	Mine     bool
	Open     bool
	Assigned bool
}
