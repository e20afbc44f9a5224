package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionAccepted SubmissionStatus = "accepted"
	SubmissionRejected SubmissionStatus = "rejected"
)

// IsDecision reports whether s is a status a buyer may set in a review.
func (s SubmissionStatus) IsDecision() bool {
	return s == SubmissionAccepted || s == SubmissionRejected
}

// TaskStatus is the status a review decision moves the parent task to.
// A rejected submission reopens the task for another upload.
func (s SubmissionStatus) TaskStatus() TaskStatus {
	if s == SubmissionAccepted {
		return TaskCompleted
	}
	return TaskPending
}

type Submission struct {
	ID        string           `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	TaskID    string           `gorm:"not null;size:36;index" json:"taskId"`
	SolverID  string           `gorm:"not null;size:36;index" json:"solverId"`
	Solver    *User            `gorm:"foreignKey:SolverID" json:"solver,omitempty"`
	FilePath  string           `gorm:"not null;size:500" json:"filePath"`
	Status    SubmissionStatus `gorm:"not null;size:20;default:pending;index" json:"status"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = SubmissionPending
	}
	return nil
}
