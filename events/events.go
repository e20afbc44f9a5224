// Package events publishes marketplace state changes for other services.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectProjectAssigned    = "freelancehub.project.assigned"
	SubjectProjectCompleted   = "freelancehub.project.completed"
	SubjectRequestCreated     = "freelancehub.request.created"
	SubjectTaskCreated        = "freelancehub.task.created"
	SubjectSubmissionCreated  = "freelancehub.submission.created"
	SubjectSubmissionReviewed = "freelancehub.submission.reviewed"
)

type Event struct {
	Subject    string    `json:"subject"`
	ProjectID  string    `json:"projectId,omitempty"`
	TaskID     string    `json:"taskId,omitempty"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NATSPublisher sends each event as JSON on its subject.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("freelancehub"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(event.Subject, data)
}

// Close flushes pending messages before closing the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// LogPublisher only logs events. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.DebugContext(ctx, "event",
		slog.String("subject", event.Subject),
		slog.String("entity_id", event.EntityID),
		slog.String("actor_id", event.ActorID),
		slog.String("status", event.Status),
	)
	return nil
}
