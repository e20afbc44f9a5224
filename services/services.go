// Package services holds the marketplace rules. Handlers decode requests and
// call in here; everything that touches the database lives in this package.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"freelancehub/events"
	"freelancehub/exceptions"
	"freelancehub/storage"

	"gorm.io/gorm"
)

type Services struct {
	Auth        *AuthService
	Users       *UserService
	Projects    *ProjectService
	Requests    *RequestService
	Tasks       *TaskService
	Submissions *SubmissionService
	Stats       *StatsService
}

func New(db *gorm.DB, store storage.Store, publisher events.Publisher) *Services {
	if publisher == nil {
		publisher = events.NewLogPublisher(nil)
	}

	return &Services{
		Auth:        NewAuthService(db),
		Users:       NewUserService(db),
		Projects:    NewProjectService(db, publisher),
		Requests:    NewRequestService(db, publisher),
		Tasks:       NewTaskService(db, publisher),
		Submissions: NewSubmissionService(db, store, publisher),
		Stats:       NewStatsService(db),
	}
}

// publish sends an event after its transaction committed. Delivery failures
// are logged and never fail the request.
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	event.OccurredAt = time.Now().UTC()
	if err := publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			slog.String("subject", event.Subject),
			slog.String("entity_id", event.EntityID),
			slog.String("error", err.Error()),
		)
	}
}

// notFound maps gorm's missing-record error to the given exception.
func notFound(err error, missing *exceptions.Exception) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missing
	}
	return err
}
