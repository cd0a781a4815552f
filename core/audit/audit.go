// Package audit records security-relevant events (registration, login,
// logout) for later inspection.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markbase/markbase/core/logger"
)

// Event types recorded by the auth flows.
const (
	TypeRegister = "auth.register"
	TypeLogin    = "auth.login"
	TypeLogout   = "auth.logout"
)

// Event statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Event is a structured record of a security event.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`     // e.g. "auth.login"
	ActorID   string    `json:"actor_id"` // email or user ID performing the action
	Status    string    `json:"status"`   // "success" or "failure"
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// EventStore persists audit events.
type EventStore interface {
	SaveEvent(ctx context.Context, e *Event) error
}

// EventLister reads back recorded events, newest first.
type EventLister interface {
	RecentEvents(ctx context.Context, limit int) ([]*Event, error)
}

// Recorder writes audit events through an EventStore. Recording never fails
// the calling flow: persistence errors are logged and dropped.
type Recorder struct {
	store EventStore
}

func NewRecorder(store EventStore) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) Record(ctx context.Context, eventType, actorID, status, message string) {
	if r == nil || r.store == nil {
		return
	}

	e := &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		ActorID:   actorID,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := r.store.SaveEvent(ctx, e); err != nil {
		logger.Log.Error("audit: failed to save event",
			zap.String("type", eventType),
			zap.String("actor", actorID),
			zap.Error(err),
		)
	}
}
