package services

import (
	"sync"
	"testing"

	"kumbhsetu/internal/models"
	"kumbhsetu/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type publishedEvent struct {
	Event   string
	Payload interface{}
}

// fakePublisher records every published event for assertions.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Event: event, Payload: payload})
}

func (p *fakePublisher) Events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, len(p.events))
	copy(out, p.events)
	return out
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "text"})
	require.NoError(t, err)
	return log
}

func newActor(role models.UserRole) *Actor {
	return &Actor{
		ID:     primitive.NewObjectID(),
		Role:   role,
		Active: true,
	}
}

func inactiveActor(role models.UserRole) *Actor {
	actor := newActor(role)
	actor.Active = false
	return actor
}
