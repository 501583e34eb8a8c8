package services

import (
	"context"
	"time"
)

// EventPublisher is the one-method dependency services use to push
// notifications to connected staff clients. Implemented by the websocket
// hub. Publish is fire-and-forget: it must never block or fail the
// mutation that triggered it.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

// NopPublisher discards events. Used when no hub is wired, and as the
// default in tests that do not assert on notifications.
type NopPublisher struct{}

func (NopPublisher) Publish(event string, payload interface{}) {}

// CacheService is the read-through cache slice used by the analytics
// engine for short-lived crowd snapshots. Satisfied by pkg/cache.RedisCache.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
