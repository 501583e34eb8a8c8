package interfaces

import (
	"context"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RegistrationFilter struct {
	Destination     *string
	RegisteredAfter *time.Time
	RegisteredUntil *time.Time
}

// RegistrationRepository deliberately has no update or delete methods:
// registrations are immutable once created.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error)
	Query(ctx context.Context, filter *RegistrationFilter, params *utils.PaginationParams) ([]*models.Registration, int64, error)
	Count(ctx context.Context, filter *RegistrationFilter) (int64, error)

	// MostRecent returns up to limit registrations newest-first; the
	// candidate-suggestion stub is built on this.
	MostRecent(ctx context.Context, limit int) ([]*models.Registration, error)

	// AggregateByDestination rolls matching registrations up per
	// destination, ordered by total people descending.
	AggregateByDestination(ctx context.Context, filter *RegistrationFilter) ([]*models.DestinationAggregate, error)
}
