package interfaces

import (
	"context"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SOSFilter is a conjunction of equality predicates; nil fields are
// ignored. StatusIn matches any of the listed statuses.
type SOSFilter struct {
	Status     *models.SOSStatus
	StatusIn   []models.SOSStatus
	Priority   *models.SOSPriority
	UserID     *primitive.ObjectID
	AssignedTo *primitive.ObjectID
}

type SOSRepository interface {
	Create(ctx context.Context, alert *models.SOSAlert) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error)

	// Query returns matching alerts newest-first along with the total count.
	Query(ctx context.Context, filter *SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error)
	Count(ctx context.Context, filter *SOSFilter) (int64, error)

	// Update applies a partial field set and returns the updated record.
	// An empty update set is a no-op that returns the current record.
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.SOSAlert, error)
}
