package interfaces

import (
	"context"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserFilter struct {
	Role     *models.UserRole
	IsActive *bool
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Query(ctx context.Context, filter *UserFilter, params *utils.PaginationParams) ([]*models.User, int64, error)
	Count(ctx context.Context, filter *UserFilter) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error)

	// SetActive toggles the activity flag; users are never hard-deleted.
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.User, error)
	UpdateLocation(ctx context.Context, id primitive.ObjectID, location *models.Location) (*models.User, error)
}
