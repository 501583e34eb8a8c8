package interfaces

import (
	"context"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LostFoundFilter struct {
	Type       *models.ReportType
	Status     *models.ReportStatus
	ReportedBy *primitive.ObjectID
	IsPerson   *bool
}

type LostFoundRepository interface {
	Create(ctx context.Context, report *models.LostFoundReport) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.LostFoundReport, error)
	Query(ctx context.Context, filter *LostFoundFilter, params *utils.PaginationParams) ([]*models.LostFoundReport, int64, error)
	Count(ctx context.Context, filter *LostFoundFilter) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.LostFoundReport, error)

	// MatchReports links two reports symmetrically and marks both
	// matched. Implementations must apply both halves or neither; a
	// one-sided write must come back as an error, never silently.
	MatchReports(ctx context.Context, idA, idB primitive.ObjectID) error
}
