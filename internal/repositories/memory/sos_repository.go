package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sosRepository struct {
	mu     sync.RWMutex
	alerts map[primitive.ObjectID]*models.SOSAlert
}

func NewSOSRepository() interfaces.SOSRepository {
	return &sosRepository{
		alerts: make(map[primitive.ObjectID]*models.SOSAlert),
	}
}

func (r *sosRepository) Create(ctx context.Context, alert *models.SOSAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = alert.CreatedAt

	stored := *alert
	r.alerts[alert.ID] = &stored

	return nil
}

func (r *sosRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alert, ok := r.alerts[id]
	if !ok {
		return nil, fmt.Errorf("sos alert: %w", utils.ErrNotFound)
	}

	out := *alert
	return &out, nil
}

func (r *sosRepository) Query(ctx context.Context, filter *interfaces.SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.SOSAlert
	for _, alert := range r.alerts {
		if sosMatches(alert, filter) {
			out := *alert
			matched = append(matched, &out)
		}
	}

	sortNewestFirst(matched, func(a *models.SOSAlert) time.Time { return a.CreatedAt })
	total := int64(len(matched))

	return paginate(matched, params), total, nil
}

func (r *sosRepository) Count(ctx context.Context, filter *interfaces.SOSFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, alert := range r.alerts {
		if sosMatches(alert, filter) {
			count++
		}
	}
	return count, nil
}

func (r *sosRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.SOSAlert, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[id]
	if !ok {
		return nil, fmt.Errorf("sos alert: %w", utils.ErrNotFound)
	}

	for field, value := range updates {
		switch field {
		case "status":
			alert.Status = value.(models.SOSStatus)
		case "priority":
			alert.Priority = value.(models.SOSPriority)
		case "message":
			alert.Message = value.(string)
		case "assigned_to":
			if value == nil {
				alert.AssignedTo = nil
			} else {
				assignee := value.(primitive.ObjectID)
				alert.AssignedTo = &assignee
			}
		case "resolved_at":
			if value == nil {
				alert.ResolvedAt = nil
			} else {
				at := value.(time.Time)
				alert.ResolvedAt = &at
			}
		case "location":
			alert.Location = value.(models.Location)
		}
	}
	alert.UpdatedAt = time.Now()

	out := *alert
	return &out, nil
}

func sosMatches(alert *models.SOSAlert, filter *interfaces.SOSFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Status != nil && alert.Status != *filter.Status {
		return false
	}
	if len(filter.StatusIn) > 0 {
		found := false
		for _, status := range filter.StatusIn {
			if alert.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Priority != nil && alert.Priority != *filter.Priority {
		return false
	}
	if filter.UserID != nil && (alert.UserID == nil || *alert.UserID != *filter.UserID) {
		return false
	}
	if filter.AssignedTo != nil && (alert.AssignedTo == nil || *alert.AssignedTo != *filter.AssignedTo) {
		return false
	}
	return true
}
