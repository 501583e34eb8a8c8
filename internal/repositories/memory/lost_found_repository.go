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

type lostFoundRepository struct {
	mu      sync.RWMutex
	reports map[primitive.ObjectID]*models.LostFoundReport
}

func NewLostFoundRepository() interfaces.LostFoundRepository {
	return &lostFoundRepository{
		reports: make(map[primitive.ObjectID]*models.LostFoundReport),
	}
}

func (r *lostFoundRepository) Create(ctx context.Context, report *models.LostFoundReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt

	stored := *report
	r.reports[report.ID] = &stored

	return nil
}

func (r *lostFoundRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.LostFoundReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, fmt.Errorf("lost/found report: %w", utils.ErrNotFound)
	}

	out := *report
	return &out, nil
}

func (r *lostFoundRepository) Query(ctx context.Context, filter *interfaces.LostFoundFilter, params *utils.PaginationParams) ([]*models.LostFoundReport, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.LostFoundReport
	for _, report := range r.reports {
		if lostFoundMatches(report, filter) {
			out := *report
			matched = append(matched, &out)
		}
	}

	sortNewestFirst(matched, func(rep *models.LostFoundReport) time.Time { return rep.CreatedAt })
	total := int64(len(matched))

	return paginate(matched, params), total, nil
}

func (r *lostFoundRepository) Count(ctx context.Context, filter *interfaces.LostFoundFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, report := range r.reports {
		if lostFoundMatches(report, filter) {
			count++
		}
	}
	return count, nil
}

func (r *lostFoundRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.LostFoundReport, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, fmt.Errorf("lost/found report: %w", utils.ErrNotFound)
	}

	applyLostFoundUpdates(report, updates)
	report.UpdatedAt = time.Now()

	out := *report
	return &out, nil
}

// MatchReports applies both halves under a single lock, so concurrent
// readers never observe a one-sided pairing.
func (r *lostFoundRepository) MatchReports(ctx context.Context, idA, idB primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reportA, okA := r.reports[idA]
	reportB, okB := r.reports[idB]
	if !okA || !okB {
		return fmt.Errorf("lost/found report: %w", utils.ErrNotFound)
	}

	now := time.Now()
	reportA.MatchedWith = &idB
	reportA.Status = models.ReportStatusMatched
	reportA.UpdatedAt = now
	reportB.MatchedWith = &idA
	reportB.Status = models.ReportStatusMatched
	reportB.UpdatedAt = now

	return nil
}

func applyLostFoundUpdates(report *models.LostFoundReport, updates map[string]interface{}) {
	for field, value := range updates {
		switch field {
		case "status":
			report.Status = value.(models.ReportStatus)
		case "item_name":
			report.ItemName = value.(string)
		case "description":
			report.Description = value.(string)
		case "images":
			report.Images = value.([]string)
		case "facial_data":
			report.FacialData = value.(string)
		case "matched_with":
			if value == nil {
				report.MatchedWith = nil
			} else {
				peer := value.(primitive.ObjectID)
				report.MatchedWith = &peer
			}
		case "matched_with_registration":
			if value == nil {
				report.MatchedWithRegistration = nil
			} else {
				reg := value.(primitive.ObjectID)
				report.MatchedWithRegistration = &reg
			}
		case "resolved_at":
			if value == nil {
				report.ResolvedAt = nil
			} else {
				at := value.(time.Time)
				report.ResolvedAt = &at
			}
		}
	}
}

func lostFoundMatches(report *models.LostFoundReport, filter *interfaces.LostFoundFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Type != nil && report.Type != *filter.Type {
		return false
	}
	if filter.Status != nil && report.Status != *filter.Status {
		return false
	}
	if filter.ReportedBy != nil && report.ReportedBy != *filter.ReportedBy {
		return false
	}
	if filter.IsPerson != nil && report.IsPerson != *filter.IsPerson {
		return false
	}
	return true
}
