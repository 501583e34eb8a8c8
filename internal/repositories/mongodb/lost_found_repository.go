package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"
	"kumbhsetu/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type lostFoundRepository struct {
	db         *database.MongoDB
	collection *mongo.Collection
	cache      CacheService
}

// NewLostFoundRepository takes the full database handle rather than a
// bare collection because MatchReports needs a session transaction.
func NewLostFoundRepository(db *database.MongoDB, cache CacheService) interfaces.LostFoundRepository {
	return &lostFoundRepository{
		db:         db,
		collection: db.Collection("lost_found"),
		cache:      cache,
	}
}

func (r *lostFoundRepository) Create(ctx context.Context, report *models.LostFoundReport) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt

	_, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", utils.TranslateStoreError(err))
	}

	return nil
}

func (r *lostFoundRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.LostFoundReport, error) {
	if report := r.getReportFromCache(ctx, id.Hex()); report != nil {
		return report, nil
	}

	var report models.LostFoundReport
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("lost/found report: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report: %w", utils.TranslateStoreError(err))
	}

	// Open person reports are the hot records while a search is active.
	if report.IsPerson && report.Status == models.ReportStatusOpen {
		r.cacheReport(ctx, &report)
	}

	return &report, nil
}

func (r *lostFoundRepository) Query(ctx context.Context, filter *interfaces.LostFoundFilter, params *utils.PaginationParams) ([]*models.LostFoundReport, int64, error) {
	query := lostFoundFilterToBSON(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", utils.TranslateStoreError(err))
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if params != nil {
		opts = params.GetSortOptions()
		if params.Sort == "created_at" || params.Sort == "" {
			opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
		}
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find reports: %w", utils.TranslateStoreError(err))
	}
	defer cursor.Close(ctx)

	var reports []*models.LostFoundReport
	for cursor.Next(ctx) {
		var report models.LostFoundReport
		if err := cursor.Decode(&report); err != nil {
			return nil, 0, fmt.Errorf("failed to decode report: %w", err)
		}
		reports = append(reports, &report)
	}

	return reports, total, nil
}

func (r *lostFoundRepository) Count(ctx context.Context, filter *interfaces.LostFoundFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, lostFoundFilterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", utils.TranslateStoreError(err))
	}
	return count, nil
}

func (r *lostFoundRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.LostFoundReport, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	updates["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var report models.LostFoundReport
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("lost/found report: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update report: %w", utils.TranslateStoreError(err))
	}

	r.invalidateReportCache(ctx, id.Hex())

	return &report, nil
}

// MatchReports writes both halves of a pairing inside one transaction,
// so a reader can never observe a one-sided match. If the transaction
// machinery itself fails mid-flight the error is reported as an
// incomplete match for operator reconciliation.
func (r *lostFoundRepository) MatchReports(ctx context.Context, idA, idB primitive.ObjectID) error {
	now := time.Now()

	firstApplied := false
	_, err := r.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		resA, err := r.collection.UpdateOne(sessCtx, bson.M{"_id": idA}, bson.M{"$set": bson.M{
			"matched_with": idB,
			"status":       models.ReportStatusMatched,
			"updated_at":   now,
		}})
		if err != nil {
			return nil, err
		}
		if resA.MatchedCount == 0 {
			return nil, utils.ErrNotFound
		}
		firstApplied = true

		resB, err := r.collection.UpdateOne(sessCtx, bson.M{"_id": idB}, bson.M{"$set": bson.M{
			"matched_with": idA,
			"status":       models.ReportStatusMatched,
			"updated_at":   now,
		}})
		if err != nil {
			return nil, err
		}
		if resB.MatchedCount == 0 {
			return nil, utils.ErrNotFound
		}

		return nil, nil
	})
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return fmt.Errorf("lost/found report: %w", utils.ErrNotFound)
		}
		if firstApplied {
			return fmt.Errorf("pairing %s with %s: %w", idA.Hex(), idB.Hex(), utils.ErrMatchIncomplete)
		}
		return fmt.Errorf("failed to match reports: %w", utils.TranslateStoreError(err))
	}

	r.invalidateReportCache(ctx, idA.Hex())
	r.invalidateReportCache(ctx, idB.Hex())

	return nil
}

// Cache operations
func (r *lostFoundRepository) cacheReport(ctx context.Context, report *models.LostFoundReport) {
	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheKeyReportPrefix+report.ID.Hex(), report, utils.CacheEntityTTL)
	}
}

func (r *lostFoundRepository) getReportFromCache(ctx context.Context, reportID string) *models.LostFoundReport {
	if r.cache == nil {
		return nil
	}

	var report models.LostFoundReport
	if err := r.cache.Get(ctx, utils.CacheKeyReportPrefix+reportID, &report); err != nil {
		return nil
	}

	return &report
}

func (r *lostFoundRepository) invalidateReportCache(ctx context.Context, reportID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheKeyReportPrefix+reportID)
	}
}

func lostFoundFilterToBSON(filter *interfaces.LostFoundFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.ReportedBy != nil {
		query["reported_by"] = *filter.ReportedBy
	}
	if filter.IsPerson != nil {
		query["is_person"] = *filter.IsPerson
	}
	return query
}
