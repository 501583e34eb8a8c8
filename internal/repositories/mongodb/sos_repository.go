package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type sosRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewSOSRepository(db *mongo.Database, cache CacheService) interfaces.SOSRepository {
	return &sosRepository{
		collection: db.Collection("sos_alerts"),
		cache:      cache,
	}
}

func (r *sosRepository) Create(ctx context.Context, alert *models.SOSAlert) error {
	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = alert.CreatedAt

	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to create sos alert: %w", utils.TranslateStoreError(err))
	}

	// Cache pending alerts; they are the ones staff poll for.
	if alert.Status == models.SOSStatusPending {
		r.cacheAlert(ctx, alert)
	}

	return nil
}

func (r *sosRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error) {
	if alert := r.getAlertFromCache(ctx, id.Hex()); alert != nil {
		return alert, nil
	}

	var alert models.SOSAlert
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&alert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("sos alert: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sos alert: %w", utils.TranslateStoreError(err))
	}

	if alert.Status == models.SOSStatusPending {
		r.cacheAlert(ctx, &alert)
	}

	return &alert, nil
}

func (r *sosRepository) Query(ctx context.Context, filter *interfaces.SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	query := sosFilterToBSON(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sos alerts: %w", utils.TranslateStoreError(err))
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
		return nil, 0, fmt.Errorf("failed to find sos alerts: %w", utils.TranslateStoreError(err))
	}
	defer cursor.Close(ctx)

	var alerts []*models.SOSAlert
	for cursor.Next(ctx) {
		var alert models.SOSAlert
		if err := cursor.Decode(&alert); err != nil {
			return nil, 0, fmt.Errorf("failed to decode sos alert: %w", err)
		}
		alerts = append(alerts, &alert)
	}

	return alerts, total, nil
}

func (r *sosRepository) Count(ctx context.Context, filter *interfaces.SOSFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, sosFilterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count sos alerts: %w", utils.TranslateStoreError(err))
	}
	return count, nil
}

func (r *sosRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.SOSAlert, error) {
	// An empty update set is a no-op returning the current record.
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	updates["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var alert models.SOSAlert
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&alert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("sos alert: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update sos alert: %w", utils.TranslateStoreError(err))
	}

	r.invalidateAlertCache(ctx, id.Hex())

	return &alert, nil
}

func sosFilterToBSON(filter *interfaces.SOSFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if len(filter.StatusIn) > 0 {
		query["status"] = bson.M{"$in": filter.StatusIn}
	}
	if filter.Priority != nil {
		query["priority"] = *filter.Priority
	}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.AssignedTo != nil {
		query["assigned_to"] = *filter.AssignedTo
	}
	return query
}

// Cache operations
func (r *sosRepository) cacheAlert(ctx context.Context, alert *models.SOSAlert) {
	if r.cache != nil {
		cacheKey := utils.CacheKeySOSPrefix + alert.ID.Hex()
		r.cache.Set(ctx, cacheKey, alert, utils.CacheEntityTTL)
	}
}

func (r *sosRepository) getAlertFromCache(ctx context.Context, alertID string) *models.SOSAlert {
	if r.cache == nil {
		return nil
	}

	var alert models.SOSAlert
	if err := r.cache.Get(ctx, utils.CacheKeySOSPrefix+alertID, &alert); err != nil {
		return nil
	}

	return &alert
}

func (r *sosRepository) invalidateAlertCache(ctx context.Context, alertID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheKeySOSPrefix+alertID)
	}
}
