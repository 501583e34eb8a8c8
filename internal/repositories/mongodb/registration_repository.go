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

type registrationRepository struct {
	collection *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) interfaces.RegistrationRepository {
	return &registrationRepository{
		collection: db.Collection("qr_registrations"),
	}
}

func (r *registrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	registration.ID = primitive.NewObjectID()
	// A caller-set timestamp survives; backfill imports depend on it.
	if registration.RegisteredAt.IsZero() {
		registration.RegisteredAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, registration)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", utils.TranslateStoreError(err))
	}

	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	var registration models.Registration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&registration)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("registration: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get registration: %w", utils.TranslateStoreError(err))
	}

	return &registration, nil
}

func (r *registrationRepository) Query(ctx context.Context, filter *interfaces.RegistrationFilter, params *utils.PaginationParams) ([]*models.Registration, int64, error) {
	query := registrationFilterToBSON(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", utils.TranslateStoreError(err))
	}

	opts := options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}})
	if params != nil {
		opts.SetSkip(int64(params.GetSkip()))
		opts.SetLimit(int64(params.GetLimit()))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find registrations: %w", utils.TranslateStoreError(err))
	}
	defer cursor.Close(ctx)

	var registrations []*models.Registration
	for cursor.Next(ctx) {
		var registration models.Registration
		if err := cursor.Decode(&registration); err != nil {
			return nil, 0, fmt.Errorf("failed to decode registration: %w", err)
		}
		registrations = append(registrations, &registration)
	}

	return registrations, total, nil
}

func (r *registrationRepository) Count(ctx context.Context, filter *interfaces.RegistrationFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, registrationFilterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", utils.TranslateStoreError(err))
	}
	return count, nil
}

func (r *registrationRepository) MostRecent(ctx context.Context, limit int) ([]*models.Registration, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "registered_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent registrations: %w", utils.TranslateStoreError(err))
	}
	defer cursor.Close(ctx)

	var registrations []*models.Registration
	for cursor.Next(ctx) {
		var registration models.Registration
		if err := cursor.Decode(&registration); err != nil {
			return nil, fmt.Errorf("failed to decode registration: %w", err)
		}
		registrations = append(registrations, &registration)
	}

	return registrations, nil
}

func (r *registrationRepository) AggregateByDestination(ctx context.Context, filter *interfaces.RegistrationFilter) ([]*models.DestinationAggregate, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: registrationFilterToBSON(filter)}},
		{{Key: "$group", Value: bson.M{
			"_id":                  "$intended_destination",
			"total_groups":         bson.M{"$sum": 1},
			"total_people":         bson.M{"$sum": "$group_size"},
			"total_luggage":        bson.M{"$sum": "$luggage_count"},
			"latest_registered_at": bson.M{"$max": "$registered_at"},
		}}},
		{{Key: "$sort", Value: bson.M{"total_people": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate registrations: %w", utils.TranslateStoreError(err))
	}
	defer cursor.Close(ctx)

	var aggregates []*models.DestinationAggregate
	for cursor.Next(ctx) {
		var aggregate models.DestinationAggregate
		if err := cursor.Decode(&aggregate); err != nil {
			return nil, fmt.Errorf("failed to decode destination aggregate: %w", err)
		}
		aggregates = append(aggregates, &aggregate)
	}

	return aggregates, nil
}

func registrationFilterToBSON(filter *interfaces.RegistrationFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.Destination != nil {
		query["intended_destination"] = *filter.Destination
	}
	timeRange := bson.M{}
	if filter.RegisteredAfter != nil {
		timeRange["$gte"] = *filter.RegisteredAfter
	}
	if filter.RegisteredUntil != nil {
		timeRange["$lte"] = *filter.RegisteredUntil
	}
	if len(timeRange) > 0 {
		query["registered_at"] = timeRange
	}
	return query
}
