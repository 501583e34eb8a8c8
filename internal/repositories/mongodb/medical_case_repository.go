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

type medicalCaseRepository struct {
	collection *mongo.Collection
}

func NewMedicalCaseRepository(db *mongo.Database) interfaces.MedicalCaseRepository {
	return &medicalCaseRepository{
		collection: db.Collection("medical_cases"),
	}
}

func (r *medicalCaseRepository) Create(ctx context.Context, medicalCase *models.MedicalCase) error {
	medicalCase.ID = primitive.NewObjectID()
	medicalCase.CreatedAt = time.Now()
	medicalCase.UpdatedAt = medicalCase.CreatedAt

	_, err := r.collection.InsertOne(ctx, medicalCase)
	if err != nil {
		return fmt.Errorf("failed to create medical case: %w", utils.TranslateStoreError(err))
	}

	return nil
}

func (r *medicalCaseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MedicalCase, error) {
	var medicalCase models.MedicalCase
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&medicalCase)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("medical case: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get medical case: %w", utils.TranslateStoreError(err))
	}

	return &medicalCase, nil
}

func (r *medicalCaseRepository) Query(ctx context.Context, filter *interfaces.MedicalCaseFilter, params *utils.PaginationParams) ([]*models.MedicalCase, int64, error) {
	query := medicalFilterToBSON(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count medical cases: %w", utils.TranslateStoreError(err))
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
		return nil, 0, fmt.Errorf("failed to find medical cases: %w", utils.TranslateStoreError(err))
	}
	defer cursor.Close(ctx)

	var cases []*models.MedicalCase
	for cursor.Next(ctx) {
		var medicalCase models.MedicalCase
		if err := cursor.Decode(&medicalCase); err != nil {
			return nil, 0, fmt.Errorf("failed to decode medical case: %w", err)
		}
		cases = append(cases, &medicalCase)
	}

	return cases, total, nil
}

func (r *medicalCaseRepository) Count(ctx context.Context, filter *interfaces.MedicalCaseFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, medicalFilterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count medical cases: %w", utils.TranslateStoreError(err))
	}
	return count, nil
}

func (r *medicalCaseRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.MedicalCase, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	updates["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var medicalCase models.MedicalCase
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&medicalCase)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("medical case: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update medical case: %w", utils.TranslateStoreError(err))
	}

	return &medicalCase, nil
}

func (r *medicalCaseRepository) AddNote(ctx context.Context, id primitive.ObjectID, note models.MedicalNote) (*models.MedicalCase, error) {
	update := bson.M{
		"$push": bson.M{"medical_notes": note},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var medicalCase models.MedicalCase
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&medicalCase)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("medical case: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to add note: %w", utils.TranslateStoreError(err))
	}

	return &medicalCase, nil
}

func medicalFilterToBSON(filter *interfaces.MedicalCaseFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.CaseType != nil {
		query["case_type"] = *filter.CaseType
	}
	if filter.Severity != nil {
		query["severity"] = *filter.Severity
	}
	if filter.PatientOrReportedBy != nil {
		query["$or"] = []bson.M{
			{"patient_id": *filter.PatientOrReportedBy},
			{"reported_by": *filter.PatientOrReportedBy},
		}
	}
	return query
}
