package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewUserRepository(db *mongo.Database, cache CacheService) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
		cache:      cache,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", utils.TranslateStoreError(err))
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if user := r.getUserFromCache(ctx, id.Hex()); user != nil {
		return user, nil
	}

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", utils.TranslateStoreError(err))
	}

	r.cacheUser(ctx, &user)

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", utils.TranslateStoreError(err))
	}

	return &user, nil
}

func (r *userRepository) Query(ctx context.Context, filter *interfaces.UserFilter, params *utils.PaginationParams) ([]*models.User, int64, error) {
	query := userFilterToBSON(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", utils.TranslateStoreError(err))
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
		return nil, 0, fmt.Errorf("failed to find users: %w", utils.TranslateStoreError(err))
	}
	defer cursor.Close(ctx)

	var users []*models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, 0, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, &user)
	}

	return users, total, nil
}

func (r *userRepository) Count(ctx context.Context, filter *interfaces.UserFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, userFilterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", utils.TranslateStoreError(err))
	}
	return count, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	updates["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user: %w", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user: %w", utils.TranslateStoreError(err))
	}

	r.invalidateUserCache(ctx, id.Hex())

	return &user, nil
}

func (r *userRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.User, error) {
	return r.Update(ctx, id, map[string]interface{}{"is_active": active})
}

func (r *userRepository) UpdateLocation(ctx context.Context, id primitive.ObjectID, location *models.Location) (*models.User, error) {
	return r.Update(ctx, id, map[string]interface{}{"location": location})
}

func userFilterToBSON(filter *interfaces.UserFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.Role != nil {
		query["role"] = *filter.Role
	}
	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}
	return query
}

// Cache operations
func (r *userRepository) cacheUser(ctx context.Context, user *models.User) {
	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheKeyUserPrefix+user.ID.Hex(), user, utils.CacheEntityTTL)
	}
}

func (r *userRepository) getUserFromCache(ctx context.Context, userID string) *models.User {
	if r.cache == nil {
		return nil
	}

	var user models.User
	if err := r.cache.Get(ctx, utils.CacheKeyUserPrefix+userID, &user); err != nil {
		return nil
	}

	return &user
}

func (r *userRepository) invalidateUserCache(ctx context.Context, userID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheKeyUserPrefix+userID)
	}
}
