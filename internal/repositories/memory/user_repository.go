package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserRepository() interfaces.UserRepository {
	return &userRepository{
		users: make(map[primitive.ObjectID]*models.User),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	r.users[user.ID] = &stored

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", utils.ErrNotFound)
	}

	out := *user
	return &out, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}

	return nil, fmt.Errorf("user: %w", utils.ErrNotFound)
}

func (r *userRepository) Query(ctx context.Context, filter *interfaces.UserFilter, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.User
	for _, user := range r.users {
		if userMatches(user, filter) {
			out := *user
			matched = append(matched, &out)
		}
	}

	sortNewestFirst(matched, func(u *models.User) time.Time { return u.CreatedAt })
	total := int64(len(matched))

	return paginate(matched, params), total, nil
}

func (r *userRepository) Count(ctx context.Context, filter *interfaces.UserFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, user := range r.users {
		if userMatches(user, filter) {
			count++
		}
	}
	return count, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", utils.ErrNotFound)
	}

	for field, value := range updates {
		switch field {
		case "name":
			user.Name = value.(string)
		case "phone":
			user.Phone = value.(string)
		case "password":
			user.Password = value.(string)
		case "role":
			user.Role = value.(models.UserRole)
		case "is_active":
			user.IsActive = value.(bool)
		case "location":
			if value == nil {
				user.Location = nil
			} else {
				location := value.(*models.Location)
				user.Location = location
			}
		}
	}
	user.UpdatedAt = time.Now()

	out := *user
	return &out, nil
}

func (r *userRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.User, error) {
	return r.Update(ctx, id, map[string]interface{}{"is_active": active})
}

func (r *userRepository) UpdateLocation(ctx context.Context, id primitive.ObjectID, location *models.Location) (*models.User, error) {
	return r.Update(ctx, id, map[string]interface{}{"location": location})
}

func userMatches(user *models.User, filter *interfaces.UserFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Role != nil && user.Role != *filter.Role {
		return false
	}
	if filter.IsActive != nil && user.IsActive != *filter.IsActive {
		return false
	}
	return true
}
