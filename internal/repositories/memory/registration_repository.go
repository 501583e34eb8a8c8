package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type registrationRepository struct {
	mu            sync.RWMutex
	registrations map[primitive.ObjectID]*models.Registration
}

func NewRegistrationRepository() interfaces.RegistrationRepository {
	return &registrationRepository{
		registrations: make(map[primitive.ObjectID]*models.Registration),
	}
}

func (r *registrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to create registration: %w", utils.TranslateStoreError(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	registration.ID = primitive.NewObjectID()
	if registration.RegisteredAt.IsZero() {
		registration.RegisteredAt = time.Now()
	}

	stored := *registration
	r.registrations[registration.ID] = &stored

	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registration, ok := r.registrations[id]
	if !ok {
		return nil, fmt.Errorf("registration: %w", utils.ErrNotFound)
	}

	out := *registration
	return &out, nil
}

func (r *registrationRepository) Query(ctx context.Context, filter *interfaces.RegistrationFilter, params *utils.PaginationParams) ([]*models.Registration, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matching(filter)
	sortNewestFirst(matched, func(reg *models.Registration) time.Time { return reg.RegisteredAt })
	total := int64(len(matched))

	return paginate(matched, params), total, nil
}

func (r *registrationRepository) Count(ctx context.Context, filter *interfaces.RegistrationFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(filter))), nil
}

func (r *registrationRepository) MostRecent(ctx context.Context, limit int) ([]*models.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matching(nil)
	sortNewestFirst(matched, func(reg *models.Registration) time.Time { return reg.RegisteredAt })
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, nil
}

func (r *registrationRepository) AggregateByDestination(ctx context.Context, filter *interfaces.RegistrationFilter) ([]*models.DestinationAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDestination := make(map[string]*models.DestinationAggregate)
	for _, registration := range r.matching(filter) {
		aggregate, ok := byDestination[registration.IntendedDestination]
		if !ok {
			aggregate = &models.DestinationAggregate{Destination: registration.IntendedDestination}
			byDestination[registration.IntendedDestination] = aggregate
		}
		aggregate.TotalGroups++
		aggregate.TotalPeople += int64(registration.GroupSize)
		aggregate.TotalLuggage += int64(registration.LuggageCount)
		if registration.RegisteredAt.After(aggregate.LatestRegisteredAt) {
			aggregate.LatestRegisteredAt = registration.RegisteredAt
		}
	}

	aggregates := make([]*models.DestinationAggregate, 0, len(byDestination))
	for _, aggregate := range byDestination {
		aggregates = append(aggregates, aggregate)
	}
	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].TotalPeople > aggregates[j].TotalPeople
	})

	return aggregates, nil
}

func (r *registrationRepository) matching(filter *interfaces.RegistrationFilter) []*models.Registration {
	var matched []*models.Registration
	for _, registration := range r.registrations {
		if registrationMatches(registration, filter) {
			out := *registration
			matched = append(matched, &out)
		}
	}
	return matched
}

func registrationMatches(registration *models.Registration, filter *interfaces.RegistrationFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Destination != nil && registration.IntendedDestination != *filter.Destination {
		return false
	}
	if filter.RegisteredAfter != nil && registration.RegisteredAt.Before(*filter.RegisteredAfter) {
		return false
	}
	if filter.RegisteredUntil != nil && registration.RegisteredAt.After(*filter.RegisteredUntil) {
		return false
	}
	return true
}
