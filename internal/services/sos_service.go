package services

import (
	"context"
	"fmt"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"
	"kumbhsetu/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateSOSInput is everything a distress call carries. The reporter is
// passed separately and may be nil: anyone on the ground can raise an
// alert without an account.
type CreateSOSInput struct {
	Location models.Location    `json:"location" validate:"required"`
	Message  string             `json:"message"`
	Priority models.SOSPriority `json:"priority"`
}

type SOSService struct {
	repo      interfaces.SOSRepository
	gate      *AccessControl
	publisher EventPublisher
	logger    *logger.Logger
}

func NewSOSService(repo interfaces.SOSRepository, gate *AccessControl, publisher EventPublisher, log *logger.Logger) *SOSService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &SOSService{
		repo:      repo,
		gate:      gate,
		publisher: publisher,
		logger:    log,
	}
}

// CreateAlert raises a new alert. reporter is nil for anonymous alerts.
// The sos-alert event goes out after the record is durably stored, never
// before.
func (s *SOSService) CreateAlert(ctx context.Context, reporter *Actor, input *CreateSOSInput) (*models.SOSAlert, error) {
	// Anonymous is fine; a known-but-deactivated account is not.
	if reporter != nil && !reporter.Active {
		return nil, fmt.Errorf("create alert: %w", utils.ErrUnauthorized)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.SOSPriorityHigh
	}
	if !models.ValidSOSPriority(priority) {
		return nil, fmt.Errorf("priority %q: %w", input.Priority, utils.ErrInvalidInput)
	}

	alert := &models.SOSAlert{
		Location: input.Location,
		Message:  input.Message,
		Priority: priority,
		Status:   models.SOSStatusPending,
	}
	if reporter != nil {
		reporterID := reporter.ID
		alert.UserID = &reporterID
	}

	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.publisher.Publish(utils.EventSOSAlert, alert)
	s.logger.LogEmergencyEvent(alert.ID, "sos_created", map[string]interface{}{
		"priority":  string(alert.Priority),
		"anonymous": alert.UserID == nil,
	})

	return alert, nil
}

func (s *SOSService) GetAlert(ctx context.Context, actor *Actor, id primitive.ObjectID) (*models.SOSAlert, error) {
	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The reporter can always see their own alert; everyone else needs
	// the staff capability.
	if actor != nil && alert.UserID != nil && *alert.UserID == actor.ID && actor.Active {
		return alert, nil
	}
	if err := s.gate.Authorize(actor, ActionListSOS); err != nil {
		return nil, err
	}

	return alert, nil
}

func (s *SOSService) ListAlerts(ctx context.Context, actor *Actor, filter *interfaces.SOSFilter, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	if err := s.gate.Authorize(actor, ActionListSOS); err != nil {
		return nil, 0, err
	}
	return s.repo.Query(ctx, filter, params)
}

// MyAlerts lists the alerts the actor raised, any role.
func (s *SOSService) MyAlerts(ctx context.Context, actor *Actor, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	if actor == nil || !actor.Active {
		return nil, 0, fmt.Errorf("list own alerts: %w", utils.ErrUnauthorized)
	}
	actorID := actor.ID
	return s.repo.Query(ctx, &interfaces.SOSFilter{UserID: &actorID}, params)
}

// Acknowledge moves a pending alert to acknowledged and records the
// responder. Any other starting status is rejected; the lifecycle only
// moves forward.
func (s *SOSService) Acknowledge(ctx context.Context, actor *Actor, id primitive.ObjectID) (*models.SOSAlert, error) {
	if err := s.gate.Authorize(actor, ActionHandleSOS); err != nil {
		return nil, err
	}

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status != models.SOSStatusPending {
		return nil, fmt.Errorf("acknowledge from %s: %w", alert.Status, utils.ErrInvalidTransition)
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":      models.SOSStatusAcknowledged,
		"assigned_to": actor.ID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogEmergencyEvent(id, "sos_acknowledged", map[string]interface{}{
		"responder": actor.ID.Hex(),
	})

	return updated, nil
}

// Resolve closes an alert from pending or acknowledged. Resolving an
// already-resolved alert is rejected rather than treated as idempotent,
// so double-handling is visible to responders.
func (s *SOSService) Resolve(ctx context.Context, actor *Actor, id primitive.ObjectID) (*models.SOSAlert, error) {
	if err := s.gate.Authorize(actor, ActionHandleSOS); err != nil {
		return nil, err
	}

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status == models.SOSStatusResolved {
		return nil, fmt.Errorf("resolve from %s: %w", alert.Status, utils.ErrInvalidTransition)
	}

	now := time.Now()
	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":      models.SOSStatusResolved,
		"resolved_at": now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogEmergencyEvent(id, "sos_resolved", map[string]interface{}{
		"responder": actor.ID.Hex(),
	})

	return updated, nil
}
