package services

import (
	"context"
	"fmt"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"
	"kumbhsetu/pkg/logger"
)

// AnalyticsService answers crowd and dashboard questions from the
// registration, sos, lost/found, medical, and user stores. Everything is
// recomputed on request; the only state is a short-TTL cache on crowd
// snapshots.
type AnalyticsService struct {
	registrations interfaces.RegistrationRepository
	sos           interfaces.SOSRepository
	lostFound     interfaces.LostFoundRepository
	medical       interfaces.MedicalCaseRepository
	users         interfaces.UserRepository
	gate          *AccessControl
	cache         CacheService
	logger        *logger.Logger
}

func NewAnalyticsService(
	registrations interfaces.RegistrationRepository,
	sos interfaces.SOSRepository,
	lostFound interfaces.LostFoundRepository,
	medical interfaces.MedicalCaseRepository,
	users interfaces.UserRepository,
	gate *AccessControl,
	cache CacheService,
	log *logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		registrations: registrations,
		sos:           sos,
		lostFound:     lostFound,
		medical:       medical,
		users:         users,
		gate:          gate,
		cache:         cache,
		logger:        log,
	}
}

// AggregateByDestination rolls registrations up per destination, ordered
// by total people descending.
func (s *AnalyticsService) AggregateByDestination(ctx context.Context, actor *Actor, filter *interfaces.RegistrationFilter) ([]*models.DestinationAggregate, error) {
	if err := s.gate.Authorize(actor, ActionViewCrowdAnalytics); err != nil {
		return nil, err
	}
	return s.registrations.AggregateByDestination(ctx, filter)
}

// CrowdLevel classifies a people count: at most 500 is low, 501 through
// 1000 is moderate, above 1000 is high.
func CrowdLevel(people int64) string {
	switch {
	case people <= utils.CrowdModerateThreshold:
		return utils.CrowdLevelLow
	case people <= utils.CrowdHighThreshold:
		return utils.CrowdLevelModerate
	default:
		return utils.CrowdLevelHigh
	}
}

// CrowdStatus reports the trailing-hour pressure on one destination. It
// is recomputed per call from the registration store; the cached copy
// only lives a few seconds to absorb dashboard polling.
func (s *AnalyticsService) CrowdStatus(ctx context.Context, actor *Actor, destination string, now time.Time) (*models.CrowdStatus, error) {
	if err := s.gate.Authorize(actor, ActionViewCrowdAnalytics); err != nil {
		return nil, err
	}
	if !models.ValidDestination(destination) {
		return nil, fmt.Errorf("destination %q: %w", destination, utils.ErrInvalidInput)
	}

	cacheKey := utils.CacheKeyCrowdPrefix + destination
	if s.cache != nil {
		var cached models.CrowdStatus
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	// Both bounds matter: Create preserves caller-set timestamps, so a
	// backfilled future row must not count toward the live window.
	windowStart := now.Add(-utils.CrowdWindow)
	aggregates, err := s.registrations.AggregateByDestination(ctx, &interfaces.RegistrationFilter{
		Destination:     &destination,
		RegisteredAfter: &windowStart,
		RegisteredUntil: &now,
	})
	if err != nil {
		return nil, err
	}

	status := &models.CrowdStatus{
		Destination: destination,
		CrowdLevel:  utils.CrowdLevelLow,
		Timestamp:   now,
	}
	for _, aggregate := range aggregates {
		if aggregate.Destination == destination {
			status.EstimatedPeople = aggregate.TotalPeople
			status.GroupsInLastHour = aggregate.TotalGroups
			status.CrowdLevel = CrowdLevel(aggregate.TotalPeople)
			break
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, status, utils.CacheCrowdTTL)
	}

	return status, nil
}

// RecentRegistrationCount counts check-ins across all destinations in
// the trailing hour.
func (s *AnalyticsService) RecentRegistrationCount(ctx context.Context, actor *Actor, now time.Time) (int64, error) {
	if err := s.gate.Authorize(actor, ActionViewCrowdAnalytics); err != nil {
		return 0, err
	}

	windowStart := now.Add(-utils.CrowdWindow)
	return s.registrations.Count(ctx, &interfaces.RegistrationFilter{
		RegisteredAfter: &windowStart,
		RegisteredUntil: &now,
	})
}

// AdminDashboard assembles the admin overview counters.
func (s *AnalyticsService) AdminDashboard(ctx context.Context, actor *Actor) (*models.AdminDashboard, error) {
	if err := s.gate.Authorize(actor, ActionViewAdminDashboard); err != nil {
		return nil, err
	}

	dashboard := &models.AdminDashboard{}

	var err error
	if dashboard.Users.Total, err = s.users.Count(ctx, nil); err != nil {
		return nil, err
	}
	volunteerRole := models.RoleVolunteer
	if dashboard.Users.Volunteers, err = s.users.Count(ctx, &interfaces.UserFilter{Role: &volunteerRole}); err != nil {
		return nil, err
	}
	medicalRole := models.RoleMedical
	if dashboard.Users.MedicalStaff, err = s.users.Count(ctx, &interfaces.UserFilter{Role: &medicalRole}); err != nil {
		return nil, err
	}

	pendingSOS := models.SOSStatusPending
	if dashboard.SOS.Pending, err = s.sos.Count(ctx, &interfaces.SOSFilter{Status: &pendingSOS}); err != nil {
		return nil, err
	}
	resolvedSOS := models.SOSStatusResolved
	if dashboard.SOS.Resolved, err = s.sos.Count(ctx, &interfaces.SOSFilter{Status: &resolvedSOS}); err != nil {
		return nil, err
	}

	openReport := models.ReportStatusOpen
	if dashboard.LostFound.Open, err = s.lostFound.Count(ctx, &interfaces.LostFoundFilter{Status: &openReport}); err != nil {
		return nil, err
	}
	resolvedReport := models.ReportStatusResolved
	if dashboard.LostFound.Resolved, err = s.lostFound.Count(ctx, &interfaces.LostFoundFilter{Status: &resolvedReport}); err != nil {
		return nil, err
	}

	pendingCase := models.CaseStatusPending
	if dashboard.Medical.Pending, err = s.medical.Count(ctx, &interfaces.MedicalCaseFilter{Status: &pendingCase}); err != nil {
		return nil, err
	}
	resolvedCase := models.CaseStatusResolved
	if dashboard.Medical.Resolved, err = s.medical.Count(ctx, &interfaces.MedicalCaseFilter{Status: &resolvedCase}); err != nil {
		return nil, err
	}

	return dashboard, nil
}

// VolunteerDashboard is the field-staff work queue summary.
func (s *AnalyticsService) VolunteerDashboard(ctx context.Context, actor *Actor) (*models.VolunteerDashboard, error) {
	if err := s.gate.Authorize(actor, ActionViewVolunteerDashboard); err != nil {
		return nil, err
	}

	dashboard := &models.VolunteerDashboard{}

	var err error
	pendingSOS := models.SOSStatusPending
	if dashboard.PendingSOS, err = s.sos.Count(ctx, &interfaces.SOSFilter{Status: &pendingSOS}); err != nil {
		return nil, err
	}

	actorID := actor.ID
	if dashboard.MyAssignedSOS, err = s.sos.Count(ctx, &interfaces.SOSFilter{
		AssignedTo: &actorID,
		StatusIn:   []models.SOSStatus{models.SOSStatusPending, models.SOSStatusAcknowledged},
	}); err != nil {
		return nil, err
	}

	openReport := models.ReportStatusOpen
	if dashboard.OpenLostFound, err = s.lostFound.Count(ctx, &interfaces.LostFoundFilter{Status: &openReport}); err != nil {
		return nil, err
	}

	return dashboard, nil
}
