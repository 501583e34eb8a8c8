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

type CreateReportInput struct {
	Type        models.ReportType  `json:"type" validate:"required,oneof=lost found"`
	ItemName    string             `json:"item_name" validate:"required"`
	Description string             `json:"description"`
	Location    models.Location    `json:"location" validate:"required"`
	ContactInfo models.ContactInfo `json:"contact_info" validate:"required"`
	Images      []string           `json:"images"`
	IsPerson    bool               `json:"is_person"`
	FacialData  string             `json:"facial_data"`
}

// UploadPersonPhotoInput is the field-staff shortcut for registering a
// found person from a photo. The image travels as an opaque facial
// payload; nothing here interprets it.
type UploadPersonPhotoInput struct {
	Image       string             `json:"image" validate:"required"`
	PersonName  string             `json:"person_name"`
	Description string             `json:"description"`
	Location    models.Location    `json:"location" validate:"required"`
	ContactInfo models.ContactInfo `json:"contact_info" validate:"required"`
}

// CorrelationResult is what a responder gets back after linking a person
// report to a QR registration: enough to contact the group and head to
// where it was going. The registration itself is never modified.
type CorrelationResult struct {
	Report       *models.LostFoundReport `json:"report"`
	Registration *models.Registration    `json:"registration"`
	ContactInfo  models.ContactInfo      `json:"contact_info"`
	Destination  string                  `json:"destination"`
	GroupSize    int                     `json:"group_size"`
}

// LostFoundService owns lost/found reports and the matching rules
// between them.
type LostFoundService struct {
	repo          interfaces.LostFoundRepository
	registrations interfaces.RegistrationRepository
	gate          *AccessControl
	logger        *logger.Logger
}

func NewLostFoundService(repo interfaces.LostFoundRepository, registrations interfaces.RegistrationRepository, gate *AccessControl, log *logger.Logger) *LostFoundService {
	return &LostFoundService{
		repo:          repo,
		registrations: registrations,
		gate:          gate,
		logger:        log,
	}
}

func (s *LostFoundService) CreateReport(ctx context.Context, actor *Actor, input *CreateReportInput) (*models.LostFoundReport, error) {
	if actor == nil || !actor.Active {
		return nil, fmt.Errorf("create report: %w", utils.ErrUnauthorized)
	}
	if input.Type != models.ReportTypeLost && input.Type != models.ReportTypeFound {
		return nil, fmt.Errorf("report type %q: %w", input.Type, utils.ErrInvalidInput)
	}

	report := &models.LostFoundReport{
		Type:        input.Type,
		ReportedBy:  actor.ID,
		ItemName:    input.ItemName,
		Description: input.Description,
		Location:    input.Location,
		ContactInfo: input.ContactInfo,
		Images:      input.Images,
		IsPerson:    input.IsPerson,
		FacialData:  input.FacialData,
		Status:      models.ReportStatusOpen,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.WithReportID(report.ID).WithField("type", string(report.Type)).Info("Lost/found report created")

	return report, nil
}

func (s *LostFoundService) GetReport(ctx context.Context, actor *Actor, id primitive.ObjectID) (*models.LostFoundReport, error) {
	if err := s.gate.Authorize(actor, ActionListReports); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *LostFoundService) ListReports(ctx context.Context, actor *Actor, filter *interfaces.LostFoundFilter, params *utils.PaginationParams) ([]*models.LostFoundReport, int64, error) {
	if err := s.gate.Authorize(actor, ActionListReports); err != nil {
		return nil, 0, err
	}
	return s.repo.Query(ctx, filter, params)
}

func (s *LostFoundService) MyReports(ctx context.Context, actor *Actor, params *utils.PaginationParams) ([]*models.LostFoundReport, int64, error) {
	if actor == nil || !actor.Active {
		return nil, 0, fmt.Errorf("list own reports: %w", utils.ErrUnauthorized)
	}
	actorID := actor.ID
	return s.repo.Query(ctx, &interfaces.LostFoundFilter{ReportedBy: &actorID}, params)
}

// MatchReports pairs a lost report with a found report. All rule checks
// happen before any write, so a rejected match leaves both reports
// untouched. The two-record write itself is atomic at the repository
// level; if it still manages to fail halfway the caller sees
// ErrMatchIncomplete.
func (s *LostFoundService) MatchReports(ctx context.Context, actor *Actor, idA, idB primitive.ObjectID) error {
	if err := s.gate.Authorize(actor, ActionMatchReports); err != nil {
		return err
	}

	if idA == idB {
		return fmt.Errorf("report cannot be matched with itself: %w", utils.ErrInvalidMatch)
	}

	reportA, err := s.repo.GetByID(ctx, idA)
	if err != nil {
		return err
	}
	reportB, err := s.repo.GetByID(ctx, idB)
	if err != nil {
		return err
	}

	if reportA.Type == reportB.Type {
		return fmt.Errorf("cannot pair two %s reports: %w", reportA.Type, utils.ErrInvalidMatch)
	}
	if reportA.Status != models.ReportStatusOpen {
		return fmt.Errorf("report %s is %s: %w", idA.Hex(), reportA.Status, utils.ErrInvalidMatch)
	}
	if reportB.Status != models.ReportStatusOpen {
		return fmt.Errorf("report %s is %s: %w", idB.Hex(), reportB.Status, utils.ErrInvalidMatch)
	}

	if err := s.repo.MatchReports(ctx, idA, idB); err != nil {
		s.logger.LogMatchEvent(idA, "match_failed", map[string]interface{}{
			"peer":  idB.Hex(),
			"error": err.Error(),
		})
		return err
	}

	s.logger.LogMatchEvent(idA, "matched", map[string]interface{}{"peer": idB.Hex()})

	return nil
}

// CorrelatePersonReport links a person report to a QR registration and
// returns the registration's contact and travel details. Only the report
// side records the link; registrations stay immutable.
func (s *LostFoundService) CorrelatePersonReport(ctx context.Context, actor *Actor, reportID, registrationID primitive.ObjectID) (*CorrelationResult, error) {
	if err := s.gate.Authorize(actor, ActionCorrelatePerson); err != nil {
		return nil, err
	}

	report, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsPerson {
		return nil, fmt.Errorf("report %s is not a person report: %w", reportID.Hex(), utils.ErrInvalidMatch)
	}

	registration, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, reportID, map[string]interface{}{
		"matched_with_registration": registrationID,
		"status":                    models.ReportStatusMatched,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogMatchEvent(reportID, "correlated_with_registration", map[string]interface{}{
		"registration": registrationID.Hex(),
	})

	destination := registration.IntendedDestination
	if destination == models.DestinationOther && registration.CustomDestination != "" {
		destination = registration.CustomDestination
	}

	return &CorrelationResult{
		Report:       updated,
		Registration: registration,
		ContactInfo:  registration.ContactInfo,
		Destination:  destination,
		GroupSize:    registration.GroupSize,
	}, nil
}

// SuggestCandidates returns the most recent registrations as correlation
// candidates. There is no scoring or facial comparison here; recency is
// the whole heuristic until a recognition pipeline is wired in.
func (s *LostFoundService) SuggestCandidates(ctx context.Context, limit int) ([]*models.Registration, error) {
	if limit <= 0 || limit > utils.MaxCandidateSuggestions {
		limit = utils.MaxCandidateSuggestions
	}
	return s.registrations.MostRecent(ctx, limit)
}

// UploadPersonPhoto creates a found person-report from a field photo and
// immediately returns suggested registrations to check against.
func (s *LostFoundService) UploadPersonPhoto(ctx context.Context, actor *Actor, input *UploadPersonPhotoInput) (*models.LostFoundReport, []*models.Registration, error) {
	if err := s.gate.Authorize(actor, ActionUploadPersonPhoto); err != nil {
		return nil, nil, err
	}

	name := input.PersonName
	if name == "" {
		name = "Unidentified person"
	}

	report := &models.LostFoundReport{
		Type:        models.ReportTypeFound,
		ReportedBy:  actor.ID,
		ItemName:    name,
		Description: input.Description,
		Location:    input.Location,
		ContactInfo: input.ContactInfo,
		IsPerson:    true,
		FacialData:  input.Image,
		Status:      models.ReportStatusOpen,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, nil, err
	}

	candidates, err := s.SuggestCandidates(ctx, utils.MaxCandidateSuggestions)
	if err != nil {
		// The report exists; candidate lookup failing should not undo it.
		s.logger.WithReportID(report.ID).WithError(err).Warn("Candidate suggestion failed")
		return report, nil, nil
	}

	return report, candidates, nil
}

// ResolveReport closes a report once its owner or staff confirm the item
// or person is back with its group.
func (s *LostFoundService) ResolveReport(ctx context.Context, actor *Actor, id primitive.ObjectID) (*models.LostFoundReport, error) {
	if actor == nil || !actor.Active {
		return nil, fmt.Errorf("resolve report: %w", utils.ErrUnauthorized)
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.ReportedBy != actor.ID {
		if err := s.gate.Authorize(actor, ActionMatchReports); err != nil {
			return nil, err
		}
	}
	if report.Status == models.ReportStatusResolved {
		return nil, fmt.Errorf("report already resolved: %w", utils.ErrInvalidTransition)
	}

	now := time.Now()
	return s.repo.Update(ctx, id, map[string]interface{}{
		"status":      models.ReportStatusResolved,
		"resolved_at": now,
	})
}
