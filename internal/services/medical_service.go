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

type CreateMedicalCaseInput struct {
	PatientID        *primitive.ObjectID `json:"patient_id"`
	PatientName      string              `json:"patient_name"`
	PatientAge       *int                `json:"patient_age"`
	PatientGender    string              `json:"patient_gender"`
	CaseType         models.CaseType     `json:"case_type" validate:"required,oneof=emergency consultation medication checkup"`
	Description      string              `json:"description" validate:"required"`
	MedicalIssue     string              `json:"medical_issue"`
	Allergies        string              `json:"allergies"`
	EmergencyContact string              `json:"emergency_contact"`
	Symptoms         []string            `json:"symptoms"`
	Severity         models.CaseSeverity `json:"severity"`
	Location         models.Location     `json:"location" validate:"required"`
}

type MedicalService struct {
	repo      interfaces.MedicalCaseRepository
	gate      *AccessControl
	publisher EventPublisher
	logger    *logger.Logger
}

func NewMedicalService(repo interfaces.MedicalCaseRepository, gate *AccessControl, publisher EventPublisher, log *logger.Logger) *MedicalService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &MedicalService{
		repo:      repo,
		gate:      gate,
		publisher: publisher,
		logger:    log,
	}
}

// CreateCase opens a case. Any active user can report one; when no
// patient is named the reporter is the patient. Emergency and critical
// cases push an emergency-notification to connected staff.
func (s *MedicalService) CreateCase(ctx context.Context, actor *Actor, input *CreateMedicalCaseInput) (*models.MedicalCase, error) {
	if actor == nil || !actor.Active {
		return nil, fmt.Errorf("create medical case: %w", utils.ErrUnauthorized)
	}

	severity := input.Severity
	if severity == "" {
		severity = models.CaseSeverityMedium
	}
	if !models.ValidCaseSeverity(severity) {
		return nil, fmt.Errorf("severity %q: %w", input.Severity, utils.ErrInvalidInput)
	}

	patientID := input.PatientID
	if patientID == nil {
		actorID := actor.ID
		patientID = &actorID
	}

	medicalCase := &models.MedicalCase{
		PatientID:        patientID,
		PatientName:      input.PatientName,
		PatientAge:       input.PatientAge,
		PatientGender:    input.PatientGender,
		ReportedBy:       actor.ID,
		CaseType:         input.CaseType,
		Description:      input.Description,
		MedicalIssue:     input.MedicalIssue,
		Allergies:        input.Allergies,
		EmergencyContact: input.EmergencyContact,
		Symptoms:         input.Symptoms,
		Severity:         severity,
		Status:           models.CaseStatusPending,
		Location:         input.Location,
	}

	if err := s.repo.Create(ctx, medicalCase); err != nil {
		return nil, err
	}

	if medicalCase.CaseType == models.CaseTypeEmergency || medicalCase.Severity == models.CaseSeverityCritical {
		s.publisher.Publish(utils.EventEmergency, medicalCase)
	}
	s.logger.LogEmergencyEvent(medicalCase.ID, "medical_case_created", map[string]interface{}{
		"case_type": string(medicalCase.CaseType),
		"severity":  string(medicalCase.Severity),
	})

	return medicalCase, nil
}

func (s *MedicalService) GetCase(ctx context.Context, actor *Actor, id primitive.ObjectID) (*models.MedicalCase, error) {
	medicalCase, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Patient and reporter always see their own case.
	if actor != nil && actor.Active {
		if medicalCase.ReportedBy == actor.ID {
			return medicalCase, nil
		}
		if medicalCase.PatientID != nil && *medicalCase.PatientID == actor.ID {
			return medicalCase, nil
		}
	}
	if err := s.gate.Authorize(actor, ActionListMedicalCases); err != nil {
		return nil, err
	}

	return medicalCase, nil
}

func (s *MedicalService) ListCases(ctx context.Context, actor *Actor, filter *interfaces.MedicalCaseFilter, params *utils.PaginationParams) ([]*models.MedicalCase, int64, error) {
	if err := s.gate.Authorize(actor, ActionListMedicalCases); err != nil {
		return nil, 0, err
	}
	return s.repo.Query(ctx, filter, params)
}

func (s *MedicalService) MyCases(ctx context.Context, actor *Actor, params *utils.PaginationParams) ([]*models.MedicalCase, int64, error) {
	if actor == nil || !actor.Active {
		return nil, 0, fmt.Errorf("list own cases: %w", utils.ErrUnauthorized)
	}
	actorID := actor.ID
	return s.repo.Query(ctx, &interfaces.MedicalCaseFilter{PatientOrReportedBy: &actorID}, params)
}

// AssignCase puts a pending case in progress under the given staff
// member. Assigning a resolved case is rejected.
func (s *MedicalService) AssignCase(ctx context.Context, actor *Actor, id, assigneeID primitive.ObjectID) (*models.MedicalCase, error) {
	if err := s.gate.Authorize(actor, ActionManageMedicalCase); err != nil {
		return nil, err
	}

	medicalCase, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicalCase.Status == models.CaseStatusResolved {
		return nil, fmt.Errorf("assign resolved case: %w", utils.ErrInvalidTransition)
	}

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":      models.CaseStatusInProgress,
		"assigned_to": assigneeID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogEmergencyEvent(id, "medical_case_assigned", map[string]interface{}{
		"assignee": assigneeID.Hex(),
	})

	return updated, nil
}

// AddNote appends to the case's note log. Notes are append-only and the
// log is closed once the case is resolved.
func (s *MedicalService) AddNote(ctx context.Context, actor *Actor, id primitive.ObjectID, note string) (*models.MedicalCase, error) {
	if err := s.gate.Authorize(actor, ActionManageMedicalCase); err != nil {
		return nil, err
	}
	if note == "" {
		return nil, fmt.Errorf("empty note: %w", utils.ErrInvalidInput)
	}

	medicalCase, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicalCase.Status == models.CaseStatusResolved {
		return nil, fmt.Errorf("note on resolved case: %w", utils.ErrInvalidTransition)
	}

	return s.repo.AddNote(ctx, id, models.MedicalNote{
		Note:    note,
		AddedBy: actor.ID,
		AddedAt: time.Now(),
	})
}

func (s *MedicalService) ResolveCase(ctx context.Context, actor *Actor, id primitive.ObjectID) (*models.MedicalCase, error) {
	if err := s.gate.Authorize(actor, ActionManageMedicalCase); err != nil {
		return nil, err
	}

	medicalCase, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicalCase.Status == models.CaseStatusResolved {
		return nil, fmt.Errorf("resolve resolved case: %w", utils.ErrInvalidTransition)
	}

	now := time.Now()
	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":      models.CaseStatusResolved,
		"resolved_at": now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogEmergencyEvent(id, "medical_case_resolved", map[string]interface{}{
		"resolver": actor.ID.Hex(),
	})

	return updated, nil
}
