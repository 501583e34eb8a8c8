package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type medicalCaseRepository struct {
	mu    sync.RWMutex
	cases map[primitive.ObjectID]*models.MedicalCase
}

func NewMedicalCaseRepository() interfaces.MedicalCaseRepository {
	return &medicalCaseRepository{
		cases: make(map[primitive.ObjectID]*models.MedicalCase),
	}
}

func (r *medicalCaseRepository) Create(ctx context.Context, medicalCase *models.MedicalCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	medicalCase.ID = primitive.NewObjectID()
	medicalCase.CreatedAt = time.Now()
	medicalCase.UpdatedAt = medicalCase.CreatedAt

	stored := cloneMedicalCase(medicalCase)
	r.cases[medicalCase.ID] = stored

	return nil
}

func (r *medicalCaseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MedicalCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	medicalCase, ok := r.cases[id]
	if !ok {
		return nil, fmt.Errorf("medical case: %w", utils.ErrNotFound)
	}

	return cloneMedicalCase(medicalCase), nil
}

func (r *medicalCaseRepository) Query(ctx context.Context, filter *interfaces.MedicalCaseFilter, params *utils.PaginationParams) ([]*models.MedicalCase, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.MedicalCase
	for _, medicalCase := range r.cases {
		if medicalCaseMatches(medicalCase, filter) {
			matched = append(matched, cloneMedicalCase(medicalCase))
		}
	}

	sortNewestFirst(matched, func(c *models.MedicalCase) time.Time { return c.CreatedAt })
	total := int64(len(matched))

	return paginate(matched, params), total, nil
}

func (r *medicalCaseRepository) Count(ctx context.Context, filter *interfaces.MedicalCaseFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, medicalCase := range r.cases {
		if medicalCaseMatches(medicalCase, filter) {
			count++
		}
	}
	return count, nil
}

func (r *medicalCaseRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.MedicalCase, error) {
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	medicalCase, ok := r.cases[id]
	if !ok {
		return nil, fmt.Errorf("medical case: %w", utils.ErrNotFound)
	}

	for field, value := range updates {
		switch field {
		case "status":
			medicalCase.Status = value.(models.CaseStatus)
		case "severity":
			medicalCase.Severity = value.(models.CaseSeverity)
		case "description":
			medicalCase.Description = value.(string)
		case "medical_notes":
			medicalCase.Notes = value.([]models.MedicalNote)
		case "assigned_to":
			if value == nil {
				medicalCase.AssignedTo = nil
			} else {
				assignee := value.(primitive.ObjectID)
				medicalCase.AssignedTo = &assignee
			}
		case "resolved_at":
			if value == nil {
				medicalCase.ResolvedAt = nil
			} else {
				at := value.(time.Time)
				medicalCase.ResolvedAt = &at
			}
		}
	}
	medicalCase.UpdatedAt = time.Now()

	return cloneMedicalCase(medicalCase), nil
}

func (r *medicalCaseRepository) AddNote(ctx context.Context, id primitive.ObjectID, note models.MedicalNote) (*models.MedicalCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	medicalCase, ok := r.cases[id]
	if !ok {
		return nil, fmt.Errorf("medical case: %w", utils.ErrNotFound)
	}

	medicalCase.Notes = append(medicalCase.Notes, note)
	medicalCase.UpdatedAt = time.Now()

	return cloneMedicalCase(medicalCase), nil
}

// cloneMedicalCase deep-copies the note log so callers cannot mutate
// stored state through a returned slice.
func cloneMedicalCase(medicalCase *models.MedicalCase) *models.MedicalCase {
	out := *medicalCase
	if medicalCase.Notes != nil {
		out.Notes = make([]models.MedicalNote, len(medicalCase.Notes))
		copy(out.Notes, medicalCase.Notes)
	}
	if medicalCase.Symptoms != nil {
		out.Symptoms = make([]string, len(medicalCase.Symptoms))
		copy(out.Symptoms, medicalCase.Symptoms)
	}
	return &out
}

func medicalCaseMatches(medicalCase *models.MedicalCase, filter *interfaces.MedicalCaseFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Status != nil && medicalCase.Status != *filter.Status {
		return false
	}
	if filter.CaseType != nil && medicalCase.CaseType != *filter.CaseType {
		return false
	}
	if filter.Severity != nil && medicalCase.Severity != *filter.Severity {
		return false
	}
	if filter.PatientOrReportedBy != nil {
		isPatient := medicalCase.PatientID != nil && *medicalCase.PatientID == *filter.PatientOrReportedBy
		isReporter := medicalCase.ReportedBy == *filter.PatientOrReportedBy
		if !isPatient && !isReporter {
			return false
		}
	}
	return true
}
