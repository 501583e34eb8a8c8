package interfaces

import (
	"context"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MedicalCaseFilter struct {
	Status   *models.CaseStatus
	CaseType *models.CaseType
	Severity *models.CaseSeverity

	// PatientOrReportedBy matches cases where the user is either the
	// patient or the reporter ("my cases").
	PatientOrReportedBy *primitive.ObjectID
}

type MedicalCaseRepository interface {
	Create(ctx context.Context, medicalCase *models.MedicalCase) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MedicalCase, error)
	Query(ctx context.Context, filter *MedicalCaseFilter, params *utils.PaginationParams) ([]*models.MedicalCase, int64, error)
	Count(ctx context.Context, filter *MedicalCaseFilter) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.MedicalCase, error)

	// AddNote appends a single note to the case's log. The append happens
	// in the store, so concurrent notes never overwrite each other.
	AddNote(ctx context.Context, id primitive.ObjectID, note models.MedicalNote) (*models.MedicalCase, error)
}
