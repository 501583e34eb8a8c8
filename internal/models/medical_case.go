package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CaseType string
type CaseSeverity string
type CaseStatus string

const (
	CaseTypeEmergency    CaseType = "emergency"
	CaseTypeConsultation CaseType = "consultation"
	CaseTypeMedication   CaseType = "medication"
	CaseTypeCheckup      CaseType = "checkup"

	CaseSeverityLow      CaseSeverity = "low"
	CaseSeverityMedium   CaseSeverity = "medium"
	CaseSeverityHigh     CaseSeverity = "high"
	CaseSeverityCritical CaseSeverity = "critical"

	CaseStatusPending    CaseStatus = "pending"
	CaseStatusInProgress CaseStatus = "in-progress"
	CaseStatusResolved   CaseStatus = "resolved"
)

// MedicalNote is one entry in a case's append-only note log.
type MedicalNote struct {
	Note    string             `json:"note" bson:"note" validate:"required"`
	AddedBy primitive.ObjectID `json:"added_by" bson:"added_by"`
	AddedAt time.Time          `json:"added_at" bson:"added_at"`
}

// MedicalCase tracks a patient from intake to resolution. The patient may
// be the reporter (self-reported cases). Lifecycle:
// pending -> in-progress (on assignment) -> resolved.
type MedicalCase struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PatientID        *primitive.ObjectID `json:"patient_id,omitempty" bson:"patient_id,omitempty"`
	PatientName      string              `json:"patient_name" bson:"patient_name"`
	PatientAge       *int                `json:"patient_age,omitempty" bson:"patient_age,omitempty"`
	PatientGender    string              `json:"patient_gender,omitempty" bson:"patient_gender,omitempty"`
	ReportedBy       primitive.ObjectID  `json:"reported_by" bson:"reported_by" validate:"required"`
	CaseType         CaseType            `json:"case_type" bson:"case_type" validate:"required,oneof=emergency consultation medication checkup"`
	Description      string              `json:"description" bson:"description" validate:"required"`
	MedicalIssue     string              `json:"medical_issue" bson:"medical_issue"`
	Allergies        string              `json:"allergies,omitempty" bson:"allergies,omitempty"`
	EmergencyContact string              `json:"emergency_contact,omitempty" bson:"emergency_contact,omitempty"`
	Symptoms         []string            `json:"symptoms" bson:"symptoms"`
	Severity         CaseSeverity        `json:"severity" bson:"severity" default:"medium"`
	Status           CaseStatus          `json:"status" bson:"status" default:"pending"`
	Notes            []MedicalNote       `json:"medical_notes" bson:"medical_notes"`
	AssignedTo       *primitive.ObjectID `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	Location         Location            `json:"location" bson:"location" validate:"required"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updated_at"`
	ResolvedAt       *time.Time          `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}

func ValidCaseSeverity(s CaseSeverity) bool {
	switch s {
	case CaseSeverityLow, CaseSeverityMedium, CaseSeverityHigh, CaseSeverityCritical:
		return true
	}
	return false
}
