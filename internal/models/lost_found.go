package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportType string
type ReportStatus string

const (
	ReportTypeLost  ReportType = "lost"
	ReportTypeFound ReportType = "found"

	ReportStatusOpen     ReportStatus = "open"
	ReportStatusMatched  ReportStatus = "matched"
	ReportStatusResolved ReportStatus = "resolved"
)

// LostFoundReport covers both lost and found reports for items and people.
// MatchedWith is a symmetric back-reference: whenever it is set, the peer
// report points back at this one. A lost report can only ever be matched
// to a found report and vice versa.
//
// IsPerson marks a missing/found individual rather than an object;
// person-reports may additionally be correlated against a QR registration
// via MatchedWithRegistration. FacialData is an opaque blob handed to an
// external recognition pipeline, never interpreted here.
type LostFoundReport struct {
	ID                      primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Type                    ReportType          `json:"type" bson:"type" validate:"required,oneof=lost found"`
	ReportedBy              primitive.ObjectID  `json:"reported_by" bson:"reported_by" validate:"required"`
	ItemName                string              `json:"item_name" bson:"item_name" validate:"required"`
	Description             string              `json:"description" bson:"description"`
	Location                Location            `json:"location" bson:"location" validate:"required"`
	ContactInfo             ContactInfo         `json:"contact_info" bson:"contact_info" validate:"required"`
	Images                  []string            `json:"images" bson:"images"`
	IsPerson                bool                `json:"is_person" bson:"is_person" default:"false"`
	FacialData              string              `json:"facial_data,omitempty" bson:"facial_data,omitempty"`
	Status                  ReportStatus        `json:"status" bson:"status" default:"open"`
	MatchedWith             *primitive.ObjectID `json:"matched_with,omitempty" bson:"matched_with,omitempty"`
	MatchedWithRegistration *primitive.ObjectID `json:"matched_with_registration,omitempty" bson:"matched_with_registration,omitempty"`
	CreatedAt               time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at" bson:"updated_at"`
	ResolvedAt              *time.Time          `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}
