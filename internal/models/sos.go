package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SOSStatus string
type SOSPriority string

const (
	SOSStatusPending      SOSStatus = "pending"
	SOSStatusAcknowledged SOSStatus = "acknowledged"
	SOSStatusResolved     SOSStatus = "resolved"

	SOSPriorityLow      SOSPriority = "low"
	SOSPriorityMedium   SOSPriority = "medium"
	SOSPriorityHigh     SOSPriority = "high"
	SOSPriorityCritical SOSPriority = "critical"
)

// SOSAlert is a distress signal raised from the ground. UserID is nil for
// anonymous alerts. Status only moves forward:
// pending -> acknowledged -> resolved.
type SOSAlert struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID     *primitive.ObjectID `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Location   Location            `json:"location" bson:"location" validate:"required"`
	Message    string              `json:"message" bson:"message"`
	Priority   SOSPriority         `json:"priority" bson:"priority" default:"high"`
	Status     SOSStatus           `json:"status" bson:"status" default:"pending"`
	AssignedTo *primitive.ObjectID `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
	ResolvedAt *time.Time          `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}

func ValidSOSPriority(p SOSPriority) bool {
	switch p {
	case SOSPriorityLow, SOSPriorityMedium, SOSPriorityHigh, SOSPriorityCritical:
		return true
	}
	return false
}
