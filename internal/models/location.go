package models

import (
	"time"
)

// Location is a flat lat/lon pair with an optional human-readable address.
// Reports and registrations store the point where the event happened;
// users store their last known position.
type Location struct {
	Latitude  float64   `json:"latitude" bson:"latitude" validate:"required"`
	Longitude float64   `json:"longitude" bson:"longitude" validate:"required"`
	Address   string    `json:"address" bson:"address"`
	Timestamp time.Time `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

// ContactInfo carries the phone (and optionally name/email) a responder
// uses to reach the reporter or registered group.
type ContactInfo struct {
	Phone string `json:"phone" bson:"phone" validate:"required"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}
